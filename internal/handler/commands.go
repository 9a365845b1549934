package handler

import "github.com/bwmarrin/discordgo"

const (
	commandTask  = "task"
	commandEvent = "event"
)

// Commands 注册到服务器的斜杠命令定义
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandTask,
			Description: "Create a task in Notion",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Task title", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "assign", Description: "Assignee: @mention or username", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "project", Description: "Project name"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "type", Description: "Task type"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "priority", Description: "Low, Medium, High or Urgent"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Task description"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "due", Description: "Due date YYYY-MM-DD (default today)"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reply_to", Description: "Message ID or link to use as the task note"},
			},
		},
		{
			Name:        commandEvent,
			Description: "Create a calendar event and a discussion thread",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Event title", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date YYYY-MM-DD", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "time", Description: "Start time HH:MM (24h)", Required: true},
				{Type: discordgo.ApplicationCommandOptionNumber, Name: "duration", Description: "Duration in hours, e.g. 1.5", Required: true},
			},
		},
	}
}
