package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boothbot",
	Short: "Discord bot that files Notion tasks and Google Calendar events",
	Long: `boothbot serves the Discord interactions endpoint for the /task and /event
slash commands. With no subcommand it runs the server.

Configuration is read from config/<APP_ENV>.yaml and overridden by environment
variables (DISCORD_BOT_TOKEN, NOTION_TOKEN, ...).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, registerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
