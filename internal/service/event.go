package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"boothbot/internal/model"
)

const (
	eventInputLayout        = "2006-01-02 15:04"
	threadAutoArchiveMinute = 60
)

// EventInserter 插入日历事件（由 google.CalendarClient 实现）
type EventInserter interface {
	InsertEvent(ctx context.Context, ev model.CalendarEvent) (string, error)
}

// ThreadPoster 创建讨论串并发消息（由 discord.Client 实现）
type ThreadPoster interface {
	StartThread(ctx context.Context, channelID, name string, autoArchiveMinutes int) (*discordgo.Channel, error)
	SendMessage(ctx context.Context, channelID, content string) error
}

// EventCreator 创建日历事件，并在频道中开一个同名讨论串
type EventCreator struct {
	calendar EventInserter
	threads  ThreadPoster
	loc      *time.Location
}

// NewEventCreator loc 决定日期时间的解释方式，同时作为事件时区
func NewEventCreator(calendar EventInserter, threads ThreadPoster, loc *time.Location) *EventCreator {
	if loc == nil {
		loc = time.Local
	}
	return &EventCreator{calendar: calendar, threads: threads, loc: loc}
}

// BuildEvent 校验输入并计算起止时间；时长单位为小时，可带小数，按分钟截断
func (e *EventCreator) BuildEvent(raw model.RawEventCommand) (model.CalendarEvent, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return model.CalendarEvent{}, model.Reject("title is required")
	}
	start, err := time.ParseInLocation(eventInputLayout, strings.TrimSpace(raw.Date)+" "+strings.TrimSpace(raw.Time), e.loc)
	if err != nil {
		return model.CalendarEvent{}, model.Reject("invalid date/time %q %q, expected YYYY-MM-DD and HH:MM (24h)", raw.Date, raw.Time)
	}
	minutes := int(raw.Duration * 60)
	if minutes <= 0 {
		return model.CalendarEvent{}, model.Reject("duration must be positive (hours, e.g. 1.5)")
	}
	return model.CalendarEvent{
		Summary:  title,
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		TimeZone: e.loc.String(),
	}, nil
}

// Create 插入事件 -> 建讨论串 -> 在讨论串内贴出事件链接
func (e *EventCreator) Create(ctx context.Context, raw model.RawEventCommand) (model.EventRecord, error) {
	ev, err := e.BuildEvent(raw)
	if err != nil {
		return model.EventRecord{}, err
	}
	if raw.ChannelID == "" {
		return model.EventRecord{}, fmt.Errorf("%w: channel id is required", model.ErrInvalidParams)
	}
	link, err := e.calendar.InsertEvent(ctx, ev)
	if err != nil {
		return model.EventRecord{}, fmt.Errorf("insert calendar event: %w", err)
	}
	thread, err := e.threads.StartThread(ctx, raw.ChannelID, ev.Summary, threadAutoArchiveMinute)
	if err != nil {
		return model.EventRecord{Link: link}, fmt.Errorf("start thread: %w", err)
	}
	msg := fmt.Sprintf("📅 **%s** on %s\n👉 [View Event](%s)", ev.Summary, ev.Start.Format(eventInputLayout), link)
	if err := e.threads.SendMessage(ctx, thread.ID, msg); err != nil {
		return model.EventRecord{Link: link, ThreadID: thread.ID}, fmt.Errorf("post to thread: %w", err)
	}
	return model.EventRecord{Link: link, ThreadID: thread.ID}, nil
}
