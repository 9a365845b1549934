package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"boothbot/internal/model"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeRows struct {
	rows  [][]string
	err   error
	calls int
}

func (f *fakeRows) Rows(context.Context) ([][]string, error) {
	f.calls++
	return f.rows, f.err
}

type fakeLister struct {
	pages map[string]model.IdentityPage
	err   error
}

func (f *fakeLister) ListUsers(_ context.Context, cursor string) (model.IdentityPage, error) {
	if f.err != nil {
		return model.IdentityPage{}, f.err
	}
	return f.pages[cursor], nil
}

type fakeUsers struct {
	handles map[string]string
	calls   int
}

func (f *fakeUsers) LookupHandle(_ context.Context, id string) (string, error) {
	f.calls++
	h, ok := f.handles[id]
	if !ok {
		return "", model.ErrUserNotFound
	}
	return h, nil
}

type fakePages struct {
	got   map[string]any
	rec   model.TaskRecord
	err   error
	calls int
}

func (f *fakePages) CreatePage(_ context.Context, props map[string]any) (model.TaskRecord, error) {
	f.calls++
	f.got = props
	if f.err != nil {
		return model.TaskRecord{}, f.err
	}
	return f.rec, nil
}

type fakeCalendar struct {
	got  model.CalendarEvent
	link string
	err  error
}

func (f *fakeCalendar) InsertEvent(_ context.Context, ev model.CalendarEvent) (string, error) {
	f.got = ev
	return f.link, f.err
}

type fakeThreads struct {
	threadName string
	posted     map[string]string
	err        error
}

func (f *fakeThreads) StartThread(_ context.Context, _ string, name string, _ int) (*discordgo.Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.threadName = name
	return &discordgo.Channel{ID: "thread-1", Name: name}, nil
}

func (f *fakeThreads) SendMessage(_ context.Context, channelID, content string) error {
	if f.posted == nil {
		f.posted = make(map[string]string)
	}
	f.posted[channelID] = content
	return nil
}

var errBoom = errors.New("boom")
