package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"boothbot/internal/model"
)

// 不带时区偏移的本地时间，由 timeZone 字段解释
const eventTimeLayout = "2006-01-02T15:04:05"

// CalendarClient 向固定日历插入事件
type CalendarClient struct {
	svc        *calendar.Service
	calendarID string
	timeout    time.Duration
}

// NewCalendarClient timeout 为单次请求的上限，0 表示不限
func NewCalendarClient(ctx context.Context, calendarID string, timeout time.Duration, opts ...option.ClientOption) (*CalendarClient, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	return &CalendarClient{svc: svc, calendarID: calendarID, timeout: timeout}, nil
}

// InsertEvent 创建事件，返回可查看的链接
func (c *CalendarClient) InsertEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	body := &calendar.Event{
		Summary: ev.Summary,
		Start:   &calendar.EventDateTime{DateTime: ev.Start.Format(eventTimeLayout), TimeZone: ev.TimeZone},
		End:     &calendar.EventDateTime{DateTime: ev.End.Format(eventTimeLayout), TimeZone: ev.TimeZone},
	}
	created, err := c.svc.Events.Insert(c.calendarID, body).Context(ctx).Do()
	if err != nil {
		return "", providerError("calendar", err)
	}
	return created.HtmlLink, nil
}
