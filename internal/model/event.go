package model

import "time"

// RawEventCommand /event 命令的原始字段
type RawEventCommand struct {
	CommandID string  `json:"command_id"`
	ChannelID string  `json:"channel_id"`
	Title     string  `json:"title"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Duration  float64 `json:"duration"`
}

// CalendarEvent 待写入日历的事件
type CalendarEvent struct {
	Summary  string
	Start    time.Time
	End      time.Time
	TimeZone string
}

// EventRecord 事件与讨论串的创建结果
type EventRecord struct {
	Link     string `json:"link"`
	ThreadID string `json:"thread_id"`
}

// Reply 回给聊天平台的一条消息
type Reply struct {
	Content   string `json:"content"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

// FailureReply 未预期错误（含 panic）时的统一回复
func FailureReply() Reply {
	return Reply{Content: "❌ Error: something went wrong, please try again.", Ephemeral: true}
}
