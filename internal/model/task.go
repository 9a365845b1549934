package model

import (
	"strings"
	"time"
)

// DueDateLayout 截止日期的 ISO 日历格式
const DueDateLayout = "2006-01-02"

// Priority 任务优先级，封闭枚举
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities 合法优先级，按从低到高排列
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParsePriority 大小写敏感的精确匹配
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// PriorityNames 返回逗号分隔的合法值列表，用于拒绝提示
func PriorityNames() string {
	names := make([]string, len(Priorities))
	for i, p := range Priorities {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// TaskType 任务类型，写入 Notion 的 select 属性
type TaskType string

// RawTaskCommand 聊天命令传入的原始字段，未经校验
type RawTaskCommand struct {
	// CommandID 关联日志用的请求 ID
	CommandID   string `json:"command_id"`
	Title       string `json:"title"`
	Assign      string `json:"assign"`
	Project     string `json:"project,omitempty"`
	Type        string `json:"type,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
	Due         string `json:"due,omitempty"`
	// ReplyText 被回复消息的正文，由聊天平台层填充
	ReplyText string `json:"reply_text,omitempty"`
}

// TaskRequest 校验通过的建任务请求，构造后不可变
type TaskRequest struct {
	title       string
	assignee    string
	project     string
	taskType    TaskType
	priority    Priority
	description string
	dueDate     time.Time
	note        string
}

// NewTaskRequest 仅由校验器调用；调用方保证各字段已合法
func NewTaskRequest(title, assignee, project string, taskType TaskType, priority Priority, description string, due time.Time, note string) TaskRequest {
	return TaskRequest{
		title:       title,
		assignee:    assignee,
		project:     project,
		taskType:    taskType,
		priority:    priority,
		description: description,
		dueDate:     due,
		note:        note,
	}
}

func (r TaskRequest) Title() string { return r.title }
func (r TaskRequest) Assignee() string { return r.assignee }
func (r TaskRequest) Project() string { return r.project }
func (r TaskRequest) Type() TaskType { return r.taskType }
func (r TaskRequest) Priority() Priority { return r.priority }
func (r TaskRequest) Description() string { return r.description }
func (r TaskRequest) DueDate() time.Time { return r.dueDate }
func (r TaskRequest) Note() string { return r.note }
func (r TaskRequest) DueDateString() string { return r.dueDate.Format(DueDateLayout) }

// Body 任务描述：note 优先，其次 description
func (r TaskRequest) Body() string {
	if r.note != "" {
		return r.note
	}
	return r.description
}

// TaskRecord 已创建的任务
type TaskRecord struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
