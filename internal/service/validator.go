package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"boothbot/internal/model"
)

// UserLookup 将平台提及的数字 ID 解析为用户名（由聊天平台客户端实现）
type UserLookup interface {
	LookupHandle(ctx context.Context, userID string) (string, error)
}

// Validator 规范化并校验原始命令；除提及解析外不访问任何外部服务
type Validator struct {
	users     UserLookup
	taskTypes map[string]struct{}
	loc       *time.Location
	now       func() time.Time
}

// NewValidator taskTypes 为空时任务类型不限制；loc 为 nil 时使用本地时区
func NewValidator(users UserLookup, taskTypes []string, loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	v := &Validator{users: users, loc: loc, now: time.Now}
	if len(taskTypes) > 0 {
		v.taskTypes = make(map[string]struct{}, len(taskTypes))
		for _, t := range taskTypes {
			v.taskTypes[t] = struct{}{}
		}
	}
	return v
}

// Validate 按固定顺序校验，第一条失败即返回 *model.Rejection
func (v *Validator) Validate(ctx context.Context, raw model.RawTaskCommand) (model.TaskRequest, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return model.TaskRequest{}, model.Reject("title is required")
	}

	handle, err := v.resolveHandle(ctx, raw.Assign)
	if err != nil {
		return model.TaskRequest{}, err
	}

	var priority model.Priority
	if p := raw.Priority; p != "" {
		var ok bool
		if priority, ok = model.ParsePriority(p); !ok {
			return model.TaskRequest{}, model.Reject("invalid priority %q, must be one of: %s", p, model.PriorityNames())
		}
	}

	taskType := strings.TrimSpace(raw.Type)
	if taskType != "" && v.taskTypes != nil {
		if _, ok := v.taskTypes[taskType]; !ok {
			return model.TaskRequest{}, model.Reject("invalid type %q", taskType)
		}
	}

	due, err := v.dueDate(raw.Due)
	if err != nil {
		return model.TaskRequest{}, err
	}

	note := strings.TrimSpace(raw.ReplyText)

	if handle == "" {
		return model.TaskRequest{}, model.Reject("no assignee found")
	}

	return model.NewTaskRequest(
		title,
		handle,
		strings.TrimSpace(raw.Project),
		model.TaskType(taskType),
		priority,
		strings.TrimSpace(raw.Description),
		due,
		note,
	), nil
}

func (v *Validator) resolveHandle(ctx context.Context, raw string) (string, error) {
	tok := ParseAssignee(raw)
	if !tok.IsMention() {
		return tok.Handle, nil
	}
	if v.users == nil {
		return "", model.Reject("could not find user <@%s>", tok.MentionID)
	}
	handle, err := v.users.LookupHandle(ctx, tok.MentionID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.Reject("could not find user <@%s>", tok.MentionID)
		}
		return "", model.Reject("could not find user <@%s>: %v", tok.MentionID, err)
	}
	return strings.TrimSpace(handle), nil
}

// dueDate 未提供时取校验时刻的当天
func (v *Validator) dueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		y, m, d := v.now().In(v.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, v.loc), nil
	}
	due, err := time.ParseInLocation(model.DueDateLayout, raw, v.loc)
	if err != nil {
		return time.Time{}, model.Reject("invalid due date %q, expected YYYY-MM-DD", raw)
	}
	return due, nil
}
