package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"boothbot/internal/model"
)

// Orchestrator 编排：校验 -> 指派解析 -> 建任务 -> 格式化回复
type Orchestrator struct {
	validator  *Validator
	directory  *Directory
	identities *IdentityTable
	tasks      *TaskCreator
	events     *EventCreator
	logger     *slog.Logger
}

// NewOrchestrator directory/identities 为启动时构建的只读快照；events 为 nil 表示未启用日历
func NewOrchestrator(validator *Validator, directory *Directory, identities *IdentityTable, tasks *TaskCreator, events *EventCreator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		validator:  validator,
		directory:  directory,
		identities: identities,
		tasks:      tasks,
		events:     events,
		logger:     logger,
	}
}

// HandleTask 处理一次建任务命令；任一阶段失败即终止，只返回一条失败消息
func (o *Orchestrator) HandleTask(ctx context.Context, raw model.RawTaskCommand) (reply model.Reply) {
	log := o.logger.With("command_id", raw.CommandID, "command", "task")
	defer o.recoverInto(log, &reply)

	req, err := o.validator.Validate(ctx, raw)
	if err != nil {
		return o.failure(log, "Task rejected", err)
	}

	identityID, assigned := ResolveAssignee(o.directory, o.identities, req.Assignee())
	log.Debug("assignee resolved", "handle", req.Assignee(), "assigned", assigned)

	rec, err := o.tasks.Create(ctx, req, identityID)
	if err != nil {
		return o.failure(log, "Failed to create task", err)
	}
	log.Info("task created", "url", rec.URL, "assigned", assigned)
	return model.Reply{Content: FormatTaskCreated(req, rec, assigned)}
}

// HandleEvent 处理一次建日历事件命令
func (o *Orchestrator) HandleEvent(ctx context.Context, raw model.RawEventCommand) (reply model.Reply) {
	log := o.logger.With("command_id", raw.CommandID, "command", "event")
	defer o.recoverInto(log, &reply)

	if o.events == nil {
		return o.failure(log, "Failed to create event", model.ErrGoogleDisabled)
	}
	rec, err := o.events.Create(ctx, raw)
	if err != nil {
		return o.failure(log, "Failed to create event", err)
	}
	log.Info("event created", "link", rec.Link, "thread_id", rec.ThreadID)
	return model.Reply{Content: fmt.Sprintf("✅ Event created!\n[View Event](%s) | Thread: <#%s>", rec.Link, rec.ThreadID)}
}

// FormatTaskCreated 成功回复
func FormatTaskCreated(req model.TaskRequest, rec model.TaskRecord, assigned bool) string {
	assignee := "Unassigned"
	if assigned {
		assignee = req.Assignee()
	}
	msg := fmt.Sprintf("✅ Task created: **%s**\n👤 %s | 📅 Due %s", req.Title(), assignee, req.DueDateString())
	if req.Priority() != "" {
		msg += " | ⚡ " + string(req.Priority())
	}
	return msg + fmt.Sprintf("\n👉 [View Task](%s)", rec.URL)
}

// failure 校验拒绝原样回显；外部服务错误附带原始响应；其余错误给出错误信息
func (o *Orchestrator) failure(log *slog.Logger, action string, err error) model.Reply {
	var rej *model.Rejection
	if errors.As(err, &rej) {
		log.Info("command rejected", "reason", rej.Reason)
		return model.Reply{Content: fmt.Sprintf("❌ %s: %s", action, rej.Reason), Ephemeral: true}
	}
	var perr *model.ProviderError
	if errors.As(err, &perr) {
		log.Error(action, "provider", perr.Provider, "status", perr.StatusCode, "body", perr.Body)
		return model.Reply{Content: fmt.Sprintf("❌ %s: %s", action, perr.Body), Ephemeral: true}
	}
	log.Error(action, "error", err)
	return model.Reply{Content: fmt.Sprintf("❌ %s: %v", action, err), Ephemeral: true}
}

func (o *Orchestrator) recoverInto(log *slog.Logger, reply *model.Reply) {
	if r := recover(); r != nil {
		log.Error("panic recovered", "panic", r)
		*reply = model.FailureReply()
	}
}
