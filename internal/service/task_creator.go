package service

import (
	"context"
	"fmt"

	"boothbot/config"
	"boothbot/internal/client/notion"
	"boothbot/internal/model"
)

// PageCreator 在任务数据库中创建页面（由 notion.Client 实现）
type PageCreator interface {
	CreatePage(ctx context.Context, properties map[string]any) (model.TaskRecord, error)
}

// TaskCreator 将校验后的请求与解析出的成员组装为任务页并提交
type TaskCreator struct {
	pages PageCreator
	props config.NotionProperties
}

// NewTaskCreator 创建任务构建器
func NewTaskCreator(pages PageCreator, props config.NotionProperties) *TaskCreator {
	return &TaskCreator{pages: pages, props: props}
}

// Properties 组装 Notion 属性；identityID 为空时写入空的人员分配
func (c *TaskCreator) Properties(req model.TaskRequest, identityID string) map[string]any {
	props := map[string]any{
		c.props.Title: notion.Title(req.Title()),
		c.props.Due:   notion.Date(req.DueDateString()),
	}
	if identityID != "" {
		props[c.props.Assignee] = notion.People(identityID)
	} else {
		props[c.props.Assignee] = notion.People()
	}
	if body := req.Body(); body != "" {
		props[c.props.Description] = notion.RichText(body)
	}
	if req.Project() != "" {
		props[c.props.Project] = notion.RichText(req.Project())
	}
	if req.Type() != "" {
		props[c.props.Type] = notion.Select(string(req.Type()))
	}
	if req.Priority() != "" {
		props[c.props.Priority] = notion.Select(string(req.Priority()))
	}
	return props
}

// Create 同步提交一次，失败不重试（重复提交会产生重复任务）
func (c *TaskCreator) Create(ctx context.Context, req model.TaskRequest, identityID string) (model.TaskRecord, error) {
	rec, err := c.pages.CreatePage(ctx, c.Properties(req, identityID))
	if err != nil {
		return model.TaskRecord{}, fmt.Errorf("create task: %w", err)
	}
	return rec, nil
}
