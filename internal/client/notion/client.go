package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boothbot/internal/model"
)

const apiVersion = "2022-06-28"

// Config Notion 客户端配置
type Config struct {
	Token      string
	DatabaseID string
	BaseURL    string // 默认 https://api.notion.com/v1
	Timeout    time.Duration
}

// Client Notion API 客户端：成员列表与任务页创建
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient 创建 Notion 客户端
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.notion.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// DatabaseID 任务数据库 ID
func (c *Client) DatabaseID() string {
	return c.cfg.DatabaseID
}

// do 发送请求并检查状态码；非 2xx 时返回带原始 body 的 ProviderError，不解析 JSON
func (c *Client) do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("notion: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("notion %s %s: read body: %w", method, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.ProviderError{Provider: "notion", StatusCode: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}

// user 列表接口中的单个成员：https://developers.notion.com/reference/get-users
type user struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	Type   string `json:"type"` // person | bot
	Name   string `json:"name"`
	Person *struct {
		Email string `json:"email"`
	} `json:"person,omitempty"`
}

type listUsersResp struct {
	Results    []user `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// ListUsers 拉取一页工作区成员；cursor 为空表示第一页
func (c *Client) ListUsers(ctx context.Context, cursor string) (model.IdentityPage, error) {
	q := url.Values{}
	q.Set("page_size", "100")
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}
	b, err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil)
	if err != nil {
		return model.IdentityPage{}, err
	}
	var result listUsersResp
	if err := json.Unmarshal(b, &result); err != nil {
		return model.IdentityPage{}, fmt.Errorf("notion list users parse response: %w, body: %.500s", err, string(b))
	}
	page := model.IdentityPage{HasMore: result.HasMore, NextCursor: result.NextCursor}
	for _, u := range result.Results {
		ident := model.WorkspaceIdentity{ID: u.ID, DisplayName: u.Name, Kind: u.Type}
		if u.Person != nil {
			ident.Email = u.Person.Email
		}
		page.Members = append(page.Members, ident)
	}
	return page, nil
}

type pageResp struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreatePage 在任务数据库下创建一页；properties 由 Title/People/Date 等构造
func (c *Client) CreatePage(ctx context.Context, properties map[string]any) (model.TaskRecord, error) {
	body := map[string]any{
		"parent":     map[string]string{"database_id": c.cfg.DatabaseID},
		"properties": properties,
	}
	b, err := c.do(ctx, http.MethodPost, "/pages", body)
	if err != nil {
		return model.TaskRecord{}, err
	}
	var result pageResp
	if err := json.Unmarshal(b, &result); err != nil {
		return model.TaskRecord{}, fmt.Errorf("notion create page parse response: %w, body: %s", err, string(b))
	}
	if result.URL == "" {
		return model.TaskRecord{}, fmt.Errorf("%w: body: %s", model.ErrMissingRecordURL, string(b))
	}
	return model.TaskRecord{ID: result.ID, URL: result.URL}, nil
}

// 单个富文本对象 content 的上限（按字符计）
const maxTextLength = 2000

// textItems 超长文本按字符切成多个富文本对象，不截断多字节字符
func textItems(content string) []map[string]any {
	runes := []rune(content)
	items := make([]map[string]any, 0, len(runes)/maxTextLength+1)
	for {
		n := min(len(runes), maxTextLength)
		items = append(items, map[string]any{"type": "text", "text": map[string]string{"content": string(runes[:n])}})
		runes = runes[n:]
		if len(runes) == 0 {
			return items
		}
	}
}

// Title 标题属性
func Title(content string) map[string]any {
	return map[string]any{"title": textItems(content)}
}

// RichText 富文本属性
func RichText(content string) map[string]any {
	return map[string]any{"rich_text": textItems(content)}
}

// People 人员属性；不传 id 时为空分配
func People(ids ...string) map[string]any {
	people := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		people = append(people, map[string]string{"object": "user", "id": id})
	}
	return map[string]any{"people": people}
}

// Date 日期属性，start 为 YYYY-MM-DD
func Date(start string) map[string]any {
	return map[string]any{"date": map[string]string{"start": start}}
}

// Select 单选属性
func Select(name string) map[string]any {
	return map[string]any{"select": map[string]string{"name": name}}
}
