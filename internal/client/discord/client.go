// Package discord 基于 discordgo 的 REST 与网关封装，只暴露机器人用到的几个操作。
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"boothbot/internal/model"
)

// Config Discord 客户端配置
type Config struct {
	BotToken string
	AppID    string
	Timeout  time.Duration
	// HTTPClient 为空时按 Timeout 新建
	HTTPClient *http.Client
}

// Client Discord 客户端（机器人 REST + 交互 webhook + 网关）
type Client struct {
	appID   string
	session *discordgo.Session
}

// NewClient 创建 Discord 客户端，不建立网关连接
func NewClient(cfg Config) (*Client, error) {
	s, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	if cfg.HTTPClient != nil {
		s.Client = cfg.HTTPClient
	} else {
		s.Client = &http.Client{Timeout: cfg.Timeout}
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	return &Client{appID: cfg.AppID, session: s}, nil
}

// providerError 非 2xx 响应转为 ProviderError，保留原始 body
func providerError(err error) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return &model.ProviderError{Provider: "discord", StatusCode: rerr.Response.StatusCode, Body: string(rerr.ResponseBody)}
	}
	return err
}

// interaction 交互 webhook 接口只需要应用 ID 与交互 token
func (c *Client) interaction(token string) *discordgo.Interaction {
	return &discordgo.Interaction{AppID: c.appID, Token: token}
}

// LookupHandle 返回提及 ID 对应的用户名；用户不存在时返回 model.ErrUserNotFound
func (c *Client) LookupHandle(ctx context.Context, userID string) (string, error) {
	u, err := c.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		err = providerError(err)
		var perr *model.ProviderError
		if errors.As(err, &perr) && perr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", model.ErrUserNotFound, userID)
		}
		return "", err
	}
	return u.Username, nil
}

// GetMessage 读取频道中的一条消息
func (c *Client) GetMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	m, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, providerError(err)
	}
	return m, nil
}

// StartThread 在频道中新建公开讨论串
func (c *Client) StartThread(ctx context.Context, channelID, name string, autoArchiveMinutes int) (*discordgo.Channel, error) {
	ch, err := c.session.ThreadStart(channelID, name, discordgo.ChannelTypeGuildPublicThread, autoArchiveMinutes, discordgo.WithContext(ctx))
	if err != nil {
		return nil, providerError(err)
	}
	return ch, nil
}

// SendMessage 向频道或讨论串发消息
func (c *Client) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return providerError(err)
}

// EditOriginalResponse 替换延迟响应的内容
func (c *Client) EditOriginalResponse(ctx context.Context, interactionToken, content string) error {
	_, err := c.session.InteractionResponseEdit(c.interaction(interactionToken), &discordgo.WebhookEdit{Content: &content}, discordgo.WithContext(ctx))
	return providerError(err)
}

// DeleteOriginalResponse 删除延迟响应（"思考中"占位消息）
func (c *Client) DeleteOriginalResponse(ctx context.Context, interactionToken string) error {
	return providerError(c.session.InteractionResponseDelete(c.interaction(interactionToken), discordgo.WithContext(ctx)))
}

// CreateFollowup 追加一条跟进消息，可设为仅调用者可见
func (c *Client) CreateFollowup(ctx context.Context, interactionToken, content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := c.session.FollowupMessageCreate(c.interaction(interactionToken), true, params, discordgo.WithContext(ctx))
	return providerError(err)
}

// OverwriteCommands 整体覆盖命令定义；guildID 为空时注册为全局命令
func (c *Client) OverwriteCommands(ctx context.Context, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	synced, err := c.session.ApplicationCommandBulkOverwrite(c.appID, guildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		return nil, providerError(err)
	}
	return synced, nil
}
