package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Listen 打开网关连接并阻塞到 ctx 结束；心跳、断线重连与会话恢复由 discordgo 负责。
// 每条新消息在 discordgo 的事件 goroutine 中回调 onMessage
func (c *Client) Listen(ctx context.Context, onMessage func(context.Context, *discordgo.Message)) error {
	remove := c.session.AddHandler(messageHandler(ctx, onMessage))
	defer remove()
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("discord gateway open: %w", err)
	}
	<-ctx.Done()
	return c.session.Close()
}

func messageHandler(ctx context.Context, onMessage func(context.Context, *discordgo.Message)) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m == nil || m.Message == nil {
			return
		}
		onMessage(ctx, m.Message)
	}
}
