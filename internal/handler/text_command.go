package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"boothbot/internal/model"
)

const (
	textCommandPrefix = "!createevent"
	textCommandUsage  = "❌ Usage: !createevent \"Title\" YYYY-MM-DD HH:MM duration_in_hours"
)

// ChannelPoster 向频道发消息（由 discord.Client 实现）
type ChannelPoster interface {
	SendMessage(ctx context.Context, channelID, content string) error
}

// TextCommandHandler 处理网关收到的 !createevent 文本命令
type TextCommandHandler struct {
	svc    CommandService
	poster ChannelPoster
	logger *slog.Logger
}

// NewTextCommandHandler 创建文本命令处理器
func NewTextCommandHandler(svc CommandService, poster ChannelPoster, logger *slog.Logger) *TextCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextCommandHandler{svc: svc, poster: poster, logger: logger}
}

// Handle 机器人消息与非命令消息直接忽略
func (h *TextCommandHandler) Handle(ctx context.Context, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	content := strings.TrimSpace(m.Content)
	if content != textCommandPrefix && !strings.HasPrefix(content, textCommandPrefix+" ") {
		return
	}
	commandID := uuid.NewString()
	log := h.logger.With("command_id", commandID, "command", "createevent", "user", m.Author.Username)

	raw, err := parseEventArgs(strings.TrimPrefix(content, textCommandPrefix))
	if err != nil {
		log.Info("text command rejected", "error", err)
		h.post(ctx, log, m.ChannelID, textCommandUsage)
		return
	}
	raw.CommandID = commandID
	raw.ChannelID = m.ChannelID

	h.post(ctx, log, m.ChannelID, "⏳ Creating event...")
	reply := h.svc.HandleEvent(ctx, raw)
	// 频道消息无法仅自己可见，成功与失败都直接发出
	h.post(ctx, log, m.ChannelID, reply.Content)
}

func (h *TextCommandHandler) post(ctx context.Context, log *slog.Logger, channelID, content string) {
	if err := h.poster.SendMessage(ctx, channelID, content); err != nil {
		log.Error("send channel message failed", "error", err)
	}
}

var errEventArgs = errors.New("expected: \"Title\" date time duration")

// parseEventArgs 解析 "Title" YYYY-MM-DD HH:MM duration；标题含空格时需加双引号
func parseEventArgs(s string) (model.RawEventCommand, error) {
	args, err := splitArgs(s)
	if err != nil {
		return model.RawEventCommand{}, err
	}
	if len(args) != 4 {
		return model.RawEventCommand{}, errEventArgs
	}
	duration, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return model.RawEventCommand{}, errEventArgs
	}
	return model.RawEventCommand{
		Title:    args[0],
		Date:     args[1],
		Time:     args[2],
		Duration: duration,
	}, nil
}

// splitArgs 按空白切分，双引号内的空白保留
func splitArgs(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args, nil
}
