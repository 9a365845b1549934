package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boothbot/internal/model"
)

// CommandService 命令处理（由 service.Orchestrator 实现）
type CommandService interface {
	HandleTask(ctx context.Context, raw model.RawTaskCommand) model.Reply
	HandleEvent(ctx context.Context, raw model.RawEventCommand) model.Reply
}

// Responder 交互回复与消息读取（由 discord.Client 实现）
type Responder interface {
	EditOriginalResponse(ctx context.Context, interactionToken, content string) error
	DeleteOriginalResponse(ctx context.Context, interactionToken string) error
	CreateFollowup(ctx context.Context, interactionToken, content string, ephemeral bool) error
	GetMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error)
}

// InteractionHandler 接收 Discord 交互：先同步确认，再异步处理并回写结果
type InteractionHandler struct {
	svc     CommandService
	discord Responder
	logger  *slog.Logger
	async   func(func())
}

// NewInteractionHandler 创建交互处理器
func NewInteractionHandler(svc CommandService, responder Responder, logger *slog.Logger) *InteractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionHandler{
		svc:     svc,
		discord: responder,
		logger:  logger,
		async:   func(f func()) { go f() },
	}
}

// Handle 交互入口
// POST /interactions
func (h *InteractionHandler) Handle(c *gin.Context) {
	var in discordgo.Interaction
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	switch in.Type {
	case discordgo.InteractionPing:
		c.JSON(http.StatusOK, discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	case discordgo.InteractionApplicationCommand:
		h.command(c, &in)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported interaction type %d", in.Type)})
	}
}

func (h *InteractionHandler) command(c *gin.Context, in *discordgo.Interaction) {
	data := in.ApplicationCommandData()
	if data.Name != commandTask && data.Name != commandEvent {
		c.JSON(http.StatusOK, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: "❌ Unknown command: " + data.Name, Flags: discordgo.MessageFlagsEphemeral},
		})
		return
	}

	// 处理时间可能超过交互的 3 秒响应期限，先回延迟确认
	ctx := context.WithoutCancel(c.Request.Context())
	commandID := uuid.NewString()
	h.async(func() { h.run(ctx, commandID, in, data) })
	c.JSON(http.StatusOK, discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource})
}

// invoker 服务器内调用时用户在 Member 中，私信时在 User 中
func invoker(in *discordgo.Interaction) *discordgo.User {
	if in.Member != nil && in.Member.User != nil {
		return in.Member.User
	}
	return in.User
}

func (h *InteractionHandler) run(ctx context.Context, commandID string, in *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) {
	log := h.logger.With("command_id", commandID, "command", data.Name, "interaction_id", in.ID)
	if u := invoker(in); u != nil {
		log = log.With("user", u.Username)
	}
	// 延迟确认后必须有一条回写，否则用户一直看到"思考中"
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic recovered", "panic", r)
			h.deliver(ctx, log, in.Token, model.FailureReply())
		}
	}()
	log.Info("command received")

	var reply model.Reply
	switch data.Name {
	case commandTask:
		raw, err := h.taskCommand(ctx, commandID, in, data)
		if err != nil {
			log.Warn("read replied message failed", "error", err)
			reply = model.Reply{Content: "❌ Could not read the replied message: " + err.Error(), Ephemeral: true}
			break
		}
		reply = h.svc.HandleTask(ctx, raw)
	case commandEvent:
		reply = h.svc.HandleEvent(ctx, eventCommand(commandID, in, data))
	}
	h.deliver(ctx, log, in.Token, reply)
}

func (h *InteractionHandler) taskCommand(ctx context.Context, commandID string, in *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) (model.RawTaskCommand, error) {
	opts := optionsOf(data.Options)
	raw := model.RawTaskCommand{
		CommandID:   commandID,
		Title:       opts.String("title"),
		Assign:      opts.String("assign"),
		Project:     opts.String("project"),
		Type:        opts.String("type"),
		Priority:    opts.String("priority"),
		Description: opts.String("description"),
		Due:         opts.String("due"),
	}
	ref := opts.String("reply_to")
	if ref == "" {
		return raw, nil
	}
	channelID, messageID, ok := parseMessageRef(ref, in.ChannelID)
	if !ok {
		return raw, fmt.Errorf("%w: invalid message reference %q", model.ErrInvalidParams, ref)
	}
	msg, err := h.discord.GetMessage(ctx, channelID, messageID)
	if err != nil {
		return raw, err
	}
	raw.ReplyText = msg.Content
	return raw, nil
}

func eventCommand(commandID string, in *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) model.RawEventCommand {
	opts := optionsOf(data.Options)
	return model.RawEventCommand{
		CommandID: commandID,
		ChannelID: in.ChannelID,
		Title:     opts.String("title"),
		Date:      opts.String("date"),
		Time:      opts.String("time"),
		Duration:  opts.Float("duration"),
	}
}

// deliver 成功结果替换确认消息；失败删除确认消息并以仅自己可见的消息告知
func (h *InteractionHandler) deliver(ctx context.Context, log *slog.Logger, token string, reply model.Reply) {
	if !reply.Ephemeral {
		if err := h.discord.EditOriginalResponse(ctx, token, reply.Content); err != nil {
			log.Error("edit original response failed", "error", err)
		}
		return
	}
	if err := h.discord.DeleteOriginalResponse(ctx, token); err != nil {
		log.Warn("delete original response failed", "error", err)
	}
	if err := h.discord.CreateFollowup(ctx, token, reply.Content, true); err != nil {
		log.Error("send followup failed", "error", err)
	}
}
