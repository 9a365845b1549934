package handler

import (
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// options 命令选项按名称索引
type options map[string]any

func optionsOf(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	o := make(options, len(opts))
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		o[opt.Name] = opt.Value
	}
	return o
}

// String 缺失或类型不符时返回空串
func (o options) String(name string) string {
	s, _ := o[name].(string)
	return s
}

// Float 整数与小数都按 float64 读出
func (o options) Float(name string) float64 {
	switch v := o[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// parseMessageRef 支持纯消息 ID 或 https://discord.com/channels/<guild>/<channel>/<message> 链接；
// 纯 ID 默认属于当前频道
func parseMessageRef(ref, channelID string) (string, string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", false
	}
	if !strings.Contains(ref, "/") {
		if !isSnowflake(ref) {
			return "", "", false
		}
		return channelID, ref, channelID != ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 || parts[0] != "channels" || !isSnowflake(parts[2]) || !isSnowflake(parts[3]) {
		return "", "", false
	}
	return parts[2], parts[3], true
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
