package service

import (
	"regexp"
	"strings"
)

// <@123> 或 <@!123>（旧版昵称提及）
var mentionRE = regexp.MustCompile(`^<@!?(\d+)>$`)

// AssigneeToken 解析后的指派对象：要么是平台提及的数字 ID，要么是原样的用户名
type AssigneeToken struct {
	MentionID string
	Handle    string
}

func (t AssigneeToken) IsMention() bool {
	return t.MentionID != ""
}

// ParseAssignee 是唯一检查提及语法的地方
func ParseAssignee(raw string) AssigneeToken {
	raw = strings.TrimSpace(raw)
	if m := mentionRE.FindStringSubmatch(raw); m != nil {
		return AssigneeToken{MentionID: m[1]}
	}
	return AssigneeToken{Handle: raw}
}
