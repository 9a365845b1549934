package model

// DirectoryEntry 表格中的一行：外部身份键（邮箱）与聊天用户名
type DirectoryEntry struct {
	DirectoryKey string `json:"directory_key"`
	ChatHandle   string `json:"chat_handle"`
}

// Notion 用户类型
const (
	IdentityKindPerson = "person"
	IdentityKindBot    = "bot"
)

// WorkspaceIdentity Notion 工作区成员
type WorkspaceIdentity struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Kind        string `json:"kind"`
}

// IsHuman 是否为真人账号（排除机器人/集成）
func (w WorkspaceIdentity) IsHuman() bool {
	return w.Kind == IdentityKindPerson
}

// IdentityPage 成员列表的一页
type IdentityPage struct {
	Members    []WorkspaceIdentity
	HasMore    bool
	NextCursor string
}
