package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"boothbot/internal/model"
)

// MemberLister 分页列出工作区成员
type MemberLister interface {
	ListUsers(ctx context.Context, cursor string) (model.IdentityPage, error)
}

// IdentityTable 小写邮箱/显示名 -> 工作区成员 ID 的只读快照
type IdentityTable struct {
	byKey map[string]string
	// ambiguous 被多个不同成员占用的键，不参与解析
	ambiguous map[string]struct{}
}

// NewIdentityTable 只登记真人成员；同一 ID 可由邮箱或显示名命中。
// 同一个键对应多个不同成员时（如两人都叫 Alex）该键作废，不按加载顺序取其一
func NewIdentityTable(members []model.WorkspaceIdentity) *IdentityTable {
	t := &IdentityTable{byKey: make(map[string]string), ambiguous: make(map[string]struct{})}
	for _, m := range members {
		if !m.IsHuman() || m.ID == "" {
			continue
		}
		t.add(normalizeKey(m.Email), m.ID)
		t.add(normalizeKey(m.DisplayName), m.ID)
	}
	return t
}

func (t *IdentityTable) add(key, id string) {
	if key == "" {
		return
	}
	if _, ok := t.ambiguous[key]; ok {
		return
	}
	if prev, ok := t.byKey[key]; ok && prev != id {
		delete(t.byKey, key)
		t.ambiguous[key] = struct{}{}
		return
	}
	t.byKey[key] = id
}

// Ambiguous 返回被作废的键，按字典序
func (t *IdentityTable) Ambiguous() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.ambiguous))
	for k := range t.ambiguous {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve 大小写不敏感查找；未命中不是错误，表示任务不分配
func (t *IdentityTable) Resolve(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	id, ok := t.byKey[normalizeKey(key)]
	return id, ok
}

func (t *IdentityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

// ResolveAssignee 用户名 -> 目录身份键 -> 成员 ID；任一环断开即返回未分配
func ResolveAssignee(dir *Directory, ids *IdentityTable, handle string) (string, bool) {
	key, ok := dir.Lookup(handle)
	if !ok {
		return "", false
	}
	return ids.Resolve(key)
}

// LoadIdentities 遍历全部分页加载成员；任一页失败则降级为空表
func LoadIdentities(ctx context.Context, lister MemberLister, opts LoadOptions, logger *slog.Logger) *IdentityTable {
	if logger == nil {
		logger = slog.Default()
	}
	if lister == nil {
		logger.Warn("identity source not configured, tasks will be unassigned")
		return NewIdentityTable(nil)
	}
	var members []model.WorkspaceIdentity
	cursor := ""
	for {
		page, err := withRetry(ctx, opts, func(ctx context.Context) (model.IdentityPage, error) {
			return lister.ListUsers(ctx, cursor)
		})
		if err != nil {
			logger.Error("load workspace identities failed, tasks will be unassigned", "error", err)
			return NewIdentityTable(nil)
		}
		members = append(members, page.Members...)
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	table := NewIdentityTable(members)
	for _, key := range table.Ambiguous() {
		logger.Warn("identity key shared by several members, ignored", "key", key)
	}
	logger.Info("workspace identities loaded", "members", len(members), "keys", table.Len())
	return table
}
