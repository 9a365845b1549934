package service

import (
	"context"
	"log/slog"
	"strings"

	"boothbot/internal/model"
)

// RowSource 表格数据源，返回含表头的全部行
type RowSource interface {
	Rows(ctx context.Context) ([][]string, error)
}

// Directory 聊天用户名 -> 外部身份键（邮箱）的只读快照
type Directory struct {
	byHandle map[string]string
}

// NewDirectory 由条目构建快照；用户名重复时后出现的覆盖先出现的
func NewDirectory(entries []model.DirectoryEntry) *Directory {
	d := &Directory{byHandle: make(map[string]string, len(entries))}
	for _, e := range entries {
		d.byHandle[e.ChatHandle] = e.DirectoryKey
	}
	return d
}

// Lookup 按用户名查找身份键
func (d *Directory) Lookup(handle string) (string, bool) {
	if d == nil {
		return "", false
	}
	key, ok := d.byHandle[strings.TrimSpace(handle)]
	return key, ok
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byHandle)
}

// ParseDirectoryRows 跳过表头；列 0 为身份键，列 1 为用户名，两列都需非空，否则记告警并跳过
func ParseDirectoryRows(rows [][]string, logger *slog.Logger) []model.DirectoryEntry {
	if logger == nil {
		logger = slog.Default()
	}
	var entries []model.DirectoryEntry
	seen := make(map[string]int)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		var key, handle string
		if len(row) >= 2 {
			key = strings.TrimSpace(row[0])
			handle = strings.TrimSpace(row[1])
		}
		if key == "" || handle == "" {
			logger.Warn("directory row skipped: fewer than two populated cells", "row", i+1, "cells", row)
			continue
		}
		if prev, dup := seen[handle]; dup {
			logger.Debug("directory handle repeated, later row wins", "handle", handle, "previous_row", prev, "row", i+1)
		}
		seen[handle] = i + 1
		entries = append(entries, model.DirectoryEntry{DirectoryKey: key, ChatHandle: handle})
	}
	return entries
}

// LoadDirectory 启动时加载目录；拉取失败时降级为空目录，服务照常启动
func LoadDirectory(ctx context.Context, src RowSource, opts LoadOptions, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	if src == nil {
		logger.Warn("directory source not configured, running without directory")
		return NewDirectory(nil)
	}
	rows, err := withRetry(ctx, opts, src.Rows)
	if err != nil {
		logger.Error("load directory failed, running without directory", "error", err)
		return NewDirectory(nil)
	}
	dir := NewDirectory(ParseDirectoryRows(rows, logger))
	logger.Info("directory loaded", "entries", dir.Len())
	return dir
}
