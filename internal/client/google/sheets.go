package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient 只读取单个区间的值
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
	timeout       time.Duration
}

// NewSheetsClient timeout 为单次请求的上限，0 表示不限
func NewSheetsClient(ctx context.Context, spreadsheetID, readRange string, timeout time.Duration, opts ...option.ClientOption) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsClient{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange, timeout: timeout}, nil
}

// Rows 拉取配置区间的全部行（含表头），单元格统一转为字符串
func (c *SheetsClient) Rows(ctx context.Context) ([][]string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, providerError("sheets", err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if s, ok := cell.(string); ok {
				rows[i][j] = s
			} else {
				rows[i][j] = fmt.Sprint(cell)
			}
		}
	}
	return rows, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
