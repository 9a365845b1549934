// Package google 封装 Sheets 与 Calendar 客户端，鉴权统一走服务账号。
package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"boothbot/internal/model"
)

// Scopes 服务账号需要的全部授权范围
var Scopes = []string{sheets.SpreadsheetsReadonlyScope, calendar.CalendarScope}

// ServiceAccountOption 读取服务账号密钥文件，返回两个客户端共用的鉴权选项
func ServiceAccountOption(ctx context.Context, keyFile string) (option.ClientOption, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account %s: %w", keyFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, key, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	return option.WithCredentials(creds), nil
}

// providerError 把 googleapi.Error 转成带原始响应的 ProviderError
func providerError(api string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := gerr.Body
		if body == "" {
			body = gerr.Message
		}
		return &model.ProviderError{Provider: api, StatusCode: gerr.Code, Body: body}
	}
	return fmt.Errorf("%s: %w", api, err)
}
