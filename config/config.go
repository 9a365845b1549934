package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用总配置，按环境加载
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Discord DiscordConfig `yaml:"discord"`
	Notion  NotionConfig  `yaml:"notion"`
	Google  GoogleConfig  `yaml:"google"`
	App     AppConfig     `yaml:"app"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	AppID     string `yaml:"app_id"`
	PublicKey string `yaml:"public_key"` // 交互签名校验用的 hex 公钥
	GuildID   string `yaml:"guild_id"`
	// Gateway 开启后连接网关以接收 !createevent 文本命令
	Gateway bool `yaml:"gateway"`
}

// NotionProperties 任务数据库中各属性的名称
type NotionProperties struct {
	Title       string `yaml:"title"`
	Assignee    string `yaml:"assignee"`
	Due         string `yaml:"due"`
	Description string `yaml:"description"`
	Project     string `yaml:"project"`
	Type        string `yaml:"type"`
	Priority    string `yaml:"priority"`
}

type NotionConfig struct {
	Token      string           `yaml:"token"`
	DatabaseID string           `yaml:"database_id"`
	BaseURL    string           `yaml:"base_url"`
	Properties NotionProperties `yaml:"properties"`
	// TaskTypes 允许的任务类型；为空时不限制
	TaskTypes []string `yaml:"task_types"`
}

type GoogleConfig struct {
	ServiceAccountFile string `yaml:"service_account_file"`
	CalendarID         string `yaml:"calendar_id"`
	SpreadsheetID      string `yaml:"spreadsheet_id"`
	DirectoryRange     string `yaml:"directory_range"` // 如 Directory!A:B
}

type AppConfig struct {
	Timezone     string        `yaml:"timezone"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	LoadAttempts int           `yaml:"load_attempts"` // 目录/成员加载的最大尝试次数
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Load 根据环境变量 APP_ENV 加载对应配置文件
// 支持: local, dev, prod，默认 local；文件不存在时完全依赖环境变量
func Load() (*Config, error) {
	path := fmt.Sprintf("config/%s.yaml", Env())
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	// 允许环境变量覆盖敏感配置
	overrideFromEnv(cfg)
	return cfg, nil
}

// Env 当前运行环境
func Env() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		return "local"
	}
	return env
}

// Default 默认配置，YAML 中出现的字段会覆盖它
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Mode: "release"},
		Notion: NotionConfig{
			BaseURL: "https://api.notion.com/v1",
			Properties: NotionProperties{
				Title:       "Name",
				Assignee:    "Assignee",
				Due:         "Due",
				Description: "Description",
				Project:     "Project",
				Type:        "Type",
				Priority:    "Priority",
			},
		},
		Google: GoogleConfig{
			DirectoryRange: "Directory!A:B",
		},
		App: AppConfig{
			Timezone:     "Asia/Ho_Chi_Minh",
			HTTPTimeout:  30 * time.Second,
			LoadAttempts: 3,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func overrideFromEnv(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DISCORD_BOT_TOKEN"); v != "" {
		c.Discord.BotToken = v
	}
	if v := os.Getenv("DISCORD_APP_ID"); v != "" {
		c.Discord.AppID = v
	}
	if v := os.Getenv("DISCORD_PUBLIC_KEY"); v != "" {
		c.Discord.PublicKey = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		c.Discord.GuildID = v
	}
	if v := os.Getenv("DISCORD_GATEWAY"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Discord.Gateway = on
		}
	}
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		c.Notion.Token = v
	}
	if v := os.Getenv("NOTION_DATABASE_ID"); v != "" {
		c.Notion.DatabaseID = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"); v != "" {
		c.Google.ServiceAccountFile = v
	}
	if v := os.Getenv("GOOGLE_CALENDAR_ID"); v != "" {
		c.Google.CalendarID = v
	}
	if v := os.Getenv("DIRECTORY_SPREADSHEET_ID"); v != "" {
		c.Google.SpreadsheetID = v
	}
	if v := os.Getenv("DIRECTORY_RANGE"); v != "" {
		c.Google.DirectoryRange = v
	}
	if v := os.Getenv("TZ_NAME"); v != "" {
		c.App.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate 检查启动必需的配置项
func (c *Config) Validate() error {
	var missing []string
	if c.Discord.BotToken == "" {
		missing = append(missing, "DISCORD_BOT_TOKEN")
	}
	if c.Discord.AppID == "" {
		missing = append(missing, "DISCORD_APP_ID")
	}
	if c.Discord.PublicKey == "" {
		missing = append(missing, "DISCORD_PUBLIC_KEY")
	}
	if c.Notion.Token == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.Notion.DatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %v", missing)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location 配置的时区，非法时回退到本地时区
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
