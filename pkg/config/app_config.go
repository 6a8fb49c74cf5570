package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FieldCodes kintone 记录字段代码
// 与 kintone 应用的字段设置保持一致，可在 YAML 中覆盖
type FieldCodes struct {
	BaseImage         string `yaml:"baseImage"`         // 背景图片（附件，0~1 个）
	PartImages        string `yaml:"partImages"`        // 部件图片（附件，0~N 个）
	BGM               string `yaml:"bgm"`               // 背景音乐（附件，0~1 个）
	TargetCoordinates string `yaml:"targetCoordinates"` // 目标坐标 JSON（文本）
	DifficultyWeight  string `yaml:"difficultyWeight"`  // 难度系数（数值）
	Status            string `yaml:"status"`            // 游戏状态（下拉）
	ResultImage       string `yaml:"resultImage"`       // 结果图片（附件，写回）
	PlayLog           string `yaml:"playLog"`           // 放置日志 JSON（写回）
	Score             string `yaml:"score"`             // 自动评分（写回）
}

// KintoneConfig kintone 连接配置
// 凭据只从环境变量读取，不写入 YAML
type KintoneConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	AppID    string `yaml:"appId"`
	APIToken string `yaml:"-"`
	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AppConfig 应用配置，对应 data/config/fukuwarai.yaml
type AppConfig struct {
	Kintone       KintoneConfig `yaml:"kintone"`
	Fields        FieldCodes    `yaml:"fields"`
	StatusPlaying string        `yaml:"statusPlaying"` // 自动打开游戏面板的状态值
	Window        WindowConfig  `yaml:"window"`
	Language      string        `yaml:"language"` // ja / en
	FontPath      string        `yaml:"fontPath"` // 可选的 TTF/OTF 字体，日文界面需要
}

// Environment variable names（与 kintone 部署脚本一致）
const (
	EnvBaseURL  = "KINTONE_BASE_URL"
	EnvAPIToken = "KINTONE_API_TOKEN"
	EnvUsername = "KINTONE_USERNAME"
	EnvPassword = "KINTONE_PASSWORD"
	EnvAppID    = "KINTONE_APP_ID"
)

// DefaultAppConfig 返回默认配置
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Fields: FieldCodes{
			BaseImage:         "img_base",
			PartImages:        "img_parts",
			BGM:               "bgm_file",
			TargetCoordinates: "target_coordinates",
			DifficultyWeight:  "difficulty_weight",
			Status:            "game_status",
			ResultImage:       "result_image",
			PlayLog:           "play_log_json",
			Score:             "score_auto",
		},
		StatusPlaying: "プレイ中",
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  "Fukuwarai",
		},
		Language: "ja",
	}
}

// ParseAppConfig 解析 YAML 配置，未出现的字段保留默认值
func ParseAppConfig(data []byte) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return cfg, nil
}

// LoadAppConfig 从文件加载 YAML 配置
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config %s: %w", path, err)
	}
	return ParseAppConfig(data)
}

// ApplyEnv 用环境变量覆盖 kintone 连接配置
//
// 如果 envFile 存在则先加载（已存在的环境变量优先）。envFile 不存在不是错误。
func (c *AppConfig) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.Kintone.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAppID)); v != "" {
		c.Kintone.AppID = v
	}
	c.Kintone.APIToken = strings.TrimSpace(os.Getenv(EnvAPIToken))
	c.Kintone.Username = os.Getenv(EnvUsername)
	c.Kintone.Password = os.Getenv(EnvPassword)
	return nil
}

// Validate 检查启动所需的配置是否齐全
func (c *AppConfig) Validate() error {
	if c.Kintone.BaseURL == "" {
		return fmt.Errorf("%s is not set", EnvBaseURL)
	}
	if c.Kintone.AppID == "" {
		return fmt.Errorf("%s is not set", EnvAppID)
	}
	if _, err := strconv.Atoi(c.Kintone.AppID); err != nil {
		return fmt.Errorf("invalid app id %q: %w", c.Kintone.AppID, err)
	}
	if c.Kintone.APIToken == "" && (c.Kintone.Username == "" || c.Kintone.Password == "") {
		return fmt.Errorf("%s or %s/%s must be set", EnvAPIToken, EnvUsername, EnvPassword)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
