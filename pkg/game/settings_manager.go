package game

import (
	"fmt"
	"log"

	"github.com/decker502/fukuwarai/pkg/config"
	"gopkg.in/yaml.v3"
)

// Settings 本机偏好，所有记录共用
type Settings struct {
	MusicVolume float64 `yaml:"musicVolume"` // 0.0 ~ 1.0
	Fullscreen  bool    `yaml:"fullscreen"`  // 启动时进入全屏
}

// DefaultSettings 返回默认偏好
func DefaultSettings() Settings {
	return Settings{MusicVolume: config.DefaultMusicVolume}
}

// SettingsStore 偏好的持久化后端
// *gdata.Manager 实现了此接口
type SettingsStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

const (
	settingsObject   = "preferences"
	settingsProperty = "local"
)

// SettingsManager 读写本机偏好
//
// store 为 nil 时只在内存中保存（存储目录不可用时的降级模式）。
type SettingsManager struct {
	store    SettingsStore
	settings Settings
}

// NewSettingsManager 创建设置管理器并读取已保存的偏好
// 读取失败时记录警告并使用默认值
func NewSettingsManager(store SettingsStore) *SettingsManager {
	sm := &SettingsManager{store: store, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 重新读取偏好，缺失的字段保留默认值
//
// 返回：
//   - error: 数据存在但无法读取或解析
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	sm.settings = loaded
	return nil
}

// Save 持久化当前偏好，降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[SettingsManager] Saved (volume %.2f, fullscreen %t)", sm.settings.MusicVolume, sm.settings.Fullscreen)
	return nil
}

// Settings 当前偏好的副本
func (sm *SettingsManager) Settings() Settings {
	return sm.settings
}

// SetMusicVolume 修改音量（限制在 0~1），需要 Save 才会持久化
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetFullscreen 修改全屏偏好，需要 Save 才会持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	return max(0, min(1, volume))
}
