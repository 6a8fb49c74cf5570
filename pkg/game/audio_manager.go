package game

import (
	"log"
)

// AudioManager 音频管理器
// 职责：
//   - 为会话创建背景音乐句柄（解码交给 ResourceManager）
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 同一时刻只保留一个当前音乐
type AudioManager struct {
	resourceManager *ResourceManager // 资源管理器（用于解码音频）
	settingsManager *SettingsManager // 设置管理器（用于读写音量设置），可为 nil
	currentMusic    *MusicHandle     // 当前会话的背景音乐
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于解码音频）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// OpenMusic 为会话创建背景音乐句柄（未开始播放）
// 之前的音乐会被停止。没有音乐或解码失败时返回 nil（静音）。
//
// 参数：
//   - asset: 已下载的音乐附件，可为 nil
//
// 返回：
//   - *MusicHandle: 音乐句柄，可能为 nil
func (am *AudioManager) OpenMusic(asset *ResolvedAsset) *MusicHandle {
	am.StopMusic()

	if asset == nil {
		return nil
	}
	if am.resourceManager == nil {
		return nil
	}

	player, err := am.resourceManager.NewMusicPlayer(asset)
	if err != nil {
		log.Printf("[AudioManager] Warning: %v (continuing without music)", err)
		return nil
	}

	handle := NewMusicHandle(player)
	handle.SetVolume(am.GetMusicVolume())
	am.currentMusic = handle

	log.Printf("[AudioManager] Music ready: %s (volume: %.2f)", asset.Name, am.GetMusicVolume())
	return handle
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Stop()
		am.currentMusic = nil
	}
}

// SetMusicVolume 设置音乐音量
// 此方法立即应用到当前播放的背景音乐（仅修改内存，需调用 SaveSettings 持久化）
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	am.currentMusic.SetVolume(volume)
}

// GetMusicVolume 获取当前音乐音量
func (am *AudioManager) GetMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.Settings().MusicVolume
	}
	return DefaultSettings().MusicVolume
}

// SaveSettings 持久化音量设置
func (am *AudioManager) SaveSettings() {
	if am.settingsManager == nil {
		return
	}
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: failed to save settings: %v", err)
	}
}
