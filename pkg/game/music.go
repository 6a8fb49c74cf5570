package game

import "log"

// MusicPlayer 可循环播放的音乐
// *audio.Player 满足此接口
type MusicPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
}

// MusicHandle 会话拥有的背景音乐句柄
//
// 所有操作都是幂等的，nil 句柄上的调用什么也不做（没有音乐附件时会话持有 nil）。
// Stop 是终态：停止后 Play 不再生效。
type MusicHandle struct {
	player  MusicPlayer
	stopped bool
}

// NewMusicHandle 包装播放器，player 为 nil 时返回 nil
func NewMusicHandle(player MusicPlayer) *MusicHandle {
	if player == nil {
		return nil
	}
	return &MusicHandle{player: player}
}

// Play 开始或从暂停位置继续播放
func (h *MusicHandle) Play() {
	if h == nil || h.stopped || h.player.IsPlaying() {
		return
	}
	h.player.Play()
}

// Pause 暂停并保留播放位置
func (h *MusicHandle) Pause() {
	if h == nil || !h.player.IsPlaying() {
		return
	}
	h.player.Pause()
}

// Stop 停止播放并回到开头，之后句柄不再可播放
func (h *MusicHandle) Stop() {
	if h == nil || h.stopped {
		return
	}
	h.stopped = true
	h.player.Pause()
	if err := h.player.Rewind(); err != nil {
		log.Printf("[Music] Warning: failed to rewind: %v", err)
	}
}

// SetVolume 设置音量 (0.0 ~ 1.0)
func (h *MusicHandle) SetVolume(volume float64) {
	if h == nil {
		return
	}
	h.player.SetVolume(clampVolume(volume))
}

// IsPlaying 是否正在播放
func (h *MusicHandle) IsPlaying() bool {
	return h != nil && h.player.IsPlaying()
}

// Stopped 是否已停止（终态）
func (h *MusicHandle) Stopped() bool {
	return h != nil && h.stopped
}
