package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于从头构建场景，避免 game 包依赖具体场景实现
type SceneFactory func() Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene  Scene
	sceneFactory  SceneFactory // 场景工厂函数，用于重新加载
	reloadPending bool
	reloads       int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is disposed if it implements Disposable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	disposeScene(sm.currentScene)
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// RequestReload 请求在本帧结束后丢弃当前场景并用工厂重新构建
// 可以在场景自己的 Update 中安全调用；同一帧内多次请求只重建一次
func (sm *SceneManager) RequestReload() {
	sm.reloadPending = true
}

// ReloadCount 返回已完成的重新加载次数
func (sm *SceneManager) ReloadCount() int {
	return sm.reloads
}

// reload 用工厂函数重新构建场景
func (sm *SceneManager) reload() {
	sm.reloadPending = false

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory()
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景")
		return
	}
	sm.SwitchTo(newScene)
	sm.reloads++
	log.Printf("[SceneManager] 场景已重新加载 (#%d)", sm.reloads)
}

// Update updates the currently active scene, then performs a pending reload.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	if sm.reloadPending {
		sm.reload()
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Dispose 释放当前场景（应用关闭时调用）
func (sm *SceneManager) Dispose() {
	disposeScene(sm.currentScene)
	sm.currentScene = nil
}

func disposeScene(scene Scene) {
	if d, ok := scene.(Disposable); ok {
		d.Dispose()
	}
}
