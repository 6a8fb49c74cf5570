package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application (e.g., the record detail view).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换时调用 Dispose 释放资源
//
// 实现此接口的场景会在以下时机被调用：
//   - 重新加载（Reload）时旧场景被丢弃
//   - 应用关闭
type Disposable interface {
	Dispose()
}
