package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	disposed     int
	deltaTime    float64
	onUpdate     func()
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
	if m.onUpdate != nil {
		m.onUpdate()
	}
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// Dispose records that the scene was discarded.
func (m *MockScene) Dispose() {
	m.disposed++
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
	// 没有场景时 Update/Draw 不应崩溃
	sm.Update(0.016)
	sm.Draw(nil)
}

// TestSceneManagerUpdateAndDraw verifies delegation to the current scene.
func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)

	sm.Update(0.016)
	sm.Draw(nil)

	if !scene.updateCalled || scene.deltaTime != 0.016 {
		t.Errorf("Update not delegated: called=%v dt=%v", scene.updateCalled, scene.deltaTime)
	}
	if !scene.drawCalled {
		t.Error("Draw not delegated")
	}
}

// TestSceneManagerSwitchDisposes 切换场景时释放旧场景
func TestSceneManagerSwitchDisposes(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	if first.disposed != 0 {
		t.Error("switching to the same scene must not dispose it")
	}

	sm.SwitchTo(second)
	if first.disposed != 1 {
		t.Errorf("first.disposed = %d, want 1", first.disposed)
	}
	if sm.GetCurrentScene() != second {
		t.Error("current scene not switched")
	}
}

// TestSceneManagerReloadFromUpdate 在场景 Update 中请求的重载在帧末执行且只执行一次
func TestSceneManagerReloadFromUpdate(t *testing.T) {
	sm := NewSceneManager()

	built := 0
	var scenes []*MockScene
	sm.SetSceneFactory(func() Scene {
		built++
		s := &MockScene{}
		scenes = append(scenes, s)
		return s
	})

	current := &MockScene{}
	current.onUpdate = func() {
		sm.RequestReload()
		sm.RequestReload()
	}
	sm.SwitchTo(current)

	sm.Update(0.016)

	if built != 1 {
		t.Fatalf("factory called %d times, want 1", built)
	}
	if current.disposed != 1 {
		t.Error("old scene should be disposed")
	}
	if sm.GetCurrentScene() != scenes[0] {
		t.Error("new scene should be current")
	}
	if sm.ReloadCount() != 1 {
		t.Errorf("ReloadCount() = %d, want 1", sm.ReloadCount())
	}

	// 下一帧不再重载
	sm.Update(0.016)
	if built != 1 {
		t.Errorf("factory called again: %d", built)
	}
}

func TestSceneManagerReloadWithoutFactory(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)

	sm.RequestReload()
	sm.Update(0.016)

	if sm.GetCurrentScene() != scene {
		t.Error("scene should stay when no factory is set")
	}
}
