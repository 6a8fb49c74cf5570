// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput 指针输入接口（鼠标或触摸）
// 系统通过它读取输入，便于测试时注入 mock
type PointerInput interface {
	// Position 当前指针位置（屏幕坐标）
	Position() (int, int)
	// Pressed 指针是否处于按下状态
	Pressed() bool
	// JustPressed 本帧是否刚按下
	JustPressed() bool
	// JustReleased 本帧是否刚释放
	JustReleased() bool
	// WheelY 本帧滚轮的垂直偏移
	WheelY() float64
}

// EbitenPointer 基于 Ebitengine 的默认实现，同时支持鼠标和触摸
type EbitenPointer struct{}

// NewEbitenPointer 创建默认指针输入
func NewEbitenPointer() *EbitenPointer {
	return &EbitenPointer{}
}

func (EbitenPointer) Position() (int, int) { return GetPointerPosition() }
func (EbitenPointer) Pressed() bool        { return IsPointerPressed() }

func (EbitenPointer) JustPressed() bool {
	pressed, _, _ := IsPointerJustPressed()
	return pressed
}

func (EbitenPointer) JustReleased() bool {
	released, _, _ := IsPointerJustReleased()
	return released
}

func (EbitenPointer) WheelY() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

// StubPointer 可手动设置状态的指针输入（测试用）
type StubPointer struct {
	X, Y     int
	Down     bool
	Pressing bool // 本帧刚按下
	Release  bool // 本帧刚释放
	Wheel    float64
}

func (s *StubPointer) Position() (int, int) { return s.X, s.Y }
func (s *StubPointer) Pressed() bool        { return s.Down }
func (s *StubPointer) JustPressed() bool    { return s.Pressing }
func (s *StubPointer) JustReleased() bool   { return s.Release }
func (s *StubPointer) WheelY() float64      { return s.Wheel }

// Press 模拟在 (x, y) 按下
func (s *StubPointer) Press(x, y int) {
	s.X, s.Y = x, y
	s.Down, s.Pressing, s.Release = true, true, false
}

// MoveTo 模拟按住移动（或悬停）
func (s *StubPointer) MoveTo(x, y int) {
	s.X, s.Y = x, y
	s.Pressing, s.Release = false, false
}

// Up 模拟释放
func (s *StubPointer) Up() {
	s.Down, s.Pressing, s.Release = false, false, true
}

// Idle 清除单帧事件
func (s *StubPointer) Idle() {
	s.Pressing, s.Release = false, false
	s.Wheel = 0
}

// InRect 判断点是否在矩形内（含边界）
func InRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsPointerPressed 检查是否有指针按下（鼠标左键或触摸）
func IsPointerPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// 最后一次按下的触摸位置（触摸释放时没有位置信息）
var lastTouchX, lastTouchY int

// IsPointerJustReleased 检查是否刚刚释放指针（触摸或鼠标）
// 返回是否释放以及释放位置
func IsPointerJustReleased() (bool, int, int) {
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		// 触摸释放时使用保存的最后触摸位置
		return true, lastTouchX, lastTouchY
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = x, y
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}
