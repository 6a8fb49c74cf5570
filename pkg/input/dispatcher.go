// Package input 提供应用级的键盘事件分发
//
// Ebitengine 只提供按键的轮询接口。Dispatcher 每帧轮询一次，
// 把按下（以及按住后的自动重复）转换为 KeyEvent，依次交给订阅者。
// 订阅返回一个取消函数，调用方负责在不再需要时调用它。
package input

import (
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyEvent 一次按键事件
type KeyEvent struct {
	Key    ebiten.Key
	Shift  bool
	Ctrl   bool // Control（macOS 上也接受 Meta）
	Repeat bool // 按住产生的自动重复
}

// Handler 事件处理函数
type Handler func(ev KeyEvent)

// KeySource 键盘状态来源，测试时可替换
type KeySource interface {
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
	KeyPressDuration(key ebiten.Key) int
	IsKeyPressed(key ebiten.Key) bool
}

type ebitenKeySource struct{}

func (ebitenKeySource) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendPressedKeys(keys)
}

func (ebitenKeySource) KeyPressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

func (ebitenKeySource) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

type subscription struct {
	id      int
	handler Handler
}

// Dispatcher 键盘事件分发器
// 只能在 UI 协程中使用
type Dispatcher struct {
	source KeySource
	subs   []subscription
	nextID int
	keys   []ebiten.Key
}

// NewDispatcher 创建分发器，source 为 nil 时使用 Ebitengine 的键盘状态
func NewDispatcher(source KeySource) *Dispatcher {
	if source == nil {
		source = ebitenKeySource{}
	}
	return &Dispatcher{source: source}
}

// Subscribe 注册处理函数，返回取消订阅的函数
// 取消函数可以安全地多次调用
func (d *Dispatcher) Subscribe(h Handler) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, handler: h})

	done := false
	return func() {
		if done {
			return
		}
		done = true
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Len 当前订阅者数量
func (d *Dispatcher) Len() int {
	return len(d.subs)
}

// Update 轮询键盘并分发本帧产生的事件（每帧调用一次）
func (d *Dispatcher) Update() {
	if len(d.subs) == 0 {
		return
	}

	d.keys = d.source.AppendPressedKeys(d.keys[:0])
	if len(d.keys) == 0 {
		return
	}

	shift := d.source.IsKeyPressed(ebiten.KeyShift)
	ctrl := d.source.IsKeyPressed(ebiten.KeyControl) || d.source.IsKeyPressed(ebiten.KeyMeta)

	for _, k := range d.keys {
		duration := d.source.KeyPressDuration(k)
		if !shouldFire(duration) {
			continue
		}
		ev := KeyEvent{Key: k, Shift: shift, Ctrl: ctrl, Repeat: duration > 1}

		// 处理函数可能在回调中取消订阅，遍历快照
		subs := append([]subscription(nil), d.subs...)
		for _, s := range subs {
			s.handler(ev)
		}
	}
}

// shouldFire 按下的第一帧触发；按住超过延迟后按固定间隔重复
func shouldFire(duration int) bool {
	if duration == 1 {
		return true
	}
	if duration < config.KeyRepeatDelay {
		return false
	}
	return (duration-config.KeyRepeatDelay)%config.KeyRepeatInterval == 0
}
