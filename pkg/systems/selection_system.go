package systems

import (
	"log"

	"github.com/atotto/clipboard"
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/input"
	"github.com/decker502/fukuwarai/pkg/scene"
	"github.com/decker502/fukuwarai/pkg/scoring"
	"github.com/hajimehoshi/ebiten/v2"
)

// Direction 方向键方向
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Command 选择控制器的输入命令
// 指针和键盘适配器只负责构造命令，状态变化全部由 Dispatch 完成
type Command interface {
	isCommand()
}

// SelectCommand 激活一个部件（点击或开始拖动）
type SelectCommand struct {
	Entity ecs.EntityID
}

// MoveCommand 把当前激活的部件沿一个轴移动一步
type MoveCommand struct {
	Dir  Direction
	Fast bool // 按住 Shift，步长 ×4
}

func (SelectCommand) isCommand() {}
func (MoveCommand) isCommand()   {}

// SelectionSystem 部件选择控制器
//
// 状态：当前激活的部件（初始为空）。
// 激活时清除所有部件的高亮并高亮新部件；方向键移动激活部件；
// 解绑后（完成流程开始）不再接受任何命令。
type SelectionSystem struct {
	graph *scene.Graph

	active    ecs.EntityID
	hasActive bool
	focused   bool
	torndown  bool

	// copyText 写入系统剪贴板，测试时替换
	copyText func(string) error
}

// NewSelectionSystem 创建选择控制器
func NewSelectionSystem(graph *scene.Graph) *SelectionSystem {
	return &SelectionSystem{
		graph:    graph,
		copyText: clipboard.WriteAll,
	}
}

// Dispatch 执行一条命令
//
// 返回：
//   - bool: 画布状态是否发生变化（需要重绘）
func (s *SelectionSystem) Dispatch(cmd Command) bool {
	if s.torndown {
		return false
	}

	switch c := cmd.(type) {
	case SelectCommand:
		if !s.graph.IsPart(c.Entity) {
			return false
		}
		s.active = c.Entity
		s.hasActive = true
		s.graph.SetHighlight(c.Entity)
		return true

	case MoveCommand:
		if !s.hasActive {
			return false
		}
		step := config.KeyMoveStep
		if c.Fast {
			step *= config.KeyMoveFastMultiplier
		}
		var dx, dy float64
		switch c.Dir {
		case DirUp:
			dy = -step
		case DirDown:
			dy = step
		case DirLeft:
			dx = -step
		case DirRight:
			dx = step
		default:
			return false
		}
		return s.graph.Move(s.active, dx, dy)
	}
	return false
}

// Active 返回当前激活的部件
func (s *SelectionSystem) Active() (ecs.EntityID, bool) {
	return s.active, s.hasActive
}

// SetFocused 设置画布是否持有键盘焦点，没有焦点时忽略按键
func (s *SelectionSystem) SetFocused(focused bool) {
	s.focused = focused
}

// Focused 画布是否持有键盘焦点
func (s *SelectionSystem) Focused() bool {
	return s.focused
}

// TornDown 是否已解绑
func (s *SelectionSystem) TornDown() bool {
	return s.torndown
}

// HandleKey 把按键翻译成命令
//
// 方向键 → MoveCommand（Shift 加速）；Ctrl+C 复制当前放置结果。
// 其他按键忽略。
func (s *SelectionSystem) HandleKey(ev input.KeyEvent) bool {
	if s.torndown || !s.focused {
		return false
	}

	switch ev.Key {
	case ebiten.KeyArrowUp:
		return s.Dispatch(MoveCommand{Dir: DirUp, Fast: ev.Shift})
	case ebiten.KeyArrowDown:
		return s.Dispatch(MoveCommand{Dir: DirDown, Fast: ev.Shift})
	case ebiten.KeyArrowLeft:
		return s.Dispatch(MoveCommand{Dir: DirLeft, Fast: ev.Shift})
	case ebiten.KeyArrowRight:
		return s.Dispatch(MoveCommand{Dir: DirRight, Fast: ev.Shift})
	case ebiten.KeyC:
		if ev.Ctrl && !ev.Repeat {
			s.copyPlacements()
		}
	}
	return false
}

// copyPlacements 把当前放置结果（与放置日志相同的格式）复制到剪贴板
// 方便出题人把正确布局粘贴到目标坐标字段
func (s *SelectionSystem) copyPlacements() {
	data, err := scoring.PlayLog(s.graph.Placements())
	if err != nil {
		log.Printf("[Selection] Warning: failed to encode placements: %v", err)
		return
	}
	if err := s.copyText(string(data)); err != nil {
		log.Printf("[Selection] Warning: clipboard unavailable: %v", err)
		return
	}
	log.Printf("[Selection] Copied %d placements to clipboard", len(s.graph.Placements()))
}

// Bind 在全局键盘分发器上注册按键监听
//
// 返回：
//   - unbind: 移除监听并停止接受拖动和按键命令；可以重复调用
func (s *SelectionSystem) Bind(d *input.Dispatcher) (unbind func()) {
	unsubscribe := d.Subscribe(func(ev input.KeyEvent) {
		s.HandleKey(ev)
	})
	return func() {
		unsubscribe()
		if !s.torndown {
			s.torndown = true
			log.Printf("[Selection] Input unbound")
		}
	}
}
