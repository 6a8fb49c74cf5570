package systems

import (
	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/scene"
	"github.com/decker502/fukuwarai/pkg/utils"
)

// DragSystem 指针拖动部件
//
// 职责：
//   - 在画布区域内按下时命中测试，激活最上层部件（SelectCommand）
//   - 按住期间让部件跟随指针，保持按下时的抓取偏移
//   - 释放或选择控制器解绑时结束拖动
type DragSystem struct {
	graph     *scene.Graph
	selection *SelectionSystem
	pointer   utils.PointerInput

	// 画布在屏幕上的区域
	canvasX, canvasY float64
	canvasW, canvasH float64

	dragging ecs.EntityID
}

// NewDragSystem 创建拖动系统
func NewDragSystem(graph *scene.Graph, selection *SelectionSystem, pointer utils.PointerInput) *DragSystem {
	w, h := graph.Size()
	return &DragSystem{
		graph:     graph,
		selection: selection,
		pointer:   pointer,
		canvasW:   w,
		canvasH:   h,
	}
}

// SetCanvasRect 设置画布在屏幕上的位置和尺寸
func (s *DragSystem) SetCanvasRect(x, y, w, h float64) {
	s.canvasX, s.canvasY = x, y
	s.canvasW, s.canvasH = w, h
}

// Dragging 返回正在拖动的部件
func (s *DragSystem) Dragging() (ecs.EntityID, bool) {
	return s.dragging, s.dragging != 0
}

// Update 处理本帧的指针输入
func (s *DragSystem) Update(deltaTime float64) {
	if s.selection.TornDown() {
		s.endDrag()
		return
	}

	px, py := s.pointer.Position()
	sx, sy := float64(px), float64(py)
	cx, cy := sx-s.canvasX, sy-s.canvasY

	if s.pointer.JustPressed() && utils.InRect(sx, sy, s.canvasX, s.canvasY, s.canvasW, s.canvasH) {
		if id, ok := s.graph.HitTest(cx, cy); ok {
			s.selection.Dispatch(SelectCommand{Entity: id})
			s.beginDrag(id, cx, cy)
		}
	}

	if s.dragging == 0 {
		return
	}
	if !s.pointer.Pressed() {
		s.endDrag()
		return
	}
	if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.graph.EntityManager(), s.dragging); ok {
		s.graph.SetPosition(s.dragging, cx-drag.GrabOffsetX, cy-drag.GrabOffsetY)
	}
}

func (s *DragSystem) beginDrag(id ecs.EntityID, cx, cy float64) {
	drag, ok := ecs.GetComponent[*components.DraggableComponent](s.graph.EntityManager(), id)
	if !ok {
		return
	}
	x, y, _ := s.graph.Position(id)
	drag.IsDragging = true
	drag.GrabOffsetX = cx - x
	drag.GrabOffsetY = cy - y
	s.dragging = id
}

func (s *DragSystem) endDrag() {
	if s.dragging == 0 {
		return
	}
	if drag, ok := ecs.GetComponent[*components.DraggableComponent](s.graph.EntityManager(), s.dragging); ok {
		drag.IsDragging = false
	}
	s.dragging = 0
}
