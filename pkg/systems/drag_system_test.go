package systems

import (
	"testing"

	"github.com/decker502/fukuwarai/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 画布左上角位于屏幕 (16, 48)
func newTestDrag(t *testing.T) (*DragSystem, *SelectionSystem, *utils.StubPointer) {
	t.Helper()
	g, _ := newTestGraph(t)
	sel := NewSelectionSystem(g)
	pointer := &utils.StubPointer{}
	drag := NewDragSystem(g, sel, pointer)
	drag.SetCanvasRect(16, 48, 400, 300)
	return drag, sel, pointer
}

func TestDragSelectsAndMoves(t *testing.T) {
	drag, sel, pointer := newTestDrag(t)
	g := sel.graph
	parts := g.Parts()

	// 按在 eye (100,100) 内偏移 (10, 5) 处
	pointer.Press(16+110, 48+105)
	drag.Update(0.016)

	active, ok := sel.Active()
	require.True(t, ok)
	assert.Equal(t, parts[0].Entity, active)
	_, dragging := drag.Dragging()
	assert.True(t, dragging)

	pointer.MoveTo(16+150, 48+205)
	drag.Update(0.016)

	x, y, _ := g.Position(parts[0].Entity)
	assert.Equal(t, 140.0, x)
	assert.Equal(t, 200.0, y)

	pointer.Up()
	drag.Update(0.016)
	_, dragging = drag.Dragging()
	assert.False(t, dragging)

	// 释放后移动指针不再影响部件
	pointer.Idle()
	pointer.MoveTo(16+300, 48+20)
	drag.Update(0.016)
	x, y, _ = g.Position(parts[0].Entity)
	assert.Equal(t, 140.0, x)
	assert.Equal(t, 200.0, y)
}

func TestDragPressOnEmptyArea(t *testing.T) {
	drag, sel, pointer := newTestDrag(t)

	pointer.Press(16+5, 48+5)
	drag.Update(0.016)

	_, ok := sel.Active()
	assert.False(t, ok)
	_, dragging := drag.Dragging()
	assert.False(t, dragging)
}

func TestDragIgnoresPressOutsideCanvas(t *testing.T) {
	drag, sel, pointer := newTestDrag(t)
	g := sel.graph
	parts := g.Parts()
	// 部件被拖到画布外，屏幕上对应位置在画布区域之外
	g.SetPosition(parts[1].Entity, -100, -40)

	pointer.Press(16-90, 48-35)
	drag.Update(0.016)

	_, ok := sel.Active()
	assert.False(t, ok)
}

func TestDragStopsAfterUnbind(t *testing.T) {
	drag, sel, pointer := newTestDrag(t)
	parts := sel.graph.Parts()
	unbind := sel.Bind(inputDispatcherForTest())

	pointer.Press(16+110, 48+105)
	drag.Update(0.016)

	unbind()
	pointer.MoveTo(16+300, 48+250)
	drag.Update(0.016)

	x, y, _ := sel.graph.Position(parts[0].Entity)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 100.0, y)
	_, dragging := drag.Dragging()
	assert.False(t, dragging)
}
