package systems

import (
	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
)

// isVisible 没有 UIComponent 的实体总是可见
func isVisible(em *ecs.EntityManager, id ecs.EntityID) bool {
	ui, ok := ecs.GetComponent[*components.UIComponent](em, id)
	return !ok || ui.Visible
}

// SetGroupVisible 设置某个界面区域内所有元素的可见性
func SetGroupVisible(em *ecs.EntityManager, group components.UIGroup, visible bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.UIComponent](em) {
		ui, _ := ecs.GetComponent[*components.UIComponent](em, id)
		if ui.Group == group {
			ui.Visible = visible
		}
	}
}
