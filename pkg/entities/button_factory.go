package entities

import (
	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 按钮配色
var (
	// ButtonPrimary 主要操作（全屏游玩、配置完了）
	ButtonPrimary = [4]uint8{52, 120, 246, 255}
	// ButtonSecondary 次要操作（关闭、重新加载）
	ButtonSecondary = [4]uint8{90, 90, 96, 255}

	buttonTextColor = [4]uint8{255, 255, 255, 255}
)

// ButtonWidth 根据文字计算按钮宽度（不小于 ButtonMinWidth）
func ButtonWidth(label string, font text.Face) float64 {
	w := config.ButtonMinWidth
	if font == nil {
		return w
	}
	textW, _ := text.Measure(label, font, 0)
	if textW+2*config.ButtonTextPadding > w {
		w = textW + 2*config.ButtonTextPadding
	}
	return w
}

// NewButton 创建纯色按钮实体
//
// 参数：
//   - em: 实体管理器
//   - x, y: 按钮左上角（屏幕坐标）
//   - label: 按钮文字
//   - font: 文字字体
//   - fill: 背景颜色 [R, G, B, A]
//   - group: 按钮所属的界面区域
//   - onClick: 点击回调函数
//
// 返回：
//   - 按钮实体ID
func NewButton(
	em *ecs.EntityManager,
	x, y float64,
	label string,
	font text.Face,
	fill [4]uint8,
	group components.UIGroup,
	onClick func(),
) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: x,
		Y: y,
	})

	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Text:      label,
		Font:      font,
		TextColor: buttonTextColor,
		FillColor: fill,
		Width:     ButtonWidth(label, font),
		Height:    config.ButtonHeight,
		State:     components.UINormal,
		Enabled:   true,
		OnClick:   onClick,
	})

	// 面板内的按钮默认隐藏，由场景在打开面板时显示
	ecs.AddComponent(em, entity, &components.UIComponent{
		Group:   group,
		Visible: group != components.GroupOverlay,
	})

	return entity
}
