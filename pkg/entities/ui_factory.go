package entities

import (
	"log"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/ecs"
)

// ToastFadeSeconds 提示结束前的淡出时长
const ToastFadeSeconds = 0.3

// NewVolumeSlider 创建面板底部的音量滑块
//
// 参数：
//   - em: 实体管理器
//   - x, y: 滑槽左上角（屏幕坐标）
//   - label: 滑槽左侧的标签
//   - value: 初始音量 (0.0 ~ 1.0)
//   - onChange: 拖动过程中音量变化时调用
//   - onRelease: 拖动结束时调用（用于保存设置）
//
// 返回：
//   - ecs.EntityID: 滑块实体ID
func NewVolumeSlider(
	em *ecs.EntityManager,
	x, y float64,
	label string,
	value float64,
	onChange func(value float64),
	onRelease func(value float64),
) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.SliderComponent{
		SlotWidth:     config.SliderWidth,
		SlotHeight:    config.SliderHeight,
		KnobSize:      config.SliderKnobSize,
		Value:         value,
		Step:          config.MusicVolumeStep,
		Label:         label,
		OnValueChange: onChange,
		OnRelease:     onRelease,
	})
	ecs.AddComponent(em, entity, &components.UIComponent{
		Group:   components.GroupOverlay,
		Visible: false,
	})

	return entity
}

// NewToastEntity 创建屏幕中央的提示，seconds 秒后自动销毁
//
// 参数：
//   - em: 实体管理器
//   - title: 标题
//   - message: 正文，可为空
//   - seconds: 显示时长（秒）
//   - isError: 是否为错误提示（红色背景）
//
// 返回：
//   - ecs.EntityID: 提示实体ID
func NewToastEntity(em *ecs.EntityManager, title, message string, seconds float64, isError bool) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.ToastComponent{
		Title:   title,
		Message: message,
		IsError: isError,
	})

	fade := ToastFadeSeconds
	if fade > seconds {
		fade = seconds
	}
	ecs.AddComponent(em, entity, &components.LifetimeComponent{
		MaxLifetime: seconds,
		FadeOut:     fade,
		Alpha:       1,
	})

	log.Printf("[UI Factory] Toast %q for %.1fs", title, seconds)
	return entity
}
