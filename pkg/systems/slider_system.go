package systems

import (
	"math"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/utils"
)

// SliderSystem 滑块交互系统
// 负责处理滑块的指针拖拽交互
//
// 职责：
//   - 检测指针是否在滑槽区域内
//   - 检测按下/拖拽状态
//   - 计算点击位置并转换为 0.0~1.0 的 Value（按 Step 量化）
//   - 值改变时调用 OnValueChange，拖动结束时调用 OnRelease
type SliderSystem struct {
	entityManager *ecs.EntityManager
	pointer       utils.PointerInput
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager, pointer utils.PointerInput) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 更新滑块交互状态
func (s *SliderSystem) Update(deltaTime float64) {
	mouseX, mouseY := s.pointer.Position()
	mousePressed := s.pointer.Pressed()

	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if slider == nil || pos == nil {
			continue
		}
		if !isVisible(s.entityManager, entityID) {
			slider.IsDragging = false
			slider.IsHovered = false
			continue
		}

		// 滑槽上下各扩展半个滑块，方便点中
		hitY := pos.Y - slider.KnobSize/2
		hitH := slider.SlotHeight + slider.KnobSize
		isInSlot := s.isMouseInSlot(float64(mouseX), float64(mouseY), pos.X, hitY, slider.SlotWidth, hitH)
		slider.IsHovered = isInSlot

		// 记录拖拽前的状态，用于检测释放
		wasDragging := slider.IsDragging

		if mousePressed {
			// 只有在滑槽内按下才开始拖拽，拖拽中指针可以离开滑槽
			if (isInSlot && s.pointer.JustPressed()) || slider.IsDragging {
				slider.IsDragging = true

				newValue := quantize(clamp01(s.calculateValue(float64(mouseX), pos.X, slider.SlotWidth)), slider.Step)
				if newValue != slider.Value {
					slider.Value = newValue
					if slider.OnValueChange != nil {
						slider.OnValueChange(newValue)
					}
				}
			}
		} else {
			slider.IsDragging = false
			if wasDragging && slider.OnRelease != nil {
				slider.OnRelease(slider.Value)
			}
		}
	}
}

// isMouseInSlot 检测指针是否在滑槽区域内
func (s *SliderSystem) isMouseInSlot(mouseX, mouseY, slotX, slotY, slotWidth, slotHeight float64) bool {
	return utils.InRect(mouseX, mouseY, slotX, slotY, slotWidth, slotHeight)
}

// calculateValue 根据指针X坐标计算滑块值
func (s *SliderSystem) calculateValue(mouseX, slotX, slotWidth float64) float64 {
	if slotWidth <= 0 {
		return 0.0
	}
	return (mouseX - slotX) / slotWidth
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// quantize 把值对齐到 step 的整数倍，step <= 0 时不处理
func quantize(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	q := math.Round(v/step) * step
	// 消除浮点误差（例如 0.35000000000000003）
	return math.Round(q*1e6) / 1e6
}
