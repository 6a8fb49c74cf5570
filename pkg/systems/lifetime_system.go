package systems

import (
	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/utils"
)

// LifetimeSystem 推进限时实体（提示框）的计时
//
// 每帧写入 Alpha：淡出阶段按剩余时间缓出，其余时间为 1。
// 同时只保留最新的一条提示，较早的提示立即进入淡出。
// 过期的实体被标记删除，由场景在帧末调用 RemoveMarkedEntities 清理。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	s.supersedeToasts()

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		lifetime.Alpha = fadeAlpha(lifetime)

		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
		}
	}
}

// supersedeToasts 新提示出现时，把旧提示的剩余时间截到淡出时长
func (s *LifetimeSystem) supersedeToasts() {
	ids := ecs.GetEntitiesWith2[*components.ToastComponent, *components.LifetimeComponent](s.entityManager)
	if len(ids) < 2 {
		return
	}

	// 实体ID单调递增，最大者为最新
	newest := ids[0]
	for _, id := range ids[1:] {
		if id > newest {
			newest = id
		}
	}

	for _, id := range ids {
		if id == newest {
			continue
		}
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if fadeStart := lifetime.MaxLifetime - lifetime.FadeOut; lifetime.CurrentLifetime < fadeStart {
			lifetime.CurrentLifetime = fadeStart
		}
	}
}

// fadeAlpha 淡出阶段的不透明度（先缓后急）
func fadeAlpha(l *components.LifetimeComponent) float64 {
	if l.FadeOut <= 0 {
		return 1
	}
	remaining := l.MaxLifetime - l.CurrentLifetime
	if remaining >= l.FadeOut {
		return 1
	}
	if remaining <= 0 {
		return 0
	}
	return utils.EaseOutCubic(remaining / l.FadeOut)
}
