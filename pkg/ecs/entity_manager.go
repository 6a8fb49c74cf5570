// Package ecs 提供场景使用的最小实体-组件存储
//
// 组件以指针类型为键存放在实体上；查询结果按实体创建顺序返回，
// 因此"插入顺序"可以直接作为绘制顺序和命中测试顺序使用。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理所有实体和组件
// 不是并发安全的，只应在 UI 协程中使用
type EntityManager struct {
	nextID uint64
	// EntityID -> 组件类型 -> 组件实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体（帧末统一清理）
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]interface{}),
	}
}

// CreateEntity 创建新实体并返回唯一 ID（单调递增）
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// Exists 实体是否存在（已标记删除但尚未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 返回实体数量
func (em *EntityManager) Count() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除，在 RemoveMarkedEntities 时真正删除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// DestroyAll 立即删除所有实体
// 已分配的 ID 不会被重用
func (em *EntityManager) DestroyAll() {
	em.components = make(map[EntityID]map[reflect.Type]interface{})
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// addComponent 为实体添加组件，同类型组件会被替换
func (em *EntityManager) addComponent(id EntityID, t reflect.Type, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[t] = component
	}
}

func (em *EntityManager) getComponent(id EntityID, t reflect.Type) (interface{}, bool) {
	compMap, exists := em.components[id]
	if !exists {
		return nil, false
	}
	comp, found := compMap[t]
	return comp, found
}

func (em *EntityManager) removeComponent(id EntityID, t reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, t)
	}
}

// entitiesWith 查询拥有全部指定组件类型的实体，按 ID 升序（即创建顺序）返回
func (em *EntityManager) entitiesWith(types ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, t := range types {
			if _, found := compMap[t]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
