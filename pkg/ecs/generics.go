package ecs

import "reflect"

// 泛型访问接口
// 类型参数通常是组件的指针类型，例如 GetComponent[*components.PositionComponent](em, id)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件，实体不存在时忽略
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.addComponent(id, typeOf[T](), component)
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, ok := em.getComponent(id, typeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.getComponent(id, typeOf[T]())
	return ok
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.removeComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 T1 组件的实体（按创建顺序）
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体（按创建顺序）
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有 T1、T2、T3 组件的实体（按创建顺序）
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
