// Package scene 维护一次游戏会话的画布内容（背景 + 部件）
//
// 节点都是 ECS 实体，插入顺序即绘制顺序：先绘制的在下面，
// 命中测试从最后插入的部件开始查找。Graph 只应在 UI 协程中使用。
package scene

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/scoring"
	"github.com/decker502/fukuwarai/pkg/utils"
	"github.com/zyedidia/generic/mapset"
)

// Part 画布上的一个部件节点
type Part struct {
	Name   string
	Entity ecs.EntityID
}

// Graph 会话画布
type Graph struct {
	em     *ecs.EntityManager
	width  float64
	height float64
	rng    *rand.Rand

	background ecs.EntityID // 0 表示没有背景
	parts      []Part
	released   bool
}

// NewGraph 创建指定尺寸的空画布
// rng 为 nil 时使用以当前时间为种子的随机源
func NewGraph(width, height float64, rng *rand.Rand) *Graph {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Graph{
		em:     ecs.NewEntityManager(),
		width:  width,
		height: height,
		rng:    rng,
	}
}

// EntityManager 返回画布使用的实体管理器（供交互系统查询组件）
func (g *Graph) EntityManager() *ecs.EntityManager {
	return g.em
}

// Size 返回画布尺寸
func (g *Graph) Size() (float64, float64) {
	return g.width, g.height
}

// AttachBackground 添加背景节点，拉伸到 w×h，不响应指针
// asset 为 nil 时画布没有背景
func (g *Graph) AttachBackground(asset *game.ResolvedAsset, w, h float64) {
	if asset == nil || asset.Image == nil {
		return
	}
	if g.background != 0 {
		g.em.DestroyEntity(g.background)
		g.em.RemoveMarkedEntities()
	}

	id := g.em.CreateEntity()
	ecs.AddComponent(g.em, id, &components.PositionComponent{})
	ecs.AddComponent(g.em, id, &components.SpriteComponent{
		Source: asset.Image,
		Width:  w,
		Height: h,
	})
	ecs.AddComponent(g.em, id, &components.LayerComponent{Layer: components.LayerBackground})
	g.background = id
}

// AttachParts 按输入顺序添加部件节点
//
// 部件保持原始尺寸，左上角随机分布在 [0.1w, 0.9w) × [0.1h, 0.9h) 内。
// 同名部件作为独立节点保留。
//
// 返回：
//   - []Part: 新建的部件，顺序与 assets 一致
func (g *Graph) AttachParts(assets []game.ResolvedAsset, w, h float64) []Part {
	seen := mapset.New[string]()
	created := make([]Part, 0, len(assets))

	for _, asset := range assets {
		if asset.Image == nil {
			log.Printf("[Scene] Warning: part %q has no image, skipped", asset.Name)
			continue
		}
		if seen.Has(asset.Name) {
			log.Printf("[Scene] Warning: duplicate part name %q", asset.Name)
		}
		seen.Put(asset.Name)

		b := asset.Image.Bounds()
		pw, ph := float64(b.Dx()), float64(b.Dy())

		id := g.em.CreateEntity()
		ecs.AddComponent(g.em, id, &components.PositionComponent{
			X: g.rng.Float64()*w*config.PartSpawnSpan + w*config.PartSpawnMargin,
			Y: g.rng.Float64()*h*config.PartSpawnSpan + h*config.PartSpawnMargin,
		})
		ecs.AddComponent(g.em, id, &components.SpriteComponent{
			Source: asset.Image,
			Width:  pw,
			Height: ph,
		})
		ecs.AddComponent(g.em, id, &components.LayerComponent{Layer: components.LayerParts})
		ecs.AddComponent(g.em, id, &components.PartComponent{Name: asset.Name})
		ecs.AddComponent(g.em, id, &components.DraggableComponent{})
		ecs.AddComponent(g.em, id, &components.ClickableComponent{
			Width:   pw,
			Height:  ph,
			Enabled: true,
		})
		ecs.AddComponent(g.em, id, &components.ShadowComponent{
			Blur:   config.PartShadowBlur,
			Alpha:  config.PartShadowOpacity,
			Source: buildShadow(asset.Image, config.PartShadowBlur, config.PartShadowOpacity),
		})
		ecs.AddComponent(g.em, id, &components.SelectionHighlightComponent{
			Color: config.SelectionStrokeColor,
			Width: config.SelectionStrokeWidth,
		})

		part := Part{Name: asset.Name, Entity: id}
		g.parts = append(g.parts, part)
		created = append(created, part)
	}
	return created
}

// Parts 返回所有部件（插入顺序）
func (g *Graph) Parts() []Part {
	parts := make([]Part, len(g.parts))
	copy(parts, g.parts)
	return parts
}

// Placements 读取所有部件的当前位置，不修改画布
func (g *Graph) Placements() []scoring.Placement {
	placements := make([]scoring.Placement, 0, len(g.parts))
	for _, p := range g.parts {
		pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, p.Entity)
		if !ok {
			continue
		}
		placements = append(placements, scoring.Placement{Name: p.Name, X: pos.X, Y: pos.Y})
	}
	return placements
}

// IsPart 判断实体是否为本画布的部件
func (g *Graph) IsPart(id ecs.EntityID) bool {
	return ecs.HasComponent[*components.PartComponent](g.em, id)
}

// Position 返回部件左上角位置
func (g *Graph) Position(id ecs.EntityID) (x, y float64, ok bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, id)
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// SetPosition 设置部件左上角位置（不做边界限制，部件可以移出画布）
func (g *Graph) SetPosition(id ecs.EntityID, x, y float64) bool {
	if !g.IsPart(id) {
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, id)
	if !ok {
		return false
	}
	pos.X, pos.Y = x, y
	return true
}

// Move 按偏移量移动部件
func (g *Graph) Move(id ecs.EntityID, dx, dy float64) bool {
	x, y, ok := g.Position(id)
	if !ok {
		return false
	}
	return g.SetPosition(id, x+dx, y+dy)
}

// SetHighlight 只高亮指定部件，其余部件的高亮全部清除
func (g *Graph) SetHighlight(id ecs.EntityID) {
	for _, p := range g.parts {
		hl, ok := ecs.GetComponent[*components.SelectionHighlightComponent](g.em, p.Entity)
		if !ok {
			continue
		}
		hl.IsActive = p.Entity == id
	}
}

// ClearHighlight 清除所有高亮
func (g *Graph) ClearHighlight() {
	g.SetHighlight(0)
}

// Highlighted 返回当前高亮的部件
func (g *Graph) Highlighted() (ecs.EntityID, bool) {
	for _, p := range g.parts {
		hl, ok := ecs.GetComponent[*components.SelectionHighlightComponent](g.em, p.Entity)
		if ok && hl.IsActive {
			return p.Entity, true
		}
	}
	return 0, false
}

// HitTest 返回画布坐标 (x, y) 处最上层的部件
func (g *Graph) HitTest(x, y float64) (ecs.EntityID, bool) {
	for i := len(g.parts) - 1; i >= 0; i-- {
		id := g.parts[i].Entity
		pos, ok := ecs.GetComponent[*components.PositionComponent](g.em, id)
		if !ok {
			continue
		}
		click, ok := ecs.GetComponent[*components.ClickableComponent](g.em, id)
		if !ok || !click.Enabled {
			continue
		}
		if utils.InRect(x, y, pos.X, pos.Y, click.Width, click.Height) {
			return id, true
		}
	}
	return 0, false
}

// Release 删除所有节点并释放 GPU 图像，可以重复调用
func (g *Graph) Release() {
	if g.released {
		return
	}
	g.released = true

	for _, id := range ecs.GetEntitiesWith1[*components.SpriteComponent](g.em) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](g.em, id)
		if sprite.Image != nil {
			sprite.Image.Deallocate()
			sprite.Image = nil
		}
		sprite.Source = nil
		if shadow, ok := ecs.GetComponent[*components.ShadowComponent](g.em, id); ok {
			if shadow.Image != nil {
				shadow.Image.Deallocate()
				shadow.Image = nil
			}
			shadow.Source = nil
		}
	}
	g.em.DestroyAll()
	g.background = 0
	g.parts = nil
}

// Released 画布是否已释放
func (g *Graph) Released() bool {
	return g.released
}
