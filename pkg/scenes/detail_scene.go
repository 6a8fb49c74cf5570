package scenes

import (
	"context"
	"log"
	"math/rand"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/ecs"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/input"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scene"
	"github.com/decker502/fukuwarai/pkg/session"
	"github.com/decker502/fukuwarai/pkg/systems"
	"github.com/decker502/fukuwarai/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// FontSource 提供指定字号的字体
// *game.ResourceManager 实现了此接口
type FontSource interface {
	Face(size float64) text.Face
}

// RecordStore kintone 附件读取与记录写回
// *kintone.Client 实现了此接口
type RecordStore interface {
	game.AttachmentStore
	session.RecordStore
}

// DetailConfig 创建 DetailScene 需要的依赖
type DetailConfig struct {
	Record *kintone.Record
	App    *config.AppConfig
	Store  RecordStore
	Audio  *game.AudioManager
	Fonts  FontSource // 可为 nil（不绘制文字）

	Dispatcher *input.Dispatcher
	Pointer    utils.PointerInput

	ScreenWidth  int
	ScreenHeight int

	// Rand 部件初始散布使用的随机源，nil 时按时间播种
	Rand *rand.Rand

	// OnReload 丢弃本场景并重新读取记录
	OnReload func()
}

type loadOutcome struct {
	assets *game.Assets
	err    error
}

// DetailScene 记录详情视图
//
// 显示记录的字段列表；记录处于“游玩中”状态时在后台加载附件，
// 加载完成后创建会话并自动打开全屏游戏面板。
// 本场景同时实现 session.Page，面板的显示、滚动锁定和焦点都由会话驱动。
type DetailScene struct {
	cfg      DetailConfig
	spec     session.PlaySpec
	playable bool

	// ECS（只包含界面元素；部件在 scene.Graph 自己的实体管理器里）
	entityManager      *ecs.EntityManager
	buttonSystem       *systems.ButtonSystem
	sliderSystem       *systems.SliderSystem
	lifetimeSystem     *systems.LifetimeSystem
	buttonRenderSystem *systems.ButtonRenderSystem
	sliderRenderSystem *systems.SliderRenderSystem
	toastRenderSystem  *systems.ToastRenderSystem

	titleFont text.Face
	uiFont    text.Face

	launcherButton      ecs.EntityID
	detailReloadButton  ecs.EntityID
	closeButton         ecs.EntityID
	finishButton        ecs.EntityID
	overlayReloadButton ecs.EntityID
	volumeSlider        ecs.EntityID

	// 附件加载（工作协程）
	loading     bool
	loadCancel  context.CancelFunc
	loadResults chan loadOutcome
	loadErr     error

	// 会话
	assets    *game.Assets
	graph     *scene.Graph
	selection *systems.SelectionSystem
	drag      *systems.DragSystem
	lifecycle *session.Lifecycle

	// 宿主视图状态
	scrollY        float64
	scrollLocked   bool
	overlayVisible bool
	overlayErr     error

	unsubscribeKeys func()
	disposed        bool
}

// NewDetailScene 创建记录详情场景
//
// 记录可以游玩时立即开始在后台加载附件。
func NewDetailScene(cfg DetailConfig) *DetailScene {
	spec := session.SpecFromRecord(cfg.Record, cfg.App.Fields)

	s := &DetailScene{
		cfg:           cfg,
		spec:          spec,
		playable:      spec.Playable(cfg.App.StatusPlaying),
		entityManager: ecs.NewEntityManager(),
	}

	if cfg.Fonts != nil {
		s.titleFont = cfg.Fonts.Face(config.TitleFontSize)
		s.uiFont = cfg.Fonts.Face(config.UIFontSize)
	}

	s.buttonSystem = systems.NewButtonSystem(s.entityManager, cfg.Pointer)
	s.sliderSystem = systems.NewSliderSystem(s.entityManager, cfg.Pointer)
	s.lifetimeSystem = systems.NewLifetimeSystem(s.entityManager)
	s.buttonRenderSystem = systems.NewButtonRenderSystem(s.entityManager)
	s.sliderRenderSystem = systems.NewSliderRenderSystem(s.entityManager, s.uiFont)
	s.toastRenderSystem = systems.NewToastRenderSystem(s.entityManager, s.titleFont, s.uiFont)

	s.initUI()
	s.syncUI()
	s.unsubscribeKeys = cfg.Dispatcher.Subscribe(s.handleKey)

	log.Printf("[DetailScene] Record %s (status %q, playable: %t)", spec.RecordID, spec.Status, s.playable)
	if s.playable {
		s.startLoading()
	}
	return s
}

// startLoading 在工作协程中下载并解码附件，结果由 Update 轮询
func (s *DetailScene) startLoading() {
	ctx, cancel := context.WithCancel(context.Background())
	s.loadCancel = cancel
	s.loadResults = make(chan loadOutcome, 1)
	s.loading = true

	loader := game.NewAssetLoader(s.cfg.Store)
	req := s.spec.AssetsRequest()
	results := s.loadResults
	go func() {
		assets, err := loader.LoadSession(ctx, req)
		results <- loadOutcome{assets: assets, err: err}
	}()
}

// pollLoading 取回加载结果（不阻塞）
func (s *DetailScene) pollLoading() {
	if !s.loading {
		return
	}
	select {
	case o := <-s.loadResults:
		s.loading = false
		s.loadCancel()
		if o.err != nil {
			s.loadErr = o.err
			log.Printf("[DetailScene] Failed to load session assets: %v", o.err)
			return
		}
		s.startSession(o.assets)
	default:
	}
}

// startSession 用已加载的资源创建画布和会话，并自动打开面板
func (s *DetailScene) startSession(assets *game.Assets) {
	s.assets = assets

	cx, cy, cw, ch := s.canvasRect()
	s.graph = scene.NewGraph(cw, ch, s.cfg.Rand)
	s.graph.AttachBackground(assets.Background, cw, ch)
	s.graph.AttachParts(assets.Parts, cw, ch)

	s.selection = systems.NewSelectionSystem(s.graph)
	unbind := s.selection.Bind(s.cfg.Dispatcher)

	s.drag = systems.NewDragSystem(s.graph, s.selection, s.cfg.Pointer)
	s.drag.SetCanvasRect(cx, cy, cw, ch)

	music := s.cfg.Audio.OpenMusic(assets.Music)
	completion := session.NewCompletion(s.cfg.Store, s.cfg.App.Kintone.AppID, s.cfg.App.Fields, s.spec, s.graph, music)

	s.lifecycle = session.NewLifecycle(session.Options{
		Music:      music,
		Page:       s,
		Unbind:     unbind,
		Completion: completion,
		OnReload:   s.requestReload,
	})
	s.lifecycle.Open()
}

func (s *DetailScene) canvasRect() (x, y, w, h float64) {
	return config.CanvasRect(s.cfg.ScreenWidth, s.cfg.ScreenHeight)
}

// handleKey 场景级按键：Esc 关闭面板，R 重新加载
func (s *DetailScene) handleKey(ev input.KeyEvent) {
	if ev.Repeat {
		return
	}
	switch ev.Key {
	case ebiten.KeyEscape:
		if s.lifecycle != nil {
			s.lifecycle.Close()
		}
	case ebiten.KeyR:
		s.reloadFromKey()
	}
}

// reloadFromKey 游玩中（面板打开且可操作）不响应 R，避免误触丢失布局
func (s *DetailScene) reloadFromKey() {
	if s.lifecycle == nil {
		if !s.loading {
			s.requestReload()
		}
		return
	}
	if s.lifecycle.State() == session.StateShown {
		return
	}
	s.lifecycle.Reload()
}

func (s *DetailScene) requestReload() {
	if s.disposed {
		return
	}
	if s.cfg.OnReload != nil {
		s.cfg.OnReload()
	}
}

// Update 更新场景（每帧调用）
func (s *DetailScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	s.pollLoading()
	s.updateScroll()
	s.syncUI()

	s.buttonSystem.Update(deltaTime)
	s.sliderSystem.Update(deltaTime)
	if s.drag != nil && s.overlayVisible {
		s.drag.Update(deltaTime)
	}
	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()

	if s.lifecycle != nil {
		s.lifecycle.Update(deltaTime)
	}
}

// updateScroll 鼠标滚轮滚动字段列表，锁定时忽略
func (s *DetailScene) updateScroll() {
	if s.scrollLocked {
		return
	}
	wheel := s.cfg.Pointer.WheelY()
	if wheel == 0 {
		return
	}
	s.scrollY -= wheel * config.DetailScrollSpeed

	maxScroll := float64(len(s.fieldLines()))*config.DetailLineHeight - config.DetailLineHeight
	if s.scrollY > maxScroll {
		s.scrollY = maxScroll
	}
	if s.scrollY < 0 {
		s.scrollY = 0
	}
}

// syncUI 按当前状态调整各按钮的可见性和可用性
func (s *DetailScene) syncUI() {
	state := session.StateHidden
	busy := false
	if s.lifecycle != nil {
		state = s.lifecycle.State()
		busy = s.lifecycle.Busy()
	}

	s.setVisible(s.launcherButton, !s.overlayVisible && s.lifecycle != nil && state == session.StateHidden)
	s.setVisible(s.detailReloadButton, !s.overlayVisible && s.loadErr != nil)
	s.setVisible(s.overlayReloadButton, s.overlayVisible && s.overlayErr != nil && !busy)

	if button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, s.finishButton); ok {
		button.Enabled = !busy && (state == session.StateShown || s.overlayErr != nil)
	}
}

func (s *DetailScene) setVisible(id ecs.EntityID, visible bool) {
	if ui, ok := ecs.GetComponent[*components.UIComponent](s.entityManager, id); ok {
		ui.Visible = visible
	}
}

// Dispose 释放会话和资源（场景被替换时调用）
func (s *DetailScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.loadCancel != nil {
		s.loadCancel()
	}
	if s.lifecycle != nil {
		s.lifecycle.Dispose()
	}
	if s.unsubscribeKeys != nil {
		s.unsubscribeKeys()
	}
	if s.graph != nil {
		s.graph.Release()
	}
	s.assets.Release()
	s.entityManager.DestroyAll()
	log.Printf("[DetailScene] Disposed record %s", s.spec.RecordID)
}

// Lifecycle 当前会话，记录不可游玩或附件尚未加载完成时为 nil
func (s *DetailScene) Lifecycle() *session.Lifecycle {
	return s.lifecycle
}

// Graph 当前画布，会话创建前为 nil
func (s *DetailScene) Graph() *scene.Graph {
	return s.graph
}

// Loading 附件是否仍在加载
func (s *DetailScene) Loading() bool {
	return s.loading
}

// LoadError 附件加载失败的原因
func (s *DetailScene) LoadError() error {
	return s.loadErr
}
