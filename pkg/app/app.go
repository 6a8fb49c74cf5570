// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：读取配置、创建 kintone 客户端、
// 资源/设置/音频管理器和键盘分发器，并用场景工厂把它们交给场景。
// “重新加载视图”就是让 SceneManager 丢弃当前场景，从读取记录重新开始。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/embedded"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/i18n"
	"github.com/decker502/fukuwarai/pkg/input"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scenes"
	"github.com/decker502/fukuwarai/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// DefaultConfigPath 内嵌的默认配置
const DefaultConfigPath = "data/config/fukuwarai.yaml"

// settingsAppName gdata 存储目录名
const settingsAppName = "fukuwarai"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// RecordID 要游玩的 kintone 记录
	RecordID string
	// ConfigPath YAML 配置文件，为空时使用内嵌的默认配置
	ConfigPath string
	// EnvFile 提供 KINTONE_* 环境变量的 .env 文件，不存在时忽略
	EnvFile string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	appConfig       *config.AppConfig
	client          *kintone.Client
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	dispatcher      *input.Dispatcher
	pointer         utils.PointerInput
	sceneManager    *game.SceneManager

	recordID                 string
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	closed                   bool
}

// LoadAppConfig 读取 YAML 配置并用环境变量补全 kintone 连接信息
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func LoadAppConfig(cfg Config) (*config.AppConfig, error) {
	var (
		appCfg *config.AppConfig
		err    error
	)
	if cfg.ConfigPath != "" {
		appCfg, err = config.LoadAppConfig(cfg.ConfigPath)
	} else {
		data, readErr := embedded.ReadFile(DefaultConfigPath)
		if readErr != nil {
			return nil, fmt.Errorf("默认配置加载失败: %w", readErr)
		}
		appCfg, err = config.ParseAppConfig(data)
	}
	if err != nil {
		return nil, err
	}

	if err := appCfg.ApplyEnv(cfg.EnvFile); err != nil {
		return nil, err
	}
	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return appCfg, nil
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.RecordID == "" {
		return nil, fmt.Errorf("record id is required")
	}

	appCfg, err := LoadAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] kintone %s app %s, language %s", appCfg.Kintone.BaseURL, appCfg.Kintone.AppID, appCfg.Language)

	if err := i18n.Load(appCfg.Language); err != nil {
		log.Printf("[App] Warning: %v (showing message keys)", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	// 创建资源管理器（解码附件、字体）
	resourceManager := game.NewResourceManager(audioContext, appCfg.FontPath)

	// 本机设置（音量、全屏）
	var store game.SettingsStore
	if gdataManager, err := gdata.Open(gdata.Config{AppName: settingsAppName}); err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v (settings will not persist)", err)
	} else {
		store = gdataManager
	}
	settingsManager := game.NewSettingsManager(store)

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		appConfig:       appCfg,
		client:          kintone.NewClient(appCfg.Kintone),
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		dispatcher:      input.NewDispatcher(nil),
		pointer:         utils.NewEbitenPointer(),
		sceneManager:    game.NewSceneManager(),
		recordID:        cfg.RecordID,
		verbose:         cfg.Verbose,
	}

	// 重新加载时从读取记录开始重建
	a.sceneManager.SetSceneFactory(a.newLoadingScene)
	a.sceneManager.SwitchTo(a.newLoadingScene())

	log.Printf("[App] Starting record: %s", cfg.RecordID)
	return a, nil
}

// newLoadingScene 读取记录，完成后切换到详情场景
func (a *App) newLoadingScene() game.Scene {
	width, height := a.WindowSize()
	return scenes.NewLoadingScene(scenes.LoadingConfig{
		RecordID:     a.recordID,
		Reader:       a.client,
		Fonts:        a.resourceManager,
		Dispatcher:   a.dispatcher,
		ScreenWidth:  width,
		ScreenHeight: height,
		Build:        a.newDetailScene,
		SwitchTo:     a.sceneManager.SwitchTo,
		OnReload:     a.sceneManager.RequestReload,
	})
}

func (a *App) newDetailScene(rec *kintone.Record) game.Scene {
	width, height := a.WindowSize()
	return scenes.NewDetailScene(scenes.DetailConfig{
		Record:       rec,
		App:          a.appConfig,
		Store:        a.client,
		Audio:        a.audioManager,
		Fonts:        a.resourceManager,
		Dispatcher:   a.dispatcher,
		Pointer:      a.pointer,
		ScreenWidth:  width,
		ScreenHeight: height,
		OnReload:     a.sceneManager.RequestReload,
	})
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			width, height := a.WindowSize()
			ebiten.SetWindowSize(width, height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", width, height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// 键盘事件先于场景分发，场景在本帧就能看到订阅者的修改
	a.dispatcher.Update()

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// WindowSize 配置的逻辑屏幕尺寸
func (a *App) WindowSize() (int, int) {
	return a.appConfig.Window.Width, a.appConfig.Window.Height
}

// Title 窗口标题
func (a *App) Title() string {
	return a.appConfig.Window.Title
}

// StartFullscreen 上次退出时是否处于全屏
func (a *App) StartFullscreen() bool {
	return a.settingsManager.Settings().Fullscreen
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 丢弃当前场景（取消进行中的网络操作、停止音乐），可以重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.sceneManager.Dispose()
	a.audioManager.StopMusic()
}
