package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/google/uuid"
)

// State 会话状态
type State int

const (
	// StateHidden 面板关闭，音乐暂停
	StateHidden State = iota
	// StateShown 面板打开，可以操作部件
	StateShown
	// StateCompleting 正在完成（或完成失败，等待重试）
	StateCompleting
	// StateReloading 终态，视图即将（或已经）重新加载
	StateReloading
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "Hidden"
	case StateShown:
		return "Shown"
	case StateCompleting:
		return "Completing"
	case StateReloading:
		return "Reloading"
	}
	return "Unknown"
}

// Page 宿主视图（记录详情页）提供给会话的操作
type Page interface {
	// LockScroll 锁定或释放详情视图的滚动
	LockScroll(locked bool)
	// ShowOverlay 显示或隐藏游戏面板
	ShowOverlay(visible bool)
	// FocusCanvas 把键盘焦点交给画布（false 时还给详情视图）
	FocusCanvas(focused bool)
	// ShowCompleted 显示完成提示，seconds 秒后自动消失
	ShowCompleted(result *Result, seconds float64)
	// ShowError 在面板中显示错误，nil 清除
	ShowError(err error)
}

// Completer 完成流程
// *Completion 实现了此接口
type Completer interface {
	Capture() Capture
	Persist(ctx context.Context, capture Capture) (*Result, error)
}

// Options 会话的协作者
type Options struct {
	Music      *game.MusicHandle // 可以为 nil
	Page       Page
	Unbind     func() // 解除部件的拖动和按键绑定
	Completion Completer
	OnReload   func() // 重新加载整个视图，只会被调用一次
}

type persistOutcome struct {
	result *Result
	err    error
}

// Lifecycle 会话状态机
//
// 所有方法都只能在 UI 协程调用。完成流程的网络部分在工作协程中运行，
// 结果由 Update 轮询取回。
type Lifecycle struct {
	id    string
	state State

	music      *game.MusicHandle
	page       Page
	unbind     func()
	completion Completer
	onReload   func()

	scrollLocked bool
	unbound      bool

	ctx      context.Context
	cancel   context.CancelFunc
	outcomes chan persistOutcome
	inFlight bool
	lastErr  error

	// 成功提示剩余时间，大于 0 表示正在显示
	toastRemaining float64
	toastShown     bool
	// Reloading 之后到触发重新加载的剩余时间
	reloadRemaining float64
	reloaded        bool
}

// NewLifecycle 创建处于 Hidden 状态的会话
func NewLifecycle(opts Options) *Lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Lifecycle{
		id:         uuid.NewString(),
		state:      StateHidden,
		music:      opts.Music,
		page:       opts.Page,
		unbind:     opts.Unbind,
		completion: opts.Completion,
		onReload:   opts.OnReload,
		ctx:        ctx,
		cancel:     cancel,
		outcomes:   make(chan persistOutcome, 1),
	}
	l.logf("created")
	return l
}

// ID 会话 ID（用于日志）
func (l *Lifecycle) ID() string {
	return l.id
}

// State 当前状态
func (l *Lifecycle) State() State {
	return l.state
}

// Busy 完成流程的网络部分是否正在进行
func (l *Lifecycle) Busy() bool {
	return l.inFlight
}

// LastError 最近一次完成失败的错误，成功或重试开始后清除
func (l *Lifecycle) LastError() error {
	return l.lastErr
}

func (l *Lifecycle) logf(format string, args ...interface{}) {
	log.Printf("[Session %s] "+format, append([]interface{}{l.id[:8]}, args...)...)
}

// Open Hidden → Shown：继续播放音乐，锁定滚动，画布获得焦点
// 已经打开时什么也不做
func (l *Lifecycle) Open() {
	if l.state != StateHidden {
		l.logf("open ignored in state %s", l.state)
		return
	}
	l.state = StateShown

	l.music.Play()
	if !l.scrollLocked {
		l.page.LockScroll(true)
		l.scrollLocked = true
	}
	l.page.ShowOverlay(true)
	l.page.FocusCanvas(true)
	l.logf("shown")
}

// Close Shown → Hidden：暂停音乐（保留播放位置），释放滚动
func (l *Lifecycle) Close() {
	if l.state != StateShown {
		return
	}
	l.state = StateHidden

	l.music.Pause()
	l.releaseScroll()
	l.page.ShowOverlay(false)
	l.page.FocusCanvas(false)
	l.logf("hidden")
}

// Finish Shown → Completing：停止音乐，解除输入绑定，开始完成流程
//
// 在 Completing 状态且上一次完成失败时再次调用会重试完成流程。
func (l *Lifecycle) Finish() {
	switch l.state {
	case StateShown:
		l.state = StateCompleting
		l.releaseInput()
		l.logf("completing")
		l.startCompletion()
	case StateCompleting:
		if l.inFlight || l.lastErr == nil {
			return
		}
		l.logf("retrying completion after: %v", l.lastErr)
		l.startCompletion()
	}
}

func (l *Lifecycle) startCompletion() {
	l.lastErr = nil
	l.page.ShowError(nil)

	capture := l.completion.Capture()
	l.inFlight = true

	ctx := l.ctx
	go func() {
		ctx, cancel := context.WithTimeout(ctx, config.PersistTimeoutSeconds*time.Second)
		defer cancel()
		result, err := l.completion.Persist(ctx, capture)
		l.outcomes <- persistOutcome{result: result, err: err}
	}()
}

// Reload 手动重新加载视图（例如完成失败后放弃保存）
// 完成流程的网络部分进行中时忽略
func (l *Lifecycle) Reload() {
	if l.state == StateReloading || l.inFlight {
		return
	}
	l.logf("manual reload from state %s", l.state)
	l.enterReloading(0)
}

// Update 推进计时器并取回完成流程的结果（每帧调用）
func (l *Lifecycle) Update(deltaTime float64) {
	if l.inFlight {
		select {
		case o := <-l.outcomes:
			l.inFlight = false
			l.handleOutcome(o)
		default:
		}
	}

	if l.toastShown && l.state == StateCompleting {
		l.toastRemaining -= deltaTime
		if l.toastRemaining <= 0 {
			l.enterReloading(config.ReloadDelaySeconds)
		}
	}

	if l.state == StateReloading && !l.reloaded {
		l.reloadRemaining -= deltaTime
		if l.reloadRemaining <= 0 {
			l.reloaded = true
			l.logf("reloading view")
			if l.onReload != nil {
				l.onReload()
			}
		}
	}
}

func (l *Lifecycle) handleOutcome(o persistOutcome) {
	if o.err != nil {
		if errors.Is(o.err, context.Canceled) {
			return
		}
		l.lastErr = o.err
		l.page.ShowError(o.err)
		l.logf("completion failed: %v", o.err)
		return
	}

	l.logf("completed with score %d", o.result.Score)
	l.toastShown = true
	l.toastRemaining = config.CompletionToastSeconds
	l.page.ShowCompleted(o.result, config.CompletionToastSeconds)
}

// enterReloading 隐藏面板，释放滚动和输入，delay 秒后触发重新加载
func (l *Lifecycle) enterReloading(delay float64) {
	l.releaseInput()
	l.music.Stop()
	l.page.ShowOverlay(false)
	l.page.FocusCanvas(false)
	l.releaseScroll()

	l.state = StateReloading
	l.reloadRemaining = delay
}

func (l *Lifecycle) releaseScroll() {
	if l.scrollLocked {
		l.page.LockScroll(false)
		l.scrollLocked = false
	}
}

// releaseInput 解除输入绑定，保证只调用一次
func (l *Lifecycle) releaseInput() {
	if l.unbound {
		return
	}
	l.unbound = true
	if l.unbind != nil {
		l.unbind()
	}
}

// Dispose 丢弃会话：取消进行中的网络操作，停止音乐，解除输入绑定
func (l *Lifecycle) Dispose() {
	l.cancel()
	l.releaseInput()
	l.music.Stop()
	l.logf("disposed in state %s", l.state)
}
