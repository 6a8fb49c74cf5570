package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/i18n"
	"github.com/decker502/fukuwarai/pkg/input"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// RecordReader 读取 kintone 记录
// *kintone.Client 实现了此接口
type RecordReader interface {
	GetRecord(ctx context.Context, recordID string) (*kintone.Record, error)
}

// LoadingConfig 创建 LoadingScene 需要的依赖
type LoadingConfig struct {
	RecordID   string
	Reader     RecordReader
	Fonts      FontSource // 可为 nil
	Dispatcher *input.Dispatcher

	ScreenWidth  int
	ScreenHeight int

	// Build 用读取到的记录创建详情场景
	Build func(rec *kintone.Record) game.Scene
	// SwitchTo 切换到新场景（当前场景随后被丢弃）
	SwitchTo func(next game.Scene)
	// OnReload 读取失败后按 R 重新开始
	OnReload func()
}

type recordOutcome struct {
	record *kintone.Record
	err    error
}

// LoadingScene 在后台读取记录，完成后切换到详情场景
// 读取失败时显示错误，按 R 重试
type LoadingScene struct {
	cfg LoadingConfig
	// Font resources
	textFont text.Face

	cancel  context.CancelFunc
	results chan recordOutcome
	err     error
	done    bool

	elapsedTime float64 // 用于加载动画

	unsubscribeKeys func()
	disposed        bool
}

// NewLoadingScene 创建加载场景并立即开始读取记录
func NewLoadingScene(cfg LoadingConfig) *LoadingScene {
	s := &LoadingScene{
		cfg:     cfg,
		results: make(chan recordOutcome, 1),
	}
	if cfg.Fonts != nil {
		s.textFont = cfg.Fonts.Face(config.UIFontSize)
	}
	s.unsubscribeKeys = cfg.Dispatcher.Subscribe(s.handleKey)

	ctx, cancel := context.WithTimeout(context.Background(), kintone.DefaultTimeout)
	s.cancel = cancel
	results := s.results
	go func() {
		rec, err := cfg.Reader.GetRecord(ctx, cfg.RecordID)
		results <- recordOutcome{record: rec, err: err}
	}()

	log.Printf("[LoadingScene] Reading record %s", cfg.RecordID)
	return s
}

func (s *LoadingScene) handleKey(ev input.KeyEvent) {
	if ev.Key != ebiten.KeyR || ev.Repeat || s.err == nil || s.disposed {
		return
	}
	if s.cfg.OnReload != nil {
		s.cfg.OnReload()
	}
}

// Update 轮询读取结果
func (s *LoadingScene) Update(deltaTime float64) {
	if s.disposed || s.done {
		return
	}
	s.elapsedTime += deltaTime

	select {
	case o := <-s.results:
		s.done = true
		s.cancel()
		if o.err != nil {
			s.err = o.err
			log.Printf("[LoadingScene] Failed to read record %s: %v", s.cfg.RecordID, o.err)
			return
		}
		log.Printf("[LoadingScene] Record %s loaded (revision %s)", o.record.ID(), o.record.Revision())
		s.cfg.SwitchTo(s.cfg.Build(o.record))
	default:
	}
}

// Err 读取失败的原因
func (s *LoadingScene) Err() error {
	return s.err
}

// Draw 显示加载提示或错误
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(detailBackground)

	if s.err == nil {
		dots := strings.Repeat(".", int(s.elapsedTime*3)%4)
		drawText(screen, i18n.T("LOADING")+dots, s.textFont,
			float64(s.cfg.ScreenWidth)/2, float64(s.cfg.ScreenHeight)/2,
			text.AlignCenter, text.AlignCenter, detailMutedColor)
		return
	}

	maxWidth := float64(s.cfg.ScreenWidth) - 2*config.DetailMarginX
	lines := utils.WrapText(fmt.Sprintf(i18n.T("RECORD_LOAD_FAILED"), s.err.Error()), s.textFont, maxWidth)
	lines = append(lines, "", i18n.T("RELOAD_HINT"))
	for i, line := range lines {
		clr := color.Color(detailErrorColor)
		if i >= len(lines)-2 {
			clr = detailTextColor
		}
		drawText(screen, line, s.textFont,
			config.DetailMarginX, config.DetailMarginTop+float64(i)*config.DetailLineHeight,
			text.AlignStart, text.AlignStart, clr)
	}
}

// Dispose 取消未完成的读取并移除按键监听
func (s *LoadingScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.cancel()
	s.unsubscribeKeys()
}
