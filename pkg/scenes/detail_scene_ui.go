package scenes

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/decker502/fukuwarai/pkg/components"
	"github.com/decker502/fukuwarai/pkg/config"
	"github.com/decker502/fukuwarai/pkg/entities"
	"github.com/decker502/fukuwarai/pkg/i18n"
	"github.com/decker502/fukuwarai/pkg/session"
	"github.com/decker502/fukuwarai/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// 详情视图标题栏中按钮的 Y 坐标
	detailHeaderButtonY = 20.0
	// 标题栏中状态文字的 Y 坐标
	detailStatusY = 60.0
	// 同一行按钮之间的间距
	buttonGap = 12.0
	// 错误横幅内边距
	bannerPadding = 12.0
)

var (
	detailBackground = color.RGBA{R: 245, G: 245, B: 240, A: 255}
	detailTextColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	detailMutedColor = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	detailErrorColor = color.RGBA{R: 190, G: 40, B: 40, A: 255}
	canvasBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bannerBackground = color.RGBA{R: 140, G: 30, B: 30, A: 230}
)

// initUI 创建详情视图和面板中的按钮、音量滑块
func (s *DetailScene) initUI() {
	em := s.entityManager
	w, h := float64(s.cfg.ScreenWidth), float64(s.cfg.ScreenHeight)

	// 详情视图：启动按钮和加载失败时的重新加载按钮共用右上角
	launchLabel := i18n.T("LAUNCHER_BUTTON")
	s.launcherButton = entities.NewButton(em,
		w-config.DetailMarginX-entities.ButtonWidth(launchLabel, s.uiFont), detailHeaderButtonY,
		launchLabel, s.uiFont, entities.ButtonPrimary, components.GroupDetail, s.onLaunch)

	reloadLabel := i18n.T("RELOAD")
	reloadW := entities.ButtonWidth(reloadLabel, s.uiFont)
	s.detailReloadButton = entities.NewButton(em,
		w-config.DetailMarginX-reloadW, detailHeaderButtonY,
		reloadLabel, s.uiFont, entities.ButtonSecondary, components.GroupDetail, s.requestReload)

	// 面板标题栏
	closeLabel := i18n.T("CLOSE")
	s.closeButton = entities.NewButton(em,
		w-config.OverlayPadding-entities.ButtonWidth(closeLabel, s.uiFont), (config.OverlayHeaderHeight-config.ButtonHeight)/2,
		closeLabel, s.uiFont, entities.ButtonSecondary, components.GroupOverlay, s.onClose)

	// 面板控制栏：音量（左）、重新加载 + 配置完了（右）
	controlsY := h - config.OverlayControlsHeight + (config.OverlayControlsHeight-config.ButtonHeight)/2
	finishLabel := i18n.T("FINISH")
	finishX := w - config.OverlayPadding - entities.ButtonWidth(finishLabel, s.uiFont)
	s.finishButton = entities.NewButton(em, finishX, controlsY,
		finishLabel, s.uiFont, entities.ButtonPrimary, components.GroupOverlay, s.onFinish)
	s.overlayReloadButton = entities.NewButton(em, finishX-buttonGap-reloadW, controlsY,
		reloadLabel, s.uiFont, entities.ButtonSecondary, components.GroupOverlay, s.onOverlayReload)

	volumeLabel := i18n.T("VOLUME")
	labelW := 64.0
	if s.uiFont != nil {
		labelW, _ = text.Measure(volumeLabel, s.uiFont, 0)
	}
	s.volumeSlider = entities.NewVolumeSlider(em,
		config.OverlayPadding+labelW+2*config.SliderKnobSize,
		h-config.OverlayControlsHeight/2-config.SliderHeight/2,
		volumeLabel,
		s.cfg.Audio.GetMusicVolume(),
		s.cfg.Audio.SetMusicVolume,
		func(float64) { s.cfg.Audio.SaveSettings() },
	)
}

func (s *DetailScene) onLaunch() {
	if s.lifecycle != nil {
		s.lifecycle.Open()
	}
}

func (s *DetailScene) onClose() {
	if s.lifecycle != nil {
		s.lifecycle.Close()
	}
}

func (s *DetailScene) onFinish() {
	if s.lifecycle != nil {
		s.lifecycle.Finish()
	}
}

func (s *DetailScene) onOverlayReload() {
	if s.lifecycle != nil {
		s.lifecycle.Reload()
	}
}

// statusMessage 标题下方的说明文字
func (s *DetailScene) statusMessage() (string, color.Color) {
	switch {
	case !s.playable:
		return i18n.T("NOT_PLAYABLE"), detailMutedColor
	case s.loading:
		return i18n.T("LOADING"), detailMutedColor
	case s.loadErr != nil:
		return fmt.Sprintf(i18n.T("LOAD_FAILED"), s.loadErr.Error()), detailErrorColor
	case s.lifecycle != nil && s.lifecycle.State() == session.StateHidden:
		return i18n.T("LAUNCHER_TEXT"), detailTextColor
	}
	return "", detailTextColor
}

// fieldLines 字段列表（每行一项，部件逐个列出）
func (s *DetailScene) fieldLines() []string {
	none := i18n.T("NONE")

	status := s.spec.Status
	if status == "" {
		status = none
	}

	bgm := none
	if s.spec.BGM != nil {
		bgm = s.spec.BGM.Name
	}

	score := "-"
	if v, ok := s.cfg.Record.Number(s.cfg.App.Fields.Score); ok {
		score = strconv.Itoa(int(v))
	}

	lines := []string{
		i18n.T("FIELD_STATUS") + ": " + status,
		i18n.T("FIELD_DIFFICULTY") + ": " + strconv.FormatFloat(s.spec.Weight, 'g', -1, 64),
		i18n.T("FIELD_BGM") + ": " + bgm,
		i18n.T("FIELD_SCORE") + ": " + score,
		i18n.T("FIELD_PARTS") + ": " + strconv.Itoa(len(s.spec.Parts)),
	}
	for _, part := range s.spec.Parts {
		lines = append(lines, "    "+part.Name)
	}
	return lines
}

// Draw 绘制详情视图，面板打开时叠加面板
func (s *DetailScene) Draw(screen *ebiten.Image) {
	screen.Fill(detailBackground)
	s.drawDetail(screen)

	detail := components.GroupDetail
	s.buttonRenderSystem.Draw(screen, &detail)

	if s.overlayVisible {
		s.drawOverlay(screen)
	}
	s.toastRenderSystem.Draw(screen)
}

func (s *DetailScene) drawDetail(screen *ebiten.Image) {
	w, h := s.cfg.ScreenWidth, s.cfg.ScreenHeight

	drawText(screen, fmt.Sprintf(i18n.T("RECORD_TITLE"), s.spec.RecordID), s.titleFont,
		config.DetailMarginX, detailHeaderButtonY+config.ButtonHeight/2,
		text.AlignStart, text.AlignCenter, detailTextColor)

	top := config.DetailMarginTop
	if msg, clr := s.statusMessage(); msg != "" {
		lines := utils.WrapText(msg, s.uiFont, float64(w)-2*config.DetailMarginX)
		for i, line := range lines {
			drawText(screen, line, s.uiFont, config.DetailMarginX, detailStatusY+float64(i)*config.DetailLineHeight,
				text.AlignStart, text.AlignStart, clr)
		}
		top += float64(len(lines)-1) * config.DetailLineHeight
	}

	// 字段列表在标题区域以下滚动
	if int(top) >= h {
		return
	}
	list := screen.SubImage(image.Rect(0, int(top), w, h)).(*ebiten.Image)
	for i, line := range s.fieldLines() {
		y := top + float64(i)*config.DetailLineHeight - s.scrollY
		drawText(list, line, s.uiFont, config.DetailMarginX, y, text.AlignStart, text.AlignStart, detailTextColor)
	}
}

func (s *DetailScene) drawOverlay(screen *ebiten.Image) {
	w, h := float32(s.cfg.ScreenWidth), float32(s.cfg.ScreenHeight)
	vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: uint8(255 * config.OverlayBackdropAlpha)}, false)

	drawText(screen, i18n.T("OVERLAY_TITLE"), s.titleFont,
		config.OverlayPadding, config.OverlayHeaderHeight/2,
		text.AlignStart, text.AlignCenter, color.White)

	cx, cy, cw, ch := s.canvasRect()
	vector.FillRect(screen, float32(cx), float32(cy), float32(cw), float32(ch), canvasBackground, false)
	if s.graph != nil {
		canvas := screen.SubImage(image.Rect(int(cx), int(cy), int(cx+cw), int(cy+ch))).(*ebiten.Image)
		var geoM ebiten.GeoM
		geoM.Translate(cx, cy)
		s.graph.Draw(canvas, geoM)
	}

	if s.overlayErr != nil {
		s.drawErrorBanner(screen, cx, cy, cw)
	}

	overlay := components.GroupOverlay
	s.buttonRenderSystem.Draw(screen, &overlay)
	s.sliderRenderSystem.Draw(screen)

	if s.lifecycle != nil && s.lifecycle.Busy() {
		drawText(screen, i18n.T("SAVING"), s.uiFont,
			float64(w)/2, float64(h)-config.OverlayControlsHeight/2,
			text.AlignCenter, text.AlignCenter, color.White)
	}
}

// drawErrorBanner 在画布顶部显示完成失败的原因和操作提示
func (s *DetailScene) drawErrorBanner(screen *ebiten.Image, x, y, w float64) {
	lines := utils.WrapText(fmt.Sprintf(i18n.T("SAVE_FAILED"), s.overlayErr.Error()), s.uiFont, w-2*bannerPadding)
	lines = append(lines, i18n.T("RETRY_HINT"))

	h := float64(len(lines))*config.DetailLineHeight + 2*bannerPadding
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), bannerBackground, false)
	for i, line := range lines {
		drawText(screen, line, s.uiFont, x+bannerPadding, y+bannerPadding+float64(i)*config.DetailLineHeight,
			text.AlignStart, text.AlignStart, color.White)
	}
}

func drawText(dst *ebiten.Image, str string, face text.Face, x, y float64, primary, secondary text.Align, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = primary
	op.LayoutOptions.SecondaryAlign = secondary
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}
