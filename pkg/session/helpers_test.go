package session

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/decker502/fukuwarai/pkg/game"
	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/decker502/fukuwarai/pkg/scoring"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore testify mock 实现的 RecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) UploadFile(ctx context.Context, name, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, name, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockRecordStore) UpdateRecord(ctx context.Context, update *kintone.RecordUpdate) (string, error) {
	args := m.Called(ctx, update)
	return args.String(0), args.Error(1)
}

// fakeScene 固定的画布
type fakeScene struct {
	placements []scoring.Placement
	snapshots  []float64
}

func (s *fakeScene) Placements() []scoring.Placement {
	out := make([]scoring.Placement, len(s.placements))
	copy(out, s.placements)
	return out
}

func (s *fakeScene) Snapshot(scale float64) *image.RGBA {
	s.snapshots = append(s.snapshots, scale)
	return image.NewRGBA(image.Rect(0, 0, int(10*scale), int(8*scale)))
}

// fakePlayer 记录调用次数的音乐播放器
type fakePlayer struct {
	playing bool
	plays   int
	pauses  int
	rewinds int
}

func (p *fakePlayer) Play() {
	if !p.playing {
		p.plays++
	}
	p.playing = true
}

func (p *fakePlayer) Pause() {
	if p.playing {
		p.pauses++
	}
	p.playing = false
}

func (p *fakePlayer) IsPlaying() bool   { return p.playing }
func (p *fakePlayer) SetVolume(float64) {}

func (p *fakePlayer) Rewind() error {
	p.rewinds++
	return nil
}

// fakePage 记录会话对宿主视图的操作
type fakePage struct {
	locks       int // 当前锁定层数
	lockCalls   int
	overlay     bool
	focused     bool
	completed   []*Result
	toastLength float64
	err         error
}

func (p *fakePage) LockScroll(locked bool) {
	if locked {
		p.locks++
		p.lockCalls++
	} else {
		p.locks--
	}
}

func (p *fakePage) ShowOverlay(visible bool) { p.overlay = visible }
func (p *fakePage) FocusCanvas(focused bool) { p.focused = focused }
func (p *fakePage) ShowError(err error)      { p.err = err }

func (p *fakePage) ShowCompleted(result *Result, seconds float64) {
	p.completed = append(p.completed, result)
	p.toastLength = seconds
}

// newTestMusic 创建带 fakePlayer 的音乐句柄
func newTestMusic() (*game.MusicHandle, *fakePlayer) {
	p := &fakePlayer{}
	return game.NewMusicHandle(p), p
}

// pumpUntil 以 60fps 的步长调用 Update，直到 cond 成立或超时
func pumpUntil(t *testing.T, l *Lifecycle, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached, state=%s", l.State())
		}
		l.Update(1.0 / 60)
		time.Sleep(time.Millisecond)
	}
}
