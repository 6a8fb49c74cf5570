package game

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/decker502/fukuwarai/pkg/kintone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAttachmentStore 是 AttachmentStore 的 mock
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) DownloadFile(ctx context.Context, fileKey string) ([]byte, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// pngBytes 生成 w×h 的纯色 PNG
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadImageAbsent(t *testing.T) {
	store := new(MockAttachmentStore)
	loader := NewAssetLoader(store)

	asset, err := loader.LoadImage(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, asset)
	store.AssertNotCalled(t, "DownloadFile", mock.Anything, mock.Anything)
}

// TestLoadImagesKeepsOrder 按记录中的顺序逐个下载
func TestLoadImagesKeepsOrder(t *testing.T) {
	store := new(MockAttachmentStore)
	var calls []string
	for _, key := range []string{"k1", "k2", "k3"} {
		key := key
		store.On("DownloadFile", mock.Anything, key).
			Run(func(mock.Arguments) { calls = append(calls, key) }).
			Return(pngBytes(t, 4, 3, color.White), nil).Once()
	}

	loader := NewAssetLoader(store)
	assets, err := loader.LoadImages(context.Background(), []kintone.Attachment{
		{FileKey: "k1", Name: "eye.png"},
		{FileKey: "k2", Name: "nose.png"},
		{FileKey: "k3", Name: "mouth.png"},
	})
	require.NoError(t, err)
	require.Len(t, assets, 3)

	assert.Equal(t, []string{"k1", "k2", "k3"}, calls)
	assert.Equal(t, "eye.png", assets[0].Name)
	assert.Equal(t, "mouth.png", assets[2].Name)
	assert.Equal(t, 4, assets[1].Image.Bounds().Dx())
	store.AssertExpectations(t)
}

// TestLoadImagesAbortsOnFailure 任意一个失败即中止，后续不再下载
func TestLoadImagesAbortsOnFailure(t *testing.T) {
	store := new(MockAttachmentStore)
	store.On("DownloadFile", mock.Anything, "k1").Return(pngBytes(t, 2, 2, color.Black), nil).Once()
	store.On("DownloadFile", mock.Anything, "k2").Return(nil, errors.New("HTTP 520")).Once()

	loader := NewAssetLoader(store)
	_, err := loader.LoadImages(context.Background(), []kintone.Attachment{
		{FileKey: "k1", Name: "eye.png"},
		{FileKey: "k2", Name: "nose.png"},
		{FileKey: "k3", Name: "mouth.png"},
	})

	var fetchErr *AssetFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "nose.png", fetchErr.Name)
	assert.Contains(t, err.Error(), "HTTP 520")
	store.AssertNotCalled(t, "DownloadFile", mock.Anything, "k3")
}

func TestLoadImageUndecodable(t *testing.T) {
	store := new(MockAttachmentStore)
	store.On("DownloadFile", mock.Anything, "bad").Return([]byte("not an image"), nil)

	_, err := NewAssetLoader(store).LoadImage(context.Background(), &kintone.Attachment{FileKey: "bad", Name: "x.png"})
	var fetchErr *AssetFetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestLoadSession(t *testing.T) {
	store := new(MockAttachmentStore)
	store.On("DownloadFile", mock.Anything, "base").Return(pngBytes(t, 8, 6, color.White), nil)
	store.On("DownloadFile", mock.Anything, "p1").Return(pngBytes(t, 2, 2, color.Black), nil)
	store.On("DownloadFile", mock.Anything, "bgm").Return([]byte("ID3..."), nil)

	assets, err := NewAssetLoader(store).LoadSession(context.Background(), SessionAssetsRequest{
		Background: &kintone.Attachment{FileKey: "base", Name: "face.png"},
		Parts:      []kintone.Attachment{{FileKey: "p1", Name: "eye.png"}},
		Music:      &kintone.Attachment{FileKey: "bgm", Name: "bgm.mp3"},
	})
	require.NoError(t, err)
	require.NotNil(t, assets.Background)
	assert.Equal(t, "face.png", assets.Background.Name)
	assert.Len(t, assets.Parts, 1)
	require.NotNil(t, assets.Music)
	assert.Equal(t, []byte("ID3..."), assets.Music.Data)

	assets.Release()
	assets.Release()
	assert.True(t, assets.Released())
	assert.Nil(t, assets.Parts)
}

// TestLoadSessionMusicBestEffort 音乐下载失败时以静音继续
func TestLoadSessionMusicBestEffort(t *testing.T) {
	store := new(MockAttachmentStore)
	store.On("DownloadFile", mock.Anything, "p1").Return(pngBytes(t, 2, 2, color.Black), nil)
	store.On("DownloadFile", mock.Anything, "bgm").Return(nil, errors.New("timeout"))

	assets, err := NewAssetLoader(store).LoadSession(context.Background(), SessionAssetsRequest{
		Parts: []kintone.Attachment{{FileKey: "p1", Name: "eye.png"}},
		Music: &kintone.Attachment{FileKey: "bgm", Name: "bgm.mp3"},
	})
	require.NoError(t, err)
	assert.Nil(t, assets.Background)
	assert.Nil(t, assets.Music)
}

// TestLoadSessionBackgroundFailure 背景失败时整个会话构建失败
func TestLoadSessionBackgroundFailure(t *testing.T) {
	store := new(MockAttachmentStore)
	store.On("DownloadFile", mock.Anything, "base").Return(nil, errors.New("forbidden"))
	store.On("DownloadFile", mock.Anything, "p1").Return(pngBytes(t, 2, 2, color.Black), nil).Maybe()

	assets, err := NewAssetLoader(store).LoadSession(context.Background(), SessionAssetsRequest{
		Background: &kintone.Attachment{FileKey: "base", Name: "face.png"},
		Parts:      []kintone.Attachment{{FileKey: "p1", Name: "eye.png"}},
	})
	assert.Nil(t, assets)

	var fetchErr *AssetFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "face.png", fetchErr.Name)
}

func TestNewMusicPlayerErrors(t *testing.T) {
	rm := NewResourceManager(nil, "")
	_, err := rm.NewMusicPlayer(nil)
	assert.Error(t, err)

	_, err = rm.NewMusicPlayer(&ResolvedAsset{Name: "bgm.mp3"})
	assert.ErrorContains(t, err, "audio context")
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage("a.png", pngBytes(t, 3, 5, color.White))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 5), img.Bounds())

	_, err = DecodeImage("a.png", []byte{0, 1, 2})
	assert.ErrorContains(t, err, "a.png")
}
