package game

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/decker502/fukuwarai/pkg/kintone"
	"golang.org/x/sync/errgroup"
)

// AttachmentStore 远程附件存储（只读部分）
// *kintone.Client 实现了此接口
type AttachmentStore interface {
	DownloadFile(ctx context.Context, fileKey string) ([]byte, error)
}

// ResolvedAsset 已下载到本地的附件
// Image 只对图片附件有效；音频附件只保留原始数据，由 ResourceManager 解码
type ResolvedAsset struct {
	Name  string
	Data  []byte
	Image image.Image
}

// AssetFetchError 必需资源（背景或部件图片）下载或解码失败
// 会中止会话的构建
type AssetFetchError struct {
	Name    string // 附件文件名
	FileKey string
	Err     error
}

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("failed to load asset %q: %v", e.Name, e.Err)
}

func (e *AssetFetchError) Unwrap() error {
	return e.Err
}

// SessionAssetsRequest 一次会话需要的附件
type SessionAssetsRequest struct {
	Background *kintone.Attachment  // 0 或 1 个
	Parts      []kintone.Attachment // 按记录中的顺序
	Music      *kintone.Attachment  // 0 或 1 个，尽力而为
}

// Assets 一次会话的全部已解析资源
// 生命周期与会话一致，结束时必须调用 Release
type Assets struct {
	Background *ResolvedAsset
	Parts      []ResolvedAsset
	Music      *ResolvedAsset

	released bool
}

// Release 释放资源数据，可以重复调用
func (a *Assets) Release() {
	if a == nil || a.released {
		return
	}
	a.released = true
	a.Background = nil
	a.Parts = nil
	a.Music = nil
}

// Released 是否已释放
func (a *Assets) Released() bool {
	return a == nil || a.released
}

// AssetLoader 把附件引用解析为本地资源
//
// 部件列表按顺序逐个下载（限制峰值内存并保持顺序确定）；
// 背景和部件列表互不依赖，并发下载。
type AssetLoader struct {
	store AttachmentStore
}

// NewAssetLoader 创建资源加载器
func NewAssetLoader(store AttachmentStore) *AssetLoader {
	return &AssetLoader{store: store}
}

// LoadImage 下载并解码单个图片附件
// 附件为 nil 时返回 nil, nil
func (l *AssetLoader) LoadImage(ctx context.Context, att *kintone.Attachment) (*ResolvedAsset, error) {
	if att == nil {
		return nil, nil
	}

	data, err := l.store.DownloadFile(ctx, att.FileKey)
	if err != nil {
		return nil, &AssetFetchError{Name: att.Name, FileKey: att.FileKey, Err: err}
	}
	img, err := DecodeImage(att.Name, data)
	if err != nil {
		return nil, &AssetFetchError{Name: att.Name, FileKey: att.FileKey, Err: err}
	}
	return &ResolvedAsset{Name: att.Name, Data: data, Image: img}, nil
}

// LoadImages 按顺序下载图片列表，任意一个失败即中止
// 返回的列表与输入顺序一致
func (l *AssetLoader) LoadImages(ctx context.Context, atts []kintone.Attachment) ([]ResolvedAsset, error) {
	assets := make([]ResolvedAsset, 0, len(atts))
	for i := range atts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		asset, err := l.LoadImage(ctx, &atts[i])
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

// LoadAudio 下载音频附件（不解码）
// 附件为 nil 时返回 nil, nil
func (l *AssetLoader) LoadAudio(ctx context.Context, att *kintone.Attachment) (*ResolvedAsset, error) {
	if att == nil {
		return nil, nil
	}
	data, err := l.store.DownloadFile(ctx, att.FileKey)
	if err != nil {
		return nil, &AssetFetchError{Name: att.Name, FileKey: att.FileKey, Err: err}
	}
	return &ResolvedAsset{Name: att.Name, Data: data}, nil
}

// LoadSession 加载一次会话需要的全部资源
//
// 背景与部件并发下载，任一失败返回 *AssetFetchError；
// 之后再下载音乐，失败只记录警告并以静音继续。
func (l *AssetLoader) LoadSession(ctx context.Context, req SessionAssetsRequest) (*Assets, error) {
	assets := &Assets{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bg, err := l.LoadImage(gctx, req.Background)
		if err != nil {
			return err
		}
		assets.Background = bg
		return nil
	})
	g.Go(func() error {
		parts, err := l.LoadImages(gctx, req.Parts)
		if err != nil {
			return err
		}
		assets.Parts = parts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	music, err := l.LoadAudio(ctx, req.Music)
	if err != nil {
		log.Printf("[AssetLoader] Warning: %v (continuing without music)", err)
		music = nil
	}
	assets.Music = music

	log.Printf("[AssetLoader] Loaded background=%t parts=%d music=%t",
		assets.Background != nil, len(assets.Parts), assets.Music != nil)
	return assets, nil
}
