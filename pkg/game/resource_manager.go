package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/fukuwarai/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/font/basicfont"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ResourceManager is responsible for turning downloaded bytes into usable resources.
// It decodes attachment images, creates looping music players and caches font faces.
//
// Thread Safety Note:
// DecodeImage is safe to call from loader goroutines. NewMusicPlayer and Face
// must be called from the UI goroutine.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, cfg.FontPath)
//	face := rm.Face(18)
type ResourceManager struct {
	audioContext  *audio.Context         // Audio context used for music decoding, may be nil (silent mode)
	fontPath      string                 // Optional TTF/OTF file (filesystem or embedded "data/" path)
	fontSource    *text.GoTextFaceSource // Parsed font, nil until the first Face call
	fontFaceCache map[float64]text.Face  // size -> face
}

// NewResourceManager creates a new ResourceManager.
//
// Parameters:
//   - audioContext: the global audio context; nil disables music.
//   - fontPath: optional font file; empty uses the bundled M+ 1p font.
func NewResourceManager(audioContext *audio.Context, fontPath string) *ResourceManager {
	return &ResourceManager{
		audioContext:  audioContext,
		fontPath:      fontPath,
		fontFaceCache: make(map[float64]text.Face),
	}
}

// DecodeImage decodes attachment bytes into an image.
// Supported formats: PNG, JPEG, GIF, WebP, BMP.
func DecodeImage(name string, data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}
	return img, nil
}

// NewMusicPlayer decodes a music attachment and wraps it in an infinite loop.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg/.oga), WAV (.wav).
// The stream is resampled to the context sample rate.
//
// Returns an error if the audio context is missing, the format is unsupported,
// or decoding fails. The player is ready to play but not started.
func (rm *ResourceManager) NewMusicPlayer(asset *ResolvedAsset) (*audio.Player, error) {
	if asset == nil {
		return nil, fmt.Errorf("no music asset")
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not available")
	}

	reader := bytes.NewReader(asset.Data)
	sampleRate := rm.audioContext.SampleRate()
	ext := strings.ToLower(filepath.Ext(asset.Name))

	var stream interface {
		io.ReadSeeker
		Length() int64
	}

	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", asset.Name, err)
		}
		stream = s
	case ".ogg", ".oga":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", asset.Name, err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", asset.Name, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %q (supported: .mp3, .ogg, .wav)", ext)
	}

	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", asset.Name, err)
	}
	return player, nil
}

// Face returns a cached text face of the given size.
//
// The configured font file is tried first, then the bundled M+ 1p font
// (covers Japanese). If neither can be parsed the 7x13 bitmap font is used,
// which only renders ASCII.
func (rm *ResourceManager) Face(size float64) text.Face {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face
	}

	var face text.Face
	if src := rm.loadFontSource(); src != nil {
		face = &text.GoTextFace{Source: src, Size: size, Direction: text.DirectionLeftToRight}
	} else {
		face = text.NewGoXFace(basicfont.Face7x13)
	}
	rm.fontFaceCache[size] = face
	return face
}

func (rm *ResourceManager) loadFontSource() *text.GoTextFaceSource {
	if rm.fontSource != nil {
		return rm.fontSource
	}

	if rm.fontPath != "" {
		data, err := readResource(rm.fontPath)
		if err == nil {
			src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
			if err == nil {
				rm.fontSource = src
				return src
			}
			log.Printf("[ResourceManager] Warning: failed to parse font %s: %v", rm.fontPath, err)
		} else {
			log.Printf("[ResourceManager] Warning: failed to read font %s: %v", rm.fontPath, err)
		}
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
	if err != nil {
		log.Printf("[ResourceManager] Warning: bundled font unusable: %v (falling back to bitmap font)", err)
		return nil
	}
	rm.fontSource = src
	return src
}

// readResource reads an embedded "data/" path or a regular file.
func readResource(path string) ([]byte, error) {
	if strings.HasPrefix(filepath.ToSlash(path), "data/") && embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
