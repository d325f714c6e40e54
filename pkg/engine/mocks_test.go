package engine

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// --- Mocks ---

// mockSynthesizer は既定でウィンドウの複製を返します（ドライラン相当）。
// 左右のドライバーから並行に呼ばれるため記録はロックで守ります。
type mockSynthesizer struct {
	mu       sync.Mutex
	requests []SynthesisRequest
	fn       func(req SynthesisRequest) (*raster.Raster, error)
}

func (m *mockSynthesizer) Synthesize(_ context.Context, req SynthesisRequest) (*raster.Raster, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.fn != nil {
		return m.fn(req)
	}
	return req.Window.Clone(), nil
}

func (m *mockSynthesizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// mockSink はステップ名だけを記録するトレースシンクです。
type mockSink struct {
	mu    sync.Mutex
	saved []string
}

func (s *mockSink) SavePNG(step, name string, _ *raster.Raster) {
	s.mu.Lock()
	s.saved = append(s.saved, step+"/"+name+".png")
	s.mu.Unlock()
}

func (s *mockSink) SaveJPEG(step, name string, _ *raster.Raster) {
	s.mu.Lock()
	s.saved = append(s.saved, step+"/"+name+".jpg")
	s.mu.Unlock()
}

// --- Helpers ---

func testSeed(t *testing.T, width, height int) *raster.Raster {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 251), G: uint8(y % 251), B: 7, A: 255})
		}
	}
	r, err := raster.FromImage(img)
	if err != nil {
		t.Fatalf("failed to build test seed: %v", err)
	}
	return r
}
