package engine

import (
	"context"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// SynthesisRequest は生成サービスへの1回分の要求です。
// Expected は要求を発行したドライバーが所有し、この呼び出しの間だけ有効です。
type SynthesisRequest struct {
	Window    *raster.Raster
	Expected  raster.Size
	Direction domain.Direction
	Stage     domain.Stage
}

// Synthesizer は外部の画像生成サービスとの窓口です。
// 呼び出しはブロッキングの要求/応答で、失敗は ErrSynthesis として
// そのまま拡張リクエスト全体の失敗になります。
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*raster.Raster, error)
}

// TraceSink はステップごとの中間画像を記録します。
// 記録はベストエフォートで、実装が失敗してもパイプラインを止めてはいけません。
type TraceSink interface {
	SavePNG(step, name string, r *raster.Raster)
	SaveJPEG(step, name string, r *raster.Raster)
}

func savePNG(sink TraceSink, step, name string, r *raster.Raster) {
	if sink != nil {
		sink.SavePNG(step, name, r)
	}
}

func saveJPEG(sink TraceSink, step, name string, r *raster.Raster) {
	if sink != nil {
		sink.SaveJPEG(step, name, r)
	}
}
