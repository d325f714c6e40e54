package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/engine"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// IdentitySynthesizer はウィンドウをそのまま返すドライラン用の実装です。
// 生成サービスを呼ばずに分割・抽出・結合のパイプライン全体を検証できます。
type IdentitySynthesizer struct{}

var _ engine.Synthesizer = IdentitySynthesizer{}

// Synthesize はスライド済みウィンドウの複製を応答として返します。
func (IdentitySynthesizer) Synthesize(_ context.Context, req engine.SynthesisRequest) (*raster.Raster, error) {
	if req.Window == nil {
		return nil, fmt.Errorf("%w: ウィンドウがありません", domain.ErrSynthesis)
	}
	return req.Window.Clone(), nil
}
