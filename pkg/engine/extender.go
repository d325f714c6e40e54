package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// DefaultIterations は左右それぞれの既定の拡張回数です。
const DefaultIterations = 3

// Extender は3つの方向ドライバーを順序付けて実行する入口です。
type Extender struct {
	synth Synthesizer
	sink  TraceSink
}

// Result は拡張リクエスト1回分の成果物です。
type Result struct {
	Seed   *raster.Raster
	Canvas *raster.Raster
	Steps  []domain.StepRecord

	// SeedOffset は最終キャンバス内でシードの左端が置かれている位置です。
	// 左方向に追加された幅の合計に一致します。
	SeedOffset int

	// Row は下方向拡張を実行した場合のみ設定されます。
	Row *domain.RowCoverage
}

// NewExtender は依存関係を注入して Extender を初期化します。
// sink は nil を許容（トレースなし動作）。
func NewExtender(synth Synthesizer, sink TraceSink) (*Extender, error) {
	if synth == nil {
		return nil, fmt.Errorf("synthesizer is required")
	}
	return &Extender{synth: synth, sink: sink}, nil
}

// Extend はシードを左右へ iterations 回ずつ拡張し、結合したうえで、
// 要求があれば下方向へ1段拡張します。失敗はリクエスト全体の失敗であり、
// 部分的なキャンバスは返しません。
func (e *Extender) Extend(ctx context.Context, seed *raster.Raster, iterations int, extendDownward bool) (*Result, error) {
	if seed == nil || seed.Width() <= 0 || seed.Height() <= 0 {
		return nil, fmt.Errorf("%w: シードが空です", domain.ErrInvalidSeed)
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	log := slog.With(
		"request_id", uuid.NewString(),
		"seed_width", seed.Width(),
		"seed_height", seed.Height(),
		"iterations", iterations,
	)
	log.Info("キャンバス拡張を開始します", "extend_downward", extendDownward)

	savePNG(e.sink, "seed", "seed", seed)

	rightDrv := newHorizontalDriver(domain.DirectionRight, seed, iterations, e.synth, e.sink)
	leftDrv := newHorizontalDriver(domain.DirectionLeft, seed, iterations, e.synth, e.sink)

	// 左右のループはどちらも元のシードだけを読むため独立しており、
	// 並行に実行できる。結合は完了順に関わらず固定順で行う。
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rightDrv.Run(gctx) })
	g.Go(func() error { return leftDrv.Run(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas, offset, err := mergeHorizontal(leftDrv.acc, rightDrv.bands, seed.Width())
	if err != nil {
		return nil, fmt.Errorf("左右キャンバスの結合: %w", err)
	}
	savePNG(e.sink, "merge", "merged", canvas)

	steps := make([]domain.StepRecord, 0, len(rightDrv.steps)+len(leftDrv.steps))
	steps = append(steps, rightDrv.steps...)
	steps = append(steps, leftDrv.steps...)

	result := &Result{Seed: seed, Canvas: canvas, Steps: steps, SeedOffset: offset}

	if extendDownward {
		down, err := newDownwardDriver(seed, e.synth, e.sink)
		if err != nil {
			return nil, err
		}
		canvas, err = down.Run(ctx, canvas)
		if err != nil {
			return nil, err
		}
		result.Canvas = canvas
		result.Steps = append(result.Steps, down.steps...)
		coverage := down.coverage
		result.Row = &coverage
	}

	log.Info("キャンバス拡張が完了しました",
		"width", result.Canvas.Width(),
		"height", result.Canvas.Height(),
		"seed_offset", result.SeedOffset,
		"steps", len(result.Steps),
	)
	return result, nil
}
