package engine

import (
	"context"
	"fmt"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// downwardDriver は結合済みキャンバスを下方向へ1タイル分拡張します。
// タイル単位は結合後のキャンバスではなく元のシードの3分割から取ります。
// 下方向の拡張は、キャンバスが横へどれだけ成長していても元のシードの
// タイル格子に揃っていなければならないためです。
type downwardDriver struct {
	synth Synthesizer
	sink  TraceSink
	tile  raster.Size

	steps    []domain.StepRecord
	coverage domain.RowCoverage
}

func newDownwardDriver(seed *raster.Raster, synth Synthesizer, sink TraceSink) (*downwardDriver, error) {
	cols, err := raster.SplitThirds(seed.Width())
	if err != nil {
		return nil, err
	}
	rows, err := raster.SplitThirds(seed.Height())
	if err != nil {
		return nil, err
	}
	return &downwardDriver{
		synth: synth,
		sink:  sink,
		// 端数を吸収する最終区間をタイル単位とする
		tile: raster.Size{Width: cols.Last.Length(), Height: rows.Last.Length()},
	}, nil
}

// Run はキャンバスの高さを1タイル分だけ広げ、新しい帯を左から右へ埋めます。
// 垂直方向の合成は1回だけで、残りの幅は水平方向の合成を繰り返して覆います。
// 1回の垂直呼び出しはシードのタイル3枚分の幅しか扱えないためです。
func (d *downwardDriver) Run(ctx context.Context, canvas *raster.Raster) (*raster.Raster, error) {
	grown, err := raster.GrowBottom(canvas, d.tile.Height)
	if err != nil {
		return nil, err
	}

	grown, response, err := d.verticalStep(ctx, grown)
	if err != nil {
		return nil, fmt.Errorf("下方向の垂直ステップ: %w", err)
	}

	// 新しい帯の水平充填。オフセット0から始め、タイルの実幅ずつ進める。
	offset := 0
	context := response
	for i := 1; ; i++ {
		if offset >= grown.Width() {
			d.coverage.Covered = true
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var advanced int
		grown, context, advanced, err = d.horizontalStep(ctx, grown, context, offset, i)
		if err != nil {
			return nil, fmt.Errorf("下方向の水平ステップ %d 回目: %w", i, err)
		}

		var ok bool
		offset, ok = d.advanceRow(offset, advanced)
		if !ok {
			break
		}
	}
	return grown, nil
}

// advanceRow は水平充填の次のオフセットを決めます。増分が出ない場合は
// ループを打ち切り、全幅到達と区別できるよう Stalled を立てて報告します。
// タイル幅は3分割が成立する限り1以上なので、この打ち切りが起きるのは
// タイル抽出が退化したときに限られます。
func (d *downwardDriver) advanceRow(offset, advanced int) (int, bool) {
	if advanced <= 0 {
		d.coverage.Stalled = true
		return offset, false
	}
	return offset + advanced, true
}

// verticalStep はキャンバス左上からコンテキストブロックを取り、上へ
// スライドして合成し、下3分の1を新しい帯の先頭に重ねます。
func (d *downwardDriver) verticalStep(ctx context.Context, grown *raster.Raster) (*raster.Raster, *raster.Raster, error) {
	blockWidth := min(3*d.tile.Width, grown.Width())
	block, err := raster.Extract(grown, raster.Region{Left: 0, Top: 0, Width: blockWidth, Height: grown.Height()})
	if err != nil {
		return nil, nil, err
	}
	savePNG(d.sink, "down_v_01", "context", block)

	window, err := raster.SlideUp(block)
	if err != nil {
		return nil, nil, err
	}
	savePNG(d.sink, "down_v_01", "input", window)

	expected := block.Size()
	resp, err := d.synth.Synthesize(ctx, SynthesisRequest{
		Window:    window,
		Expected:  expected,
		Direction: domain.DirectionDown,
		Stage:     domain.StageVertical,
	})
	if err != nil {
		return nil, nil, err
	}
	resp, err = raster.Reconcile(resp, expected.Width, expected.Height)
	if err != nil {
		return nil, nil, err
	}
	saveJPEG(d.sink, "down_v_01", "result", resp)

	band, err := raster.BottomThird(resp)
	if err != nil {
		return nil, nil, err
	}
	savePNG(d.sink, "down_v_01", "band", band)

	grown, err = raster.CompositeBottomSegment(grown, band, 0, grown.Height()-band.Height())
	if err != nil {
		return nil, nil, err
	}
	d.steps = append(d.steps, domain.StepRecord{Iteration: 1, Direction: domain.DirectionDown, Stage: domain.StageVertical})
	return grown, resp, nil
}

// horizontalStep は直前の合成フレームを左へスライドして合成し、その右
// 3分の1の下端タイルを次の水平オフセットに重ねます。進んだ幅を返します。
func (d *downwardDriver) horizontalStep(ctx context.Context, grown, context *raster.Raster, offset, iteration int) (*raster.Raster, *raster.Raster, int, error) {
	stepID := fmt.Sprintf("down_h_%02d", iteration)
	savePNG(d.sink, stepID, "context", context)

	window, err := raster.SlideLeft(context)
	if err != nil {
		return nil, nil, 0, err
	}
	savePNG(d.sink, stepID, "input", window)

	expected := context.Size()
	resp, err := d.synth.Synthesize(ctx, SynthesisRequest{
		Window:    window,
		Expected:  expected,
		Direction: domain.DirectionDown,
		Stage:     domain.StageHorizontal,
	})
	if err != nil {
		return nil, nil, 0, err
	}
	resp, err = raster.Reconcile(resp, expected.Width, expected.Height)
	if err != nil {
		return nil, nil, 0, err
	}
	saveJPEG(d.sink, stepID, "result", resp)

	right, err := raster.RightThird(resp)
	if err != nil {
		return nil, nil, 0, err
	}
	tile, err := raster.BottomTile(right, d.tile.Height)
	if err != nil {
		return nil, nil, 0, err
	}
	savePNG(d.sink, stepID, "band", tile)

	grown, err = raster.CompositeBottomSegment(grown, tile, offset, grown.Height()-tile.Height())
	if err != nil {
		return nil, nil, 0, err
	}
	d.steps = append(d.steps, domain.StepRecord{Iteration: iteration, Direction: domain.DirectionDown, Stage: domain.StageHorizontal})
	return grown, resp, tile.Width(), nil
}
