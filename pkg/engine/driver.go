package engine

import (
	"context"
	"fmt"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// driverState は方向ドライバーの進行状態です。ループの途中経過は
// 分岐に使われないため、外から観測できる待機と完了だけを持ちます。
type driverState int

const (
	stateIdle driverState = iota
	stateDone
)

// horizontalDriver は一方向（右または左）の拡張ループを回す状態機械です。
// 蓄積キャンバスとコンテキストを自身で所有し、他のドライバーと共有しません。
// ループ回数は無条件に固定で、早期収束の判定はありません。
type horizontalDriver struct {
	direction  domain.Direction
	iterations int
	synth      Synthesizer
	sink       TraceSink
	expected   raster.Size

	state   driverState
	acc     *raster.Raster
	context *raster.Raster
	bands   []*raster.Raster
	steps   []domain.StepRecord
}

func newHorizontalDriver(direction domain.Direction, seed *raster.Raster, iterations int, synth Synthesizer, sink TraceSink) *horizontalDriver {
	return &horizontalDriver{
		direction:  direction,
		iterations: iterations,
		synth:      synth,
		sink:       sink,
		expected:   seed.Size(),
		state:      stateIdle,
		acc:        seed.Clone(),
		context:    seed,
	}
}

// Run は iterations 回のループを実行します。キャンセルは反復の合間にのみ
// 確認し、実行中の合成呼び出しの結果を捨てないようにします。
func (d *horizontalDriver) Run(ctx context.Context) error {
	for i := 1; i <= d.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.step(ctx, i); err != nil {
			return fmt.Errorf("%s 方向 %d 回目: %w", d.direction, i, err)
		}
	}
	d.state = stateDone
	return nil
}

func (d *horizontalDriver) step(ctx context.Context, iteration int) error {
	stepID := fmt.Sprintf("%s_h_%02d", d.direction, iteration)
	savePNG(d.sink, stepID, "context", d.context)

	var window *raster.Raster
	var err error
	if d.direction == domain.DirectionRight {
		window, err = raster.SlideLeft(d.context)
	} else {
		window, err = raster.SlideRight(d.context)
	}
	if err != nil {
		return err
	}
	savePNG(d.sink, stepID, "input", window)

	resp, err := d.synth.Synthesize(ctx, SynthesisRequest{
		Window:    window,
		Expected:  d.expected,
		Direction: d.direction,
	})
	if err != nil {
		return err
	}
	// 応答の寸法は保証されないため、常に期待寸法へ合わせ直してから使う
	resp, err = raster.Reconcile(resp, d.expected.Width, d.expected.Height)
	if err != nil {
		return err
	}
	saveJPEG(d.sink, stepID, "result", resp)

	var band *raster.Raster
	if d.direction == domain.DirectionRight {
		band, err = raster.RightThird(resp)
	} else {
		band, err = raster.LeftThird(resp)
	}
	if err != nil {
		return err
	}
	savePNG(d.sink, stepID, "band", band)

	if d.direction == domain.DirectionRight {
		d.acc, err = raster.Append(d.acc, band)
	} else {
		d.acc, err = raster.Prepend(d.acc, band)
	}
	if err != nil {
		return err
	}
	savePNG(d.sink, stepID, "extended", d.acc)

	d.bands = append(d.bands, band)
	d.steps = append(d.steps, domain.StepRecord{Iteration: iteration, Direction: d.direction})

	// 次のスライドに実在する隣接内容を与えるため、コンテキストは蓄積では
	// なく合成フレーム全体に差し替える
	d.context = resp
	return nil
}
