package raster

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/utils"
)

// Reconcile は band を指定の寸法へ非一様スケールします。
// 生成サービスの応答はピクセル単位で正確な寸法を保証しないため、
// 不一致は失敗ではなくリサイズで吸収します。切り抜きは行いません。
// 寸法が一致している場合は入力をそのまま返します。
func Reconcile(band *Raster, width, height int) (*Raster, error) {
	if !band.valid() {
		return nil, fmt.Errorf("%w: リサイズ対象がありません", domain.ErrDimension)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: 目標寸法 %dx%d", domain.ErrDimension, width, height)
	}
	if band.Width() == width && band.Height() == height {
		return band, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), band.img, band.img.Bounds(), xdraw.Src, nil)
	return &Raster{img: dst}, nil
}

// Append は band をキャンバスの右端に継ぎ足し、幅を band の幅だけ広げます。
// band の高さがキャンバスと異なる場合は先に高さを合わせてリサイズします。
func Append(canvas, band *Raster) (*Raster, error) {
	return concat(canvas, band, false)
}

// Prepend は band をキャンバスの左端に継ぎ足し、既存の内容を右へずらします。
func Prepend(canvas, band *Raster) (*Raster, error) {
	return concat(canvas, band, true)
}

func concat(canvas, band *Raster, front bool) (*Raster, error) {
	if !canvas.valid() {
		return nil, fmt.Errorf("%w: キャンバスがありません", domain.ErrDimension)
	}
	band, err := Reconcile(band, band.Width(), canvas.Height())
	if err != nil {
		return nil, err
	}
	out, err := New(canvas.Width()+band.Width(), canvas.Height())
	if err != nil {
		return nil, err
	}
	canvasX, bandX := 0, canvas.Width()
	if front {
		canvasX, bandX = band.Width(), 0
	}
	draw.Draw(out.img, image.Rect(canvasX, 0, canvasX+canvas.Width(), canvas.Height()), canvas.img, image.Point{}, draw.Src)
	draw.Draw(out.img, image.Rect(bandX, 0, bandX+band.Width(), canvas.Height()), band.img, image.Point{}, draw.Src)
	return out, nil
}

// GrowBottom はキャンバスの下に高さ extra の白い帯を足します。
func GrowBottom(canvas *Raster, extra int) (*Raster, error) {
	if !canvas.valid() {
		return nil, fmt.Errorf("%w: キャンバスがありません", domain.ErrDimension)
	}
	if extra <= 0 {
		return nil, fmt.Errorf("%w: 追加高さ %d", domain.ErrDimension, extra)
	}
	out, err := New(canvas.Width(), canvas.Height()+extra)
	if err != nil {
		return nil, err
	}
	draw.Draw(out.img, image.Rect(0, 0, canvas.Width(), canvas.Height()), canvas.img, image.Point{}, draw.Src)
	return out, nil
}

// CompositeBottomSegment は segment を既存キャンバスの (left, top) に重ねます。
// オフセットはキャンバス内に丸め、右端からはみ出す分は segment の左端から
// 収まる幅だけを描画します。折り返しも失敗もしません。描画できる幅が
// 残らない場合はキャンバスをそのまま返します。
// キャンバスは排他所有を前提にその場で書き換えます。
func CompositeBottomSegment(canvas, segment *Raster, left, top int) (*Raster, error) {
	if !canvas.valid() {
		return nil, fmt.Errorf("%w: キャンバスがありません", domain.ErrDimension)
	}
	if !segment.valid() {
		return nil, fmt.Errorf("%w: 合成対象がありません", domain.ErrDimension)
	}
	left = utils.Clamp(left, 0, canvas.Width())
	top = utils.Clamp(top, 0, canvas.Height())
	usableW := min(segment.Width(), canvas.Width()-left)
	usableH := min(segment.Height(), canvas.Height()-top)
	if usableW <= 0 || usableH <= 0 {
		return canvas, nil
	}
	draw.Draw(canvas.img, image.Rect(left, top, left+usableW, top+usableH), segment.img, image.Point{}, draw.Src)
	return canvas, nil
}
