package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

// Extract は region を切り出した新しい Raster を返します。
// 領域が画像の範囲からはみ出す場合は ErrRegion です。
func Extract(src *Raster, reg Region) (*Raster, error) {
	if !src.valid() {
		return nil, fmt.Errorf("%w: 抽出元がありません", domain.ErrDimension)
	}
	if reg.Left < 0 || reg.Top < 0 || reg.Width <= 0 || reg.Height <= 0 ||
		reg.Left+reg.Width > src.Width() || reg.Top+reg.Height > src.Height() {
		return nil, fmt.Errorf("%w: left=%d top=%d width=%d height=%d (元 %dx%d)",
			domain.ErrRegion, reg.Left, reg.Top, reg.Width, reg.Height, src.Width(), src.Height())
	}
	out := image.NewNRGBA(image.Rect(0, 0, reg.Width, reg.Height))
	draw.Draw(out, out.Bounds(), src.img, image.Pt(reg.Left, reg.Top), draw.Src)
	return &Raster{img: out}, nil
}

// RightThird は幅の3分割の最終区間を切り出します。
// 合成応答から新しく生成された右側の帯を取り出すのに使います。
func RightThird(src *Raster) (*Raster, error) {
	t, err := SplitThirds(src.Width())
	if err != nil {
		return nil, err
	}
	return Extract(src, ColumnRegion(t.Last, src.Height()))
}

// LeftThird は幅の3分割の先頭区間を切り出します。
func LeftThird(src *Raster) (*Raster, error) {
	t, err := SplitThirds(src.Width())
	if err != nil {
		return nil, err
	}
	return Extract(src, ColumnRegion(t.First, src.Height()))
}

// BottomThird は高さの3分割の最終区間を切り出します。
func BottomThird(src *Raster) (*Raster, error) {
	t, err := SplitThirds(src.Height())
	if err != nil {
		return nil, err
	}
	return Extract(src, RowRegion(t.Last, src.Width()))
}

// BottomTile は下端に接する高さ height の帯を切り出します。
// height が元の高さを超える場合は元の高さへ丸め、常に下端を基準にします。
// 繰り返し呼んでも最後に合成された行がサンプルされます。
func BottomTile(src *Raster, height int) (*Raster, error) {
	if !src.valid() {
		return nil, fmt.Errorf("%w: 抽出元がありません", domain.ErrDimension)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: 帯の高さ %d", domain.ErrRegion, height)
	}
	if height > src.Height() {
		height = src.Height()
	}
	return Extract(src, Region{Left: 0, Top: src.Height() - height, Width: src.Width(), Height: height})
}
