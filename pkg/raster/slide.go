package raster

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

// スライドは同寸法のウィンドウを作り、既存の内容を移動させたうえで
// 空いた領域を不透明の白で埋めます。白い帯が生成サービスへの
// 「ここを埋めよ」という合図になります。

func slideSource(src *Raster) (int, int, error) {
	if !src.valid() {
		return 0, 0, fmt.Errorf("%w: スライド元の寸法を読み取れません", domain.ErrDimension)
	}
	return src.Width(), src.Height(), nil
}

// SlideLeft は中央と右の3分の1を左・中央の位置へ移し、右側を空けます。
// キャンバスを右方向へ拡張するときの入力ウィンドウです。
func SlideLeft(src *Raster) (*Raster, error) {
	w, h, err := slideSource(src)
	if err != nil {
		return nil, err
	}
	t, err := SplitThirds(w)
	if err != nil {
		return nil, err
	}
	out, err := New(w, h)
	if err != nil {
		return nil, err
	}
	// 中央の3分の1 → 左端へ
	draw.Draw(out.img, image.Rect(0, 0, t.Second.Length(), h), src.img, image.Pt(t.Second.Start, 0), draw.Src)
	// 右の3分の1 → 中央の位置へ
	x := t.First.Length()
	draw.Draw(out.img, image.Rect(x, 0, x+t.Last.Length(), h), src.img, image.Pt(t.Last.Start, 0), draw.Src)
	return out, nil
}

// SlideRight は SlideLeft の鏡像で、左と中央の3分の1から組み立てて
// 左側を空けます。キャンバスを左方向へ拡張するときの入力ウィンドウです。
func SlideRight(src *Raster) (*Raster, error) {
	w, h, err := slideSource(src)
	if err != nil {
		return nil, err
	}
	t, err := SplitThirds(w)
	if err != nil {
		return nil, err
	}
	out, err := New(w, h)
	if err != nil {
		return nil, err
	}
	// 中央の3分の1 → 右端へ
	midX := w - t.Second.Length()
	draw.Draw(out.img, image.Rect(midX, 0, w, h), src.img, image.Pt(t.Second.Start, 0), draw.Src)
	// 左の3分の1 → 中央の位置へ
	leftX := midX - t.First.Length()
	draw.Draw(out.img, image.Rect(leftX, 0, midX, h), src.img, image.Pt(t.First.Start, 0), draw.Src)
	return out, nil
}

// SlideUp は下の3分の1を落とし、残りの上3分の2をそのまま上に置いて
// 下側を空けます。キャンバスを下方向へ拡張するときの入力ウィンドウです。
func SlideUp(src *Raster) (*Raster, error) {
	w, h, err := slideSource(src)
	if err != nil {
		return nil, err
	}
	t, err := SplitThirds(h)
	if err != nil {
		return nil, err
	}
	out, err := New(w, h)
	if err != nil {
		return nil, err
	}
	draw.Draw(out.img, image.Rect(0, 0, w, t.Second.End), src.img, image.Point{}, draw.Src)
	return out, nil
}
