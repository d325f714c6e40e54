package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

// Raster は正準色空間 (NRGBA) に正規化済みのピクセルバッファです。
// エンジンに入る Raster は常に幅・高さともに正であることを前提とします。
type Raster struct {
	img *image.NRGBA
}

// Size は幅と高さの組です。生成サービスへの期待寸法にも使います。
type Size struct {
	Width  int
	Height int
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// New は白で塗りつぶした width×height の Raster を生成します。
// 空白領域の背景は常に不透明の白で統一します。
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrDimension, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)
	return &Raster{img: img}, nil
}

// FromImage は任意の image.Image を正準色空間へ変換します。
func FromImage(src image.Image) (*Raster, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrDimension, b.Dx(), b.Dy())
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Raster{img: img}, nil
}

// Decode はバイト列を復号して正規化した Raster を返します。
// 寸法が読み取れないデータは ErrInvalidSeed になります。
func Decode(data []byte) (*Raster, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSeed, err)
	}
	r, err := FromImage(src)
	if err != nil {
		return nil, fmt.Errorf("%w: 復号結果の寸法が不正です", domain.ErrInvalidSeed)
	}
	return r, nil
}

func (r *Raster) valid() bool {
	return r != nil && r.img != nil && r.img.Rect.Dx() > 0 && r.img.Rect.Dy() > 0
}

// Width は画像の幅をピクセルで返します。
func (r *Raster) Width() int {
	if r == nil || r.img == nil {
		return 0
	}
	return r.img.Rect.Dx()
}

// Height は画像の高さをピクセルで返します。
func (r *Raster) Height() int {
	if r == nil || r.img == nil {
		return 0
	}
	return r.img.Rect.Dy()
}

// Size は幅と高さの組を返します。
func (r *Raster) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Image は下層の NRGBA バッファを返します。符号化や検証用です。
func (r *Raster) Image() *image.NRGBA {
	if r == nil {
		return nil
	}
	return r.img
}

// Clone はピクセルバッファの完全な複製を返します。
func (r *Raster) Clone() *Raster {
	if !r.valid() {
		return nil
	}
	img := image.NewNRGBA(r.img.Rect)
	copy(img.Pix, r.img.Pix)
	return &Raster{img: img}
}

// At は (x, y) のピクセルを返します。テストや検証用です。
func (r *Raster) At(x, y int) color.NRGBA {
	return r.img.NRGBAAt(x, y)
}

// EncodePNG は PNG 形式のバイト列へ符号化します。
func (r *Raster) EncodePNG() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: 符号化対象がありません", domain.ErrDimension)
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, r.img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
