package raster

import (
	"image"
	"image/color"
	"testing"
)

// 座標から一意に決まるピクセルを持つテスト画像を作るヘルパー
func gradientRaster(t *testing.T, width, height int) *Raster {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, gradientPixel(x, y))
		}
	}
	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("failed to build test raster: %v", err)
	}
	return r
}

func gradientPixel(x, y int) color.NRGBA {
	return color.NRGBA{
		R: uint8(x % 251),
		G: uint8(y % 251),
		B: uint8((x + y) % 251),
		A: 255,
	}
}

func isWhite(c color.NRGBA) bool {
	return c.R == 255 && c.G == 255 && c.B == 255 && c.A == 255
}
