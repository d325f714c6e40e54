package raster

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

func TestReconcile(t *testing.T) {
	t.Run("寸法が一致していれば入力をそのまま返すこと", func(t *testing.T) {
		band := gradientRaster(t, 6, 4)
		out, err := Reconcile(band, 6, 4)
		require.NoError(t, err)
		assert.Same(t, band, out)
	})

	t.Run("不一致なら目標寸法へ非一様スケールすること", func(t *testing.T) {
		band := gradientRaster(t, 6, 4)
		out, err := Reconcile(band, 9, 12)
		require.NoError(t, err)
		assert.Equal(t, 9, out.Width())
		assert.Equal(t, 12, out.Height())
	})

	t.Run("nilや不正な目標寸法はErrDimensionになること", func(t *testing.T) {
		_, err := Reconcile(nil, 4, 4)
		assert.ErrorIs(t, err, domain.ErrDimension)

		band := gradientRaster(t, 6, 4)
		_, err = Reconcile(band, 0, 4)
		assert.ErrorIs(t, err, domain.ErrDimension)
	})
}

func TestAppend(t *testing.T) {
	t.Run("幅がバンド分だけ広がり、右端に一致するバンドが現れること", func(t *testing.T) {
		base := gradientRaster(t, 6, 4)
		band := gradientRaster(t, 2, 4)

		out, err := Append(base, band)
		require.NoError(t, err)
		require.Equal(t, 8, out.Width())
		require.Equal(t, 4, out.Height())

		// 右端を付加したバンドの幅で取り直すとピクセル単位で一致する
		tail, err := Extract(out, Region{Left: 6, Top: 0, Width: 2, Height: 4})
		require.NoError(t, err)
		assert.True(t, bytes.Equal(tail.Image().Pix, band.Image().Pix), "appended band must be pixel-identical")
	})

	t.Run("高さが異なるバンドは先にキャンバスの高さへ合わせること", func(t *testing.T) {
		base := gradientRaster(t, 6, 4)
		band := gradientRaster(t, 2, 8)

		out, err := Append(base, band)
		require.NoError(t, err)
		assert.Equal(t, 8, out.Width())
		assert.Equal(t, 4, out.Height())
	})
}

func TestPrepend(t *testing.T) {
	base := gradientRaster(t, 6, 4)
	band := gradientRaster(t, 2, 4)

	out, err := Prepend(base, band)
	require.NoError(t, err)
	require.Equal(t, 8, out.Width())

	head, err := Extract(out, Region{Left: 0, Top: 0, Width: 2, Height: 4})
	require.NoError(t, err)
	assert.True(t, bytes.Equal(head.Image().Pix, band.Image().Pix), "prepended band must sit flush left")

	// 既存の内容はバンドの幅だけ右へずれる
	assert.Equal(t, base.At(0, 0), out.At(2, 0))
}

// append と prepend は内容の並びこそ違うが、最終的な幅はどちらも
// base.width + band.width になる
func TestConcatWidthIsDirectionIndependent(t *testing.T) {
	base := gradientRaster(t, 7, 5)
	band := gradientRaster(t, 3, 5)

	appended, err := Append(base, band)
	require.NoError(t, err)
	prepended, err := Prepend(base, band)
	require.NoError(t, err)

	assert.Equal(t, 10, appended.Width())
	assert.Equal(t, appended.Width(), prepended.Width())
}

func TestGrowBottom(t *testing.T) {
	base := gradientRaster(t, 6, 4)

	out, err := GrowBottom(base, 3)
	require.NoError(t, err)
	require.Equal(t, 6, out.Width())
	require.Equal(t, 7, out.Height())

	// 既存の内容は据え置き、新しい帯は白
	assert.Equal(t, base.At(3, 3), out.At(3, 3))
	for y := 4; y < 7; y++ {
		assert.True(t, isWhite(out.At(0, y)), "new strip must be white")
	}

	_, err = GrowBottom(base, 0)
	assert.ErrorIs(t, err, domain.ErrDimension)
}

func TestCompositeBottomSegment(t *testing.T) {
	t.Run("右端からはみ出す分は左端から収まる幅だけ描画すること", func(t *testing.T) {
		canvas := gradientRaster(t, 10, 5)
		segment, err := New(6, 2)
		require.NoError(t, err)

		out, err := CompositeBottomSegment(canvas, segment, 7, 3)
		require.NoError(t, err)
		assert.Equal(t, 10, out.Width(), "canvas width must not change")

		for x := 7; x < 10; x++ {
			assert.True(t, isWhite(out.At(x, 3)), "cropped segment must cover up to the right edge")
		}
		// はみ出し先には何も描かれない（折り返さない）
		assert.NotEqual(t, white, out.At(0, 3))
	})

	t.Run("描画できる幅が残らない場合はキャンバスをそのまま返すこと", func(t *testing.T) {
		canvas := gradientRaster(t, 10, 5)
		before := canvas.Clone()
		segment, err := New(4, 2)
		require.NoError(t, err)

		out, err := CompositeBottomSegment(canvas, segment, 10, 3)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(before.Image().Pix, out.Image().Pix), "canvas must be unchanged")
	})

	t.Run("負のオフセットは0へ丸めること", func(t *testing.T) {
		canvas := gradientRaster(t, 10, 5)
		segment, err := New(4, 2)
		require.NoError(t, err)

		out, err := CompositeBottomSegment(canvas, segment, -3, 3)
		require.NoError(t, err)
		assert.True(t, isWhite(out.At(0, 3)))
		assert.True(t, isWhite(out.At(3, 4)))
	})
}
