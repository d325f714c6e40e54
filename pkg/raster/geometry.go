package raster

import (
	"fmt"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

// Span は一次元上の半開区間 [Start, End) です。
type Span struct {
	Start int
	End   int
}

// Length は区間の長さを返します。
func (s Span) Length() int {
	return s.End - s.Start
}

// Thirds は寸法の3分割です。境界は floor 除算で決まり、
// 端数は常に最後の区間が吸収するため、3区間の合計は元の寸法に一致します。
// 列・行の境界はすべてここで計算し、各コンポーネントが個別に再計算しては
// いけません。兄弟操作の境界がずれると継ぎ目が生じます。
type Thirds struct {
	First  Span
	Second Span
	Last   Span
}

// SplitThirds は total を3つの連続した区間へ分割します。
// いずれかの区間が正の長さを持てない場合（total < 3）は ErrGeometry です。
func SplitThirds(total int) (Thirds, error) {
	b1 := total / 3
	b2 := 2 * total / 3
	t := Thirds{
		First:  Span{Start: 0, End: b1},
		Second: Span{Start: b1, End: b2},
		Last:   Span{Start: b2, End: total},
	}
	if t.First.Length() <= 0 || t.Second.Length() <= 0 || t.Last.Length() <= 0 {
		return Thirds{}, fmt.Errorf("%w: 全長 %d", domain.ErrGeometry, total)
	}
	return t, nil
}

// Region は親画像内の矩形領域です。Geometry のヘルパーのみが生成し、
// ドライバーが直接構築してはいけません。
type Region struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// ColumnRegion は列区間を高さいっぱいの領域に展開します。
func ColumnRegion(span Span, height int) Region {
	return Region{Left: span.Start, Top: 0, Width: span.Length(), Height: height}
}

// RowRegion は行区間を幅いっぱいの領域に展開します。
func RowRegion(span Span, width int) Region {
	return Region{Left: 0, Top: span.Start, Width: width, Height: span.Length()}
}
