package engine

import (
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// mergeHorizontal は左方向の蓄積キャンバスを基礎とし、右方向のバンドを
// 取得順に継ぎ足して1つの座標空間に統合します。完了順に関わらず
// この固定順で結合するため、出力は再現可能です。
// 戻り値のオフセットは、左方向の成長によってシードの左端が最終キャンバス内で
// どれだけ移動したかを示します。
func mergeHorizontal(leftAcc *raster.Raster, rightBands []*raster.Raster, seedWidth int) (*raster.Raster, int, error) {
	offset := leftAcc.Width() - seedWidth
	canvas := leftAcc
	for _, band := range rightBands {
		var err error
		canvas, err = raster.Append(canvas, band)
		if err != nil {
			return nil, 0, err
		}
	}
	return canvas, offset, nil
}
