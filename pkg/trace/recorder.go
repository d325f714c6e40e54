package trace

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

// 合成フレームは元実装にならい JPEG (quality 95) で残す
const jpegQuality = 95

// FileRecorder はステップごとの中間画像をディレクトリへ書き出します。
// レイアウトは <root>/<run-id>/<step>/<name>.png|jpg です。
// 記録はベストエフォートで、失敗は警告ログに留めてパイプラインを止めません。
type FileRecorder struct {
	root string
}

// NewFileRecorder は root の下に実行ごとのディレクトリを作成します。
func NewFileRecorder(root string) (*FileRecorder, error) {
	dir := filepath.Join(root, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("トレースディレクトリを作成できません: %w", err)
	}
	return &FileRecorder{root: dir}, nil
}

// Root は今回の実行の記録先ディレクトリを返します。
func (r *FileRecorder) Root() string {
	return r.root
}

// SavePNG は中間画像を PNG で保存します。
func (r *FileRecorder) SavePNG(step, name string, img *raster.Raster) {
	r.save(step, name+".png", img, png.Encode)
}

// SaveJPEG は合成フレームを JPEG で保存します。
func (r *FileRecorder) SaveJPEG(step, name string, img *raster.Raster) {
	r.save(step, name+".jpg", img, func(w io.Writer, m image.Image) error {
		return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	})
}

func (r *FileRecorder) save(step, filename string, img *raster.Raster, encode func(io.Writer, image.Image) error) {
	if img == nil || img.Image() == nil {
		return
	}
	dir := filepath.Join(r.root, step)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("トレースの保存に失敗しました", "step", step, "name", filename, "error", err)
		return
	}
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		slog.Warn("トレースの保存に失敗しました", "path", path, "error", err)
		return
	}
	defer f.Close()
	if err := encode(f, img.Image()); err != nil {
		slog.Warn("トレースの符号化に失敗しました", "path", path, "error", err)
	}
}
