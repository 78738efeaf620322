package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// Size はリサイズ時の上限サイズです。
type Size struct {
	Width  int
	Height int
}

// ParseSize は "width,height" 形式の文字列を Size に変換します。
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(s, ",")
	if !ok {
		return Size{}, &domain.ConfigurationError{Field: "resize", Reason: fmt.Sprintf("width,height の形式で指定してください: %q", s)}
	}
	width, errW := strconv.Atoi(strings.TrimSpace(w))
	height, errH := strconv.Atoi(strings.TrimSpace(h))
	if errW != nil || errH != nil || width < 1 || height < 1 {
		return Size{}, &domain.ConfigurationError{Field: "resize", Reason: fmt.Sprintf("幅と高さは正の整数である必要があります: %q", s)}
	}
	return Size{Width: width, Height: height}, nil
}

// Processor はディレクトリ内のスライド画像に対して一括で画像処理を行います。
// 対象はダウンロードと同じ規則で列挙したスライド画像で、背景画像は含みません。
type Processor struct {
	concurrency int
}

// NewProcessor は Processor を生成します。
func NewProcessor(concurrency int) *Processor {
	return &Processor{concurrency: max(concurrency, 1)}
}

// ResizeDir は各画像を size に収まるよう縮小して上書きします。
func (p *Processor) ResizeDir(ctx context.Context, dir string, size Size) error {
	return p.forEach(ctx, dir, "resize", func(path string) error {
		return ResizeFile(path, size)
	})
}

// TransparentDir は各画像の不透明白を透明にして上書きします。
func (p *Processor) TransparentDir(ctx context.Context, dir string) error {
	return p.forEach(ctx, dir, "transparent", TransparentFile)
}

// CompositeDir は各画像を背景画像の上に合成して上書きします。
func (p *Processor) CompositeDir(ctx context.Context, dir, backgroundPath string) error {
	bg, err := gg.LoadImage(backgroundPath)
	if err != nil {
		return &domain.ConfigurationError{Field: "background", Reason: "背景画像を読み込めません", Err: err}
	}
	return p.forEach(ctx, dir, "composite", func(path string) error {
		return compositeFile(path, bg)
	})
}

// forEach は画像ごとに fn を並列実行します。1件の失敗で他の画像の処理は止めず、
// すべての失敗をまとめて返します。
func (p *Processor) forEach(ctx context.Context, dir, op string, fn func(path string) error) error {
	names, err := asset.ListSlideImages(dir)
	if err != nil {
		return &domain.FilesystemError{Op: "readdir", Path: dir, Err: err}
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	var eg errgroup.Group
	eg.SetLimit(p.concurrency)
	for _, name := range names {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(filepath.Join(dir, name)); err != nil {
				slog.WarnContext(ctx, "画像処理に失敗しました", "op", op, "file", name, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d 件の画像処理に失敗しました: %w", op, len(errs), errors.Join(errs...))
	}
	slog.InfoContext(ctx, "画像処理が完了しました", "op", op, "dir", dir, "files", len(names))
	return nil
}

// ResizeFile は path の画像を縮小して上書きします。
func ResizeFile(path string, size Size) error {
	img, err := gg.LoadImage(path)
	if err != nil {
		return fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	resized := Fit(img, size.Width, size.Height)
	if resized == img {
		return nil
	}
	return savePNG(path, resized)
}

// TransparentFile は path の画像の不透明白を透明にして上書きします。
func TransparentFile(path string) error {
	img, err := gg.LoadImage(path)
	if err != nil {
		return fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	return savePNG(path, Transparent(img))
}

func compositeFile(path string, bg image.Image) error {
	fg, err := gg.LoadImage(path)
	if err != nil {
		return fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	return savePNG(path, Composite(fg, bg))
}

// savePNG は一時ファイル経由で上書きします。
func savePNG(path string, img image.Image) error {
	return storage.WriteFileAtomic(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}
