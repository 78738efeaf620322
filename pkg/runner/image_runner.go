package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slides2html/pkg/imaging"
)

// ImageOptions はダウンロード後の画像処理の指定です。
type ImageOptions struct {
	// Resize が nil の場合はリサイズしません。
	Resize *imaging.Size
	// Background が空の場合は透過処理と背景合成を行いません。
	Background string
}

// Enabled は何らかの画像処理が指定されているかを返します。
func (o ImageOptions) Enabled() bool {
	return o.Resize != nil || o.Background != ""
}

// SlideImageRunner はダウンロード済みのスライド画像を加工します。
type SlideImageRunner struct {
	processor *imaging.Processor
}

// NewSlideImageRunner は SlideImageRunner を生成します。
func NewSlideImageRunner(p *imaging.Processor) *SlideImageRunner {
	return &SlideImageRunner{processor: p}
}

// Run はリサイズ、透過、背景合成の順に処理します。
// 背景合成は冪等ではないため、同じディレクトリに繰り返し実行すると結果が変わります。
func (r *SlideImageRunner) Run(ctx context.Context, targetDir string, opts ImageOptions) error {
	if opts.Resize != nil {
		slog.InfoContext(ctx, "画像をリサイズしています", "width", opts.Resize.Width, "height", opts.Resize.Height)
		if err := r.processor.ResizeDir(ctx, targetDir, *opts.Resize); err != nil {
			return fmt.Errorf("リサイズに失敗しました: %w", err)
		}
	}

	if opts.Background != "" {
		slog.InfoContext(ctx, "背景を合成しています", "background", opts.Background)
		if err := r.processor.TransparentDir(ctx, targetDir); err != nil {
			return fmt.Errorf("透過処理に失敗しました: %w", err)
		}
		if err := r.processor.CompositeDir(ctx, targetDir, opts.Background); err != nil {
			return fmt.Errorf("背景合成に失敗しました: %w", err)
		}
	}
	return nil
}
