package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/downloader"
)

// SlidesDownloadRunner はプレゼンテーションをサイトディレクトリ配下にダウンロードします。
type SlidesDownloadRunner struct {
	downloader *downloader.Downloader
}

// NewSlidesDownloadRunner は SlidesDownloadRunner を生成します。
func NewSlidesDownloadRunner(d *downloader.Downloader) *SlidesDownloadRunner {
	return &SlidesDownloadRunner{downloader: d}
}

// Run は websiteDir/<id> にスライド画像とノートを保存し、結果の Report を返します。
// 個別の転送失敗は Report に含まれ、エラーにはなりません。
func (r *SlidesDownloadRunner) Run(ctx context.Context, id domain.PresentationID, websiteDir string) (downloader.Report, error) {
	targetDir := asset.PresentationDir(websiteDir, string(id))

	report, err := r.downloader.Download(ctx, id, targetDir)
	if err != nil {
		return report, fmt.Errorf("プレゼンテーション %s のダウンロードに失敗しました: %w", id, err)
	}

	for _, f := range report.Failed {
		slog.WarnContext(ctx, "取得できなかったスライドがあります。再実行で補完できます", "file", f.FileName, "error", f.Err)
	}
	return report, nil
}
