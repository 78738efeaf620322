package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	WebsiteDir string
	// EntryName はエントリーページの名前です。拡張子がなければ .html を付与します。
	EntryName string
	// Template が空の場合は DefaultTemplate を使います。
	Template string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	HTMLPath string
	Slides   int
}

// SitePublisher はエントリーページを生成して書き込みます。
type SitePublisher struct {
	writer storage.OutputWriter
}

// NewSitePublisher は SitePublisher を生成します。
func NewSitePublisher(writer storage.OutputWriter) *SitePublisher {
	return &SitePublisher{writer: writer}
}

// Publish は records をレンダリングし、WebsiteDir/EntryName に書き込みます。
func (p *SitePublisher) Publish(ctx context.Context, records []domain.SlideRecord, opts Options) (PublishResult, error) {
	result := PublishResult{Slides: len(records)}
	if opts.EntryName == "" {
		return result, &domain.ConfigurationError{Field: "indexfile", Reason: "エントリーページ名が空です"}
	}

	tmpl := opts.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	html, err := Render(records, tmpl)
	if err != nil {
		return result, err
	}

	htmlPath, err := asset.ResolveOutputPath(opts.WebsiteDir, asset.EntryFileName(opts.EntryName))
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, htmlPath, []byte(html)); err != nil {
		return result, fmt.Errorf("エントリーページの書き込みに失敗しました: %w", err)
	}
	result.HTMLPath = htmlPath

	slog.InfoContext(ctx, "エントリーページを生成しました", "path", htmlPath, "slides", len(records))
	return result, nil
}
