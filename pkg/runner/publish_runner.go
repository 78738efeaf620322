package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/publisher"
	"github.com/shouni/go-slides2html/pkg/slideinfo"
)

// SitePublishRunner はダウンロード済みのディレクトリを読み込み、エントリーページを生成します。
type SitePublishRunner struct {
	reader    *slideinfo.Reader
	publisher *publisher.SitePublisher
	template  string
}

// NewSitePublishRunner は SitePublishRunner を生成します。template が空の場合は標準テンプレートを使います。
func NewSitePublishRunner(reader *slideinfo.Reader, pub *publisher.SitePublisher, template string) *SitePublishRunner {
	return &SitePublishRunner{
		reader:    reader,
		publisher: pub,
		template:  template,
	}
}

// Run は websiteDir/<id> を読み込んで websiteDir/<entryName>.html を書き出します。
func (r *SitePublishRunner) Run(ctx context.Context, id domain.PresentationID, websiteDir, entryName string) (publisher.PublishResult, error) {
	records, err := r.reader.Read(asset.PresentationDir(websiteDir, string(id)))
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("スライド情報の読み込みに失敗しました: %w", err)
	}

	return r.publisher.Publish(ctx, records, publisher.Options{
		WebsiteDir: websiteDir,
		EntryName:  entryName,
		Template:   r.template,
	})
}
