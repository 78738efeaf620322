package workflow

import (
	"fmt"

	"github.com/shouni/go-slides2html/pkg/downloader"
	"github.com/shouni/go-slides2html/pkg/imaging"
	"github.com/shouni/go-slides2html/pkg/publisher"
	"github.com/shouni/go-slides2html/pkg/runner"
	"github.com/shouni/go-slides2html/pkg/slideinfo"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// BuildDownloadRunner は、スライドのダウンロードを担当する Runner を作成します。
func (m *Manager) BuildDownloadRunner() (DownloadRunner, error) {
	d, err := downloader.New(m.provider, m.httpClient, m.cfg)
	if err != nil {
		return nil, fmt.Errorf("downloader の初期化に失敗しました: %w", err)
	}
	return runner.NewSlidesDownloadRunner(d), nil
}

// BuildImageRunner は、スライド画像の加工を担当する Runner を作成します。
func (m *Manager) BuildImageRunner() (ImageRunner, error) {
	return runner.NewSlideImageRunner(imaging.NewProcessor(m.cfg.Concurrency)), nil
}

// BuildPublishRunner は、エントリーページの生成を担当する Runner を作成します。
// templatePath が空、または存在しない場合は標準テンプレートを使います。
func (m *Manager) BuildPublishRunner(templatePath string) (PublishRunner, error) {
	tmpl, err := publisher.LoadTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("テーマの読み込みに失敗しました: %w", err)
	}
	return runner.NewSitePublishRunner(slideinfo.NewReader(), publisher.NewSitePublisher(m.writer), tmpl), nil
}

// BuildUploadRunner は、生成済みサイトのアップロードを担当する Runner を作成します。
func (m *Manager) BuildUploadRunner() (UploadRunner, error) {
	u, err := storage.NewUploader(m.writer, m.cfg.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("uploader の初期化に失敗しました: %w", err)
	}
	return runner.NewSiteUploadRunner(u), nil
}
