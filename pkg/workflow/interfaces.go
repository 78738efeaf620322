package workflow

import (
	"context"

	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/downloader"
	"github.com/shouni/go-slides2html/pkg/publisher"
	"github.com/shouni/go-slides2html/pkg/runner"
)

// Workflow は、スライド変換ワークフローの各工程を担当する Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildDownloadRunner() (DownloadRunner, error)
	BuildImageRunner() (ImageRunner, error)
	BuildPublishRunner(templatePath string) (PublishRunner, error)
	BuildUploadRunner() (UploadRunner, error)
}

// DownloadRunner は、プレゼンテーションのスライド画像とノートをサイトディレクトリ配下に保存する責務を持ちます。
type DownloadRunner interface {
	Run(ctx context.Context, id domain.PresentationID, websiteDir string) (downloader.Report, error)
}

// ImageRunner は、保存済みのスライド画像をリサイズ・背景合成する責務を持ちます。
type ImageRunner interface {
	Run(ctx context.Context, targetDir string, opts runner.ImageOptions) error
}

// PublishRunner は、保存済みのスライドから reveal.js のエントリーページを生成する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, id domain.PresentationID, websiteDir, entryName string) (publisher.PublishResult, error)
}

// UploadRunner は、生成済みのサイトを GCS などの保存先へ複製する責務を持ちます。
type UploadRunner interface {
	Run(ctx context.Context, id domain.PresentationID, websiteDir, entryName, dest string) (int, error)
}
