package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// SiteUploadRunner は生成済みサイトを別の保存先へ複製します。
type SiteUploadRunner struct {
	uploader *storage.Uploader
}

// NewSiteUploadRunner は SiteUploadRunner を生成します。
func NewSiteUploadRunner(u *storage.Uploader) *SiteUploadRunner {
	return &SiteUploadRunner{uploader: u}
}

// Run はエントリーページとスライド画像を dest (gs://bucket/prefix 等) に書き込みます。
func (r *SiteUploadRunner) Run(ctx context.Context, id domain.PresentationID, websiteDir, entryName, dest string) (int, error) {
	n, err := r.uploader.UploadSite(ctx, storage.Site{
		WebsiteDir:     websiteDir,
		PresentationID: string(id),
		EntryFile:      asset.EntryFileName(entryName),
	}, dest)
	if err != nil {
		return n, fmt.Errorf("サイトのアップロードに失敗しました: %w", err)
	}
	return n, nil
}
