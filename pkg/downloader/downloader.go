package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/shouni/go-http-kit/httpkit"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/config"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/metadata"
	"github.com/shouni/go-slides2html/pkg/provider"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// Downloader はプレゼンテーションのスライド画像とノートを並列で取得し、ディレクトリに保存します。
type Downloader struct {
	provider     provider.AssetProvider
	client       httpkit.Doer
	concurrency  int
	fetchTimeout time.Duration
}

// New は Downloader を生成します。
// client が nil の場合は FetchTimeout をタイムアウトとし、リトライしない httpkit クライアントを使います。
func New(p provider.AssetProvider, client httpkit.Doer, cfg config.Config) (*Downloader, error) {
	if p == nil {
		return nil, fmt.Errorf("provider は必須です")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = NewHTTPClient(cfg.FetchTimeout)
	}
	return &Downloader{
		provider:     p,
		client:       client,
		concurrency:  cfg.Concurrency,
		fetchTimeout: cfg.FetchTimeout,
	}, nil
}

// NewHTTPClient はサムネイル取得用の httpkit クライアントを生成します。
// 取得失敗は再実行で補完するため、リトライは行いません。
func NewHTTPClient(timeout time.Duration, opts ...httpkit.ClientOption) *httpkit.Client {
	opts = append([]httpkit.ClientOption{httpkit.WithMaxRetries(0)}, opts...)
	return httpkit.New(timeout, opts...)
}

// Download は id のプレゼンテーションを targetDir に保存します。
//
// インデックスへのタイトル登録は画像の取得より先に行います。
// スライド単位の取得失敗は Report.Failed に記録され、Download 自体は失敗しません。
// ctx がキャンセルされた場合は、その時点の Report と ctx.Err() を返します。
func (d *Downloader) Download(ctx context.Context, id domain.PresentationID, targetDir string) (Report, error) {
	report := Report{PresentationID: id}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return report, &domain.FilesystemError{Op: "mkdir", Path: targetDir, Err: err}
	}

	pres, err := d.provider.Presentation(ctx, id)
	if err != nil {
		var provErr *domain.ProviderError
		if errors.As(err, &provErr) {
			return report, err
		}
		return report, &domain.ProviderError{PresentationID: id, Op: "presentation", Err: err}
	}
	report.Title = pres.Title

	entries := BuildEntries(pres)
	slog.InfoContext(ctx, "スライドの取得を開始します",
		"presentation_id", id,
		"title", pres.Title,
		"slides", len(entries),
		"target_dir", targetDir,
	)

	indexPath := asset.IndexPath(targetDir)
	if err := metadata.UpsertTitle(indexPath, domain.PresentationMetadata{ID: id, Title: pres.Title}); err != nil {
		return report, err
	}

	fetched, err := d.Fetch(ctx, entries, targetDir)
	fetched.PresentationID = id
	fetched.Title = pres.Title
	return fetched, err
}

// BuildEntries はプロバイダの順序のまま DownloadEntry の一覧を生成します。
func BuildEntries(p *domain.Presentation) []domain.DownloadEntry {
	total := len(p.Slides)
	entries := make([]domain.DownloadEntry, 0, total)
	for _, s := range p.Slides {
		entries = append(entries, domain.DownloadEntry{
			URL:               s.ThumbnailURL,
			FileName:          asset.SlideFileName(s.Index, total, s.SlideID),
			NoteLines:         s.NoteLines,
			PresentationTitle: p.Title,
		})
	}
	return entries
}

// Fetch は entries を並列に処理し、すべての作業単位が終わるまで待ちます。
func (d *Downloader) Fetch(ctx context.Context, entries []domain.DownloadEntry, targetDir string) (Report, error) {
	outcomes := make([]outcome, len(entries))

	var eg errgroup.Group
	eg.SetLimit(d.concurrency)
	for i, entry := range entries {
		eg.Go(func() error {
			outcomes[i] = d.fetchOne(ctx, entry, targetDir)
			return nil
		})
	}
	_ = eg.Wait()

	report := newReport(entries, outcomes)
	slog.InfoContext(ctx, "スライドの取得が完了しました",
		"total", report.Total,
		"downloaded", len(report.Downloaded),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// fetchOne は1枚分のノートを書き込み、画像が未取得であればダウンロードします。
func (d *Downloader) fetchOne(ctx context.Context, entry domain.DownloadEntry, targetDir string) outcome {
	if err := ctx.Err(); err != nil {
		return failed(ctx, entry, err)
	}

	metaPath := filepath.Join(targetDir, asset.MetaFileName(entry.FileName))
	if err := storage.WriteFileAtomic(metaPath, func(w io.Writer) error {
		_, err := io.WriteString(w, entry.NoteText())
		return err
	}); err != nil {
		return failed(ctx, entry, err)
	}

	dest := filepath.Join(targetDir, entry.FileName)
	if _, err := os.Stat(dest); err == nil {
		slog.DebugContext(ctx, "取得済みのためスキップします", "file", entry.FileName)
		return outcome{status: statusSkipped}
	}

	reqCtx, cancel := context.WithTimeout(ctx, d.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, entry.URL, nil)
	if err != nil {
		return failed(ctx, entry, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return failed(ctx, entry, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "画像を取得できなかったためスキップします", "file", entry.FileName, "status", resp.StatusCode)
		return outcome{status: statusSkipped}
	}

	if err := storage.WriteFileAtomic(dest, func(w io.Writer) error {
		_, err := io.Copy(w, resp.Body)
		return err
	}); err != nil {
		return failed(ctx, entry, err)
	}

	slog.DebugContext(ctx, "画像を保存しました", "file", entry.FileName)
	return outcome{status: statusDownloaded}
}

func failed(ctx context.Context, entry domain.DownloadEntry, err error) outcome {
	terr := &domain.TransferError{FileName: entry.FileName, URL: entry.URL, Err: err}
	slog.WarnContext(ctx, "スライドの取得に失敗しました", "file", entry.FileName, "error", err)
	return outcome{status: statusFailed, err: terr}
}
