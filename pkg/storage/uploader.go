package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
)

// Site はアップロード対象となる生成済みサイトの構成です。
type Site struct {
	WebsiteDir     string // ローカルのサイトディレクトリ
	PresentationID string // 画像を格納したサブディレクトリ名
	EntryFile      string // エントリーページのファイル名 (例: deck.html)
}

// Uploader は生成済みサイトを OutputWriter 経由で別の場所へ複製します。
type Uploader struct {
	writer      OutputWriter
	concurrency int
}

// NewUploader は Uploader を生成します。
func NewUploader(writer OutputWriter, concurrency int) (*Uploader, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer は必須です")
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Uploader{writer: writer, concurrency: concurrency}, nil
}

type uploadJob struct{ src, rel string }

// UploadSite はエントリーページとスライド画像を destBase 配下に同じ相対構成で書き込み、書き込んだファイル数を返します。
// サイトディレクトリに reveal.js の配布物 (asset.StaticDirs) があれば併せて複製します。
// destBase は gs://bucket/prefix またはローカルディレクトリです。
func (u *Uploader) UploadSite(ctx context.Context, site Site, destBase string) (int, error) {
	srcDir := asset.PresentationDir(site.WebsiteDir, site.PresentationID)
	images, err := asset.ListSlideImages(srcDir)
	if err != nil {
		return 0, &domain.FilesystemError{Op: "readdir", Path: srcDir, Err: err}
	}

	jobs := make([]uploadJob, 0, len(images)+1)
	jobs = append(jobs, uploadJob{src: filepath.Join(site.WebsiteDir, site.EntryFile), rel: site.EntryFile})
	for _, name := range images {
		jobs = append(jobs, uploadJob{
			src: filepath.Join(srcDir, name),
			rel: site.PresentationID + "/" + name,
		})
	}
	static, err := staticJobs(site.WebsiteDir)
	if err != nil {
		return 0, err
	}
	if len(static) == 0 {
		slog.WarnContext(ctx, "reveal.js の配布物が見つからないため、アップロード先に別途配置してください", "website", site.WebsiteDir)
	}
	jobs = append(jobs, static...)

	var uploaded atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(u.concurrency)
	for _, j := range jobs {
		eg.Go(func() error {
			dest, err := asset.ResolveOutputPath(destBase, j.rel)
			if err != nil {
				return fmt.Errorf("出力パスの解決に失敗しました (%s): %w", j.rel, err)
			}
			data, err := os.ReadFile(j.src)
			if err != nil {
				return fmt.Errorf("ファイルの読み込みに失敗しました (%s): %w", j.src, err)
			}
			if err := u.writer.Write(egCtx, dest, data); err != nil {
				return fmt.Errorf("アップロードに失敗しました (%s): %w", dest, err)
			}
			uploaded.Add(1)
			slog.DebugContext(egCtx, "アップロード完了", "dest", dest)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return int(uploaded.Load()), err
	}
	slog.InfoContext(ctx, "サイトのアップロードが完了しました", "dest", destBase, "files", uploaded.Load())
	return int(uploaded.Load()), nil
}

// staticJobs は websiteDir 直下の reveal.js 配布物ディレクトリを走査します。存在しないディレクトリは無視します。
func staticJobs(websiteDir string) ([]uploadJob, error) {
	var jobs []uploadJob
	for _, dir := range asset.StaticDirs {
		root := filepath.Join(websiteDir, dir)
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || strings.HasSuffix(d.Name(), asset.PartialSuffix) {
				return nil
			}
			rel, err := filepath.Rel(websiteDir, p)
			if err != nil {
				return err
			}
			jobs = append(jobs, uploadJob{src: p, rel: filepath.ToSlash(rel)})
			return nil
		})
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &domain.FilesystemError{Op: "walk", Path: root, Err: err}
		}
	}
	return jobs, nil
}
