package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slides2html/internal/builder"
	"github.com/shouni/go-slides2html/internal/config"
	"github.com/shouni/go-slides2html/pkg/downloader"
	"github.com/shouni/go-slides2html/pkg/provider"
	"github.com/shouni/go-slides2html/pkg/runner"
)

// Execute は、ダウンロードから画像処理、エントリーページ生成、アップロードまでを一気通貫で実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, cleanup, err := setupAppContext(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	// --- Phase 1: Download Phase ---
	report, err := runDownloadStep(ctx, appCtx)
	if err != nil {
		return err
	}

	// --- Phase 2: Image Phase ---
	if err := runImageStep(ctx, appCtx); err != nil {
		return err
	}

	// --- Phase 3: Publish Phase ---
	if err := runPublishStep(ctx, appCtx); err != nil {
		return err
	}

	// --- Phase 4: Upload Phase ---
	if err := runUploadStep(ctx, appCtx); err != nil {
		return err
	}

	if !report.Complete() {
		slog.Warn("一部のスライドを取得できなかったのだ。再実行すると不足分だけ取り直すのだ", "failed", len(report.Failed))
	}
	slog.Info("サイトの生成が完了したのだ！", "website", appCtx.Options.Website, "entry", appCtx.EntryName())
	return nil
}

// ExecuteDownloadOnly は、スライド画像とノートの保存だけを行うのだ。
func ExecuteDownloadOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, cleanup, err := setupAppContext(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := runDownloadStep(ctx, appCtx); err != nil {
		return err
	}
	slog.Info("ダウンロードが完了したのだ！", "dir", appCtx.TargetDir())
	return nil
}

// ExecuteRenderOnly は、保存済みのディレクトリからエントリーページだけを生成し直すのだ。
// ネットワークには一切触れないのだ（--upload 指定時を除く）。
func ExecuteRenderOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, cleanup, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := runPublishStep(ctx, appCtx); err != nil {
		return err
	}
	return runUploadStep(ctx, appCtx)
}

// ExecuteImageOnly は、保存済みのスライド画像にリサイズや背景合成を適用するのだ。
func ExecuteImageOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, cleanup, err := setupAppContext(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	return runImageStep(ctx, appCtx)
}

// setupAppContext は、オプションを検証してから共有コンポーネントを初期化し、アプリケーションコンテキストを返すのだ。
// online が false の場合は認証も Slides API クライアントの生成も行わないのだ。
func setupAppContext(ctx context.Context, cfg *config.Config, online bool) (*builder.AppContext, func(), error) {
	cfg.Merge()
	opts := cfg.Options

	validate := opts.ValidateLocal
	if online {
		validate = opts.Validate
	}
	if err := validate(); err != nil {
		return nil, nil, err
	}

	id, err := opts.PresentationID()
	if err != nil {
		return nil, nil, err
	}
	lib, err := opts.LibraryConfig()
	if err != nil {
		return nil, nil, err
	}

	var p provider.AssetProvider
	if online {
		p, err = builder.InitializeProvider(ctx, opts, lib)
		if err != nil {
			return nil, nil, err
		}
	}

	writer, closeWriter, err := builder.InitializeWriter(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := closeWriter(); err != nil {
			slog.Warn("Writer のクローズに失敗したのだ", "error", err)
		}
	}

	wf, err := builder.InitializeWorkflow(lib, p, writer)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	appCtx := builder.NewAppContext(cfg, lib, id, wf)
	return &appCtx, cleanup, nil
}

// runDownloadStep は DownloadRunner を使ってスライドを並列取得するのだ
func runDownloadStep(ctx context.Context, appCtx *builder.AppContext) (downloader.Report, error) {
	slog.Info("Phase 1: ダウンロードを開始するのだ...", "id", appCtx.ID, "size", appCtx.Library.ThumbnailSize)
	downloadRunner, err := appCtx.Workflow.BuildDownloadRunner()
	if err != nil {
		return downloader.Report{}, fmt.Errorf("DownloadRunnerの構築に失敗したのだ: %w", err)
	}

	report, err := downloadRunner.Run(ctx, appCtx.ID, appCtx.Options.Website)
	if err != nil {
		return report, fmt.Errorf("ダウンロードに失敗したのだ: %w", err)
	}
	slog.Info("Phase 1: ダウンロード完了なのだ",
		"title", report.Title,
		"total", report.Total,
		"downloaded", len(report.Downloaded),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed))
	return report, nil
}

// runImageStep は ImageRunner を使ってスライド画像を加工するのだ。指定がなければ何もしないのだ
func runImageStep(ctx context.Context, appCtx *builder.AppContext) error {
	resize, err := appCtx.Options.ResizeSize()
	if err != nil {
		return err
	}
	opts := runner.ImageOptions{Resize: resize, Background: appCtx.Options.Background}
	if !opts.Enabled() {
		return nil
	}

	slog.Info("Phase 2: 画像処理を開始するのだ...", "dir", appCtx.TargetDir())
	imageRunner, err := appCtx.Workflow.BuildImageRunner()
	if err != nil {
		return fmt.Errorf("ImageRunnerの構築に失敗したのだ: %w", err)
	}
	if err := imageRunner.Run(ctx, appCtx.TargetDir(), opts); err != nil {
		return fmt.Errorf("画像処理に失敗したのだ: %w", err)
	}
	return nil
}

// runPublishStep は PublishRunner を使ってエントリーページを書き出すのだ
func runPublishStep(ctx context.Context, appCtx *builder.AppContext) error {
	slog.Info("Phase 3: エントリーページを生成するのだ...")
	publishRunner, err := appCtx.Workflow.BuildPublishRunner(appCtx.Options.ThemeFile)
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := publishRunner.Run(ctx, appCtx.ID, appCtx.Options.Website, appCtx.EntryName())
	if err != nil {
		return fmt.Errorf("エントリーページの生成に失敗したのだ: %w", err)
	}
	slog.Info("Phase 3: 生成完了なのだ", "path", result.HTMLPath, "slides", result.Slides)
	return nil
}

// runUploadStep は --upload が指定されたときだけサイトを GCS に複製するのだ
func runUploadStep(ctx context.Context, appCtx *builder.AppContext) error {
	if appCtx.Options.Upload == "" {
		return nil
	}

	slog.Info("Phase 4: アップロードを開始するのだ...", "dest", appCtx.Options.Upload)
	uploadRunner, err := appCtx.Workflow.BuildUploadRunner()
	if err != nil {
		return fmt.Errorf("UploadRunnerの構築に失敗したのだ: %w", err)
	}
	n, err := uploadRunner.Run(ctx, appCtx.ID, appCtx.Options.Website, appCtx.EntryName(), appCtx.Options.Upload)
	if err != nil {
		return fmt.Errorf("アップロードに失敗したのだ: %w", err)
	}
	slog.Info("Phase 4: アップロード完了なのだ", "files", n)
	return nil
}
