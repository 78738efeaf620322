package builder

import (
	"context"
	"fmt"
	"os"

	"github.com/shouni/go-slides2html/internal/config"
	libconfig "github.com/shouni/go-slides2html/pkg/config"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/downloader"
	"github.com/shouni/go-slides2html/pkg/provider"
	"github.com/shouni/go-slides2html/pkg/storage"
	"github.com/shouni/go-slides2html/pkg/workflow"
)

// offlineProvider はダウンロードを伴わないコマンドで使う AssetProvider です。
// 呼び出された場合はエラーを返します。
type offlineProvider struct{}

func (offlineProvider) Presentation(_ context.Context, id domain.PresentationID) (*domain.Presentation, error) {
	return nil, fmt.Errorf("オフライン実行中のため %s を取得できません", id)
}

// InitializeProvider は認証情報から Slides API の AssetProvider を構築します。
// 対話認証が必要な場合は標準入出力で認可コードを受け取ります。
func InitializeProvider(ctx context.Context, opts config.GenerateOptions, lib libconfig.Config) (provider.AssetProvider, error) {
	clientOpts, err := provider.ClientOptions(ctx, opts.Credentials(), provider.Authorizer{In: os.Stdin, Out: os.Stderr})
	if err != nil {
		return nil, fmt.Errorf("認証に失敗しました: %w", err)
	}
	p, err := provider.NewSlidesProvider(ctx, lib, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("Slides API クライアントの初期化に失敗しました: %w", err)
	}
	return p, nil
}

// InitializeWriter はローカルへの書き込みを基本に、--upload 指定時のみ GCS への書き込みを有効にした Writer を返します。
func InitializeWriter(ctx context.Context, opts config.GenerateOptions) (storage.OutputWriter, func() error, error) {
	local := storage.NewLocalWriter()
	if opts.Upload == "" {
		return storage.NewRoutingWriter(local, nil), func() error { return nil }, nil
	}

	gcs, err := storage.NewGCSWriter(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("GCS クライアントの初期化に失敗しました: %w", err)
	}
	return storage.NewRoutingWriter(local, gcs), gcs.Close, nil
}

// InitializeWorkflow は Runner 群を構築する Manager を生成します。
func InitializeWorkflow(lib libconfig.Config, p provider.AssetProvider, writer storage.OutputWriter) (workflow.Workflow, error) {
	if p == nil {
		p = offlineProvider{}
	}
	m, err := workflow.New(workflow.ManagerArgs{
		Config:     lib,
		Provider:   p,
		HTTPClient: downloader.NewHTTPClient(lib.FetchTimeout),
		Writer:     writer,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}
	return m, nil
}
