package workflow

import (
	"fmt"

	"github.com/shouni/go-http-kit/httpkit"

	"github.com/shouni/go-slides2html/pkg/config"
	"github.com/shouni/go-slides2html/pkg/provider"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// ManagerArgs は Manager の構築に必要な依存関係です。
type ManagerArgs struct {
	Config config.Config
	// Provider はプレゼンテーション情報の取得元です。
	Provider provider.AssetProvider
	// HTTPClient が nil の場合は FetchTimeout に従う httpkit クライアントを使います。
	HTTPClient httpkit.Doer
	// Writer はエントリーページとアップロードの書き込み先です。
	Writer storage.OutputWriter
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg        config.Config
	provider   provider.AssetProvider
	httpClient httpkit.Doer
	writer     storage.OutputWriter
}

// New は、設定と依存関係を検証して新しい Manager を初期化します。
func New(args ManagerArgs) (*Manager, error) {
	if args.Provider == nil {
		return nil, fmt.Errorf("Provider は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}
	if err := args.Config.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}

	return &Manager{
		cfg:        args.Config,
		provider:   args.Provider,
		httpClient: args.HTTPClient,
		writer:     args.Writer,
	}, nil
}

var _ Workflow = (*Manager)(nil)
