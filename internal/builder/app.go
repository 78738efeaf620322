package builder

import (
	"github.com/shouni/go-slides2html/internal/config"
	"github.com/shouni/go-slides2html/pkg/asset"
	libconfig "github.com/shouni/go-slides2html/pkg/config"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各ステップに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（認証ファイルなど）。
	Options  config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Library  libconfig.Config       // Libraryは、Runner 群に渡す並列度やサムネイルサイズの設定です。
	ID       domain.PresentationID  // IDは、--id から解決したプレゼンテーション ID です。
	Workflow workflow.Workflow      // Workflowは、各工程の Runner を構築します。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config, lib libconfig.Config, id domain.PresentationID, wf workflow.Workflow) AppContext {
	return AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Library:  lib,
		ID:       id,
		Workflow: wf,
	}
}

// TargetDir はプレゼンテーションの保存先ディレクトリを返します。
func (a *AppContext) TargetDir() string {
	return asset.PresentationDir(a.Options.Website, string(a.ID))
}

// EntryName はエントリーページ名を返します。
func (a *AppContext) EntryName() string {
	return a.Options.EntryName(a.ID)
}
