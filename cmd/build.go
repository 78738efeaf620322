package cmd

import (
	"log/slog"

	"github.com/shouni/go-slides2html/internal/pipeline"

	"github.com/spf13/cobra"
)

// buildCmd は、ダウンロードからサイト生成までをまとめて実行するサブコマンドなのだ。
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Google スライドを reveal.js のサイトに変換するのだ。",
	Long: `プレゼンテーションのスライド画像とスピーカーノートを取得し、
必要なら画像を加工してから reveal.js のエントリーページを生成するのだ。
再実行すると取得済みのスライドはスキップされるのだ。`,
	RunE: buildCommand,
}

// buildCommand は、build サブコマンドの実行ロジック本体なのだ。
func buildCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	slog.Info("サイト生成モードを起動するのだ！",
		"id", cfg.Options.ID,
		"website", cfg.Options.Website,
		"imagesize", cfg.Options.ImageSize)

	return pipeline.Execute(cmd.Context(), cfg)
}
