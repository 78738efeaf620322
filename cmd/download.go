package cmd

import (
	"github.com/shouni/go-slides2html/internal/pipeline"

	"github.com/spf13/cobra"
)

// downloadCmd は、スライド画像とノートの保存だけを行うサブコマンドなのだ。
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "スライド画像とノートを保存するだけなのだ。",
	Long: `<website>/<id>/ にスライド画像とノートを保存し、<website>/presentations.meta にタイトルを登録するのだ。
エントリーページは生成しないので、後から render で作るのだ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteDownloadOnly(cmd.Context(), loadConfig())
	},
}
