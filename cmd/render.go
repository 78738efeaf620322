package cmd

import (
	"github.com/shouni/go-slides2html/internal/pipeline"

	"github.com/spf13/cobra"
)

// renderCmd は、保存済みのスライドからエントリーページだけを生成し直すサブコマンドなのだ。
// テーマを差し替えて見た目だけ作り直したいときに便利なのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "保存済みのスライドからエントリーページを生成するのだ。",
	Long: `ネットワークに触れずに <website>/<id>/ を読み込み、<website>/<indexfile>.html を書き出すのだ。
--upload を指定した場合だけ GCS にも複製するのだ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteRenderOnly(cmd.Context(), loadConfig())
	},
}
