package cmd

import (
	"fmt"

	"github.com/shouni/go-slides2html/internal/pipeline"

	"github.com/spf13/cobra"
)

// imageCmd は、保存済みのスライド画像にリサイズや背景合成を適用するサブコマンドなのだ。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "保存済みのスライド画像を加工するのだ。",
	Long: `--resize で縮小し、--background で白を透過してから背景画像を合成するのだ。
背景合成は同じ画像に繰り返すと重なって濃くなるので、一度だけ実行してほしいのだ。`,
	RunE: imageCommand,
}

// imageCommand は、image サブコマンドの実行ロジック本体なのだ。
func imageCommand(cmd *cobra.Command, args []string) error {
	if opts.Resize == "" && opts.Background == "" {
		return fmt.Errorf("--resize か --background のどちらかを指定してほしいのだ")
	}
	return pipeline.ExecuteImageOnly(cmd.Context(), loadConfig())
}
