package cmd

import (
	"github.com/shouni/go-slides2html/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有するフラグの値なのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 入出力 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Website, "website", "w", "", "サイトを書き出すローカルディレクトリなのだ（必須）。")
	rootCmd.PersistentFlags().StringVar(&opts.ID, "id", "", "プレゼンテーション ID または共有 URL なのだ（必須）。")
	rootCmd.PersistentFlags().StringVar(&opts.IndexFile, "indexfile", "", "エントリーページ名なのだ。省略時はプレゼンテーション ID を使うのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageSize, "imagesize", config.DefaultImageSize, "サムネイルのサイズ（MEDIUM または LARGE）なのだ。")

	// --- 認証 ---
	rootCmd.PersistentFlags().StringVar(&opts.CredFile, "credfile", "", "OAuth クライアントシークレットまたはサービスアカウント鍵の JSON なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.ServiceAccount, "serviceaccount", false, "--credfile をサービスアカウント鍵として扱うのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.TokenFile, "token-file", "", "対話認証で得たトークンの保存先なのだ。")

	// --- 生成・画像処理 ---
	rootCmd.PersistentFlags().StringVar(&opts.ThemeFile, "themefile", "", "html/template 形式のカスタムテーマなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Background, "background", "", "スライドの下に合成する背景画像なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Resize, "resize", "", "スライド画像の最大サイズ（width,height）なのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().IntVar(&opts.Concurrency, "concurrency", 0, "同時ダウンロード数なのだ。省略時は SLIDES2HTML_CONCURRENCY か 10 なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.FetchTimeout, "fetch-timeout", 0, "画像1枚あたりの取得タイムアウトなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Upload, "upload", "", "生成したサイトを複製する gs://bucket/prefix なのだ。website 直下の css/ js/ lib/ plugin/ も複製するので、無い場合はバケット側に reveal.js を置いておくのだ。")
}

// preRunAppE は、コマンド実行前に必須フラグのチェックを行うのだ。
// 詳しい検証はネットワークに触れる前に pipeline 側で行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	return opts.ValidateLocal()
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"slides2html",
		addAppFlags,
		preRunAppE,
		buildCmd,
		downloadCmd,
		renderCmd,
		imageCmd,
	)
}

// loadConfig は環境変数の設定にフラグの値を重ねるのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Options = opts
	return cfg
}
