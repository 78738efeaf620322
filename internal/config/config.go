package config

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"
	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-slides2html/pkg/config"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/imaging"
	"github.com/shouni/go-slides2html/pkg/parser"
	"github.com/shouni/go-slides2html/pkg/provider"
)

// デフォルト値の定義なのだ
const (
	DefaultCredFile  = "credentials.json"
	DefaultTokenFile = "~/.token.json"
	DefaultImageSize = string(domain.ThumbnailMedium)
)

// Config はアプリケーション全体の環境設定（認証情報や並列度）を保持する構造体なのだ。
type Config struct {
	CredFile     string
	TokenFile    string
	Concurrency  int
	FetchTimeout time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		CredFile:     envutil.GetEnv("SLIDES2HTML_CREDENTIALS", DefaultCredFile),
		TokenFile:    envutil.GetEnv("SLIDES2HTML_TOKEN_FILE", DefaultTokenFile),
		Concurrency:  atoiOr(envutil.GetEnv("SLIDES2HTML_CONCURRENCY", ""), config.DefaultConcurrency),
		FetchTimeout: durationOr(envutil.GetEnv("SLIDES2HTML_FETCH_TIMEOUT", ""), config.DefaultFetchTimeout),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入出力
	Website   string // --website
	ID        string // --id (URL でも可)
	IndexFile string // --indexfile
	ImageSize string // --imagesize

	// 認証
	CredFile       string // --credfile
	ServiceAccount bool   // --serviceaccount
	TokenFile      string // --token-file

	// 生成・画像処理
	ThemeFile  string // --themefile
	Background string // --background
	Resize     string // --resize

	// 実行制御
	Concurrency  int           // --concurrency
	FetchTimeout time.Duration // --fetch-timeout
	Upload       string        // --upload
}

// Merge はフラグで明示されなかった項目を環境変数の値で補うのだ。
func (c *Config) Merge() {
	if c.Options.CredFile == "" {
		c.Options.CredFile = c.CredFile
	}
	if c.Options.TokenFile == "" {
		c.Options.TokenFile = c.TokenFile
	}
	if c.Options.Concurrency <= 0 {
		c.Options.Concurrency = c.Concurrency
	}
	if c.Options.FetchTimeout <= 0 {
		c.Options.FetchTimeout = c.FetchTimeout
	}
}

// PresentationID は --id を URL またはそのままの ID として解釈するのだ。
func (o GenerateOptions) PresentationID() (domain.PresentationID, error) {
	return parser.ResolveID(o.ID)
}

// EntryName はエントリーページ名を返すのだ。未指定ならプレゼンテーション ID を使うのだ。
func (o GenerateOptions) EntryName(id domain.PresentationID) string {
	if o.IndexFile != "" {
		return o.IndexFile
	}
	return string(id)
}

// ResizeSize は --resize を解析するのだ。未指定なら nil を返すのだ。
func (o GenerateOptions) ResizeSize() (*imaging.Size, error) {
	if o.Resize == "" {
		return nil, nil
	}
	s, err := imaging.ParseSize(o.Resize)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Credentials は認証に使うファイル群を返すのだ。
func (o GenerateOptions) Credentials() provider.Credentials {
	return provider.Credentials{
		File:           expandHome(o.CredFile),
		ServiceAccount: o.ServiceAccount,
		TokenFile:      expandHome(o.TokenFile),
	}
}

// LibraryConfig は pkg/config の Config に変換するのだ。
func (o GenerateOptions) LibraryConfig() (config.Config, error) {
	cfg := config.DefaultConfig()
	if o.ImageSize != "" {
		size, err := domain.ParseThumbnailSize(o.ImageSize)
		if err != nil {
			return cfg, err
		}
		cfg.ThumbnailSize = size
	}
	if o.Concurrency > 0 {
		cfg.Concurrency = o.Concurrency
	}
	if o.FetchTimeout > 0 {
		cfg.FetchTimeout = o.FetchTimeout
	}
	return cfg, cfg.Validate()
}

// ValidateLocal はネットワークを使わずに済むオプションだけを検証するのだ。
func (o GenerateOptions) ValidateLocal() error {
	if o.Website == "" {
		return &domain.ConfigurationError{Field: "website", Reason: "出力先ディレクトリを指定してください"}
	}
	if urlpath.IsGCSURI(o.Website) {
		return &domain.ConfigurationError{Field: "website", Reason: "ローカルディレクトリを指定してください。GCS へは --upload を使います"}
	}
	if _, err := o.PresentationID(); err != nil {
		return err
	}
	if _, err := o.LibraryConfig(); err != nil {
		return err
	}
	if _, err := o.ResizeSize(); err != nil {
		return err
	}
	if o.Upload != "" && !urlpath.IsGCSURI(o.Upload) {
		return &domain.ConfigurationError{Field: "upload", Reason: "gs://bucket/prefix 形式で指定してください: " + o.Upload}
	}
	return nil
}

// Validate はネットワークに触れる前にすべてのオプションを検証するのだ。
func (o GenerateOptions) Validate() error {
	if err := o.ValidateLocal(); err != nil {
		return err
	}
	return o.Credentials().Validate()
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func durationOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home := envutil.GetEnv("HOME", "")
	if home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
