package config

import (
	"fmt"
	"time"

	"github.com/shouni/go-slides2html/pkg/domain"
)

// デフォルト値の定義
const (
	DefaultConcurrency       = 10
	DefaultFetchTimeout      = 30 * time.Second
	DefaultRateInterval      = 100 * time.Millisecond
	DefaultRateBurst         = 1
	DefaultThumbnailSize     = domain.ThumbnailMedium
	DefaultThumbnailCacheTTL = 5 * time.Minute
)

// Config は go-slides2html の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- Concurrency ---
	Concurrency int // ダウンロード・画像処理で共有する同時実行数の上限

	// --- Remote API Settings ---
	ThumbnailSize     domain.ThumbnailSize
	RateInterval      time.Duration // サムネイル解決 API の呼び出し間隔
	RateBurst         int
	ThumbnailCacheTTL time.Duration // サムネイル URL のメモ保持期間。URL の有効期限より短くすること

	// --- Timeout ---
	FetchTimeout time.Duration // 画像1枚あたりの取得タイムアウト
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		Concurrency:       DefaultConcurrency,
		ThumbnailSize:     DefaultThumbnailSize,
		RateInterval:      DefaultRateInterval,
		RateBurst:         DefaultRateBurst,
		ThumbnailCacheTTL: DefaultThumbnailCacheTTL,
		FetchTimeout:      DefaultFetchTimeout,
	}
}

// Validate は設定値の整合性を検証します。
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return &domain.ConfigurationError{Field: "concurrency", Reason: fmt.Sprintf("1 以上である必要があります: %d", c.Concurrency)}
	}
	if c.FetchTimeout <= 0 {
		return &domain.ConfigurationError{Field: "fetch-timeout", Reason: fmt.Sprintf("正の値である必要があります: %s", c.FetchTimeout)}
	}
	if _, err := domain.ParseThumbnailSize(string(c.ThumbnailSize)); err != nil {
		return err
	}
	return nil
}
