package config

import (
	"errors"
	"testing"

	"github.com/shouni/go-slides2html/pkg/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Concurrency != 10 {
		t.Errorf("Concurrency: got %d, want 10", cfg.Concurrency)
	}
	if cfg.ThumbnailSize != domain.ThumbnailMedium {
		t.Errorf("ThumbnailSize: got %q", cfg.ThumbnailSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("デフォルト設定が検証に失敗しました: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"同時実行数ゼロ", func(c *Config) { c.Concurrency = 0 }},
		{"タイムアウトゼロ", func(c *Config) { c.FetchTimeout = 0 }},
		{"不正なサイズ", func(c *Config) { c.ThumbnailSize = "HUGE" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			var cfgErr *domain.ConfigurationError
			if err := cfg.Validate(); !errors.As(err, &cfgErr) {
				t.Errorf("ConfigurationError を期待しましたが %v でした", err)
			}
		})
	}
}
