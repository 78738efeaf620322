package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/go-slides2html/pkg/domain"
)

func validOptions(t *testing.T) GenerateOptions {
	t.Helper()
	cred := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(cred, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	return GenerateOptions{
		Website:   t.TempDir(),
		ID:        "https://docs.google.com/presentation/d/abc123/edit#slide=id.p1",
		ImageSize: "large",
		CredFile:  cred,
		TokenFile: filepath.Join(t.TempDir(), "token.json"),
	}
}

func TestGenerateOptions_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(o *GenerateOptions)
		wantField string
	}{
		{name: "正常系", mutate: func(o *GenerateOptions) {}},
		{name: "website なし", mutate: func(o *GenerateOptions) { o.Website = "" }, wantField: "website"},
		{name: "website が GCS", mutate: func(o *GenerateOptions) { o.Website = "gs://b/p" }, wantField: "website"},
		{name: "website が大文字の GCS", mutate: func(o *GenerateOptions) { o.Website = "GS://b/p" }, wantField: "website"},
		{name: "不正な ID", mutate: func(o *GenerateOptions) { o.ID = "not an id!" }, wantField: "id"},
		{name: "不正なサイズ", mutate: func(o *GenerateOptions) { o.ImageSize = "HUGE" }, wantField: "imagesize"},
		{name: "不正なリサイズ", mutate: func(o *GenerateOptions) { o.Resize = "800x600" }},
		{name: "認証ファイルなし", mutate: func(o *GenerateOptions) { o.CredFile = "/nonexistent/cred.json" }, wantField: "credfile"},
		{name: "upload がローカル", mutate: func(o *GenerateOptions) { o.Upload = "/tmp/out" }, wantField: "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions(t)
			tt.mutate(&o)
			err := o.Validate()
			if tt.name == "正常系" {
				if err != nil {
					t.Fatalf("予期しないエラー: %v", err)
				}
				return
			}
			var cfgErr *domain.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ConfigurationError を期待しましたが %v でした", err)
			}
			if tt.wantField != "" && cfgErr.Field != tt.wantField {
				t.Errorf("Field: got %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestGenerateOptions_Derived(t *testing.T) {
	o := validOptions(t)

	id, err := o.PresentationID()
	if err != nil || id != "abc123" {
		t.Fatalf("PresentationID: got %q, %v", id, err)
	}
	if got := o.EntryName(id); got != "abc123" {
		t.Errorf("EntryName のデフォルトは ID のはずです: got %q", got)
	}
	o.IndexFile = "index"
	if got := o.EntryName(id); got != "index" {
		t.Errorf("EntryName: got %q", got)
	}

	if s, err := o.ResizeSize(); err != nil || s != nil {
		t.Errorf("未指定の resize は nil のはずです: %v, %v", s, err)
	}
	o.Resize = "800,600"
	if s, err := o.ResizeSize(); err != nil || s == nil || s.Width != 800 || s.Height != 600 {
		t.Errorf("ResizeSize: got %v, %v", s, err)
	}

	o.Concurrency = 3
	o.FetchTimeout = 5 * time.Second
	cfg, err := o.LibraryConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ThumbnailSize != domain.ThumbnailLarge || cfg.Concurrency != 3 || cfg.FetchTimeout != 5*time.Second {
		t.Errorf("LibraryConfig: got %+v", cfg)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SLIDES2HTML_CREDENTIALS", "/etc/cred.json")
	t.Setenv("SLIDES2HTML_CONCURRENCY", "4")
	t.Setenv("SLIDES2HTML_FETCH_TIMEOUT", "bogus")

	cfg := LoadConfig()
	if cfg.CredFile != "/etc/cred.json" {
		t.Errorf("CredFile: got %q", cfg.CredFile)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency: got %d", cfg.Concurrency)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("不正な値はデフォルトになるはずです: got %s", cfg.FetchTimeout)
	}

	cfg.Options = GenerateOptions{Concurrency: 2}
	cfg.Merge()
	if cfg.Options.CredFile != "/etc/cred.json" || cfg.Options.Concurrency != 2 {
		t.Errorf("Merge: got %+v", cfg.Options)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	if got := expandHome("~/.token.json"); got != "/home/user/.token.json" {
		t.Errorf("got %q", got)
	}
	if got := expandHome("/abs/token.json"); got != "/abs/token.json" {
		t.Errorf("got %q", got)
	}
}
