package publisher

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"

	"github.com/shouni/go-slides2html/pkg/domain"
)

// DefaultTemplate は reveal.js 用の標準テンプレートです。
//
//go:embed templates/reveal.html
var DefaultTemplate string

// SiteData はテンプレートに渡すデータです。
type SiteData struct {
	Title  string
	Slides []domain.SlideRecord
}

// Render は SlideRecord の一覧をテンプレートに流し込んだ HTML を返します。
// 同じ入力に対しては常に同じ出力を返します。
func Render(records []domain.SlideRecord, tmpl string) (string, error) {
	t, err := template.New("site").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("テンプレートの解析に失敗しました: %w", err)
	}

	data := SiteData{Slides: records}
	if len(records) > 0 {
		data.Title = records[0].Title
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("テンプレートの適用に失敗しました: %w", err)
	}
	return buf.String(), nil
}

// LoadTemplate はテーマファイルを読み込みます。
// path が空、またはファイルが存在しない場合は標準テンプレートを返します。
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return DefaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("テーマファイルが見つからないため標準テンプレートを使用します", "path", path)
		return DefaultTemplate, nil
	}
	if err != nil {
		return "", &domain.ConfigurationError{Field: "themefile", Reason: "テーマファイルの読み込みに失敗しました", Err: err}
	}
	return string(data), nil
}
