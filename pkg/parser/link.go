package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-slides2html/pkg/domain"
)

// Link は共有リンクから取り出したプレゼンテーション ID と、任意のスライド ID です。
type Link struct {
	PresentationID domain.PresentationID
	// SlideID は URL にスライド指定がない場合は空です。
	SlideID string
}

// ParseLink は共有 URL を解析して Link を返します。
// http で始まらない入力はエラーになります。
func ParseLink(rawURL string) (Link, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http") {
		return Link{}, &domain.ConfigurationError{Field: "id", Reason: fmt.Sprintf("URL ではありません: %q", rawURL)}
	}

	m := PresentationIDRegex.FindStringSubmatch(rawURL)
	if m == nil {
		return Link{}, &domain.ConfigurationError{Field: "id", Reason: fmt.Sprintf("プレゼンテーションの URL ではありません: %q", rawURL)}
	}

	link := Link{PresentationID: domain.PresentationID(m[1])}
	if s := SlideIDRegex.FindStringSubmatch(rawURL); s != nil {
		link.SlideID = s[1]
	}
	return link, nil
}

// ResolveID は URL またはそのままの ID を受け取り、プレゼンテーション ID を返します。
func ResolveID(input string) (domain.PresentationID, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "http") {
		link, err := ParseLink(input)
		if err != nil {
			return "", err
		}
		if link.SlideID != "" {
			slog.Debug("スライド指定は無視してプレゼンテーション全体を対象にします", "slide_id", link.SlideID)
		}
		return link.PresentationID, nil
	}

	if !RawIDRegex.MatchString(input) {
		return "", &domain.ConfigurationError{Field: "id", Reason: fmt.Sprintf("不正なプレゼンテーション ID です: %q", input)}
	}
	return domain.PresentationID(input), nil
}
