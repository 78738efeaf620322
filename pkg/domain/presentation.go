package domain

import (
	"fmt"
	"strings"
)

// PresentationID はリモートのプレゼンテーションを一意に識別する不透明な ID です。
type PresentationID string

func (id PresentationID) String() string {
	return string(id)
}

// ThumbnailSize はプロバイダに要求するサムネイル画像のサイズです。
type ThumbnailSize string

const (
	ThumbnailMedium ThumbnailSize = "MEDIUM"
	ThumbnailLarge  ThumbnailSize = "LARGE"
)

// ParseThumbnailSize は文字列を ThumbnailSize に変換します。大文字小文字は区別しません。
func ParseThumbnailSize(s string) (ThumbnailSize, error) {
	switch ThumbnailSize(strings.ToUpper(strings.TrimSpace(s))) {
	case ThumbnailMedium:
		return ThumbnailMedium, nil
	case ThumbnailLarge:
		return ThumbnailLarge, nil
	}
	return "", &ConfigurationError{
		Field:  "imagesize",
		Reason: fmt.Sprintf("%q は MEDIUM または LARGE である必要があります", s),
	}
}

// SlideDescriptor はプロバイダが返す1枚のスライドの情報を保持します。
type SlideDescriptor struct {
	Index   int
	SlideID string

	// ThumbnailURL は有効期限付きの URL です。ディスクには保存しません。
	ThumbnailURL string `json:"-"`

	// NoteLines はスピーカーノートを行単位に分割したものです。
	NoteLines []string
}

// Presentation はプロバイダの応答を境界で型付けしたものです。
type Presentation struct {
	ID     PresentationID
	Title  string
	Slides []SlideDescriptor
}

// Validate はスライドのインデックスが 0 から連続していること、
// スライド ID が空でなく一意であることを検証します。
func (p *Presentation) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("プレゼンテーション ID が空です")
	}
	seen := make(map[string]struct{}, len(p.Slides))
	for i, s := range p.Slides {
		if s.Index != i {
			return fmt.Errorf("スライドのインデックスが連続していません: 位置 %d に %d", i, s.Index)
		}
		if s.SlideID == "" {
			return fmt.Errorf("スライド %d の ID が空です", i)
		}
		if _, ok := seen[s.SlideID]; ok {
			return fmt.Errorf("スライド ID %q が重複しています", s.SlideID)
		}
		seen[s.SlideID] = struct{}{}
	}
	return nil
}

// DownloadEntry は1枚のスライドを取得して保存するための作業単位です。
type DownloadEntry struct {
	URL               string
	FileName          string
	NoteLines         []string
	PresentationTitle string
}

// NoteText はサイドカーファイルに書き込むノート本文を返します。
func (e DownloadEntry) NoteText() string {
	return strings.Join(e.NoteLines, "\n")
}

// PresentationMetadata はインデックスファイルに保存されるプレゼンテーションの情報です。
type PresentationMetadata struct {
	ID    PresentationID
	Title string
}

// SlideRecord はサイト生成に渡す1枚分のレンダリング用データです。
type SlideRecord struct {
	// Image はエントリーページから見た相対パス (./<id>/<file>) です。
	Image    string
	FileName string
	NoteURLs []string
	Title    string
}

// HasNotes はノートに URL が含まれているかを返します。
func (r SlideRecord) HasNotes() bool {
	return len(r.NoteURLs) > 0
}
