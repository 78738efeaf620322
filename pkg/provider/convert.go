package provider

import (
	"strings"

	"google.golang.org/api/slides/v1"

	"github.com/shouni/go-slides2html/pkg/domain"
)

// toDescriptors は API のスライド一覧を順序を保ったまま SlideDescriptor に変換します。
// ThumbnailURL はこの時点では空です。
func toDescriptors(pages []*slides.Page) []domain.SlideDescriptor {
	descs := make([]domain.SlideDescriptor, 0, len(pages))
	for _, page := range pages {
		if page == nil {
			continue
		}
		descs = append(descs, domain.SlideDescriptor{
			Index:     len(descs),
			SlideID:   page.ObjectId,
			NoteLines: noteLines(page),
		})
	}
	return descs
}

// noteLines はスライドのスピーカーノートのテキストランを連結し、空行を除いた行に分割します。
func noteLines(page *slides.Page) []string {
	if page.SlideProperties == nil || page.SlideProperties.NotesPage == nil {
		return nil
	}
	notes := page.SlideProperties.NotesPage

	// スピーカーノートのシェイプが特定できる場合はそれだけを読む
	speakerID := ""
	if notes.NotesProperties != nil {
		speakerID = notes.NotesProperties.SpeakerNotesObjectId
	}

	var sb strings.Builder
	for _, el := range notes.PageElements {
		if el == nil || el.Shape == nil || el.Shape.Text == nil {
			continue
		}
		if speakerID != "" && el.ObjectId != speakerID {
			continue
		}
		for _, te := range el.Shape.Text.TextElements {
			if te != nil && te.TextRun != nil {
				sb.WriteString(te.TextRun.Content)
			}
		}
	}

	var lines []string
	for line := range strings.Lines(sb.String()) {
		if line = strings.TrimRight(line, "\r\n"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
