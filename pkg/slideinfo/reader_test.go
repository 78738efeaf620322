package slideinfo

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/metadata"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "二つの URL と文章",
			text: "詳しくは以下を参照してください。\nhttps://a.example/docs\nhttp://b.example/x?y=1",
			want: []string{"https://a.example/docs", "http://b.example/x?y=1"},
		},
		{
			name: "URL なし",
			text: "発表者向けのメモ",
			want: nil,
		},
		{
			name: "空白区切りで終端",
			text: "see https://a.example/p and more",
			want: []string{"https://a.example/p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractURLs(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_Read(t *testing.T) {
	website := t.TempDir()
	target := filepath.Join(website, "deck")
	writeFiles(t, target, map[string]string{
		"10_k.png":         "x",
		"2_c.png":          "x",
		"1_b.png":          "x",
		"1_b.png.meta":     "参考資料\nhttps://a.example/1\nhttps://b.example/2",
		"2_c.png.meta":     "",
		"background_0.png": "x",
		"readme.txt":       "x",
	})
	if err := metadata.UpsertTitle(filepath.Join(website, "presentations.meta"), domain.PresentationMetadata{ID: "deck", Title: "月次報告"}); err != nil {
		t.Fatal(err)
	}

	records, err := NewReader().Read(target)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	var files []string
	for _, r := range records {
		files = append(files, r.FileName)
		if r.Title != "月次報告" {
			t.Errorf("%s: Title = %q", r.FileName, r.Title)
		}
	}
	if want := []string{"1_b.png", "2_c.png", "10_k.png"}; !slices.Equal(files, want) {
		t.Fatalf("順序: got %v, want %v", files, want)
	}

	if records[0].Image != "./deck/1_b.png" {
		t.Errorf("Image: got %q", records[0].Image)
	}
	if want := []string{"https://a.example/1", "https://b.example/2"}; !slices.Equal(records[0].NoteURLs, want) {
		t.Errorf("NoteURLs: got %v, want %v", records[0].NoteURLs, want)
	}
	if records[1].HasNotes() || records[2].HasNotes() {
		t.Error("URL のないスライドにノートが付与されました")
	}
}

func TestReader_Read_MissingMetadata(t *testing.T) {
	website := t.TempDir()
	target := filepath.Join(website, "deck")
	writeFiles(t, target, map[string]string{"0_a.png": "x"})
	if err := metadata.UpsertTitle(filepath.Join(website, "presentations.meta"), domain.PresentationMetadata{ID: "other", Title: "別資料"}); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader().Read(target)
	var missing *domain.MetadataMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("MetadataMissingError を期待しましたが %v でした", err)
	}
	if missing.PresentationID != "deck" {
		t.Errorf("PresentationID: got %q", missing.PresentationID)
	}
}

func TestReader_Read_TrailingSeparator(t *testing.T) {
	website := t.TempDir()
	target := filepath.Join(website, "deck")
	writeFiles(t, target, map[string]string{"0_a.png": "x"})
	if err := metadata.UpsertTitle(filepath.Join(website, "presentations.meta"), domain.PresentationMetadata{ID: "deck", Title: "t"}); err != nil {
		t.Fatal(err)
	}

	records, err := NewReader().Read(target + string(filepath.Separator))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 1 || records[0].Image != "./deck/0_a.png" {
		t.Errorf("got %+v", records)
	}
}
