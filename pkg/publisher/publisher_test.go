package publisher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/storage"
)

func sampleRecords() []domain.SlideRecord {
	return []domain.SlideRecord{
		{Image: "./deck/0_a.png", FileName: "0_a.png", Title: "月次報告",
			NoteURLs: []string{"https://a.example/1", "https://b.example/2"}},
		{Image: "./deck/1_b.png", FileName: "1_b.png", Title: "月次報告"},
	}
}

func TestRender_IsDeterministic(t *testing.T) {
	first, err := Render(sampleRecords(), DefaultTemplate)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for range 5 {
		again, err := Render(sampleRecords(), DefaultTemplate)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatal("同じ入力で異なる出力になりました")
		}
	}
}

func TestRender_DefaultTemplate(t *testing.T) {
	html, err := Render(sampleRecords(), DefaultTemplate)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	checks := []string{
		"<title>月次報告</title>",
		`<img src="./deck/0_a.png" alt="0_a.png" />`,
		`<img src="./deck/1_b.png" alt="1_b.png" />`,
		`href="https://a.example/1"`,
		`href="https://b.example/2"`,
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("出力に %q が含まれていません", want)
		}
	}

	if n := strings.Count(html, "<section>"); n != 2 {
		t.Errorf("section 数: got %d, want 2", n)
	}
	if n := strings.Count(html, `<aside class="notes">`); n != 1 {
		t.Errorf("ノートはURLのあるスライドにだけ出力されるはずです: got %d", n)
	}
	if strings.Index(html, "https://a.example/1") > strings.Index(html, "https://b.example/2") {
		t.Error("URL の順序が保たれていません")
	}
}

func TestRender_NoNotes(t *testing.T) {
	records := []domain.SlideRecord{
		{Image: "./deck/0_a.png", FileName: "0_a.png", Title: "t"},
		{Image: "./deck/1_b.png", FileName: "1_b.png", Title: "t"},
		{Image: "./deck/2_c.png", FileName: "2_c.png", Title: "t"},
	}
	html, err := Render(records, DefaultTemplate)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<aside") {
		t.Error("ノートがないのに aside が出力されました")
	}
	if n := strings.Count(html, "<section>"); n != 3 {
		t.Errorf("section 数: got %d, want 3", n)
	}
}

func TestRender_EscapesNoteURL(t *testing.T) {
	records := []domain.SlideRecord{{
		Image: "./deck/0_a.png", FileName: "0_a.png",
		NoteURLs: []string{`https://a.example/"><script>alert(1)</script>`},
	}}
	html, err := Render(records, DefaultTemplate)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("ノートの URL がエスケープされていません")
	}
}

func TestRender_CustomTemplate(t *testing.T) {
	tmpl := `{{ .Title }}:{{ range .Slides }}[{{ .FileName }}]{{ end }}`
	got, err := Render(sampleRecords(), tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if want := "月次報告:[0_a.png][1_b.png]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := Render(nil, "{{ .Broken "); err == nil {
		t.Error("不正なテンプレートでエラーを期待しました")
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "theme.html")
	if err := os.WriteFile(custom, []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"未指定", "", DefaultTemplate},
		{"存在しないパス", filepath.Join(dir, "missing.html"), DefaultTemplate},
		{"カスタム", custom, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadTemplate(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %.20q, want %.20q", got, tt.want)
			}
		})
	}
}

func TestSitePublisher_Publish(t *testing.T) {
	website := t.TempDir()
	p := NewSitePublisher(storage.NewLocalWriter())

	res, err := p.Publish(context.Background(), sampleRecords(), Options{WebsiteDir: website, EntryName: "deck"})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if res.HTMLPath != filepath.Join(website, "deck.html") || res.Slides != 2 {
		t.Errorf("PublishResult: %+v", res)
	}
	data, err := os.ReadFile(res.HTMLPath)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Render(sampleRecords(), DefaultTemplate)
	if string(data) != want {
		t.Error("書き込まれた内容が Render の結果と一致しません")
	}

	if _, err := p.Publish(context.Background(), nil, Options{WebsiteDir: website}); err == nil {
		t.Error("エントリーページ名が空の場合はエラーを期待しました")
	}
}
