package slideinfo

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/shouni/go-slides2html/pkg/asset"
	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/metadata"
)

// URLRegex はノート本文中の URL を抽出します。URL 以外のテキストは捨てます。
var URLRegex = regexp.MustCompile(`https?://\S+`)

// Reader はダウンロード済みディレクトリからレンダリング用の SlideRecord を組み立てます。
type Reader struct{}

// NewReader は Reader を生成します。
func NewReader() *Reader {
	return &Reader{}
}

// Read は targetDir のスライド画像を数値順に並べ、ノートの URL とタイトルを付与して返します。
// タイトルは親ディレクトリのインデックスから targetDir のディレクトリ名で引きます。
func (r *Reader) Read(targetDir string) ([]domain.SlideRecord, error) {
	targetDir = filepath.Clean(targetDir)
	id := domain.PresentationID(filepath.Base(targetDir))

	title, err := metadata.LookupTitle(asset.IndexPath(targetDir), id)
	if err != nil {
		return nil, err
	}

	names, err := asset.ListSlideImages(targetDir)
	if err != nil {
		return nil, &domain.FilesystemError{Op: "readdir", Path: targetDir, Err: err}
	}

	records := make([]domain.SlideRecord, 0, len(names))
	for _, name := range names {
		urls, err := readNoteURLs(filepath.Join(targetDir, asset.MetaFileName(name)))
		if err != nil {
			return nil, err
		}
		records = append(records, domain.SlideRecord{
			Image:    "./" + string(id) + "/" + name,
			FileName: name,
			NoteURLs: urls,
			Title:    title,
		})
	}

	slog.Debug("スライド情報を読み込みました", "dir", targetDir, "slides", len(records))
	return records, nil
}

// ExtractURLs は本文中に現れる順序で URL を返します。
func ExtractURLs(text string) []string {
	return URLRegex.FindAllString(text, -1)
}

func readNoteURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// サイドカーがない画像はノートなしとして扱う
		return nil, nil
	}
	if err != nil {
		return nil, &domain.FilesystemError{Op: "read", Path: path, Err: err}
	}
	return ExtractURLs(string(data)), nil
}
