package metadata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/ini.v1"

	"github.com/shouni/go-slides2html/pkg/domain"
	"github.com/shouni/go-slides2html/pkg/storage"
)

// titleKey はセクション内でタイトルを保持するキー名です。
const titleKey = "title"

// Index はサイト直下の presentations.meta を表します。
// プレゼンテーション ID をセクション名とし、title キーにタイトルを保持します。
//
//	[1N8YWE7Shq...]
//	title = 四半期報告
//
// 書き込みは呼び出し元の単一ゴルーチンから行う前提で、ロックは持ちません。
type Index struct {
	path string
	file *ini.File
}

// Open はインデックスファイルを読み込みます。ファイルが存在しない場合は空のインデックスを返します。
func Open(path string) (*Index, error) {
	opts := ini.LoadOptions{
		// ノートやタイトルに ; や # を含めても値として扱う
		IgnoreInlineComment: true,
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &Index{path: path, file: ini.Empty(opts)}, nil
	}

	f, err := ini.LoadSources(opts, path)
	if err != nil {
		return nil, &domain.FilesystemError{Op: "read", Path: path, Err: err}
	}
	return &Index{path: path, file: f}, nil
}

// Lookup は指定 ID のメタデータを返します。
func (ix *Index) Lookup(id domain.PresentationID) (domain.PresentationMetadata, bool) {
	sec, err := ix.file.GetSection(string(id))
	if err != nil || !sec.HasKey(titleKey) {
		return domain.PresentationMetadata{}, false
	}
	return domain.PresentationMetadata{ID: id, Title: sec.Key(titleKey).String()}, true
}

// Upsert は指定 ID のタイトルを設定します。他のセクションには触れません。
func (ix *Index) Upsert(meta domain.PresentationMetadata) {
	ix.file.Section(string(meta.ID)).Key(titleKey).SetValue(meta.Title)
}

// IDs は登録されているプレゼンテーション ID を名前順で返します。
func (ix *Index) IDs() []domain.PresentationID {
	var ids []domain.PresentationID
	for _, name := range ix.file.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		ids = append(ids, domain.PresentationID(name))
	}
	slices.Sort(ids)
	return ids
}

// Save はインデックスを一時ファイル経由でアトミックに書き戻します。
func (ix *Index) Save() error {
	return storage.WriteFileAtomic(ix.path, func(w io.Writer) error {
		_, err := ix.file.WriteTo(w)
		return err
	})
}

// UpsertTitle はインデックスを読み込み、1件のタイトルを設定して書き戻します。
func UpsertTitle(path string, meta domain.PresentationMetadata) error {
	ix, err := Open(path)
	if err != nil {
		return err
	}
	ix.Upsert(meta)
	if err := ix.Save(); err != nil {
		return fmt.Errorf("インデックスの保存に失敗しました: %w", err)
	}
	return nil
}

// LookupTitle はインデックスから指定 ID のタイトルを返します。
// 項目がない場合は MetadataMissingError を返します。
func LookupTitle(path string, id domain.PresentationID) (string, error) {
	ix, err := Open(path)
	if err != nil {
		return "", err
	}
	meta, ok := ix.Lookup(id)
	if !ok {
		return "", &domain.MetadataMissingError{PresentationID: id, IndexPath: path}
	}
	return meta.Title, nil
}
