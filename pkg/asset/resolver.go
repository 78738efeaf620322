package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// IndexFileName はサイト直下に置かれるプレゼンテーションのインデックスファイル名です。
	IndexFileName = "presentations.meta"
	// MetaSuffix はスライド画像に対応するノートのサイドカーファイルの拡張子です。
	MetaSuffix = ".meta"
	// ImageExt はスライド画像の拡張子です。
	ImageExt = ".png"
	// BackgroundMarker を含むファイルは背景画像として扱い、スライドとしては列挙しません。
	BackgroundMarker = "background_"
	// EntryExt はエントリーページの拡張子です。
	EntryExt = ".html"
	// PartialSuffix は書き込み途中の一時ファイルに付与する接尾辞です。
	PartialSuffix = ".part"
)

// StaticDirs はエントリーページが相対参照する reveal.js の配布物ディレクトリです。
var StaticDirs = []string{"css", "js", "lib", "plugin"}

// SlideFileRegex はスライド画像 (03_g1a2b3.png 等) に一致し、先頭のインデックスを取り出します。
var SlideFileRegex = createIndexedRegex(ImageExt)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// PresentationDir はサイトディレクトリ配下のプレゼンテーション用ディレクトリを返します。
func PresentationDir(websiteDir, id string) string {
	return filepath.Join(websiteDir, id)
}

// IndexPath はプレゼンテーションのディレクトリから、サイト直下のインデックスファイルのパスを導出します。
func IndexPath(presentationDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(presentationDir)), IndexFileName)
}

// EntryFileName はエントリーページのファイル名を返します。拡張子がなければ .html を付与します。
func EntryFileName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), EntryExt) {
		return name
	}
	return name + EntryExt
}

// MetaFileName はスライド画像に対応するサイドカーファイル名を返します。
func MetaFileName(imageName string) string {
	return imageName + MetaSuffix
}

// createIndexedRegex は、拡張子に基づきインデックス付きファイル用の正規表現を生成します。
// 例: ".png" -> ^(\d+)_(.+)\.png$
func createIndexedRegex(ext string) *regexp.Regexp {
	pattern := fmt.Sprintf(`^(\d+)_(.+)%s$`, regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
