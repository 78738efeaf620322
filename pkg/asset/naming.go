package asset

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// SlideFileName はスライド画像のファイル名を生成します。
// インデックスは総数の桁数でゼロ埋めするため、辞書順と数値順が一致します。
// 例: index=3, total=12, slideID="g1" -> "03_g1.png"
func SlideFileName(index, total int, slideID string) string {
	width := len(strconv.Itoa(max(total, 1)))
	return fmt.Sprintf("%0*d_%s%s", width, index, slideID, ImageExt)
}

// IsSlideImage は、ファイル名がレンダリング対象のスライド画像かを判定します。
// 背景画像、サイドカー、書き込み途中のファイルは対象外です。
func IsSlideImage(name string) bool {
	if strings.Contains(name, BackgroundMarker) {
		return false
	}
	return SlideFileRegex.MatchString(name)
}

// SlideIndex はファイル名先頭のインデックスを返します。
func SlideIndex(name string) (int, error) {
	m := SlideFileRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("スライド画像のファイル名ではありません: %s", name)
	}
	return strconv.Atoi(m[1])
}

// SortSlideFiles はファイル名を先頭インデックスの数値順に並べ替えます。
// 桁数の異なるインデックスが混在していても数値として比較します。
func SortSlideFiles(names []string) {
	slices.SortStableFunc(names, func(a, b string) int {
		ia, _ := SlideIndex(a)
		ib, _ := SlideIndex(b)
		if c := cmp.Compare(ia, ib); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

// ListSlideImages はディレクトリ内のスライド画像を列挙し、数値順に並べて返します。
func ListSlideImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSlideImage(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	SortSlideFiles(names)
	return names, nil
}
