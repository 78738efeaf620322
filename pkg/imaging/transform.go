package imaging

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Fit は縦横比を保ったまま maxW x maxH に収まるよう縮小します。
// すでに収まっている画像は拡大せずそのまま返します。
func Fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Transparent は完全な不透明白 (255,255,255,255) のピクセルだけを透明白 (255,255,255,0) に置き換えます。
func Transparent(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		p := dst.Pix[i : i+4 : i+4]
		if p[0] == 0xff && p[1] == 0xff && p[2] == 0xff && p[3] == 0xff {
			p[3] = 0
		}
	}
	return dst
}

// Composite は背景の上に前景をアルファ合成した画像を返します。出力は背景の大きさになります。
// 合成結果をもう一度合成すると半透明部分がさらに濃くなるため、冪等ではありません。
func Composite(fg, bg image.Image) image.Image {
	dc := gg.NewContextForImage(bg)
	dc.DrawImage(fg, 0, 0)
	return dc.Image()
}
