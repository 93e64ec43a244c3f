// Package render draws a shogi position as a PNG board diagram. Grounded on
// internal/ui/sprites.go's oksvg-then-rasterx SVG-to-RGBA pipeline,
// generalized from embedded chess-piece artwork (this repo ships none for
// shogi) to small synthesized per-letter koma glyphs built at call time.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/shogi-movegen/internal/shogi"
)

// Options controls the rendered board's pixel dimensions.
type Options struct {
	SquareSize int // pixels per square; defaults to 64 if zero
}

func (o Options) squareSize() int {
	if o.SquareSize <= 0 {
		return 64
	}
	return o.SquareSize
}

var (
	boardLight = color.RGBA{0xe9, 0xc8, 0x8a, 0xff}
	gridLine   = color.RGBA{0x40, 0x2a, 0x10, 0xff}
)

// Render draws pos onto a new RGBA board image, board file 0 (traditional
// file 9) at the left, file 8 (traditional file 1) at the right, rank 0 at
// the top — Sente's view.
func Render(pos *shogi.Position, opts Options) *image.RGBA {
	sq := opts.squareSize()
	size := sq * 9
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{boardLight}, image.Point{}, draw.Src)
	drawGrid(img, sq)

	for r := shogi.Rank(0); r < 9; r++ {
		for fileTrad := 1; fileTrad <= 9; fileTrad++ {
			f := shogi.File(9 - fileTrad)
			piece := pos.PieceAt(shogi.NewSquare(f, r))
			if piece.IsEmpty() {
				continue
			}
			x := (9 - fileTrad) * sq
			y := int(r) * sq
			glyph := pieceGlyph(piece, sq)
			draw.Draw(img, image.Rect(x, y, x+sq, y+sq), glyph, image.Point{}, draw.Over)
		}
	}
	return img
}

// WritePNG renders pos and encodes it as a PNG to w.
func WritePNG(pos *shogi.Position, w io.Writer, opts Options) error {
	return png.Encode(w, Render(pos, opts))
}

func drawGrid(img *image.RGBA, sq int) {
	size := sq * 9
	for i := 0; i <= 9; i++ {
		x := i * sq
		if x == size {
			x--
		}
		for y := 0; y < size; y++ {
			img.Set(x, y, gridLine)
		}
		y := i * sq
		if y == size {
			y--
		}
		for x := 0; x < size; x++ {
			img.Set(x, y, gridLine)
		}
	}
}

// komaSVG is a pentagon-shaped piece counter with a single-letter label,
// the traditional shogi koma silhouette in miniature.
const komaSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <polygon points="50,4 92,34 80,96 20,96 8,34" fill="#f3e0b5" stroke="#1a1a1a" stroke-width="4"/>
  <text x="50" y="68" font-size="52" font-family="serif" text-anchor="middle" fill="#1a1a1a">%s</text>
</svg>`

func pieceGlyph(p shogi.Piece, size int) *image.RGBA {
	svg := fmt.Sprintf(komaSVG, p.Kind.Letter())
	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(svg)))
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, size, size))
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	if p.Color == shogi.Gote {
		return rotate180(rgba)
	}
	return rgba
}

// rotate180 flips a Gote piece upside down, the traditional way to mark
// facing on a single-sided koma.
func rotate180(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sx, sy := b.Max.X-1-(x-b.Min.X), b.Max.Y-1-(y-b.Min.Y)
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
