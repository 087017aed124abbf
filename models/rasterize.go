package models

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rohanthewiz/serr"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card geometry at scale 1, in pixels.
const (
	cardWidth     = 320
	cardPadding   = 16
	cardBorder    = 1
	lineHeight    = 18
	sectionGap    = 8
	glyphAdvance  = 7 // basicfont.Face7x13
	glyphAscent   = 11
	underlineDrop = 2
)

var (
	cardBackground = color.RGBA{0xf9, 0xf9, 0xf9, 0xff}
	cardEdge       = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	nameColor      = color.RGBA{0x33, 0x33, 0x33, 0xff}
	provinceColor  = color.RGBA{0x66, 0x66, 0x66, 0xff}
	linkColor      = color.RGBA{0x00, 0x66, 0xcc, 0xff}
)

// JPEGRasterizer draws a card the way the page styles it and encodes it as
// JPEG. Scale multiplies the output size; Quality is the JPEG quality.
type JPEGRasterizer struct {
	Quality int
	Scale   int
}

// Rasterize renders card: the name (wrapped), the province label and the
// link label underlined in link color.
func (jr JPEGRasterizer) Rasterize(ctx context.Context, card Card) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, serr.Wrap(err, "rasterization cancelled")
	}

	src := drawCard(card)

	scale := jr.Scale
	if scale < 1 {
		scale = 1
	}
	var out image.Image = src
	if scale > 1 {
		b := src.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		out = dst
	}

	if err := ctx.Err(); err != nil {
		return nil, serr.Wrap(err, "rasterization cancelled")
	}

	quality := jr.Quality
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, serr.Wrap(err, "failed to encode card as JPEG")
	}
	return buf.Bytes(), nil
}

// drawCard lays the card out at scale 1.
func drawCard(card Card) *image.RGBA {
	maxChars := (cardWidth - 2*cardPadding) / glyphAdvance
	nameLines := wrapLines(card.Name, maxChars)

	height := cardPadding*2 + len(nameLines)*lineHeight + sectionGap + lineHeight + sectionGap + lineHeight
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, height))

	xdraw.Draw(img, img.Bounds(), image.NewUniform(cardEdge), image.Point{}, xdraw.Src)
	inner := image.Rect(cardBorder, cardBorder, cardWidth-cardBorder, height-cardBorder)
	xdraw.Draw(img, inner, image.NewUniform(cardBackground), image.Point{}, xdraw.Src)

	y := cardPadding
	for _, line := range nameLines {
		drawText(img, line, cardPadding, y, nameColor)
		y += lineHeight
	}

	y += sectionGap
	drawText(img, card.ProvinceLabel, cardPadding, y, provinceColor)
	y += lineHeight + sectionGap

	linkWidth := drawText(img, card.LinkLabel, cardPadding, y, linkColor)
	underline := image.Rect(cardPadding, y+glyphAscent+underlineDrop, cardPadding+linkWidth, y+glyphAscent+underlineDrop+1)
	xdraw.Draw(img, underline, image.NewUniform(linkColor), image.Point{}, xdraw.Src)

	return img
}

// drawText draws s with its top edge at y and returns the drawn width.
func drawText(dst *image.RGBA, s string, x, y int, c color.Color) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+glyphAscent),
	}
	d.DrawString(s)
	return (d.Dot.X - fixed.I(x)).Round()
}

// wrapLines word-wraps s to at most limit cells per line, breaking long
// words when they do not fit.
func wrapLines(s string, limit int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{""}
	}
	wrapped := ansi.Wrap(s, limit, "")

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}
