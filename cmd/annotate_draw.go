package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelMode controls what text is drawn on each annotated match.
type LabelMode int

const (
	// LabelScore draws the similarity score, e.g. "0.95".
	LabelScore LabelMode = iota
	// LabelCenter draws "(x,y)" screen-absolute center coordinates.
	LabelCenter
	// LabelIndex draws "[n]", the match's position in the result list.
	LabelIndex
)

// ParseLabelMode converts a --label value.
func ParseLabelMode(s string) (LabelMode, error) {
	switch s {
	case "", "score":
		return LabelScore, nil
	case "center":
		return LabelCenter, nil
	case "index":
		return LabelIndex, nil
	default:
		return LabelScore, fmt.Errorf("unknown label mode %q (use score, center, or index)", s)
	}
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// AnnotateMatches draws a box and label for each match. origin is the
// screen position of the image's top-left corner; scale converts screen
// points to image pixels (2 for a Retina capture).
func AnnotateMatches(img image.Image, matches []sikuli.Match, origin sikuli.Point, scale float64, mode LabelMode) *image.RGBA {
	rgba := ImageToRGBA(img)
	if scale <= 0 {
		scale = 1
	}
	for i, m := range matches {
		drawMatchBox(rgba, i, m, origin, scale, mode)
	}
	return rgba
}

// ImageToRGBA converts any image to RGBA
func ImageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func drawMatchBox(img *image.RGBA, index int, m sikuli.Match, origin sikuli.Point, scale float64, mode LabelMode) {
	x := int(float64(m.X-origin.X) * scale)
	y := int(float64(m.Y-origin.Y) * scale)
	w := int(float64(m.W) * scale)
	h := int(float64(m.H) * scale)

	drawRectangle(img, x, y, x+w, y+h, boxColor)

	var label string
	switch mode {
	case LabelCenter:
		label = fmt.Sprintf("(%d,%d)", m.CenterX, m.CenterY)
	case LabelIndex:
		label = fmt.Sprintf("[%d]", index)
	default:
		label = sikuli.FormatFloat(m.Score)
	}
	// Labels sit just above the box so they do not cover the match.
	drawTextWithOutline(img, label, x+w/2, y-8, textColor, outlineColor)
}

// isWithinBounds checks if a point is within the image bounds
func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text centered on (x, y) with a one pixel
// outline. basicfont.Face7x13 glyphs are 7x13 pixels.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	offsetX := x - len(text)*7/2
	offsetY := y + 13/2
	if !isWithinBounds(img.Bounds(), x, y) {
		offsetY = y + 13 + 16
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
