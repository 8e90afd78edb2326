// Package preview rasterizes a receipt document into an image that
// approximates the thermal printout. It exists for development and the
// HTTP preview endpoint; bytes for real hardware come from pkg/receipt
// and never pass through here.
package preview

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/printcore/thermoprint/pkg/i18n"
	"github.com/printcore/thermoprint/pkg/receipt"
	"github.com/printcore/thermoprint/pkg/template"
)

// Metrics of basicfont.Face7x13, the only face the preview uses. A
// fixed-pitch face keeps preview columns aligned with the thermal
// column grid.
const (
	charWidth  = 7
	lineHeight = 13
	baseline   = 11
	marginX    = 8
	lineGap    = 4
)

// Renderer draws template elements onto a canvas that grows downward.
type Renderer struct {
	width    receipt.PrintWidth
	labels   i18n.Labels
	currency string

	px     int
	height int
	ctx    *gg.Context
	y      float64

	bold         bool
	doubleWidth  bool
	doubleHeight bool
	underline    bool
	align        receipt.Align
}

// Render lays out a document and returns the preview image. Width,
// language and currency defaults match the byte renderer, so a preview
// always shows the same text the printer would receive.
func Render(doc *template.Document) (image.Image, error) {
	widthCode := doc.Width
	if widthCode == "" {
		widthCode = template.DefaultWidth
	}
	width, err := template.ParseWidth(widthCode)
	if err != nil {
		return nil, err
	}

	langCode := doc.Language
	if langCode == "" {
		langCode = template.DefaultLanguage
	}
	lang, err := template.ParseLanguage(langCode)
	if err != nil {
		return nil, err
	}

	currency := doc.Currency
	if currency == "" {
		currency = receipt.DefaultCurrency
	}

	r := newRenderer(width, lang.Labels(), currency)
	for i := range doc.Elements {
		if err := r.renderElement(&doc.Elements[i]); err != nil {
			return nil, err
		}
	}
	return r.cropToContent(), nil
}

func newRenderer(width receipt.PrintWidth, labels i18n.Labels, currency string) *Renderer {
	px := width.MaxImagePx() + 2*marginX
	initialHeight := 1000

	ctx := gg.NewContext(px, initialHeight)
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.SetColor(color.Black)
	ctx.SetFontFace(basicfont.Face7x13)

	return &Renderer{
		width:    width,
		labels:   labels,
		currency: currency,
		px:       px,
		height:   initialHeight,
		ctx:      ctx,
	}
}

func (r *Renderer) cols() int { return r.width.Cols() }

func (r *Renderer) cropToContent() image.Image {
	finalHeight := int(r.y) + 2*lineGap
	if finalHeight > r.height {
		finalHeight = r.height
	}
	if finalHeight < 1 {
		finalHeight = 1
	}
	img := r.ctx.Image()
	return img.(interface {
		SubImage(r image.Rectangle) image.Image
	}).SubImage(image.Rect(0, 0, r.px, finalHeight))
}

func (r *Renderer) ensureHeight(needed int) {
	if int(r.y)+needed <= r.height {
		return
	}
	newHeight := r.height * 2
	if newHeight < int(r.y)+needed {
		newHeight = int(r.y) + needed + 1000
	}

	newCtx := gg.NewContext(r.px, newHeight)
	newCtx.SetColor(color.White)
	newCtx.Clear()
	newCtx.SetColor(color.Black)
	newCtx.SetFontFace(basicfont.Face7x13)
	newCtx.DrawImage(r.ctx.Image(), 0, 0)

	r.ctx = newCtx
	r.height = newHeight
}

// line renders one text line in the current style. Double width and
// height are simulated by nearest-neighbour upscaling of the base face,
// matching how a thermal head stretches its fixed cell font.
func (r *Renderer) line(text string) {
	img := r.lineImage(text)

	sx, sy := 1, 1
	if r.doubleWidth {
		sx = 2
	}
	if r.doubleWidth || r.doubleHeight {
		sy = 2
	}
	if sx != 1 || sy != 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*sx, b.Dy()*sy, imaging.NearestNeighbor)
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	var x int
	switch r.align {
	case receipt.AlignCenter:
		x = (r.px - w) / 2
	case receipt.AlignRight:
		x = r.px - w - marginX
	default:
		x = marginX
	}

	r.ensureHeight(h + lineGap)
	r.ctx.DrawImage(img, x, int(r.y))

	if r.underline {
		uy := r.y + float64(h) - 1
		r.ctx.SetLineWidth(float64(sy))
		r.ctx.DrawLine(float64(x), uy, float64(x+w), uy)
		r.ctx.Stroke()
	}

	r.y += float64(h + lineGap)
}

// lineImage draws text at base size onto its own transparent-free
// strip. Bold is simulated with a one pixel horizontal double strike.
func (r *Renderer) lineImage(text string) image.Image {
	n := len([]rune(text))
	w := n * charWidth
	if w < 1 {
		w = 1
	}

	ctx := gg.NewContext(w, lineHeight)
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.SetColor(color.Black)
	ctx.SetFontFace(basicfont.Face7x13)
	ctx.DrawString(text, 0, baseline)
	if r.bold {
		ctx.DrawString(text, 1, baseline)
	}
	return ctx.Image()
}

func (r *Renderer) blankLine() {
	r.ensureHeight(lineHeight + lineGap)
	r.y += lineHeight + lineGap
}

func (r *Renderer) feed(lines int) {
	if lines < 1 {
		lines = 1
	}
	h := lines * (lineHeight + lineGap)
	r.ensureHeight(h)
	r.y += float64(h)
}

// cutLine draws the dashed guide a cutter would follow.
func (r *Renderer) cutLine() {
	r.ensureHeight(lineHeight + lineGap)
	y := r.y + lineHeight/2

	r.ctx.SetLineWidth(1)
	dash, gap := 10.0, 5.0
	x := float64(marginX)
	limit := float64(r.px - marginX)
	for x < limit {
		end := x + dash
		if end > limit {
			end = limit
		}
		r.ctx.DrawLine(x, y, end, y)
		r.ctx.Stroke()
		x += dash + gap
	}

	r.y += lineHeight + lineGap
}
