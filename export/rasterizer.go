package export

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"regexp"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Rasterizer turns the rendered HTML into a page-sized image with a white
// background. Implementations must honor the requested dimensions exactly.
type Rasterizer interface {
	Capture(ctx context.Context, html string, ancho, alto int) (image.Image, error)
}

var (
	etiquetaHTML  = regexp.MustCompile(`<[^>]*>`)
	bloqueEstilo  = regexp.MustCompile(`(?s)<style[^>]*>.*?</style>`)
	espaciosMulti = regexp.MustCompile(`[ \t]+`)
)

// TextoRasterizer draws the document's visible text onto a white canvas with
// a fixed bitmap font. It keeps the export path self-contained: no browser,
// no display server, same bytes on every run.
type TextoRasterizer struct{}

func (TextoRasterizer) Capture(ctx context.Context, html string, ancho, alto int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, ancho, alto))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}

	const margen = 48
	const interlineado = 16
	y := margen
	for _, linea := range lineasVisibles(html) {
		if y > alto-margen {
			break
		}
		d.Dot = fixed.P(margen, y)
		d.DrawString(linea)
		y += interlineado
	}
	return img, nil
}

// lineasVisibles strips markup and collapses whitespace, keeping the
// document's text in source order.
func lineasVisibles(html string) []string {
	texto := bloqueEstilo.ReplaceAllString(html, "")
	texto = etiquetaHTML.ReplaceAllString(texto, "\n")
	texto = strings.NewReplacer("&middot;", "·", "&minus;", "-", "&amp;", "&", "&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'").Replace(texto)

	var lineas []string
	for _, l := range strings.Split(texto, "\n") {
		l = strings.TrimSpace(espaciosMulti.ReplaceAllString(l, " "))
		if l != "" {
			lineas = append(lineas, l)
		}
	}
	return lineas
}
