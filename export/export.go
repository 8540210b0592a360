// Package export runs the document export pipeline: render the printable
// HTML off-screen, capture it as a page image, encode it, embed it in a
// US Letter PDF, and optionally persist the document through a gateway.
// Stages run strictly in order and each failure names its stage.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/joyascharlys/backoffice/models"
	"github.com/joyascharlys/backoffice/render"
)

// Etapa names a pipeline stage for error reporting.
type Etapa string

const (
	EtapaRender  Etapa = "RENDER"
	EtapaCaptura Etapa = "CAPTURA"
	EtapaEncode  Etapa = "ENCODE"
	EtapaEmbed   Etapa = "EMBED"
	EtapaPersist Etapa = "PERSIST"
)

// CalidadJPEG is the encoder quality for the captured page.
const CalidadJPEG = 95

// ErrorEtapa wraps a failure with the stage it happened in.
type ErrorEtapa struct {
	Etapa Etapa
	Err   error
}

func (e *ErrorEtapa) Error() string { return fmt.Sprintf("etapa %s: %v", e.Etapa, e.Err) }
func (e *ErrorEtapa) Unwrap() error { return e.Err }

// ErrPersistenciaFallida marks an export whose artifact was produced but
// whose gateway save failed. The caller keeps the PDF and the form data; only
// the server copy is missing.
var ErrPersistenciaFallida = errors.New("el documento se exportó pero no pudo guardarse")

// Persister saves the document and returns its assigned number.
type Persister interface {
	Guardar(ctx context.Context, doc models.Documento, esCotizacion bool) (int64, error)
}

// Artefacto is the result of a successful (or persistence-degraded) export.
type Artefacto struct {
	PDF        []byte
	JPEG       []byte
	Nombre     string
	Numero     int64
	Persistido bool
}

// Pipeline wires the stages together. Renderer and Rasterizer are required;
// Persister is optional (nil skips the persistence stage).
type Pipeline struct {
	Renderer   render.Renderer
	Rasterizer Rasterizer
	Persister  Persister
	Emisor     render.EmisorView
	Logger     *slog.Logger

	// DirBase is where per-export workspaces are created; defaults to the
	// system temp dir.
	DirBase string
	// Settle is an optional delay between rendering and capture, honored
	// through the context. Zero means capture immediately.
	Settle time.Duration
	// Ahora supplies fallback numbering when persistence fails or is
	// skipped; defaults to time.Now.
	Ahora func() time.Time
}

func NewPipeline(r render.Renderer, rast Rasterizer, p Persister, emisor render.EmisorView, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Renderer: r, Rasterizer: rast, Persister: p, Emisor: emisor, Logger: logger}
}

func (p *Pipeline) ahora() time.Time {
	if p.Ahora != nil {
		return p.Ahora()
	}
	return time.Now()
}

// Exportar runs the full pipeline for one document. The temp workspace is
// removed before returning, success or failure. When the persistence stage
// fails the artifact is still returned together with ErrPersistenciaFallida.
func (p *Pipeline) Exportar(ctx context.Context, doc models.Documento, esCotizacion bool) (*Artefacto, error) {
	dirBase := p.DirBase
	if dirBase == "" {
		dirBase = os.TempDir()
	}
	workdir := filepath.Join(dirBase, "export-"+uuid.NewString())
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return nil, &ErrorEtapa{EtapaRender, err}
	}
	defer func() {
		if err := os.RemoveAll(workdir); err != nil {
			p.Logger.Warn("no se pudo limpiar el directorio de exportación", "dir", workdir, "error", err)
		}
	}()

	// RENDER: the off-screen document
	numeroProvisional := doc.Numero
	if numeroProvisional == 0 {
		numeroProvisional = p.ahora().Unix()
		doc.Numero = numeroProvisional
	}
	vista, err := render.NuevaVista(p.Emisor, doc, esCotizacion)
	if err != nil {
		return nil, &ErrorEtapa{EtapaRender, err}
	}
	html, err := p.Renderer.RenderHTML(vista)
	if err != nil {
		return nil, &ErrorEtapa{EtapaRender, err}
	}
	rutaHTML := filepath.Join(workdir, "documento.html")
	if err := os.WriteFile(rutaHTML, []byte(html), 0o644); err != nil {
		return nil, &ErrorEtapa{EtapaRender, err}
	}

	if p.Settle > 0 {
		select {
		case <-time.After(p.Settle):
		case <-ctx.Done():
			return nil, &ErrorEtapa{EtapaCaptura, ctx.Err()}
		}
	}

	// CAPTURA: page-sized raster, white background
	img, err := p.Rasterizer.Capture(ctx, html, render.AnchoPaginaPx, render.AltoPaginaPx)
	if err != nil {
		return nil, &ErrorEtapa{EtapaCaptura, err}
	}

	// ENCODE
	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, img, &jpeg.Options{Quality: CalidadJPEG}); err != nil {
		return nil, &ErrorEtapa{EtapaEncode, err}
	}

	// EMBED: single-page US Letter; repair quotations with a reference image
	// get a second page
	pdfBytes, err := p.incrustarPDF(jpegBuf.Bytes(), doc, esCotizacion)
	if err != nil {
		return nil, &ErrorEtapa{EtapaEmbed, err}
	}

	art := &Artefacto{
		PDF:    pdfBytes,
		JPEG:   jpegBuf.Bytes(),
		Numero: numeroProvisional,
	}

	// PERSIST (optional)
	if p.Persister != nil {
		numero, err := p.Persister.Guardar(ctx, doc, esCotizacion)
		if err != nil {
			p.Logger.Error("fallo al guardar el documento exportado", "tipo", doc.Tipo, "error", err)
			art.Nombre = nombreArchivo(doc.Tipo, esCotizacion, art.Numero)
			return art, fmt.Errorf("%w: %v", ErrPersistenciaFallida, err)
		}
		art.Numero = numero
		art.Persistido = true
	}

	art.Nombre = nombreArchivo(doc.Tipo, esCotizacion, art.Numero)
	p.Logger.Info("documento exportado", "archivo", art.Nombre, "persistido", art.Persistido)
	return art, nil
}

func nombreArchivo(tipo models.TipoVenta, esCotizacion bool, numero int64) string {
	if esCotizacion {
		return fmt.Sprintf("cotizacion_%s_%d.pdf", strings.ToLower(string(tipo)), numero)
	}
	return fmt.Sprintf("factura_%s_%d.pdf", tipo, numero)
}

// incrustarPDF builds the letter-size PDF around the captured page.
func (p *Pipeline) incrustarPDF(jpegBytes []byte, doc models.Documento, esCotizacion bool) ([]byte, error) {
	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("pagina", opts, bytes.NewReader(jpegBytes))
	pdf.AddPage()
	pdf.ImageOptions("pagina", 0, 0, 8.5, 11, false, opts, 0, "")

	if esCotizacion && doc.Tipo == models.TipoReparacion && len(doc.ImagenReferencia) > 0 {
		tipoImg, err := tipoImagen(doc.ImagenReferencia)
		if err != nil {
			return nil, err
		}
		refOpts := gofpdf.ImageOptions{ImageType: tipoImg}
		pdf.RegisterImageOptionsReader("referencia", refOpts, bytes.NewReader(doc.ImagenReferencia))
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(0.5, 0.5)
		pdf.Cell(7.5, 0.3, "Imagen de referencia")
		pdf.ImageOptions("referencia", 0.5, 1.0, 7.5, 0, false, refOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tipoImagen(data []byte) (string, error) {
	_, formato, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("imagen de referencia ilegible: %w", err)
	}
	switch formato {
	case "jpeg":
		return "JPG", nil
	case "png":
		return "PNG", nil
	default:
		return "", fmt.Errorf("formato de imagen no soportado: %s", formato)
	}
}
