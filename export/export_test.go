package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joyascharlys/backoffice/models"
	"github.com/joyascharlys/backoffice/pricing"
	"github.com/joyascharlys/backoffice/render"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var emisorPrueba = render.EmisorView{
	Nombre: "Joyas Charlys", Direccion: "Tegucigalpa", Telefono: "2222-3333", RTN: "0801-1980-123456",
}

func documentoVenta(t *testing.T) models.Documento {
	t.Helper()
	doc := models.Documento{
		Tipo:  models.TipoVentaDirecta,
		Fecha: "2025-03-10",
		Cliente: models.DatosCliente{
			Nombre: "Ana Pérez", Direccion: "Col. Kennedy", Telefono: "9999-8888",
		},
		Productos: []models.Producto{
			{Codigo: "AN-001", Producto: "Anillo", Descripcion: "Anillo oro", Cantidad: 1, Precio: dec("100.00")},
		},
		Numero: 42,
	}
	if _, err := pricing.New().Calcular(&doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func logSilencioso() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

// persisterFijo answers every save with the same number.
type persisterFijo struct {
	numero  int64
	err     error
	llamado bool
}

func (p *persisterFijo) Guardar(ctx context.Context, doc models.Documento, esCotizacion bool) (int64, error) {
	p.llamado = true
	if p.err != nil {
		return 0, p.err
	}
	return p.numero, nil
}

// rasterizadorFallido simulates a capture failure and records the workspace
// that existed when it ran.
type rasterizadorFallido struct {
	dirVisto string
	base     string
}

func (r *rasterizadorFallido) Capture(ctx context.Context, html string, ancho, alto int) (image.Image, error) {
	entradas, err := os.ReadDir(r.base)
	if err == nil {
		for _, e := range entradas {
			if strings.HasPrefix(e.Name(), "export-") {
				r.dirVisto = filepath.Join(r.base, e.Name())
			}
		}
	}
	return nil, errors.New("captura fallida")
}

func pipelinePrueba(t *testing.T, p Persister) *Pipeline {
	t.Helper()
	pl := NewPipeline(render.NewHTMLRenderer(), TextoRasterizer{}, p, emisorPrueba, logSilencioso())
	pl.DirBase = t.TempDir()
	return pl
}

func TestExportarVenta(t *testing.T) {
	persister := &persisterFijo{numero: 87}
	pl := pipelinePrueba(t, persister)

	art, err := pl.Exportar(context.Background(), documentoVenta(t), false)
	if err != nil {
		t.Fatalf("Exportar: %v", err)
	}
	if !persister.llamado {
		t.Error("el persister no fue invocado")
	}
	if !art.Persistido {
		t.Error("Persistido = false")
	}
	if art.Numero != 87 {
		t.Errorf("numero = %d, quería 87", art.Numero)
	}
	if art.Nombre != "factura_VENTA_87.pdf" {
		t.Errorf("nombre = %q", art.Nombre)
	}
	if !bytes.HasPrefix(art.PDF, []byte("%PDF")) {
		t.Error("el artefacto no es un PDF")
	}
	if len(art.JPEG) == 0 {
		t.Error("falta la captura JPEG")
	}
}

func TestExportarSinPersister(t *testing.T) {
	pl := pipelinePrueba(t, nil)
	doc := documentoVenta(t)
	doc.Numero = 0
	pl.Ahora = func() time.Time { return time.Unix(1741600000, 0) }

	art, err := pl.Exportar(context.Background(), doc, false)
	if err != nil {
		t.Fatalf("Exportar: %v", err)
	}
	if art.Persistido {
		t.Error("Persistido = true sin persister")
	}
	// fallback numbering comes from the injected clock
	if art.Numero != 1741600000 {
		t.Errorf("numero = %d", art.Numero)
	}
	if art.Nombre != "factura_VENTA_1741600000.pdf" {
		t.Errorf("nombre = %q", art.Nombre)
	}
}

func TestExportarPersistenciaFallida(t *testing.T) {
	persister := &persisterFijo{err: errors.New("conexión rechazada")}
	pl := pipelinePrueba(t, persister)

	art, err := pl.Exportar(context.Background(), documentoVenta(t), false)
	if !errors.Is(err, ErrPersistenciaFallida) {
		t.Fatalf("err = %v, quería ErrPersistenciaFallida", err)
	}
	// the artifact survives a failed save
	if art == nil || !bytes.HasPrefix(art.PDF, []byte("%PDF")) {
		t.Fatal("el PDF debía conservarse pese al fallo de persistencia")
	}
	if art.Persistido {
		t.Error("Persistido = true")
	}
}

func TestExportarCapturaFallidaLimpiaWorkdir(t *testing.T) {
	base := t.TempDir()
	rast := &rasterizadorFallido{base: base}
	pl := NewPipeline(render.NewHTMLRenderer(), rast, nil, emisorPrueba, logSilencioso())
	pl.DirBase = base

	_, err := pl.Exportar(context.Background(), documentoVenta(t), false)
	var etapa *ErrorEtapa
	if !errors.As(err, &etapa) || etapa.Etapa != EtapaCaptura {
		t.Fatalf("err = %v, quería ErrorEtapa en CAPTURA", err)
	}
	if rast.dirVisto == "" {
		t.Fatal("el workspace no existía durante la captura")
	}
	// cleanup runs even when a stage fails
	if _, statErr := os.Stat(rast.dirVisto); !os.IsNotExist(statErr) {
		t.Errorf("el workspace %s no fue eliminado", rast.dirVisto)
	}
}

func TestExportarCotizacionReparacionConImagen(t *testing.T) {
	doc := models.Documento{
		Tipo:  models.TipoReparacion,
		Fecha: "2025-03-10",
		Cliente: models.DatosCliente{
			Nombre: "Luis Gómez", Direccion: "Comayagüela", Telefono: "8888-7777",
		},
		Productos: []models.Producto{
			{TipoJoya: "Cadena", TipoReparacion: "Soldadura", Descripcion: "Eslabón partido"},
		},
		Materiales: []models.MaterialLinea{
			{Tipo: "PLATA", Peso: dec("8"), Precio: dec("10"), Costo: dec("80.00")},
		},
		Costos:           models.CostosAdicionales{CostoInsumos: dec("10.00"), ManoObra: dec("25.00")},
		ImagenReferencia: jpegMinimo(t),
		Numero:           7,
	}
	if _, err := pricing.New().Calcular(&doc); err != nil {
		t.Fatal(err)
	}

	pl := pipelinePrueba(t, &persisterFijo{numero: 7})
	art, err := pl.Exportar(context.Background(), doc, true)
	if err != nil {
		t.Fatalf("Exportar: %v", err)
	}
	if art.Nombre != "cotizacion_reparacion_7.pdf" {
		t.Errorf("nombre = %q", art.Nombre)
	}
	// the reference image adds a second page
	if n := bytes.Count(art.PDF, []byte("/Type /Page")) - bytes.Count(art.PDF, []byte("/Type /Pages")); n != 2 {
		t.Errorf("páginas = %d, quería 2", n)
	}
}

func TestExportarContextoCancelado(t *testing.T) {
	pl := pipelinePrueba(t, nil)
	pl.Settle = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pl.Exportar(ctx, documentoVenta(t), false)
	var etapa *ErrorEtapa
	if !errors.As(err, &etapa) || etapa.Etapa != EtapaCaptura {
		t.Fatalf("err = %v, quería cancelación en CAPTURA", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, quería context.Canceled", err)
	}
}

func TestSuperficieImpresion(t *testing.T) {
	html := SuperficieImpresion("FAC-VEN-000042", []byte{0xff, 0xd8, 0xff})
	for _, frag := range []string{"size: letter", "data:image/jpeg;base64,", "FAC-VEN-000042"} {
		if !strings.Contains(html, frag) {
			t.Errorf("falta %q", frag)
		}
	}
}

// jpegMinimo encodes a tiny white image for the reference-image path.
func jpegMinimo(t *testing.T) []byte {
	t.Helper()
	img, err := TextoRasterizer{}.Capture(context.Background(), "", 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
