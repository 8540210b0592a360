// Package render produces the printable document for invoices and
// quotations. Rendering is deterministic: the same input yields the same
// bytes, with no clocks or generated identifiers in the visible content.
package render

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joyascharlys/backoffice/models"
)

// Page dimensions of the printable surface, US Letter at 96 dpi.
const (
	AnchoPaginaPx = 816  // 8.5in
	AltoPaginaPx  = 1056 // 11in
)

// Vista is the deterministic input used for document rendering.
type Vista struct {
	Emisor     EmisorView
	Documento  DocumentoView
	Cliente    ClienteView
	Productos  []ProductoView
	Materiales []MaterialView
	Totales    TotalesView
}

// EmisorView identifies the shop on the document header.
type EmisorView struct {
	Nombre    string
	Direccion string
	Telefono  string
	RTN       string
}

type DocumentoView struct {
	// Etiqueta is the badge text, FACTURA or COTIZACIÓN.
	Etiqueta string
	Numero   string
	Tipo     models.TipoVenta
	// TipoNombre is the human label: Venta Directa, Fabricación, Reparación.
	TipoNombre string
	Fecha      string
	// Vigencia is fecha+30d, set only for quotations.
	Vigencia      string
	Observaciones string
	EsCotizacion  bool
}

type ClienteView struct {
	Nombre    string
	Direccion string
	Telefono  string
	RTN       string
}

type ProductoView struct {
	Codigo         string
	Nombre         string
	Descripcion    string
	Cantidad       int
	Precio         string
	Importe        string
	TipoJoya       string
	TipoReparacion string
}

type MaterialView struct {
	Tipo   string
	Peso   string
	Precio string
	Costo  string
}

type TotalesView struct {
	Subtotal      string
	Descuento     string // empty when zero; the row is omitted
	ISV           string
	Total         string
	Anticipo      string // empty for direct sales
	PagoPendiente string
}

// Renderer turns a view into the page-sized HTML document.
type Renderer interface {
	RenderHTML(v Vista) (string, error)
}

var abreviaturas = map[models.TipoVenta]string{
	models.TipoVentaDirecta: "VEN",
	models.TipoFabricacion:  "FAB",
	models.TipoReparacion:   "REP",
}

var nombresTipo = map[models.TipoVenta]string{
	models.TipoVentaDirecta: "Venta Directa",
	models.TipoFabricacion:  "Fabricación",
	models.TipoReparacion:   "Reparación",
}

// NumeroDocumento formats the visible document number:
// FAC-VEN-000042 for invoices, COT-REP-000007 for quotations.
func NumeroDocumento(esCotizacion bool, tipo models.TipoVenta, seq int64) string {
	prefijo := "FAC"
	if esCotizacion {
		prefijo = "COT"
	}
	abr, ok := abreviaturas[tipo]
	if !ok {
		abr = "VEN"
	}
	return fmt.Sprintf("%s-%s-%06d", prefijo, abr, seq)
}

// FechaVigencia returns fecha+30 days in YYYY-MM-DD, the validity bound
// printed on quotations. It is derived from the document date, never from the
// wall clock.
func FechaVigencia(fecha string) (string, error) {
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return "", fmt.Errorf("fecha inválida %q: %w", fecha, err)
	}
	return t.AddDate(0, 0, models.VigenciaDias).Format("2006-01-02"), nil
}

// NuevaVista projects a calculated document into the flat view the templates
// consume. Monetary values are fixed to two decimals here so the template
// never formats numbers itself.
func NuevaVista(emisor EmisorView, doc models.Documento, esCotizacion bool) (Vista, error) {
	etiqueta := "FACTURA"
	if esCotizacion {
		etiqueta = "COTIZACIÓN"
	}
	v := Vista{
		Emisor: emisor,
		Documento: DocumentoView{
			Etiqueta:      etiqueta,
			Numero:        NumeroDocumento(esCotizacion, doc.Tipo, doc.Numero),
			Tipo:          doc.Tipo,
			TipoNombre:    nombresTipo[doc.Tipo],
			Fecha:         doc.Fecha,
			Observaciones: doc.Observaciones,
			EsCotizacion:  esCotizacion,
		},
		Cliente: ClienteView{
			Nombre:    doc.Cliente.Nombre,
			Direccion: doc.Cliente.Direccion,
			Telefono:  doc.Cliente.Telefono,
			RTN:       doc.Cliente.RTN,
		},
	}

	if esCotizacion {
		vig, err := FechaVigencia(doc.Fecha)
		if err != nil {
			return Vista{}, err
		}
		v.Documento.Vigencia = vig
	}

	for _, p := range doc.Productos {
		importe := p.Precio.Mul(decimal.NewFromInt(int64(p.Cantidad)))
		v.Productos = append(v.Productos, ProductoView{
			Codigo:         p.Codigo,
			Nombre:         p.Producto,
			Descripcion:    p.Descripcion,
			Cantidad:       p.Cantidad,
			Precio:         p.Precio.StringFixed(2),
			Importe:        importe.StringFixed(2),
			TipoJoya:       p.TipoJoya,
			TipoReparacion: p.TipoReparacion,
		})
	}
	for _, m := range doc.Materiales {
		v.Materiales = append(v.Materiales, MaterialView{
			Tipo:   m.Tipo,
			Peso:   m.Peso.StringFixed(2),
			Precio: m.Precio.StringFixed(2),
			Costo:  m.Costo.StringFixed(2),
		})
	}

	r := doc.Resultados
	v.Totales = TotalesView{
		Subtotal: r.Subtotal.StringFixed(2),
		ISV:      r.ISV.StringFixed(2),
		Total:    r.Total.StringFixed(2),
	}
	if doc.Costos.Descuentos.IsPositive() {
		v.Totales.Descuento = doc.Costos.Descuentos.StringFixed(2)
	}
	if doc.Tipo.ConMateriales() {
		v.Totales.Anticipo = r.Anticipo.StringFixed(2)
		v.Totales.PagoPendiente = r.PagoPendiente.StringFixed(2)
	}
	return v, nil
}
