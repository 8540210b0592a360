package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation lifecycle states.
const (
	CotizacionActiva     = "ACTIVA"
	CotizacionConvertida = "CONVERTIDA"
	CotizacionAnulada    = "ANULADA"
)

// VigenciaDias is the validity window of a quotation: it expires 30 days
// after issue.
const VigenciaDias = 30

// Cotizacion is a persisted quotation. It carries the same monetary fields as
// an invoice so conversion copies them verbatim.
type Cotizacion struct {
	NumeroCotizacion int64           `json:"numero_cotizacion"`
	IDCliente        int             `json:"id_cliente"`
	IDEmpleado       int             `json:"id_empleado"`
	FechaCreacion    string          `json:"fecha_creacion"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Direccion        string          `json:"direccion"`
	Telefono         string          `json:"telefono"`
	RTN              string          `json:"rtn"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Descuento        decimal.Decimal `json:"descuento"`
	ISV              decimal.Decimal `json:"isv"`
	Total            decimal.Decimal `json:"total"`
	TipoServicio     TipoVenta       `json:"tipo_servicio"`
	Observaciones    string          `json:"observaciones"`
	Estado           string          `json:"estado"`
	NumeroFactura    *int64          `json:"numero_factura_conversion,omitempty"`
	FechaConversion  *string         `json:"fecha_conversion,omitempty"`
	ClienteNombre    string          `json:"cliente_nombre,omitempty"`
}

// Vencida reports whether the quotation is active but past its validity date
// as of hoy (YYYY-MM-DD). Converted and annulled quotations never count as
// expired.
func (c *Cotizacion) Vencida(hoy string) bool {
	return c.Estado == CotizacionActiva && c.FechaVencimiento != "" && c.FechaVencimiento < hoy
}

// CotizacionInput is the wire shape accepted by POST /cotizaciones/.
type CotizacionInput struct {
	IDCliente        int             `json:"id_cliente"`
	IDEmpleado       int             `json:"id_empleado"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Direccion        string          `json:"direccion"`
	Telefono         string          `json:"telefono"`
	RTN              string          `json:"rtn"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Descuento        decimal.Decimal `json:"descuento"`
	ISV              decimal.Decimal `json:"isv"`
	Total            decimal.Decimal `json:"total"`
	TipoServicio     TipoVenta       `json:"tipo_servicio"`
	Observaciones    string          `json:"observaciones"`
	Estado           string          `json:"estado"`
}

// Validate checks the quotation payload and reports every offending field.
func (c *CotizacionInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if c.IDCliente <= 0 {
		errs["id_cliente"] = "id_cliente es requerido"
	}
	if c.IDEmpleado <= 0 {
		errs["id_empleado"] = "id_empleado es requerido"
	}
	if !c.TipoServicio.Valido() {
		errs["tipo_servicio"] = "tipo_servicio debe ser VENTA, FABRICACION o REPARACION"
	}
	if c.FechaVencimiento != "" {
		if _, err := time.Parse("2006-01-02", c.FechaVencimiento); err != nil {
			errs["fecha_vencimiento"] = "fecha_vencimiento debe tener formato YYYY-MM-DD"
		}
	}
	if c.Descuento.IsNegative() {
		errs["descuento"] = "descuento no puede ser negativo"
	}
	switch c.Estado {
	case "", CotizacionActiva, CotizacionConvertida, CotizacionAnulada:
	default:
		errs["estado"] = "estado debe ser ACTIVA, CONVERTIDA o ANULADA"
	}
	if c.Estado == "" {
		c.Estado = CotizacionActiva
	}
	return errs
}

// FiltrosCotizacion are the supported list filters.
type FiltrosCotizacion struct {
	Estado  string // ACTIVA, CONVERTIDA, ANULADA, or VENCIDA (derived)
	Cliente int
	Desde   string // fecha_creacion >= Desde
	Hasta   string // fecha_creacion <= Hasta
	Tipo    TipoVenta
}

// EstadisticasCotizaciones summarizes the register for the quotations screen.
type EstadisticasCotizaciones struct {
	Total       int `json:"total"`
	Activas     int `json:"activas"`
	Vencidas    int `json:"vencidas"`
	Convertidas int `json:"convertidas"`
}
