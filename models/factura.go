package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment states of a persisted invoice.
const (
	EstadoPagoPendiente = "PENDIENTE"
	EstadoPagoPagada    = "PAGADA"
	EstadoPagoAnulada   = "ANULADA"
)

// Factura is a persisted invoice with its assigned sequence number.
type Factura struct {
	NumeroFactura int64           `json:"numero_factura"`
	IDCliente     int             `json:"id_cliente"`
	IDEmpleado    int             `json:"id_empleado"`
	Fecha         string          `json:"fecha"`
	Direccion     string          `json:"direccion"`
	Telefono      string          `json:"telefono"`
	RTN           string          `json:"rtn"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Descuento     decimal.Decimal `json:"descuento"`
	ISV           decimal.Decimal `json:"isv"`
	Total         decimal.Decimal `json:"total"`
	TipoVenta     TipoVenta       `json:"tipo_venta"`
	Observaciones string          `json:"observaciones"`
	EstadoPago    string          `json:"estado_pago"`
	CreatedAt     time.Time       `json:"created_at"`
	// Computed fields
	ClienteNombre  string          `json:"cliente,omitempty"`
	EmpleadoNombre string          `json:"empleado,omitempty"`
	Productos      []Producto      `json:"productos,omitempty"`
	Materiales     []MaterialLinea `json:"materiales,omitempty"`
}

// FacturaInput is the wire shape accepted by POST /facturas/crear-simple/.
type FacturaInput struct {
	IDCliente     int             `json:"id_cliente"`
	IDEmpleado    int             `json:"id_empleado"`
	Fecha         string          `json:"fecha"`
	Direccion     string          `json:"direccion"`
	Telefono      string          `json:"telefono"`
	RTN           string          `json:"rtn"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Descuento     decimal.Decimal `json:"descuento"`
	ISV           decimal.Decimal `json:"isv"`
	Total         decimal.Decimal `json:"total"`
	TipoVenta     TipoVenta       `json:"tipo_venta"`
	Observaciones string          `json:"observaciones"`
	Productos     []Producto      `json:"productos"`
	Materiales    []MaterialLinea `json:"materiales"`
}

// Validate checks the persistence payload and reports every offending field.
func (f *FacturaInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.IDCliente <= 0 {
		errs["id_cliente"] = "id_cliente es requerido"
	}
	if f.IDEmpleado <= 0 {
		errs["id_empleado"] = "id_empleado es requerido"
	}
	if f.Fecha == "" {
		errs["fecha"] = "fecha es requerida"
	} else if _, err := time.Parse("2006-01-02", f.Fecha); err != nil {
		errs["fecha"] = "fecha debe tener formato YYYY-MM-DD"
	}
	if !f.TipoVenta.Valido() {
		errs["tipo_venta"] = "tipo_venta debe ser VENTA, FABRICACION o REPARACION"
	}
	if f.Descuento.IsNegative() {
		errs["descuento"] = "descuento no puede ser negativo"
	}
	for i, p := range f.Productos {
		if p.Cantidad <= 0 && f.TipoVenta != TipoReparacion {
			errs[ProductoKey(i, "cantidad")] = "cantidad debe ser mayor a 0"
		}
		if p.Precio.IsNegative() {
			errs[ProductoKey(i, "precio")] = "precio no puede ser negativo"
		}
	}
	for i, m := range f.Materiales {
		if m.Peso.IsNegative() {
			errs[MaterialKey(i, "peso")] = "peso no puede ser negativo"
		}
		if m.Precio.IsNegative() {
			errs[MaterialKey(i, "precio")] = "precio no puede ser negativo"
		}
	}
	return errs
}

// FacturaCreada is the response of a successful persistence call.
type FacturaCreada struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message,omitempty"`
	NumeroFactura int64    `json:"numero_factura"`
	Factura       *Factura `json:"factura,omitempty"`
}
