package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The consumed REST surface sends and expects monetary values as plain
	// JSON numbers (subtotal: 330.00, not "330.00").
	decimal.MarshalJSONWithoutQuotes = true
}

// TipoVenta identifies which pricing rule and document layout apply. It is
// immutable once line items or materials have been entered; switching requires
// resetting the form.
type TipoVenta string

const (
	TipoVentaDirecta TipoVenta = "VENTA"
	TipoFabricacion  TipoVenta = "FABRICACION"
	TipoReparacion   TipoVenta = "REPARACION"
)

// Valido reports whether t is one of the three known document types.
func (t TipoVenta) Valido() bool {
	switch t {
	case TipoVentaDirecta, TipoFabricacion, TipoReparacion:
		return true
	}
	return false
}

// ConMateriales reports whether documents of this type carry a materials
// section and the advance/pending split.
func (t TipoVenta) ConMateriales() bool {
	return t == TipoFabricacion || t == TipoReparacion
}

// Producto is one line item of a document. For VENTA the unit price is
// entered by the user; for FABRICACION it is overwritten by the pricing
// engine; for REPARACION the line carries no price and only describes the
// piece (TipoJoya, TipoReparacion, Descripcion).
type Producto struct {
	ID             string          `json:"id,omitempty"`
	Codigo         string          `json:"codigo"`
	Producto       string          `json:"producto"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad"`
	Precio         decimal.Decimal `json:"precio"`
	TipoJoya       string          `json:"tipo_joya,omitempty"`
	TipoReparacion string          `json:"tipo_reparacion,omitempty"`
}

// MaterialLinea is one material consumed by a fabrication or repair.
// Costo is derived (peso × precio, rounded to 2 decimals) and recomputed on
// every edit of Peso or Precio for that line only.
type MaterialLinea struct {
	IDMaterial *int            `json:"id_material,omitempty"` // optional stock catalog link
	Tipo       string          `json:"tipo"`
	Peso       decimal.Decimal `json:"peso"`   // grams
	Precio     decimal.Decimal `json:"precio"` // per gram
	Costo      decimal.Decimal `json:"costo"`
}

// CostosAdicionales are the extra cost inputs used only by fabrication and
// repair documents.
type CostosAdicionales struct {
	CostoInsumos decimal.Decimal `json:"costo_insumos"`
	ManoObra     decimal.Decimal `json:"mano_obra"`
	Descuentos   decimal.Decimal `json:"descuentos"`
}

// Resultados holds the computed totals of a document. Every field is rounded
// to 2 decimals, with rounding applied at each intermediate step of the
// computation rather than once at the end.
type Resultados struct {
	Subtotal      decimal.Decimal `json:"subtotal"` // after discount
	ISV           decimal.Decimal `json:"isv"`      // 15% of Subtotal
	Total         decimal.Decimal `json:"total"`
	Anticipo      decimal.Decimal `json:"anticipo"`       // 50% of Total; 0 for VENTA
	PagoPendiente decimal.Decimal `json:"pago_pendiente"` // Total - Anticipo
}

// DatosCliente is the client block of a document.
type DatosCliente struct {
	IDCliente  int    `json:"id_cliente"`
	IDEmpleado int    `json:"id_empleado"`
	Nombre     string `json:"nombre"`
	Direccion  string `json:"direccion"`
	Telefono   string `json:"telefono"`
	RTN        string `json:"rtn"`
}

// Documento is the renderer-agnostic snapshot of an invoice or quotation
// being edited: client, line items, materials, cost inputs, computed totals
// and, once persisted, the assigned sequence number.
type Documento struct {
	Tipo          TipoVenta         `json:"tipo"`
	Cliente       DatosCliente      `json:"cliente"`
	Fecha         string            `json:"fecha"` // YYYY-MM-DD
	Observaciones string            `json:"observaciones"`
	Productos     []Producto        `json:"productos"`
	Materiales    []MaterialLinea   `json:"materiales"`
	Costos        CostosAdicionales `json:"costos"`
	Resultados    Resultados        `json:"resultados"`
	Numero        int64             `json:"numero,omitempty"` // assigned by persistence
	// ImagenReferencia holds an optional JPEG/PNG shown on a second page of
	// repair quotations.
	ImagenReferencia []byte `json:"-"`
}

// Validar runs the full required-field validation for the document's type and
// returns every offending field. It mirrors the paper workflow: client data is
// always required; items are required except that REPARACION items carry no
// price and instead need jewelry/repair descriptors; materials and the
// additional cost inputs are required for FABRICACION and REPARACION.
func (d *Documento) Validar() FieldErrors {
	errs := FieldErrors{}

	if !d.Tipo.Valido() {
		errs["tipo"] = "Seleccione un tipo de factura"
		return errs
	}

	if d.Cliente.IDCliente <= 0 && d.Cliente.Nombre == "" {
		errs["id_cliente"] = "Seleccione un cliente"
	}
	if d.Fecha == "" {
		errs["fecha"] = "La fecha es requerida"
	}
	if d.Cliente.Direccion == "" {
		errs["direccion"] = "La dirección es requerida"
	}
	if d.Cliente.Telefono == "" {
		errs["telefono"] = "El teléfono es requerido"
	} else if !TelefonoValido(d.Cliente.Telefono) {
		errs["telefono"] = "Ingrese un teléfono válido (8 dígitos, ej: 9999-9999)"
	}
	if d.Cliente.RTN != "" && !RTNValido(d.Cliente.RTN) {
		errs["rtn"] = "Ingrese un RTN válido (14 dígitos, ej: 0801-1234-567890)"
	}

	switch d.Tipo {
	case TipoVentaDirecta, TipoFabricacion:
		for i, p := range d.Productos {
			if p.Codigo == "" {
				errs[ProductoKey(i, "codigo")] = "Código del producto requerido"
			}
			if p.Producto == "" {
				errs[ProductoKey(i, "producto")] = "Nombre del producto requerido"
			}
			if p.Cantidad <= 0 {
				errs[ProductoKey(i, "cantidad")] = "Cantidad debe ser mayor a 0"
			}
			if d.Tipo == TipoVentaDirecta && !p.Precio.IsPositive() {
				errs[ProductoKey(i, "precio")] = "Precio debe ser mayor a 0"
			}
			if p.Descripcion == "" {
				errs[ProductoKey(i, "descripcion")] = "Descripción requerida"
			}
		}
	case TipoReparacion:
		for i, p := range d.Productos {
			if p.TipoJoya == "" {
				errs[ProductoKey(i, "tipoJoya")] = "Tipo de joya requerido"
			}
			if p.TipoReparacion == "" {
				errs[ProductoKey(i, "tipoReparacion")] = "Tipo de reparación requerido"
			}
			if p.Descripcion == "" {
				errs[ProductoKey(i, "descripcion")] = "Descripción requerida"
			}
		}
	}

	if d.Tipo.ConMateriales() {
		for i, m := range d.Materiales {
			if m.Tipo == "" {
				errs[MaterialKey(i, "tipo")] = "Tipo de material requerido"
			}
			if !m.Peso.IsPositive() {
				errs[MaterialKey(i, "peso")] = "Peso debe ser mayor a 0"
			}
			if !m.Precio.IsPositive() {
				errs[MaterialKey(i, "precio")] = "Precio debe ser mayor a 0"
			}
		}
		if d.Costos.CostoInsumos.IsNegative() {
			errs["costoInsumos"] = "Costo de insumos requerido"
		}
		if d.Costos.ManoObra.IsNegative() {
			errs["manoObra"] = "Costo de mano de obra requerido"
		}
	}
	if d.Costos.Descuentos.IsNegative() {
		errs["descuentos"] = "El descuento no puede ser negativo"
	}

	return errs
}
