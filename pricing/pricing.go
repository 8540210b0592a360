// Package pricing computes document totals under the three business rules of
// the shop: direct sale, fabrication and repair. All functions are pure and
// deterministic; calling them twice with the same inputs yields identical
// results.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/joyascharlys/backoffice/models"
)

// TasaISV is the sales tax rate, applied to the discount-adjusted subtotal,
// never to the gross subtotal.
var TasaISV = decimal.NewFromFloat(0.15)

// TasaAnticipo is the advance-payment share required for fabrication and
// repair work.
var TasaAnticipo = decimal.NewFromFloat(0.5)

// Rounder is the monetary rounding strategy. The engine rounds at each
// intermediate step (discount application, tax, advance), not only at the
// final total; that cascade compounds rounding differences across steps and
// is preserved for compatibility with the historical register.
type Rounder interface {
	Round(d decimal.Decimal) decimal.Decimal
}

// Cascade rounds half away from zero to 2 decimals at every step. It is the
// default and only strategy in production use.
type Cascade struct{}

func (Cascade) Round(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Engine evaluates the per-type pricing formulas.
type Engine struct {
	R Rounder
}

// New returns an engine with the cascade rounding strategy.
func New() Engine { return Engine{R: Cascade{}} }

func (e Engine) rounder() Rounder {
	if e.R == nil {
		return Cascade{}
	}
	return e.R
}

// CostoMaterial derives a single material line's cost: weight × unit price,
// rounded to 2 decimals. Lines are independent; editing one never touches the
// others.
func CostoMaterial(peso, precio decimal.Decimal) decimal.Decimal {
	return peso.Mul(precio).Round(2)
}

// TotalMateriales sums the already-derived line costs.
func TotalMateriales(materiales []models.MaterialLinea) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materiales {
		total = total.Add(m.Costo)
	}
	return total
}

// PrecioFabricacion is the single unit price broadcast to every line item of
// a fabrication document: the sum of all material costs plus supplies and
// labor, rounded to 2 decimals. It is shared by all items regardless of their
// own quantity.
func PrecioFabricacion(materiales []models.MaterialLinea, costoInsumos, manoObra decimal.Decimal) decimal.Decimal {
	return TotalMateriales(materiales).Add(costoInsumos).Add(manoObra).Round(2)
}

func subtotalProductos(productos []models.Producto) decimal.Decimal {
	total := decimal.Zero
	for _, p := range productos {
		total = total.Add(decimal.NewFromInt(int64(p.Cantidad)).Mul(p.Precio))
	}
	return total
}

// desglose applies the shared tail of every formula: discount, ISV, total and
// the advance/pending split. conAnticipo is false only for direct sales.
// A discount equal to or exceeding the subtotal produces negative totals;
// they are intentionally not clamped.
func (e Engine) desglose(bruto, descuento decimal.Decimal, conAnticipo bool) models.Resultados {
	r := e.rounder()

	subtotal := r.Round(bruto.Sub(descuento))
	isv := r.Round(subtotal.Mul(TasaISV))
	total := r.Round(subtotal.Add(isv))

	res := models.Resultados{Subtotal: subtotal, ISV: isv, Total: total}
	if conAnticipo {
		res.Anticipo = r.Round(total.Mul(TasaAnticipo))
		res.PagoPendiente = total.Sub(res.Anticipo)
	} else {
		res.Anticipo = decimal.Zero
		res.PagoPendiente = decimal.Zero
	}
	return res
}

// ComputeVenta prices a direct sale: Σ(cantidad × precio) − descuento, plus
// ISV. There is no advance for sales.
func (e Engine) ComputeVenta(productos []models.Producto, descuento decimal.Decimal) (models.Resultados, error) {
	errs := models.FieldErrors{}
	for i, p := range productos {
		if p.Cantidad <= 0 {
			errs[models.ProductoKey(i, "cantidad")] = "Cantidad debe ser mayor a 0"
		}
		if !p.Precio.IsPositive() {
			errs[models.ProductoKey(i, "precio")] = "Precio debe ser mayor a 0"
		}
	}
	if !errs.Empty() {
		return models.Resultados{}, errs
	}
	return e.desglose(subtotalProductos(productos), descuento, false), nil
}

// ComputeFabricacion prices a fabrication document. The computed unit price
// (materials + supplies + labor) overwrites the Precio of every line item in
// productos before the subtotal is summed; the caller sees the broadcast
// prices through the modified slice.
func (e Engine) ComputeFabricacion(productos []models.Producto, materiales []models.MaterialLinea, costoInsumos, manoObra, descuento decimal.Decimal) (models.Resultados, error) {
	if errs := validarMateriales(materiales, costoInsumos, manoObra); !errs.Empty() {
		return models.Resultados{}, errs
	}
	errs := models.FieldErrors{}
	for i, p := range productos {
		if p.Cantidad <= 0 {
			errs[models.ProductoKey(i, "cantidad")] = "Cantidad debe ser mayor a 0"
		}
	}
	if !errs.Empty() {
		return models.Resultados{}, errs
	}

	precio := PrecioFabricacion(materiales, costoInsumos, manoObra)
	for i := range productos {
		productos[i].Precio = precio
	}
	return e.desglose(subtotalProductos(productos), descuento, true), nil
}

// ComputeReparacion prices a repair: materials + supplies + labor − discount,
// plus ISV and the advance split. Line items carry no price; they only
// describe the piece being repaired and are not part of the sum.
func (e Engine) ComputeReparacion(materiales []models.MaterialLinea, costoInsumos, manoObra, descuento decimal.Decimal) (models.Resultados, error) {
	if errs := validarMateriales(materiales, costoInsumos, manoObra); !errs.Empty() {
		return models.Resultados{}, errs
	}
	bruto := TotalMateriales(materiales).Add(costoInsumos).Add(manoObra)
	return e.desglose(bruto, descuento, true), nil
}

// Calcular dispatches to the formula for the document's type and stores the
// result in doc.Resultados. For fabrication the broadcast unit price is
// visible in doc.Productos afterwards.
func (e Engine) Calcular(doc *models.Documento) (models.Resultados, error) {
	var (
		res models.Resultados
		err error
	)
	switch doc.Tipo {
	case models.TipoVentaDirecta:
		res, err = e.ComputeVenta(doc.Productos, doc.Costos.Descuentos)
	case models.TipoFabricacion:
		res, err = e.ComputeFabricacion(doc.Productos, doc.Materiales, doc.Costos.CostoInsumos, doc.Costos.ManoObra, doc.Costos.Descuentos)
	case models.TipoReparacion:
		res, err = e.ComputeReparacion(doc.Materiales, doc.Costos.CostoInsumos, doc.Costos.ManoObra, doc.Costos.Descuentos)
	default:
		return models.Resultados{}, models.FieldErrors{"tipo": "Seleccione un tipo de factura"}
	}
	if err != nil {
		return models.Resultados{}, err
	}
	doc.Resultados = res
	return res, nil
}

func validarMateriales(materiales []models.MaterialLinea, costoInsumos, manoObra decimal.Decimal) models.FieldErrors {
	errs := models.FieldErrors{}
	for i, m := range materiales {
		if m.Peso.IsNegative() {
			errs[models.MaterialKey(i, "peso")] = "Peso no puede ser negativo"
		}
		if m.Precio.IsNegative() {
			errs[models.MaterialKey(i, "precio")] = "Precio no puede ser negativo"
		}
	}
	if costoInsumos.IsNegative() {
		errs["costoInsumos"] = "Costo de insumos no puede ser negativo"
	}
	if manoObra.IsNegative() {
		errs["manoObra"] = "Costo de mano de obra no puede ser negativo"
	}
	return errs
}
