package models

// FacturaInputDesde projects a calculated document draft into the invoice
// persistence payload. Totals come from the stored Resultados; they are never
// recomputed here.
func FacturaInputDesde(d Documento) FacturaInput {
	return FacturaInput{
		IDCliente:     d.Cliente.IDCliente,
		IDEmpleado:    d.Cliente.IDEmpleado,
		Fecha:         d.Fecha,
		Direccion:     d.Cliente.Direccion,
		Telefono:      d.Cliente.Telefono,
		RTN:           d.Cliente.RTN,
		Subtotal:      d.Resultados.Subtotal,
		Descuento:     d.Costos.Descuentos,
		ISV:           d.Resultados.ISV,
		Total:         d.Resultados.Total,
		TipoVenta:     d.Tipo,
		Observaciones: d.Observaciones,
		Productos:     d.Productos,
		Materiales:    d.Materiales,
	}
}

// CotizacionInputDesde projects a document draft into the quotation payload.
// fechaVencimiento is the already-derived validity date (creation + 30 days).
func CotizacionInputDesde(d Documento, fechaVencimiento string) CotizacionInput {
	return CotizacionInput{
		IDCliente:        d.Cliente.IDCliente,
		IDEmpleado:       d.Cliente.IDEmpleado,
		FechaVencimiento: fechaVencimiento,
		Direccion:        d.Cliente.Direccion,
		Telefono:         d.Cliente.Telefono,
		RTN:              d.Cliente.RTN,
		Subtotal:         d.Resultados.Subtotal,
		Descuento:        d.Costos.Descuentos,
		ISV:              d.Resultados.ISV,
		Total:            d.Resultados.Total,
		TipoServicio:     d.Tipo,
		Observaciones:    d.Observaciones,
		Estado:           CotizacionActiva,
	}
}
