package handlers

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

// ReporteFacturasXLSX exports the invoice register as a spreadsheet
// @Summary      Invoice register spreadsheet
// @Description  Same filters as the invoice list; one row per invoice.
// @Tags         reportes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        estado_pago  query  string  false  "PENDIENTE, PAGADA or ANULADA"
// @Param        desde        query  string  false  "fecha >= desde"
// @Param        hasta        query  string  false  "fecha <= hasta"
// @Success      200  {file}  binary
// @Router       /reportes/facturas.xlsx [get]
// @Security     BasicAuth
func ReporteFacturasXLSX(w http.ResponseWriter, r *http.Request) {
	query := facturaSelectQuery
	var args []any
	conds := ""
	appendCond := func(c string, v any) {
		if conds == "" {
			conds = " WHERE " + c
		} else {
			conds += " AND " + c
		}
		args = append(args, v)
	}
	if s := r.URL.Query().Get("estado_pago"); s != "" {
		appendCond("f.estado_pago = ?", s)
	}
	if desde := r.URL.Query().Get("desde"); desde != "" {
		appendCond("f.fecha >= ?", desde)
	}
	if hasta := r.URL.Query().Get("hasta"); hasta != "" {
		appendCond("f.fecha <= ?", hasta)
	}
	query += conds + " ORDER BY f.numero_factura"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	const hoja = "Facturas"
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"Número", "Fecha", "Cliente", "Empleado", "Tipo",
		"Subtotal", "Descuento", "ISV", "Total", "Estado de pago"}
	for i, h := range encabezados {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hoja, cell, h)
	}

	fila := 2
	for rows.Next() {
		fac, err := scanFactura(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		subtotal, _ := fac.Subtotal.Float64()
		descuento, _ := fac.Descuento.Float64()
		isv, _ := fac.ISV.Float64()
		total, _ := fac.Total.Float64()
		valores := []any{fac.NumeroFactura, fac.Fecha, fac.ClienteNombre, fac.EmpleadoNombre,
			string(fac.TipoVenta), subtotal, descuento, isv, total, fac.EstadoPago}
		for i, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(i+1, fila)
			f.SetCellValue(hoja, cell, v)
		}
		fila++
	}

	f.SetColWidth(hoja, "A", "J", 16)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "reporte_facturas.xlsx"))
	// headers are already out; a write failure here cannot be reported
	f.Write(w)
}
