package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joyascharlys/backoffice/export"
	"github.com/joyascharlys/backoffice/models"
	"github.com/joyascharlys/backoffice/pricing"
)

// Exportador is the PDF pipeline used by the download endpoint. It is wired
// without a persister: downloading an existing invoice never re-saves it.
var Exportador *export.Pipeline

// CrearFacturaSimple persists an invoice with its items and materials
// @Summary      Create invoice
// @Description  Validate and persist an invoice; the sequence number is assigned here.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Param        factura  body      models.FacturaInput  true  "Invoice payload"
// @Success      201      {object}  Response{data=models.FacturaCreada}
// @Failure      400      {object}  Response{data=models.FieldErrors}
// @Router       /facturas/crear-simple [post]
// @Security     BasicAuth
func CrearFacturaSimple(w http.ResponseWriter, r *http.Request) {
	var in models.FacturaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}
	if errs := in.Validate(); !errs.Empty() {
		writeValidationError(w, errs)
		return
	}

	numero, err := crearFacturaDB(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	factura, err := obtenerFactura(r.Context(), numero)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, models.FacturaCreada{
		Success:       true,
		Message:       "Factura creada",
		NumeroFactura: numero,
		Factura:       &factura,
	})
}

// ListFacturas lists the invoice register
// @Summary      List facturas
// @Tags         facturas
// @Produce      json
// @Param        estado_pago  query     string  false  "PENDIENTE, PAGADA or ANULADA"
// @Param        cliente      query     int     false  "Filter by customer"
// @Param        tipo         query     string  false  "VENTA, FABRICACION or REPARACION"
// @Param        desde        query     string  false  "fecha >= desde (YYYY-MM-DD)"
// @Param        hasta        query     string  false  "fecha <= hasta (YYYY-MM-DD)"
// @Success      200          {object}  Response{data=[]models.Factura}
// @Router       /facturas [get]
// @Security     BasicAuth
func ListFacturas(w http.ResponseWriter, r *http.Request) {
	query := facturaSelectQuery
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("estado_pago"); s != "" {
		conditions = append(conditions, "f.estado_pago = ?")
		args = append(args, s)
	}
	if cid := r.URL.Query().Get("cliente"); cid != "" {
		conditions = append(conditions, "f.id_cliente = ?")
		args = append(args, cid)
	}
	if tipo := r.URL.Query().Get("tipo"); tipo != "" {
		conditions = append(conditions, "f.tipo_venta = ?")
		args = append(args, tipo)
	}
	if desde := r.URL.Query().Get("desde"); desde != "" {
		conditions = append(conditions, "f.fecha >= ?")
		args = append(args, desde)
	}
	if hasta := r.URL.Query().Get("hasta"); hasta != "" {
		conditions = append(conditions, "f.fecha <= ?")
		args = append(args, hasta)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY f.numero_factura DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	facturas := []models.Factura{}
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		facturas = append(facturas, f)
	}
	writeJSON(w, http.StatusOK, facturas)
}

// GetFactura retrieves a single invoice with items and materials
// @Summary      Get factura
// @Tags         facturas
// @Produce      json
// @Param        numero  path      int  true  "Invoice number"
// @Success      200     {object}  Response{data=models.Factura}
// @Failure      404     {object}  Response{error=string}
// @Router       /facturas/{numero} [get]
// @Security     BasicAuth
func GetFactura(w http.ResponseWriter, r *http.Request) {
	numero, _ := strconv.ParseInt(chi.URLParam(r, "numero"), 10, 64)
	f, err := obtenerFactura(r.Context(), numero)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "factura no encontrada")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// ActualizarEstadoPago updates the payment state of an invoice
// @Summary      Update payment state
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Param        numero  path      int  true  "Invoice number"
// @Param        estado  body      object{estado_pago=string}  true  "New state"
// @Success      200     {object}  Response{data=models.Factura}
// @Failure      400     {object}  Response{error=string}
// @Router       /facturas/{numero}/estado-pago [patch]
// @Security     BasicAuth
func ActualizarEstadoPago(w http.ResponseWriter, r *http.Request) {
	numero, _ := strconv.ParseInt(chi.URLParam(r, "numero"), 10, 64)

	var in struct {
		EstadoPago string `json:"estado_pago"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}
	switch in.EstadoPago {
	case models.EstadoPagoPendiente, models.EstadoPagoPagada, models.EstadoPagoAnulada:
	default:
		writeError(w, http.StatusBadRequest, "estado_pago debe ser PENDIENTE, PAGADA o ANULADA")
		return
	}

	res, err := DB.ExecContext(r.Context(),
		`UPDATE facturas SET estado_pago = ? WHERE numero_factura = ?`, in.EstadoPago, numero)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "factura no encontrada")
		return
	}

	f, err := obtenerFactura(r.Context(), numero)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DescargarFacturaPDF streams the invoice as a letter-size PDF
// @Summary      Download invoice PDF
// @Tags         facturas
// @Produce      application/pdf
// @Param        numero  path  int  true  "Invoice number"
// @Success      200     {file}    binary
// @Failure      404     {object}  Response{error=string}
// @Router       /facturas/{numero}/pdf [get]
// @Security     BasicAuth
func DescargarFacturaPDF(w http.ResponseWriter, r *http.Request) {
	numero, _ := strconv.ParseInt(chi.URLParam(r, "numero"), 10, 64)
	f, err := obtenerFactura(r.Context(), numero)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "factura no encontrada")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	art, err := Exportador.Exportar(r.Context(), documentoDesdeFactura(f), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Nombre))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.PDF)))
	w.Write(art.PDF)
}

// documentoDesdeFactura rebuilds the document draft from a stored invoice so
// the export pipeline can render it.
func documentoDesdeFactura(f models.Factura) models.Documento {
	resultados := models.Resultados{
		Subtotal: f.Subtotal,
		ISV:      f.ISV,
		Total:    f.Total,
	}
	// the advance split is not stored; rebuild it for the printed totals
	if f.TipoVenta.ConMateriales() {
		resultados.Anticipo = f.Total.Mul(pricing.TasaAnticipo).Round(2)
		resultados.PagoPendiente = f.Total.Sub(resultados.Anticipo)
	}
	return models.Documento{
		Tipo: f.TipoVenta,
		Cliente: models.DatosCliente{
			IDCliente:  f.IDCliente,
			IDEmpleado: f.IDEmpleado,
			Nombre:     f.ClienteNombre,
			Direccion:  f.Direccion,
			Telefono:   f.Telefono,
			RTN:        f.RTN,
		},
		Fecha:         f.Fecha,
		Observaciones: f.Observaciones,
		Productos:     f.Productos,
		Materiales:    f.Materiales,
		Costos:        models.CostosAdicionales{Descuentos: f.Descuento},
		Resultados:    resultados,
		Numero:        f.NumeroFactura,
	}
}
