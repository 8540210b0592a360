package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joyascharlys/backoffice/models"
)

func hoy() string { return time.Now().Format("2006-01-02") }

// CrearCotizacion persists a quotation
// @Summary      Create cotización
// @Description  Persist a quotation; defaults the validity date to creation+30d when omitted.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        cotizacion  body      models.CotizacionInput  true  "Quotation payload"
// @Success      201         {object}  Response{data=models.Cotizacion}
// @Failure      400         {object}  Response{data=models.FieldErrors}
// @Router       /cotizaciones [post]
// @Security     BasicAuth
func CrearCotizacion(w http.ResponseWriter, r *http.Request) {
	var in models.CotizacionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}
	if errs := in.Validate(); !errs.Empty() {
		writeValidationError(w, errs)
		return
	}
	if in.FechaVencimiento == "" {
		in.FechaVencimiento = time.Now().AddDate(0, 0, models.VigenciaDias).Format("2006-01-02")
	}

	numero, err := crearCotizacionDB(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	c, err := obtenerCotizacion(r.Context(), numero)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func obtenerCotizacion(ctx context.Context, numero int64) (models.Cotizacion, error) {
	return scanCotizacion(DB.QueryRowContext(ctx, cotizacionSelectQuery+" WHERE q.numero_cotizacion = ?", numero))
}

// ListCotizaciones lists quotations with filters
// @Summary      List cotizaciones
// @Description  Filter by estado (ACTIVA, CONVERTIDA, ANULADA or the derived VENCIDA), customer, date range and type.
// @Tags         cotizaciones
// @Produce      json
// @Param        estado   query     string  false  "ACTIVA, CONVERTIDA, ANULADA or VENCIDA"
// @Param        cliente  query     int     false  "Filter by customer"
// @Param        desde    query     string  false  "fecha_creacion >= desde"
// @Param        hasta    query     string  false  "fecha_creacion <= hasta"
// @Param        tipo     query     string  false  "VENTA, FABRICACION or REPARACION"
// @Success      200      {object}  Response{data=[]models.Cotizacion}
// @Router       /cotizaciones [get]
// @Security     BasicAuth
func ListCotizaciones(w http.ResponseWriter, r *http.Request) {
	query := cotizacionSelectQuery
	var conditions []string
	var args []any

	// VENCIDA is derived: active and past the validity date
	switch estado := r.URL.Query().Get("estado"); estado {
	case "":
	case "VENCIDA":
		conditions = append(conditions, "q.estado = ? AND q.fecha_vencimiento < ?")
		args = append(args, models.CotizacionActiva, hoy())
	case models.CotizacionActiva:
		conditions = append(conditions, "q.estado = ? AND q.fecha_vencimiento >= ?")
		args = append(args, models.CotizacionActiva, hoy())
	default:
		conditions = append(conditions, "q.estado = ?")
		args = append(args, estado)
	}
	if cid := r.URL.Query().Get("cliente"); cid != "" {
		conditions = append(conditions, "q.id_cliente = ?")
		args = append(args, cid)
	}
	if desde := r.URL.Query().Get("desde"); desde != "" {
		conditions = append(conditions, "q.fecha_creacion >= ?")
		args = append(args, desde)
	}
	if hasta := r.URL.Query().Get("hasta"); hasta != "" {
		conditions = append(conditions, "q.fecha_creacion <= ?")
		args = append(args, hasta)
	}
	if tipo := r.URL.Query().Get("tipo"); tipo != "" {
		conditions = append(conditions, "q.tipo_servicio = ?")
		args = append(args, tipo)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY q.numero_cotizacion DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	cotizaciones := []models.Cotizacion{}
	for rows.Next() {
		c, err := scanCotizacion(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cotizaciones = append(cotizaciones, c)
	}
	writeJSON(w, http.StatusOK, cotizaciones)
}

// ConvertirCotizacion turns a quotation into an invoice
// @Summary      Convert cotización to factura
// @Description  Copies the monetary fields verbatim into a new invoice and marks the quotation CONVERTIDA.
// @Tags         cotizaciones
// @Produce      json
// @Param        numero  path      int  true  "Quotation number"
// @Success      201     {object}  Response{data=models.FacturaCreada}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /cotizaciones/{numero}/convertir-a-factura [post]
// @Security     BasicAuth
func ConvertirCotizacion(w http.ResponseWriter, r *http.Request) {
	numero, _ := strconv.ParseInt(chi.URLParam(r, "numero"), 10, 64)

	c, err := obtenerCotizacion(r.Context(), numero)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "cotización no encontrada")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if c.Estado != models.CotizacionActiva {
		writeError(w, http.StatusBadRequest, "solo una cotización ACTIVA puede convertirse")
		return
	}

	// monetary fields copy over unchanged; no recalculation on conversion
	numeroFactura, err := crearFacturaDB(r.Context(), models.FacturaInput{
		IDCliente:     c.IDCliente,
		IDEmpleado:    c.IDEmpleado,
		Fecha:         hoy(),
		Direccion:     c.Direccion,
		Telefono:      c.Telefono,
		RTN:           c.RTN,
		Subtotal:      c.Subtotal,
		Descuento:     c.Descuento,
		ISV:           c.ISV,
		Total:         c.Total,
		TipoVenta:     c.TipoServicio,
		Observaciones: c.Observaciones,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := DB.ExecContext(r.Context(), `UPDATE cotizaciones
		SET estado = ?, numero_factura_conversion = ?, fecha_conversion = date('now')
		WHERE numero_cotizacion = ?`,
		models.CotizacionConvertida, numeroFactura, numero); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := obtenerFactura(r.Context(), numeroFactura)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, models.FacturaCreada{
		Success:       true,
		Message:       "Cotización convertida",
		NumeroFactura: numeroFactura,
		Factura:       &f,
	})
}

// AnularCotizacion annuls a quotation
// @Summary      Annul cotización
// @Description  Marks the quotation ANULADA; converted quotations cannot be annulled.
// @Tags         cotizaciones
// @Produce      json
// @Param        numero  path      int  true  "Quotation number"
// @Success      200     {object}  Response{data=models.Cotizacion}
// @Failure      400     {object}  Response{error=string}
// @Router       /cotizaciones/{numero} [delete]
// @Security     BasicAuth
func AnularCotizacion(w http.ResponseWriter, r *http.Request) {
	numero, _ := strconv.ParseInt(chi.URLParam(r, "numero"), 10, 64)

	c, err := obtenerCotizacion(r.Context(), numero)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "cotización no encontrada")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if c.Estado == models.CotizacionConvertida {
		writeError(w, http.StatusBadRequest, "una cotización convertida no puede anularse")
		return
	}

	if _, err := DB.ExecContext(r.Context(),
		`UPDATE cotizaciones SET estado = ? WHERE numero_cotizacion = ?`,
		models.CotizacionAnulada, numero); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.Estado = models.CotizacionAnulada
	writeJSON(w, http.StatusOK, c)
}

// EstadisticasCotizaciones summarizes the quotation register
// @Summary      Cotización statistics
// @Tags         cotizaciones
// @Produce      json
// @Success      200  {object}  Response{data=models.EstadisticasCotizaciones}
// @Router       /cotizaciones/estadisticas [get]
// @Security     BasicAuth
func EstadisticasCotizaciones(w http.ResponseWriter, r *http.Request) {
	var stats models.EstadisticasCotizaciones
	err := DB.QueryRowContext(r.Context(), `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN estado = 'ACTIVA' AND fecha_vencimiento >= ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN estado = 'ACTIVA' AND fecha_vencimiento < ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN estado = 'CONVERTIDA' THEN 1 ELSE 0 END), 0)
		FROM cotizaciones`, hoy(), hoy()).
		Scan(&stats.Total, &stats.Activas, &stats.Vencidas, &stats.Convertidas)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
