package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joyascharlys/backoffice/models"
)

// ClienteHTTP talks to a remote back-office server. BaseURL has no trailing
// slash, e.g. "http://localhost:8000/api".
type ClienteHTTP struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
}

// NewClienteHTTP builds a client for the given base URL, falling back to the
// GATEWAY_URL environment variable when baseURL is empty.
func NewClienteHTTP(baseURL string, logger *slog.Logger) *ClienteHTTP {
	if baseURL == "" {
		baseURL = os.Getenv("GATEWAY_URL")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClienteHTTP{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

// cotizacionWire mirrors CotizacionInput but carries the monetary fields as
// fixed two-decimal strings, which is how the historical client sent
// quotations. Invoices go out with plain JSON numbers instead.
type cotizacionWire struct {
	IDCliente        int              `json:"id_cliente"`
	IDEmpleado       int              `json:"id_empleado"`
	FechaVencimiento string           `json:"fecha_vencimiento,omitempty"`
	Direccion        string           `json:"direccion"`
	Telefono         string           `json:"telefono"`
	RTN              string           `json:"rtn"`
	Subtotal         string           `json:"subtotal"`
	Descuento        string           `json:"descuento"`
	ISV              string           `json:"isv"`
	Total            string           `json:"total"`
	TipoServicio     models.TipoVenta `json:"tipo_servicio"`
	Observaciones    string           `json:"observaciones"`
	Estado           string           `json:"estado"`
}

func aCotizacionWire(in models.CotizacionInput) cotizacionWire {
	return cotizacionWire{
		IDCliente:        in.IDCliente,
		IDEmpleado:       in.IDEmpleado,
		FechaVencimiento: in.FechaVencimiento,
		Direccion:        in.Direccion,
		Telefono:         in.Telefono,
		RTN:              in.RTN,
		Subtotal:         in.Subtotal.StringFixed(2),
		Descuento:        in.Descuento.StringFixed(2),
		ISV:              in.ISV.StringFixed(2),
		Total:            in.Total.StringFixed(2),
		TipoServicio:     in.TipoServicio,
		Observaciones:    in.Observaciones,
		Estado:           in.Estado,
	}
}

func (c *ClienteHTTP) CrearFactura(ctx context.Context, in models.FacturaInput) (int64, error) {
	var out models.FacturaCreada
	if err := c.hacer(ctx, http.MethodPost, "/facturas/crear-simple/", in, &out); err != nil {
		return 0, err
	}
	return out.NumeroFactura, nil
}

func (c *ClienteHTTP) CrearCotizacion(ctx context.Context, in models.CotizacionInput) (int64, error) {
	var out struct {
		NumeroCotizacion int64 `json:"numero_cotizacion"`
	}
	if err := c.hacer(ctx, http.MethodPost, "/cotizaciones/", aCotizacionWire(in), &out); err != nil {
		return 0, err
	}
	return out.NumeroCotizacion, nil
}

func (c *ClienteHTTP) ListarCotizaciones(ctx context.Context, f models.FiltrosCotizacion) ([]models.Cotizacion, error) {
	q := url.Values{}
	if f.Estado != "" {
		q.Set("estado", f.Estado)
	}
	if f.Cliente > 0 {
		q.Set("cliente", strconv.Itoa(f.Cliente))
	}
	if f.Desde != "" {
		q.Set("desde", f.Desde)
	}
	if f.Hasta != "" {
		q.Set("hasta", f.Hasta)
	}
	if f.Tipo != "" {
		q.Set("tipo", string(f.Tipo))
	}
	ruta := "/cotizaciones/"
	if len(q) > 0 {
		ruta += "?" + q.Encode()
	}
	var out []models.Cotizacion
	if err := c.hacer(ctx, http.MethodGet, ruta, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClienteHTTP) ConvertirCotizacion(ctx context.Context, numero int64) (int64, error) {
	var out struct {
		NumeroFactura int64 `json:"numero_factura"`
	}
	ruta := fmt.Sprintf("/cotizaciones/%d/convertir-a-factura/", numero)
	if err := c.hacer(ctx, http.MethodPost, ruta, nil, &out); err != nil {
		return 0, err
	}
	return out.NumeroFactura, nil
}

func (c *ClienteHTTP) AnularCotizacion(ctx context.Context, numero int64) error {
	return c.hacer(ctx, http.MethodDelete, fmt.Sprintf("/cotizaciones/%d/", numero), nil, nil)
}

func (c *ClienteHTTP) Clientes(ctx context.Context) ([]models.Cliente, error) {
	var out []models.Cliente
	if err := c.hacer(ctx, http.MethodGet, "/clientes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClienteHTTP) Empleados(ctx context.Context) ([]models.Empleado, error) {
	var out []models.Empleado
	if err := c.hacer(ctx, http.MethodGet, "/empleados/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClienteHTTP) Materiales(ctx context.Context) ([]models.Material, error) {
	var out []models.Material
	if err := c.hacer(ctx, http.MethodGet, "/materiales/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClienteHTTP) Joyas(ctx context.Context) ([]models.Joya, error) {
	var out []models.Joya
	if err := c.hacer(ctx, http.MethodGet, "/joyas/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// hacer performs one request. Transport failures and unexpected statuses
// surface as *ErrorRed; a 400 with a field map surfaces as
// *ErrorValidacionServidor.
func (c *ClienteHTTP) hacer(ctx context.Context, metodo, ruta string, cuerpo, destino any) error {
	op := metodo + " " + ruta

	var lector io.Reader
	if cuerpo != nil {
		datos, err := json.Marshal(cuerpo)
		if err != nil {
			return &ErrorRed{Operacion: op, Err: err}
		}
		lector = bytes.NewReader(datos)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, c.BaseURL+ruta, lector)
	if err != nil {
		return &ErrorRed{Operacion: op, Err: err}
	}
	if cuerpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("solicitud fallida", "operacion", op, "error", err)
		return &ErrorRed{Operacion: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if destino == nil {
			return nil
		}
		datos, err := io.ReadAll(resp.Body)
		if err != nil {
			return &ErrorRed{Operacion: op, Err: err}
		}
		if err := json.Unmarshal(desenvolver(datos), destino); err != nil {
			return &ErrorRed{Operacion: op, Err: fmt.Errorf("respuesta ilegible: %w", err)}
		}
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return &ErrorValidacionServidor{Campos: leerErroresCampo(resp.Body)}
	default:
		return &ErrorRed{Operacion: op, Err: fmt.Errorf("estado inesperado %d", resp.StatusCode)}
	}
}

// desenvolver unwraps a {"data": ...} envelope when the server uses one; the
// legacy server answers the payload directly.
func desenvolver(datos []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(datos, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return datos
}

// leerErroresCampo flattens a 400 body into field messages. Servers answer
// either {"campo": "mensaje"} or {"campo": ["mensaje", ...]}, with or without
// the data envelope; anything else collapses into a single "error" entry.
func leerErroresCampo(r io.Reader) models.FieldErrors {
	datos, err := io.ReadAll(r)
	if err != nil {
		return models.FieldErrors{"error": "solicitud inválida"}
	}
	var crudo map[string]any
	if err := json.Unmarshal(desenvolver(datos), &crudo); err != nil {
		return models.FieldErrors{"error": string(datos)}
	}
	errs := models.FieldErrors{}
	for campo, v := range crudo {
		switch val := v.(type) {
		case string:
			errs[campo] = val
		case []any:
			if len(val) > 0 {
				if s, ok := val[0].(string); ok {
					errs[campo] = s
					continue
				}
			}
			errs[campo] = fmt.Sprint(val)
		default:
			errs[campo] = fmt.Sprint(val)
		}
	}
	if len(errs) == 0 {
		errs["error"] = "solicitud inválida"
	}
	return errs
}
