package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joyascharlys/backoffice/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func logSilencioso() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

func clientePara(t *testing.T, h http.HandlerFunc) *ClienteHTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClienteHTTP(srv.URL+"/api", logSilencioso())
	return c
}

func facturaPrueba() models.FacturaInput {
	return models.FacturaInput{
		IDCliente: 1, IDEmpleado: 2, Fecha: "2025-03-10",
		Direccion: "Col. Kennedy", Telefono: "9999-8888",
		Subtotal: dec("330.00"), Descuento: dec("20.00"),
		ISV: dec("49.50"), Total: dec("379.50"),
		TipoVenta: models.TipoVentaDirecta,
		Productos: []models.Producto{
			{Codigo: "AN-001", Producto: "Anillo", Descripcion: "d", Cantidad: 3, Precio: dec("100.00")},
		},
	}
}

func TestCrearFactura(t *testing.T) {
	var cuerpoRecibido []byte
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/facturas/crear-simple/" || r.Method != http.MethodPost {
			t.Errorf("solicitud inesperada %s %s", r.Method, r.URL.Path)
		}
		cuerpoRecibido, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(models.FacturaCreada{Success: true, NumeroFactura: 123})
	})

	numero, err := c.CrearFactura(context.Background(), facturaPrueba())
	if err != nil {
		t.Fatalf("CrearFactura: %v", err)
	}
	if numero != 123 {
		t.Errorf("numero = %d, quería 123", numero)
	}
	// invoice money travels as JSON numbers, not strings
	if !bytes.Contains(cuerpoRecibido, []byte(`"subtotal":330`)) {
		t.Errorf("subtotal no viajó como número: %s", cuerpoRecibido)
	}
	if bytes.Contains(cuerpoRecibido, []byte(`"subtotal":"`)) {
		t.Errorf("subtotal viajó como cadena: %s", cuerpoRecibido)
	}
}

func TestCrearCotizacionEnviaDecimalesComoCadenas(t *testing.T) {
	var cuerpoRecibido []byte
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		cuerpoRecibido, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]any{"numero_cotizacion": 7})
	})

	in := models.CotizacionInput{
		IDCliente: 1, IDEmpleado: 2,
		Subtotal: dec("110.00"), ISV: dec("16.50"), Total: dec("126.50"),
		TipoServicio: models.TipoReparacion, Estado: models.CotizacionActiva,
	}
	numero, err := c.CrearCotizacion(context.Background(), in)
	if err != nil {
		t.Fatalf("CrearCotizacion: %v", err)
	}
	if numero != 7 {
		t.Errorf("numero = %d, quería 7", numero)
	}
	// quotation money travels as fixed two-decimal strings
	for _, frag := range []string{`"subtotal":"110.00"`, `"isv":"16.50"`, `"total":"126.50"`} {
		if !bytes.Contains(cuerpoRecibido, []byte(frag)) {
			t.Errorf("falta %s en %s", frag, cuerpoRecibido)
		}
	}
}

func TestValidacionDelServidor(t *testing.T) {
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"id_cliente": "Cliente no existe",
			"telefono":   []string{"Formato inválido"},
		})
	})

	_, err := c.CrearFactura(context.Background(), facturaPrueba())
	var valErr *ErrorValidacionServidor
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, quería ErrorValidacionServidor", err)
	}
	if valErr.Campos["id_cliente"] != "Cliente no existe" {
		t.Errorf("id_cliente = %q", valErr.Campos["id_cliente"])
	}
	if valErr.Campos["telefono"] != "Formato inválido" {
		t.Errorf("telefono = %q", valErr.Campos["telefono"])
	}
}

func TestRespuestaConEnvelope(t *testing.T) {
	// the Go service wraps payloads in {"data": ...}; the legacy server
	// answers the payload directly. The client accepts both.
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": models.FacturaCreada{Success: true, NumeroFactura: 321},
		})
	})
	numero, err := c.CrearFactura(context.Background(), facturaPrueba())
	if err != nil {
		t.Fatalf("CrearFactura: %v", err)
	}
	if numero != 321 {
		t.Errorf("numero = %d, quería 321", numero)
	}

	c = clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"data":  map[string]string{"fecha": "La fecha es requerida"},
			"error": "errores de validación",
		})
	})
	_, err = c.CrearFactura(context.Background(), facturaPrueba())
	var valErr *ErrorValidacionServidor
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, quería ErrorValidacionServidor", err)
	}
	if valErr.Campos["fecha"] != "La fecha es requerida" {
		t.Errorf("fecha = %q", valErr.Campos["fecha"])
	}
}

func TestErrorDeRed(t *testing.T) {
	c := NewClienteHTTP("http://127.0.0.1:1/api", logSilencioso())

	_, err := c.CrearFactura(context.Background(), facturaPrueba())
	var redErr *ErrorRed
	if !errors.As(err, &redErr) {
		t.Fatalf("err = %v, quería ErrorRed", err)
	}
}

func TestEstadoInesperadoEsErrorDeRed(t *testing.T) {
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.CrearFactura(context.Background(), facturaPrueba())
	var redErr *ErrorRed
	if !errors.As(err, &redErr) {
		t.Fatalf("err = %v, quería ErrorRed", err)
	}
}

func TestListarCotizacionesConFiltros(t *testing.T) {
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("estado") != "VENCIDA" || q.Get("cliente") != "3" || q.Get("desde") != "2025-01-01" {
			t.Errorf("filtros inesperados: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]models.Cotizacion{
			{NumeroCotizacion: 7, Estado: models.CotizacionActiva},
		})
	})

	lista, err := c.ListarCotizaciones(context.Background(), models.FiltrosCotizacion{
		Estado: "VENCIDA", Cliente: 3, Desde: "2025-01-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(lista) != 1 || lista[0].NumeroCotizacion != 7 {
		t.Errorf("lista = %+v", lista)
	}
}

func TestConvertirYAnular(t *testing.T) {
	c := clientePara(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/cotizaciones/7/convertir-a-factura/":
			json.NewEncoder(w).Encode(map[string]any{"numero_factura": 200})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/cotizaciones/8/":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("solicitud inesperada %s %s", r.Method, r.URL.Path)
		}
	})

	numero, err := c.ConvertirCotizacion(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if numero != 200 {
		t.Errorf("numero_factura = %d", numero)
	}
	if err := c.AnularCotizacion(context.Background(), 8); err != nil {
		t.Fatal(err)
	}
}
