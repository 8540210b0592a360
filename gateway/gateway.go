// Package gateway is the persistence boundary of the export workflow. The
// HTTP implementation speaks the back-office wire format; errors crossing the
// boundary are always one of the two recoverable kinds below, never a raw
// transport error.
package gateway

import (
	"context"
	"fmt"

	"github.com/joyascharlys/backoffice/models"
)

// Gateway saves documents and serves the reference data the form needs.
type Gateway interface {
	CrearFactura(ctx context.Context, in models.FacturaInput) (int64, error)
	CrearCotizacion(ctx context.Context, in models.CotizacionInput) (int64, error)
	ListarCotizaciones(ctx context.Context, f models.FiltrosCotizacion) ([]models.Cotizacion, error)
	ConvertirCotizacion(ctx context.Context, numero int64) (int64, error)
	AnularCotizacion(ctx context.Context, numero int64) error

	Clientes(ctx context.Context) ([]models.Cliente, error)
	Empleados(ctx context.Context) ([]models.Empleado, error)
	Materiales(ctx context.Context) ([]models.Material, error)
	Joyas(ctx context.Context) ([]models.Joya, error)
}

// ErrorValidacionServidor is a 400 rejection: the server found the payload
// invalid and returned per-field messages. The operator can fix the form and
// retry.
type ErrorValidacionServidor struct {
	Campos models.FieldErrors
}

func (e *ErrorValidacionServidor) Error() string {
	return fmt.Sprintf("el servidor rechazó el documento: %v", e.Campos.Error())
}

// ErrorRed is a transport failure: the request never completed or the server
// answered with something other than a document response. Retrying later may
// succeed.
type ErrorRed struct {
	Operacion string
	Err       error
}

func (e *ErrorRed) Error() string {
	return fmt.Sprintf("error de red en %s: %v", e.Operacion, e.Err)
}

func (e *ErrorRed) Unwrap() error { return e.Err }
