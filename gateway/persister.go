package gateway

import (
	"context"

	"github.com/joyascharlys/backoffice/models"
	"github.com/joyascharlys/backoffice/render"
)

// Persister adapts a Gateway to the export pipeline's save step: it projects
// the document draft into the right payload for its kind and derives the
// quotation validity date from the document date.
type Persister struct {
	G Gateway
}

func (p Persister) Guardar(ctx context.Context, doc models.Documento, esCotizacion bool) (int64, error) {
	if esCotizacion {
		vencimiento, err := render.FechaVigencia(doc.Fecha)
		if err != nil {
			return 0, err
		}
		return p.G.CrearCotizacion(ctx, models.CotizacionInputDesde(doc, vencimiento))
	}
	return p.G.CrearFactura(ctx, models.FacturaInputDesde(doc))
}
