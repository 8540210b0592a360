package render

import (
	"bytes"
	"html/template"
)

const documentoHTMLTemplate = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <title>{{.Documento.Etiqueta}} {{.Documento.Numero}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      background: #ffffff;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #1f2937;
    }
    .pagina {
      width: 8.5in;
      height: 11in;
      padding: 0.5in;
      margin: 0 auto;
      display: flex;
      flex-direction: column;
    }
    .encabezado {
      display: flex;
      justify-content: space-between;
      border-bottom: 3px double #b45309;
      padding-bottom: 12px;
      margin-bottom: 18px;
    }
    .emisor .nombre { font-size: 20px; font-weight: bold; color: #b45309; }
    .emisor div { font-size: 12px; }
    .insignia { text-align: right; }
    .insignia .etiqueta {
      font-size: 22px;
      font-weight: bold;
      letter-spacing: 0.08em;
    }
    .insignia .numero { font-size: 14px; font-weight: bold; }
    .insignia div { font-size: 12px; }
    .cliente {
      border: 1px solid #e5e7eb;
      padding: 10px 14px;
      margin-bottom: 16px;
      font-size: 13px;
    }
    .cliente .titulo {
      text-transform: uppercase;
      font-size: 11px;
      color: #6b7280;
      letter-spacing: 0.04em;
      margin-bottom: 4px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 12px;
      margin-bottom: 14px;
    }
    th, td {
      padding: 6px 8px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 10px;
      letter-spacing: 0.04em;
      color: #6b7280;
      border-bottom: 2px solid #d1d5db;
    }
    td.num, th.num { text-align: right; }
    .totales {
      margin-left: auto;
      width: 45%;
      font-size: 13px;
    }
    .totales td { border: none; padding: 3px 8px; }
    .totales .total td {
      border-top: 2px solid #374151;
      font-weight: bold;
      font-size: 15px;
    }
    .pie {
      margin-top: auto;
      font-size: 11px;
      color: #4b5563;
    }
    .observaciones { margin-bottom: 24px; }
    .firmas {
      display: flex;
      justify-content: space-between;
      margin-top: 36px;
    }
    .firma {
      width: 40%;
      border-top: 1px solid #374151;
      text-align: center;
      padding-top: 4px;
    }
    .condiciones { margin-top: 16px; font-size: 10px; }
  </style>
</head>
<body>
  <div class="pagina">
    <div class="encabezado">
      <div class="emisor">
        <div class="nombre">{{.Emisor.Nombre}}</div>
        <div>{{.Emisor.Direccion}}</div>
        <div>Tel: {{.Emisor.Telefono}}</div>
        <div>RTN: {{.Emisor.RTN}}</div>
      </div>
      <div class="insignia">
        <div class="etiqueta">{{.Documento.Etiqueta}}</div>
        <div class="numero">{{.Documento.Numero}}</div>
        <div>{{.Documento.TipoNombre}}</div>
        <div>Fecha: {{.Documento.Fecha}}</div>
        {{if .Documento.Vigencia}}<div>Válida hasta: {{.Documento.Vigencia}}</div>{{end}}
      </div>
    </div>

    <div class="cliente">
      <div class="titulo">Cliente</div>
      <div><strong>{{.Cliente.Nombre}}</strong></div>
      <div>{{.Cliente.Direccion}}</div>
      <div>Tel: {{.Cliente.Telefono}}{{if .Cliente.RTN}} &middot; RTN: {{.Cliente.RTN}}{{end}}</div>
    </div>

    {{if eq .Documento.Tipo "REPARACION"}}
    <table>
      <thead>
        <tr>
          <th>Tipo de joya</th>
          <th>Reparación</th>
          <th>Descripción del daño</th>
        </tr>
      </thead>
      <tbody>
        {{range .Productos}}
        <tr>
          <td>{{.TipoJoya}}</td>
          <td>{{.TipoReparacion}}</td>
          <td>{{.Descripcion}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{else}}
    <table>
      <thead>
        <tr>
          <th>Código</th>
          <th>Producto</th>
          <th>Descripción</th>
          <th class="num">Cant.</th>
          <th class="num">Precio</th>
          <th class="num">Importe</th>
        </tr>
      </thead>
      <tbody>
        {{range .Productos}}
        <tr>
          <td>{{.Codigo}}</td>
          <td>{{.Nombre}}</td>
          <td>{{.Descripcion}}</td>
          <td class="num">{{.Cantidad}}</td>
          <td class="num">L {{.Precio}}</td>
          <td class="num">L {{.Importe}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{end}}

    {{if .Materiales}}
    <table>
      <thead>
        <tr>
          <th>Material</th>
          <th class="num">Peso (g)</th>
          <th class="num">Precio/g</th>
          <th class="num">Costo</th>
        </tr>
      </thead>
      <tbody>
        {{range .Materiales}}
        <tr>
          <td>{{.Tipo}}</td>
          <td class="num">{{.Peso}}</td>
          <td class="num">L {{.Precio}}</td>
          <td class="num">L {{.Costo}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{end}}

    <table class="totales">
      <tr><td>Subtotal</td><td class="num">L {{.Totales.Subtotal}}</td></tr>
      {{if .Totales.Descuento}}<tr><td>Descuento</td><td class="num">&minus; L {{.Totales.Descuento}}</td></tr>{{end}}
      <tr><td>ISV (15%)</td><td class="num">L {{.Totales.ISV}}</td></tr>
      <tr class="total"><td>Total</td><td class="num">L {{.Totales.Total}}</td></tr>
      {{if .Totales.Anticipo}}
      <tr><td>Anticipo (50%)</td><td class="num">L {{.Totales.Anticipo}}</td></tr>
      <tr><td>Pago pendiente</td><td class="num">L {{.Totales.PagoPendiente}}</td></tr>
      {{end}}
    </table>

    <div class="pie">
      {{if .Documento.Observaciones}}
      <div class="observaciones"><strong>Observaciones:</strong> {{.Documento.Observaciones}}</div>
      {{end}}
      <div class="firmas">
        <div class="firma">Entregado por</div>
        <div class="firma">Recibido conforme</div>
      </div>
      {{if .Documento.EsCotizacion}}
      <div class="condiciones">
        Cotización válida hasta el {{.Documento.Vigencia}}. Los precios de los
        materiales están sujetos a cambio después de esa fecha. El trabajo
        inicia al recibir el anticipo.
      </div>
      {{end}}
    </div>
  </div>
</body>
</html>
`

// HTMLRenderer renders the single fixed layout with per-type sections.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("documento").Parse(documentoHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(v Vista) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
