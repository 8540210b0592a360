package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joyascharlys/backoffice/models"
	"github.com/joyascharlys/backoffice/render"
)

// crearFacturaDB inserts an invoice with its line items and materials in one
// transaction and returns the assigned number.
func crearFacturaDB(ctx context.Context, in models.FacturaInput) (int64, error) {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO facturas
		(id_cliente, id_empleado, fecha, direccion, telefono, rtn,
		 subtotal, descuento, isv, total, tipo_venta, observaciones, estado_pago)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.IDCliente, in.IDEmpleado, in.Fecha, in.Direccion, in.Telefono, in.RTN,
		in.Subtotal, in.Descuento, in.ISV, in.Total, in.TipoVenta, in.Observaciones,
		models.EstadoPagoPendiente)
	if err != nil {
		return 0, fmt.Errorf("insertando factura: %w", err)
	}
	numero, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, p := range in.Productos {
		if _, err := tx.ExecContext(ctx, `INSERT INTO factura_productos
			(numero_factura, codigo, producto, descripcion, cantidad, precio, tipo_joya, tipo_reparacion)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			numero, p.Codigo, p.Producto, p.Descripcion, p.Cantidad, p.Precio,
			p.TipoJoya, p.TipoReparacion); err != nil {
			return 0, fmt.Errorf("insertando producto: %w", err)
		}
	}
	for _, m := range in.Materiales {
		if _, err := tx.ExecContext(ctx, `INSERT INTO factura_materiales
			(numero_factura, id_material, tipo, peso, precio, costo)
			VALUES (?, ?, ?, ?, ?, ?)`,
			numero, m.IDMaterial, m.Tipo, m.Peso, m.Precio, m.Costo); err != nil {
			return 0, fmt.Errorf("insertando material: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return numero, nil
}

const facturaSelectQuery = `SELECT f.numero_factura, f.id_cliente, f.id_empleado, f.fecha,
	f.direccion, f.telefono, f.rtn, f.subtotal, f.descuento, f.isv, f.total,
	f.tipo_venta, f.observaciones, f.estado_pago, f.created_at,
	c.nombre || CASE WHEN c.apellido = '' THEN '' ELSE ' ' || c.apellido END,
	e.nombre || CASE WHEN e.apellido = '' THEN '' ELSE ' ' || e.apellido END
	FROM facturas f
	JOIN clientes c ON f.id_cliente = c.id_cliente
	JOIN empleados e ON f.id_empleado = e.id_empleado`

func scanFactura(scanner interface{ Scan(...any) error }) (models.Factura, error) {
	var f models.Factura
	err := scanner.Scan(&f.NumeroFactura, &f.IDCliente, &f.IDEmpleado, &f.Fecha,
		&f.Direccion, &f.Telefono, &f.RTN, &f.Subtotal, &f.Descuento, &f.ISV, &f.Total,
		&f.TipoVenta, &f.Observaciones, &f.EstadoPago, &f.CreatedAt,
		&f.ClienteNombre, &f.EmpleadoNombre)
	return f, err
}

// obtenerFactura loads an invoice with its line items and materials.
func obtenerFactura(ctx context.Context, numero int64) (models.Factura, error) {
	f, err := scanFactura(DB.QueryRowContext(ctx, facturaSelectQuery+" WHERE f.numero_factura = ?", numero))
	if err != nil {
		return f, err
	}

	rows, err := DB.QueryContext(ctx, `SELECT id, codigo, producto, descripcion, cantidad, precio, tipo_joya, tipo_reparacion
		FROM factura_productos WHERE numero_factura = ? ORDER BY id`, numero)
	if err != nil {
		return f, err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Producto
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Producto, &p.Descripcion, &p.Cantidad,
			&p.Precio, &p.TipoJoya, &p.TipoReparacion); err != nil {
			return f, err
		}
		f.Productos = append(f.Productos, p)
	}

	mrows, err := DB.QueryContext(ctx, `SELECT id_material, tipo, peso, precio, costo
		FROM factura_materiales WHERE numero_factura = ? ORDER BY id`, numero)
	if err != nil {
		return f, err
	}
	defer mrows.Close()
	for mrows.Next() {
		var m models.MaterialLinea
		if err := mrows.Scan(&m.IDMaterial, &m.Tipo, &m.Peso, &m.Precio, &m.Costo); err != nil {
			return f, err
		}
		f.Materiales = append(f.Materiales, m)
	}
	return f, nil
}

// crearCotizacionDB inserts a quotation and returns its number.
func crearCotizacionDB(ctx context.Context, in models.CotizacionInput) (int64, error) {
	res, err := DB.ExecContext(ctx, `INSERT INTO cotizaciones
		(id_cliente, id_empleado, fecha_creacion, fecha_vencimiento, direccion, telefono, rtn,
		 subtotal, descuento, isv, total, tipo_servicio, observaciones, estado)
		VALUES (?, ?, date('now'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.IDCliente, in.IDEmpleado, in.FechaVencimiento, in.Direccion, in.Telefono, in.RTN,
		in.Subtotal, in.Descuento, in.ISV, in.Total, in.TipoServicio, in.Observaciones, in.Estado)
	if err != nil {
		return 0, fmt.Errorf("insertando cotización: %w", err)
	}
	return res.LastInsertId()
}

func scanCotizacion(scanner interface{ Scan(...any) error }) (models.Cotizacion, error) {
	var c models.Cotizacion
	var numeroFactura sql.NullInt64
	var fechaConversion sql.NullString
	err := scanner.Scan(&c.NumeroCotizacion, &c.IDCliente, &c.IDEmpleado,
		&c.FechaCreacion, &c.FechaVencimiento, &c.Direccion, &c.Telefono, &c.RTN,
		&c.Subtotal, &c.Descuento, &c.ISV, &c.Total, &c.TipoServicio,
		&c.Observaciones, &c.Estado, &numeroFactura, &fechaConversion, &c.ClienteNombre)
	if numeroFactura.Valid {
		c.NumeroFactura = &numeroFactura.Int64
	}
	if fechaConversion.Valid {
		c.FechaConversion = &fechaConversion.String
	}
	return c, err
}

const cotizacionSelectQuery = `SELECT q.numero_cotizacion, q.id_cliente, q.id_empleado,
	q.fecha_creacion, q.fecha_vencimiento, q.direccion, q.telefono, q.rtn,
	q.subtotal, q.descuento, q.isv, q.total, q.tipo_servicio,
	q.observaciones, q.estado, q.numero_factura_conversion, q.fecha_conversion,
	c.nombre || CASE WHEN c.apellido = '' THEN '' ELSE ' ' || c.apellido END
	FROM cotizaciones q
	JOIN clientes c ON q.id_cliente = c.id_cliente`

// PersisterLocal saves exported documents straight into the service database,
// deriving the quotation validity date from the document date.
type PersisterLocal struct{}

func (PersisterLocal) Guardar(ctx context.Context, doc models.Documento, esCotizacion bool) (int64, error) {
	if esCotizacion {
		vencimiento, err := render.FechaVigencia(doc.Fecha)
		if err != nil {
			return 0, err
		}
		return crearCotizacionDB(ctx, models.CotizacionInputDesde(doc, vencimiento))
	}
	return crearFacturaDB(ctx, models.FacturaInputDesde(doc))
}
