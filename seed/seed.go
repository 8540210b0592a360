// Package seed inserts the minimum reference data a fresh installation
// needs: an employee to attribute documents to, the generic walk-in customer,
// the material catalog the form prices against and a starter jewelry stock.
package seed

import (
	"database/sql"
	"fmt"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type materialSemilla struct {
	nombre      string
	tipoMetal   string
	precioGramo string
	stockGramos string
}

var materialesBase = []materialSemilla{
	{"Oro 14k", "ORO", "48.50", "500"},
	{"Oro 18k", "ORO", "62.40", "300"},
	{"Plata 925", "PLATA", "1.85", "2000"},
	{"Plata 950", "PLATA", "2.10", "1200"},
}

type joyaSemilla struct {
	codigo      string
	nombre      string
	descripcion string
	precio      string
	stock       int
}

var joyasBase = []joyaSemilla{
	{"AN-014", "Anillo oro 14k", "Anillo liso, talla ajustable", "1850.00", 5},
	{"CA-925", "Cadena plata 925", "Cadena 45cm eslabón fino", "450.00", 10},
	{"AR-018", "Aretes oro 18k", "Aretes de broche con perla", "2600.00", 3},
}

// Run executes the startup seed in an idempotent way: existing rows are left
// untouched, so it is safe on every boot.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureEmpleado(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureClienteGenerico(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureMateriales(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureJoyas(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return stats, nil
}

func ensureEmpleado(tx *sql.Tx, stats *Stats) error {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM empleados`).Scan(&n); err != nil {
		return fmt.Errorf("count empleados: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := tx.Exec(`INSERT INTO empleados (nombre, apellido, usuario, correo)
		VALUES ('Mostrador', '', 'mostrador', '')`); err != nil {
		return fmt.Errorf("insert empleado inicial: %w", err)
	}
	stats.Inserts++
	return nil
}

// ensureClienteGenerico inserts the walk-in customer used for counter sales
// without a registered client.
func ensureClienteGenerico(tx *sql.Tx, stats *Stats) error {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM clientes WHERE nombre = 'Consumidor' AND apellido = 'Final'`).Scan(&n); err != nil {
		return fmt.Errorf("count cliente genérico: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := tx.Exec(`INSERT INTO clientes (nombre, apellido, numero_identidad, telefono, correo, direccion, rtn)
		VALUES ('Consumidor', 'Final', '', '', '', 'Ciudad', '')`); err != nil {
		return fmt.Errorf("insert cliente genérico: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureMateriales(tx *sql.Tx, stats *Stats) error {
	for _, m := range materialesBase {
		var existe int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM materiales WHERE nombre = ?`, m.nombre).Scan(&existe); err != nil {
			return fmt.Errorf("count material %s: %w", m.nombre, err)
		}
		if existe > 0 {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO materiales (nombre, tipo_metal, precio_gramo, stock_gramos)
			VALUES (?, ?, ?, ?)`,
			m.nombre, m.tipoMetal, m.precioGramo, m.stockGramos); err != nil {
			return fmt.Errorf("insert material %s: %w", m.nombre, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureJoyas(tx *sql.Tx, stats *Stats) error {
	for _, j := range joyasBase {
		var existe int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM joyas WHERE codigo = ?`, j.codigo).Scan(&existe); err != nil {
			return fmt.Errorf("count joya %s: %w", j.codigo, err)
		}
		if existe > 0 {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO joyas (codigo, nombre, descripcion, precio, stock)
			VALUES (?, ?, ?, ?, ?)`,
			j.codigo, j.nombre, j.descripcion, j.precio, j.stock); err != nil {
			return fmt.Errorf("insert joya %s: %w", j.codigo, err)
		}
		stats.Inserts++
	}
	return nil
}
