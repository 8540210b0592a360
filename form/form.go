// Package form drives the invoice/quotation editing workflow as an explicit
// state machine: pick a document type, edit client, items and materials,
// calculate, export, and either persist or keep the artifact locally.
package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joyascharlys/backoffice/models"
	"github.com/joyascharlys/backoffice/pricing"
)

// Estado is the position of the form in its lifecycle.
type Estado string

const (
	// EstadoSeleccionTipo: nothing chosen yet; only SeleccionarTipo applies.
	EstadoSeleccionTipo Estado = "SELECCION_TIPO"
	// EstadoEdicion: type fixed, client/items/materials being filled in.
	EstadoEdicion Estado = "EDICION"
	// EstadoCalculado: totals stored and current with the inputs.
	EstadoCalculado Estado = "CALCULADO"
	// EstadoModificado: inputs changed after a calculation; the stored totals
	// are stale and export is refused until Calcular runs again.
	EstadoModificado Estado = "MODIFICADO"
	// EstadoExportando: an export is in flight; edits are refused.
	EstadoExportando Estado = "EXPORTANDO"
	// EstadoPersistido: exported and saved through the gateway.
	EstadoPersistido Estado = "PERSISTIDO"
	// EstadoSoloExportado: exported but persistence failed or was skipped;
	// the form data is retained so the operator can retry.
	EstadoSoloExportado Estado = "SOLO_EXPORTADO"
)

var (
	ErrTipoInmutable      = errors.New("el tipo no puede cambiarse con productos o materiales cargados; reinicie el formulario")
	ErrSinCalcular        = errors.New("calcule los totales antes de exportar")
	ErrTotalesDesactuales = errors.New("los datos cambiaron después del cálculo; recalcule antes de exportar")
	ErrExportEnCurso      = errors.New("ya hay una exportación en curso")
	ErrExportNoIniciada   = errors.New("no hay exportación en curso")
)

// Machine owns one document draft and enforces the legal transitions. It is
// safe for concurrent use, but the workflow itself is single-writer: one
// operator, one form.
type Machine struct {
	mu     sync.Mutex
	estado Estado
	engine pricing.Engine
	doc    models.Documento
}

// NewMachine returns a machine in the type-selection state.
func NewMachine(engine pricing.Engine) *Machine {
	return &Machine{estado: EstadoSeleccionTipo, engine: engine}
}

// Estado returns the current lifecycle state.
func (m *Machine) Estado() Estado {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.estado
}

// Documento returns a copy of the draft as it currently stands.
func (m *Machine) Documento() models.Documento {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc
}

// SeleccionarTipo fixes the document type. Once products or materials have
// been entered the type is immutable; starting over requires Reiniciar.
func (m *Machine) SeleccionarTipo(tipo models.TipoVenta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !tipo.Valido() {
		return models.FieldErrors{"tipo": "Seleccione un tipo de factura"}
	}
	if m.estado == EstadoExportando {
		return ErrExportEnCurso
	}
	if tipo != m.doc.Tipo && (len(m.doc.Productos) > 0 || len(m.doc.Materiales) > 0) {
		return ErrTipoInmutable
	}
	m.doc.Tipo = tipo
	m.marcarEdicion()
	return nil
}

// SetCliente replaces the client block of the draft.
func (m *Machine) SetCliente(c models.DatosCliente) error {
	return m.editar(func() { m.doc.Cliente = c })
}

// SetFecha sets the document date (YYYY-MM-DD).
func (m *Machine) SetFecha(fecha string) error {
	return m.editar(func() { m.doc.Fecha = fecha })
}

// SetObservaciones sets the free-text remarks.
func (m *Machine) SetObservaciones(obs string) error {
	return m.editar(func() { m.doc.Observaciones = obs })
}

// SetCostos replaces supplies, labor and discount amounts.
func (m *Machine) SetCostos(c models.CostosAdicionales) error {
	return m.editar(func() { m.doc.Costos = c })
}

// AgregarProducto appends a line item.
func (m *Machine) AgregarProducto(p models.Producto) error {
	return m.editar(func() { m.doc.Productos = append(m.doc.Productos, p) })
}

// EditarProducto replaces the line item at index i.
func (m *Machine) EditarProducto(i int, p models.Producto) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(m.doc.Productos) {
		return fmt.Errorf("producto %d fuera de rango", i)
	}
	m.doc.Productos[i] = p
	m.marcarEdicion()
	return nil
}

// QuitarProducto removes the line item at index i.
func (m *Machine) QuitarProducto(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(m.doc.Productos) {
		return fmt.Errorf("producto %d fuera de rango", i)
	}
	m.doc.Productos = append(m.doc.Productos[:i], m.doc.Productos[i+1:]...)
	m.marcarEdicion()
	return nil
}

// AgregarMaterial appends a material line with its cost derived from the
// given weight and unit price.
func (m *Machine) AgregarMaterial(linea models.MaterialLinea) error {
	linea.Costo = pricing.CostoMaterial(linea.Peso, linea.Precio)
	return m.editar(func() { m.doc.Materiales = append(m.doc.Materiales, linea) })
}

// EditarMaterial replaces the material line at index i and recomputes its
// cost. Only that line changes; sibling lines keep their stored costs.
func (m *Machine) EditarMaterial(i int, linea models.MaterialLinea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(m.doc.Materiales) {
		return fmt.Errorf("material %d fuera de rango", i)
	}
	linea.Costo = pricing.CostoMaterial(linea.Peso, linea.Precio)
	m.doc.Materiales[i] = linea
	m.marcarEdicion()
	return nil
}

// SeleccionarMaterialCatalogo fills the line at index i from a catalog
// material: its id, name and per-gram price. The line's existing weight is
// kept and the cost recomputed against the new price.
func (m *Machine) SeleccionarMaterialCatalogo(i int, mat models.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(m.doc.Materiales) {
		return fmt.Errorf("material %d fuera de rango", i)
	}
	linea := &m.doc.Materiales[i]
	id := mat.IDMaterial
	linea.IDMaterial = &id
	linea.Tipo = mat.Nombre
	linea.Precio = mat.PrecioGramo
	linea.Costo = pricing.CostoMaterial(linea.Peso, linea.Precio)
	m.marcarEdicion()
	return nil
}

// QuitarMaterial removes the material line at index i.
func (m *Machine) QuitarMaterial(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.editable(); err != nil {
		return err
	}
	if i < 0 || i >= len(m.doc.Materiales) {
		return fmt.Errorf("material %d fuera de rango", i)
	}
	m.doc.Materiales = append(m.doc.Materiales[:i], m.doc.Materiales[i+1:]...)
	m.marcarEdicion()
	return nil
}

// Calcular validates the whole draft and, when clean, computes and stores the
// totals. On validation failure the machine stays where it is and the caller
// receives every offending field at once.
func (m *Machine) Calcular() (models.Resultados, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado == EstadoExportando {
		return models.Resultados{}, ErrExportEnCurso
	}
	if errs := m.doc.Validar(); !errs.Empty() {
		return models.Resultados{}, errs
	}
	res, err := m.engine.Calcular(&m.doc)
	if err != nil {
		return models.Resultados{}, err
	}
	m.estado = EstadoCalculado
	return res, nil
}

// IniciarExport moves the machine into the exporting state. It refuses when
// totals were never calculated, when they are stale, or when another export
// is already running.
func (m *Machine) IniciarExport() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.estado {
	case EstadoCalculado:
		m.estado = EstadoExportando
		return nil
	case EstadoModificado:
		return ErrTotalesDesactuales
	case EstadoExportando:
		return ErrExportEnCurso
	default:
		return ErrSinCalcular
	}
}

// FinalizarExport records the outcome of an export. persistido reports
// whether the gateway accepted the document; either way the artifact exists
// and the form data survives.
func (m *Machine) FinalizarExport(persistido bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoExportando {
		return ErrExportNoIniciada
	}
	if persistido {
		m.estado = EstadoPersistido
	} else {
		m.estado = EstadoSoloExportado
	}
	return nil
}

// AbortarExport returns the machine to the calculated state after a failed
// export so the operator can fix inputs or retry; the draft is untouched.
func (m *Machine) AbortarExport() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoExportando {
		return ErrExportNoIniciada
	}
	m.estado = EstadoCalculado
	return nil
}

// Reiniciar clears the draft and returns to type selection.
func (m *Machine) Reiniciar() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = models.Documento{}
	m.estado = EstadoSeleccionTipo
}

// editable reports whether mutations are legal right now.
func (m *Machine) editable() error {
	if m.estado == EstadoExportando {
		return ErrExportEnCurso
	}
	return nil
}

// marcarEdicion moves the machine to the editing state, or flags stored
// totals as stale when a calculation already happened.
func (m *Machine) marcarEdicion() {
	switch m.estado {
	case EstadoCalculado, EstadoModificado, EstadoPersistido, EstadoSoloExportado:
		m.estado = EstadoModificado
	default:
		m.estado = EstadoEdicion
	}
}

func (m *Machine) editar(apply func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.editable(); err != nil {
		return err
	}
	apply()
	m.marcarEdicion()
	return nil
}
