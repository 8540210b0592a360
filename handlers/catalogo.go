package handlers

import (
	"net/http"

	"github.com/joyascharlys/backoffice/models"
)

// ListClientes lists customers for autocomplete
// @Summary      List clientes
// @Description  Get the customer reference data used by the invoice form.
// @Tags         catalogo
// @Produce      json
// @Param        search  query     string  false  "Search by name, identity number or RTN"
// @Success      200     {object}  Response{data=[]models.Cliente}
// @Router       /clientes [get]
// @Security     BasicAuth
func ListClientes(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id_cliente, nombre, apellido, numero_identidad, telefono, correo, direccion, rtn
		FROM clientes`
	var args []any
	if search := r.URL.Query().Get("search"); search != "" {
		query += ` WHERE nombre LIKE ? OR apellido LIKE ? OR numero_identidad LIKE ? OR rtn LIKE ?`
		s := "%" + search + "%"
		args = append(args, s, s, s, s)
	}
	query += " ORDER BY nombre, apellido"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	clientes := []models.Cliente{}
	for rows.Next() {
		var c models.Cliente
		if err := rows.Scan(&c.IDCliente, &c.Nombre, &c.Apellido, &c.NumeroIdentidad,
			&c.Telefono, &c.Correo, &c.Direccion, &c.RTN); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		clientes = append(clientes, c)
	}
	writeJSON(w, http.StatusOK, clientes)
}

// ListEmpleados lists employees
// @Summary      List empleados
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Empleado}
// @Router       /empleados [get]
// @Security     BasicAuth
func ListEmpleados(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(`SELECT id_empleado, nombre, apellido, usuario, correo FROM empleados ORDER BY nombre`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	empleados := []models.Empleado{}
	for rows.Next() {
		var e models.Empleado
		if err := rows.Scan(&e.IDEmpleado, &e.Nombre, &e.Apellido, &e.Usuario, &e.Correo); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		empleados = append(empleados, e)
	}
	writeJSON(w, http.StatusOK, empleados)
}

// ListMateriales lists the raw-material catalog
// @Summary      List materiales
// @Description  Material catalog with per-gram prices; selecting one fills the material line's price.
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Material}
// @Router       /materiales [get]
// @Security     BasicAuth
func ListMateriales(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(`SELECT id_material, nombre, tipo_metal, precio_gramo, stock_gramos FROM materiales ORDER BY nombre`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	materiales := []models.Material{}
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.IDMaterial, &m.Nombre, &m.TipoMetal, &m.PrecioGramo, &m.StockGramos); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		materiales = append(materiales, m)
	}
	writeJSON(w, http.StatusOK, materiales)
}

// ListJoyas lists the finished-jewelry stock
// @Summary      List joyas
// @Tags         catalogo
// @Produce      json
// @Param        search  query     string  false  "Search by code or name"
// @Success      200     {object}  Response{data=[]models.Joya}
// @Router       /joyas [get]
// @Security     BasicAuth
func ListJoyas(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id_joya, codigo, nombre, descripcion, precio, stock FROM joyas`
	var args []any
	if search := r.URL.Query().Get("search"); search != "" {
		query += ` WHERE codigo LIKE ? OR nombre LIKE ?`
		s := "%" + search + "%"
		args = append(args, s, s)
	}
	query += " ORDER BY codigo"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	joyas := []models.Joya{}
	for rows.Next() {
		var j models.Joya
		if err := rows.Scan(&j.IDJoya, &j.Codigo, &j.Nombre, &j.Descripcion, &j.Precio, &j.Stock); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		joyas = append(joyas, j)
	}
	writeJSON(w, http.StatusOK, joyas)
}
