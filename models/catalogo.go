package models

import "github.com/shopspring/decimal"

// Cliente is a customer reference-data record used for autocomplete.
type Cliente struct {
	IDCliente       int    `json:"id_cliente"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	NumeroIdentidad string `json:"numero_identidad"`
	Telefono        string `json:"telefono"`
	Correo          string `json:"correo"`
	Direccion       string `json:"direccion"`
	RTN             string `json:"rtn"`
}

// NombreCompleto returns "Nombre Apellido".
func (c Cliente) NombreCompleto() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}

// Empleado is an employee reference-data record.
type Empleado struct {
	IDEmpleado int    `json:"id_empleado"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Usuario    string `json:"usuario"`
	Correo     string `json:"correo"`
}

// Material is a stock catalog entry. PrecioGramo feeds the material line's
// unit price when the material is selected from the catalog.
type Material struct {
	IDMaterial  int             `json:"id_material"`
	Nombre      string          `json:"nombre"`
	TipoMetal   string          `json:"tipo_metal"`
	PrecioGramo decimal.Decimal `json:"precio_gramo"`
	StockGramos decimal.Decimal `json:"stock_gramos"`
}

// Joya is a finished-jewelry stock entry offered in direct sales.
type Joya struct {
	IDJoya      int             `json:"id_joya"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
}
