package pricing

import (
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

func assertDec(t *testing.T, campo string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, quería %s", campo, got, want)
	}
}

func assertResultados(t *testing.T, got models.Resultados, subtotal, isv, total, anticipo, pendiente string) {
	t.Helper()
	assertDec(t, "subtotal", got.Subtotal, subtotal)
	assertDec(t, "isv", got.ISV, isv)
	assertDec(t, "total", got.Total, total)
	assertDec(t, "anticipo", got.Anticipo, anticipo)
	assertDec(t, "pagoPendiente", got.PagoPendiente, pendiente)
}

func TestCostoMaterial(t *testing.T) {
	tests := []struct {
		nombre string
		peso   string
		precio string
		want   string
	}{
		{"entero", "10", "15", "150"},
		{"redondeo hacia arriba", "3.333", "12.50", "41.66"},
		{"fraccion exacta", "2.5", "40.10", "100.25"},
		{"peso cero", "0", "125.00", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			assertDec(t, "costo", CostoMaterial(dec(tt.peso), dec(tt.precio)), tt.want)
		})
	}
}

func TestCostoMaterialLineasIndependientes(t *testing.T) {
	materiales := []models.MaterialLinea{
		{Tipo: "ORO", Peso: dec("5"), Precio: dec("10"), Costo: CostoMaterial(dec("5"), dec("10"))},
		{Tipo: "PLATA", Peso: dec("2"), Precio: dec("3"), Costo: CostoMaterial(dec("2"), dec("3"))},
	}
	// editing the first line never touches the second
	materiales[0].Peso = dec("7")
	materiales[0].Costo = CostoMaterial(materiales[0].Peso, materiales[0].Precio)

	assertDec(t, "costo[0]", materiales[0].Costo, "70")
	assertDec(t, "costo[1]", materiales[1].Costo, "6")
	assertDec(t, "total", TotalMateriales(materiales), "76")
}

func TestComputeVenta(t *testing.T) {
	e := New()

	productos := []models.Producto{
		{Codigo: "AN-001", Producto: "Anillo", Descripcion: "Anillo oro 14k", Cantidad: 3, Precio: dec("100.00")},
		{Codigo: "DI-004", Producto: "Dije", Descripcion: "Dije corazón", Cantidad: 1, Precio: dec("50.00")},
	}
	res, err := e.ComputeVenta(productos, dec("20.00"))
	if err != nil {
		t.Fatalf("ComputeVenta: %v", err)
	}
	assertResultados(t, res, "330.00", "49.50", "379.50", "0", "0")
}

func TestComputeVentaConDescuento(t *testing.T) {
	e := New()

	productos := []models.Producto{
		{Codigo: "CA-002", Producto: "Cadena", Descripcion: "Cadena plata", Cantidad: 1, Precio: dec("150.00")},
		{Codigo: "AR-003", Producto: "Aretes", Descripcion: "Aretes perla", Cantidad: 3, Precio: dec("33.33")},
	}
	res, err := e.ComputeVenta(productos, dec("49.99"))
	if err != nil {
		t.Fatalf("ComputeVenta: %v", err)
	}
	// 150 + 99.99 - 49.99 = 200.00; ISV 30.00
	assertResultados(t, res, "200.00", "30.00", "230.00", "0", "0")
}

func TestComputeVentaValidacion(t *testing.T) {
	e := New()

	productos := []models.Producto{
		{Codigo: "X", Producto: "X", Cantidad: 0, Precio: dec("-1")},
	}
	_, err := e.ComputeVenta(productos, decimal.Zero)
	errs, ok := err.(models.FieldErrors)
	if !ok {
		t.Fatalf("quería FieldErrors, obtuve %T", err)
	}
	for _, k := range []string{"producto-0-cantidad", "producto-0-precio"} {
		if _, ok := errs[k]; !ok {
			t.Errorf("falta error %q en %v", k, errs)
		}
	}
}

func TestComputeFabricacion(t *testing.T) {
	e := New()

	materiales := []models.MaterialLinea{
		{Tipo: "ORO", Peso: dec("10"), Precio: dec("15"), Costo: dec("150.00")},
	}
	productos := []models.Producto{
		{Codigo: "AN-010", Producto: "Anillo fabricado", Descripcion: "Anillo a medida", Cantidad: 1},
	}
	res, err := e.ComputeFabricacion(productos, materiales, dec("20.00"), dec("30.00"), decimal.Zero)
	if err != nil {
		t.Fatalf("ComputeFabricacion: %v", err)
	}
	// precio unitario = 150 + 20 + 30 = 200.00, difundido a cada producto
	assertDec(t, "precio difundido", productos[0].Precio, "200.00")
	assertResultados(t, res, "200.00", "30.00", "230.00", "115.00", "115.00")
}

func TestComputeFabricacionPrecioNoDependeDeCantidad(t *testing.T) {
	e := New()

	materiales := []models.MaterialLinea{
		{Tipo: "ORO", Peso: dec("4"), Precio: dec("25"), Costo: dec("100.00")},
	}
	a := []models.Producto{{Codigo: "A", Producto: "A", Descripcion: "d", Cantidad: 1}}
	b := []models.Producto{{Codigo: "B", Producto: "B", Descripcion: "d", Cantidad: 3}}

	resA, err := e.ComputeFabricacion(a, materiales, dec("10"), dec("40"), decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	resB, err := e.ComputeFabricacion(b, materiales, dec("10"), dec("40"), decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}

	// the unit price is the same either way; only the subtotal scales
	assertDec(t, "precio A", a[0].Precio, "150.00")
	assertDec(t, "precio B", b[0].Precio, "150.00")
	assertDec(t, "subtotal A", resA.Subtotal, "150.00")
	assertDec(t, "subtotal B", resB.Subtotal, "450.00")
}

func TestComputeReparacion(t *testing.T) {
	e := New()

	materiales := []models.MaterialLinea{
		{Tipo: "PLATA", Peso: dec("8"), Precio: dec("10"), Costo: dec("80.00")},
	}
	res, err := e.ComputeReparacion(materiales, dec("10.00"), dec("25.00"), dec("5.00"))
	if err != nil {
		t.Fatalf("ComputeReparacion: %v", err)
	}
	assertResultados(t, res, "110.00", "16.50", "126.50", "63.25", "63.25")
}

func TestAnticipoMasPendienteIgualaTotal(t *testing.T) {
	e := New()

	// odd-cent totals exercise the advance split
	casos := []struct {
		insumos, mano, desc string
	}{
		{"10.01", "5.55", "0"},
		{"33.33", "66.67", "12.34"},
		{"0.01", "0.01", "0"},
	}
	for _, c := range casos {
		materiales := []models.MaterialLinea{
			{Tipo: "ORO", Peso: dec("1.7"), Precio: dec("13.13"), Costo: CostoMaterial(dec("1.7"), dec("13.13"))},
		}
		res, err := e.ComputeReparacion(materiales, dec(c.insumos), dec(c.mano), dec(c.desc))
		if err != nil {
			t.Fatal(err)
		}
		if !res.Anticipo.Add(res.PagoPendiente).Equal(res.Total) {
			t.Errorf("anticipo %s + pendiente %s != total %s (insumos=%s mano=%s desc=%s)",
				res.Anticipo, res.PagoPendiente, res.Total, c.insumos, c.mano, c.desc)
		}
	}
}

func TestDescuentoMayorQueSubtotalNoSeAjusta(t *testing.T) {
	e := New()

	productos := []models.Producto{
		{Codigo: "AN-001", Producto: "Anillo", Descripcion: "d", Cantidad: 1, Precio: dec("100.00")},
	}
	res, err := e.ComputeVenta(productos, dec("150.00"))
	if err != nil {
		t.Fatal(err)
	}
	// negative totals are preserved, not clamped to zero
	assertResultados(t, res, "-50.00", "-7.50", "-57.50", "0", "0")
}

func TestCalcularIdempotente(t *testing.T) {
	e := New()

	doc := &models.Documento{
		Tipo: models.TipoFabricacion,
		Productos: []models.Producto{
			{Codigo: "AN-010", Producto: "Anillo", Descripcion: "d", Cantidad: 2},
		},
		Materiales: []models.MaterialLinea{
			{Tipo: "ORO", Peso: dec("3.3"), Precio: dec("18.18"), Costo: CostoMaterial(dec("3.3"), dec("18.18"))},
		},
		Costos: models.CostosAdicionales{
			CostoInsumos: dec("12.12"),
			ManoObra:     dec("45.45"),
			Descuentos:   dec("5.00"),
		},
	}

	primero, err := e.Calcular(doc)
	if err != nil {
		t.Fatal(err)
	}
	segundo, err := e.Calcular(doc)
	if err != nil {
		t.Fatal(err)
	}

	if !primero.Subtotal.Equal(segundo.Subtotal) || !primero.Total.Equal(segundo.Total) ||
		!primero.Anticipo.Equal(segundo.Anticipo) {
		t.Errorf("recalcular cambió el resultado: %+v vs %+v", primero, segundo)
	}
}

func TestCalcularTipoInvalido(t *testing.T) {
	e := New()

	_, err := e.Calcular(&models.Documento{Tipo: "PERMUTA"})
	if err == nil {
		t.Fatal("quería error para tipo desconocido")
	}
}

func TestRedondeoEnCascada(t *testing.T) {
	e := New()

	// 1.005 stress case: each step rounds before feeding the next
	productos := []models.Producto{
		{Codigo: "X", Producto: "X", Descripcion: "d", Cantidad: 1, Precio: dec("1.005")},
	}
	res, err := e.ComputeVenta(productos, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	// subtotal rounds to 1.01 first; ISV is computed over the rounded value
	assertDec(t, "subtotal", res.Subtotal, "1.01")
	assertDec(t, "isv", res.ISV, "0.15")
	assertDec(t, "total", res.Total, "1.16")
}
