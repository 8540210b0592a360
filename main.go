package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/joyascharlys/backoffice/db"
	_ "github.com/joyascharlys/backoffice/docs"
	"github.com/joyascharlys/backoffice/export"
	"github.com/joyascharlys/backoffice/handlers"
	"github.com/joyascharlys/backoffice/render"
	"github.com/joyascharlys/backoffice/seed"
)

// @title           Joyería Back-Office API
// @version         1.0.0
// @description     API for invoices, quotations, reference data and document export.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.basic  BasicAuth

func main() {
	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, err := db.Open()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed reference data
	stats, err := seed.Run(database)
	if err != nil {
		slog.Error("failed to seed reference data", "error", err)
		os.Exit(1)
	}
	if stats.Inserts > 0 {
		slog.Info("seeded reference data", "inserts", stats.Inserts)
	}

	// Set shared DB for handlers
	handlers.DB = database

	// PDF pipeline for the download endpoint; it renders existing invoices,
	// so no persister is attached
	handlers.Exportador = export.NewPipeline(
		render.NewHTMLRenderer(),
		export.TextoRasterizer{},
		nil,
		emisorDesdeEnv(),
		slog.Default(),
	)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.BasicAuth)

		// Reference data
		r.Get("/clientes/", handlers.ListClientes)
		r.Get("/empleados/", handlers.ListEmpleados)
		r.Get("/materiales/", handlers.ListMateriales)
		r.Get("/joyas/", handlers.ListJoyas)

		// Facturas
		r.Post("/facturas/crear-simple/", handlers.CrearFacturaSimple)
		r.Get("/facturas/", handlers.ListFacturas)
		r.Get("/facturas/{numero}/", handlers.GetFactura)
		r.Patch("/facturas/{numero}/estado-pago/", handlers.ActualizarEstadoPago)
		r.Get("/facturas/{numero}/pdf", handlers.DescargarFacturaPDF)

		// Cotizaciones
		r.Post("/cotizaciones/", handlers.CrearCotizacion)
		r.Get("/cotizaciones/", handlers.ListCotizaciones)
		r.Get("/cotizaciones/estadisticas/", handlers.EstadisticasCotizaciones)
		r.Post("/cotizaciones/{numero}/convertir-a-factura/", handlers.ConvertirCotizacion)
		r.Delete("/cotizaciones/{numero}/", handlers.AnularCotizacion)

		// Reportes
		r.Get("/reportes/facturas.xlsx", handlers.ReporteFacturasXLSX)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// emisorDesdeEnv reads the shop identity printed on document headers.
func emisorDesdeEnv() render.EmisorView {
	valor := func(clave, defecto string) string {
		if v := os.Getenv(clave); v != "" {
			return v
		}
		return defecto
	}
	return render.EmisorView{
		Nombre:    valor("EMISOR_NOMBRE", "Joyas Charlys"),
		Direccion: valor("EMISOR_DIRECCION", "Tegucigalpa, Honduras"),
		Telefono:  valor("EMISOR_TELEFONO", "2222-3333"),
		RTN:       valor("EMISOR_RTN", ""),
	}
}
