package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp builds the Fiber app with the service middleware. Access logs go to
// accessLog; pass nil to disable them.
func NewApp(accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:    ErrorHandler,
		JSONEncoder:     json.Marshal,
		JSONDecoder:     json.Unmarshal,
		UnescapePath:    true,
		BodyLimit:       64 * 1024 * 1024, // 64MB imports
		ReadBufferSize:  1024 * 1024 * 4,  // 4MB buffer
		WriteBufferSize: 1024 * 1024 * 4,  // 4MB buffer
	})

	app.Use(recover.New())
	if accessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${method} ${path}\n",
			Output: accessLog,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	return app
}

type Routes struct {
	Countries *CountryHandler
	Import    *ImportHandler
	Health    *HealthHandler
	Gatherer  prometheus.Gatherer
}

func SetupRoutes(app *fiber.App, r Routes) {
	app.Get("/health", r.Health.Check)
	if r.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")

	// Import routes
	importRoutes := api.Group("/import")
	importRoutes.Post("/json", r.Import.ImportJSON)
	importRoutes.Get("/status", r.Import.GetStatus)
	importRoutes.Delete("/clear", r.Import.ClearDatabase)

	// Country routes
	h := r.Countries
	api.Get("/all", h.All)
	api.Get("/id/:id", h.ByID)
	api.Get("/alpha/:code", h.ByCode)
	api.Get("/search", h.Search)
	api.Get("/name/:name", h.ByName())
	api.Get("/capital/:capital", h.ByCapital())
	api.Get("/region/:region", h.ByRegion())
	api.Get("/subregion/:subregion", h.BySubregion())
	api.Get("/bordering/:code", h.Bordering())
	api.Get("/landlocked", h.Landlocked)
	api.Get("/currency/:currency", h.ByCurrency())
	api.Get("/lang/:language", h.ByLanguage())
	api.Get("/translation/:translation", h.ByTranslation())
	api.Get("/demonym/:name", h.ByDemonym())
	api.Get("/area", h.ByArea)
	api.Get("/population", h.ByPopulation)
	api.Get("/density", h.Density)
	api.Get("/random", h.Random)
	api.Get("/countries/random", h.Random)
	api.Get("/compare", h.Compare)

	// Discovery routes
	meta := api.Group("/meta")
	meta.Get("/regions", h.Regions)
	meta.Get("/subregions", h.Subregions)
	meta.Get("/languages", h.Languages)
	meta.Get("/currencies", h.Currencies)
	meta.Get("/facets", h.Facets)
}
