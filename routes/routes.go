package routes

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"somadhan-booking/constants"
	adminController "somadhan-booking/controllers/admin"
	authController "somadhan-booking/controllers/auth"
	enquiryController "somadhan-booking/controllers/enquiry"
	serverController "somadhan-booking/controllers/server"
	"somadhan-booking/httpServices/recordstore"
	"somadhan-booking/localcache"
	"somadhan-booking/logger"
	"somadhan-booking/metrics"
	"somadhan-booking/middleware"
	enquiryService "somadhan-booking/services/enquiry"
	"somadhan-booking/services/intake"
	"somadhan-booking/services/notify"
	"somadhan-booking/types"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	cache := localcache.New(db)
	asyncLogger := logger.NewAsyncLogger(db)

	cfg := recordstore.ConfigFromEnv()
	var store enquiryService.Store
	var sessionClient *recordstore.Client
	if cfg.Valid() {
		anonClient, err := recordstore.NewAnonClient(cfg)
		if err != nil {
			logger.Error("Failed to build anon store client", err)
		}
		sessionClient, err = recordstore.NewSessionClient(cfg, localcache.NewAdminSessionStore(cache))
		if err != nil {
			logger.Error("Failed to build session store client", err)
		}
		if anonClient != nil && sessionClient != nil {
			store = &recordstore.SplitClient{Anon: anonClient, Session: sessionClient}
		}
	} else {
		logger.Warning("Record store not configured; running local-only")
	}

	allowFallback := os.Getenv("ALLOW_LOCAL_FALLBACK_ON_WRITE_FAILURE") == "true"
	manager := enquiryService.NewManager(store, cache, allowFallback)
	manager.Load(context.Background())

	relay := notify.NewRelay(constants.OwnerWhatsApp)
	var parser *intake.Parser
	if os.Getenv("GEMINI_API_KEY") != "" {
		parser = intake.NewParser()
	}

	enquiryCtrl := enquiryController.NewEnquiryController(manager, relay, cache)
	adminCtrl := adminController.NewAdminController(manager, sessionClient, parser)
	authCtrl := authController.NewAuthController(sessionClient)
	healthCtrl := serverController.NewHealthController(db, cfg.Valid())

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Use(metrics.Middleware())
	app.Use(requestLogger(asyncLogger))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", healthCtrl.Health)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authCtrl.Login)
	api.Get("/services", enquiryCtrl.ListServices)
	api.Post("/enquiries", enquiryCtrl.Store)
	api.Get("/prefs", enquiryCtrl.GetPrefs)
	api.Put("/prefs", enquiryCtrl.UpdatePrefs)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	auth := api.Group("/auth").Use(middleware.RequireAdmin())
	auth.Post("/logout", authCtrl.LogOut)

	/*=============================================================================
	| Admin Dashboard Routes
	===============================================================================*/
	admin := api.Group("/admin").Use(middleware.RequireAdmin())
	admin.Get("/enquiries", adminCtrl.Index)
	admin.Post("/enquiries/:id/status", adminCtrl.UpdateStatus)
	admin.Delete("/enquiries/:id", adminCtrl.Delete)
	admin.Get("/enquiries/stream", adminCtrl.Stream)
	admin.Post("/intake", adminCtrl.Intake)
}

// requestLogger queues one entry per request for the async logger.
func requestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		asyncLogger.Log(types.LogEntry{
			Method:     c.Method(),
			Path:       c.Path(),
			ClientIP:   c.IP(),
			StatusCode: c.Response().StatusCode(),
			LatencyMs:  time.Since(start).Milliseconds(),
			CreatedAt:  start,
		})
		return err
	}
}
