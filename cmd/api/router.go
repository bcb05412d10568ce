package main

import (
	"expert-test/internal/config"
	"expert-test/internal/handler"
	"expert-test/internal/metrics"
	"expert-test/internal/middleware"
	"expert-test/internal/rbac"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handlers groups everything the router mounts.
type handlers struct {
	auth    *handler.AuthHandler
	user    *handler.UserHandler
	test    *handler.TestHandler
	result  *handler.ResultHandler
	profile *handler.ProfileHandler
	admin   *handler.AdminHandler
	system  *handler.SystemHandler
}

type routerDeps struct {
	cfg         *config.Config
	handlers    handlers
	validator   middleware.TokenValidator
	checker     *rbac.Checker
	authLimiter *middleware.RateLimiter
	metrics     *metrics.Metrics
	gatherer    prometheus.Gatherer
}

func newRouter(d routerDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      d.cfg.App.Name,
		ReadTimeout:  d.cfg.Server.ReadTimeout,
		WriteTimeout: d.cfg.Server.WriteTimeout,
		IdleTimeout:  d.cfg.Server.IdleTimeout,
		BodyLimit:    d.cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(d.cfg.App.ExposeErrorDetails),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(d.metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization," + middleware.RequestIDHeader,
		MaxAge:       300,
	}))

	h := d.handlers
	protected := middleware.Protected(d.validator)
	can := func(perm string) fiber.Handler {
		return middleware.RequirePermission(d.checker, perm)
	}
	idParam := middleware.ValidateIDParam()

	app.Get("/", h.system.Root)
	app.Get("/swagger/*", swagger.HandlerDefault)
	if d.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/test", h.system.Ping)
	api.Get("/db-test", h.system.DBTest)

	auth := api.Group("/auth")
	auth.Post("/register", d.authLimiter.Handler(), h.auth.Register)
	auth.Post("/login", d.authLimiter.Handler(), h.auth.Login)
	auth.Get("/verify", protected, h.auth.Verify)
	auth.Get("/profile", protected, h.auth.Profile)

	api.Get("/me", protected, h.user.Me)
	api.Get("/users", protected, can(rbac.PermUsersList), h.user.ListUsers)

	api.Get("/test/questions", protected, can(rbac.PermTestTake), h.test.GetQuestions)

	results := api.Group("/results", protected)
	results.Post("/save", can(rbac.PermResultsSubmit), h.result.Save)
	results.Get("/all", can(rbac.PermResultsViewOwn), h.result.All)
	results.Get("/:id", can(rbac.PermResultsViewOwn), idParam, h.result.Detail)

	profile := api.Group("/profile", protected, can(rbac.PermProfileView))
	profile.Get("/", h.profile.Profile)
	profile.Get("/test/:id", idParam, h.profile.ProfileTest)

	admin := api.Group("/admin", protected, can(rbac.PermAdminAccess))
	admin.Get("/stats", h.admin.Stats)
	admin.Get("/questions", h.admin.ListQuestions)
	admin.Post("/questions", h.admin.CreateQuestion)
	admin.Put("/questions/:id", idParam, h.admin.UpdateQuestion)
	admin.Delete("/questions/:id", idParam, h.admin.DeleteQuestion)
	admin.Get("/questions/:id/check", idParam, h.admin.CheckQuestionUsage)
	admin.Post("/answers", h.admin.CreateAnswer)
	admin.Put("/answers/:id", idParam, h.admin.UpdateAnswer)
	admin.Delete("/answers/:id", idParam, h.admin.DeleteAnswer)

	app.Use(h.system.NotFound)

	return app
}
