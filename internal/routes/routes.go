package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Listing *handlers.ListingHandler
	Admin   *handlers.AdminHandler
	Health  *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, accounts *services.AccountService, h Handlers) {
	// General rate limiter: 120 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next:              func(c *fiber.Ctx) bool { return c.Path() == "/health" },
	}))

	app.Get("/health", h.Health.Check)

	if !cfg.IsProduction() {
		app.Static(cfg.MediaURL, cfg.MediaRoot, fiber.Static{Browse: false})
	}

	optional := middleware.OptionalViewer(cfg, accounts)
	login := middleware.LoginRequired(cfg, accounts)

	app.Get("/", optional, h.Auth.Page)

	// Credential forms: 10 posts/min per IP
	credentials := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Get("/signup/", optional, h.Auth.Page)
	app.Post("/signup/", credentials, h.Auth.SignUp)
	app.Get("/signin/", optional, h.Auth.Page)
	app.Post("/signin/", credentials, h.Auth.SignIn)
	app.Get("/logout/", login, h.Auth.Logout)

	app.Get("/profile/", login, h.Profile.Show)
	app.Post("/profile/", login, h.Profile.Update)

	app.Get("/joblist/", login, h.Listing.JobList)
	app.Get("/jobdetail/:id/", login, h.Listing.JobDetail)
	app.Get("/applicationlist/", login, h.Listing.ApplicationList)
	app.Post("/applicationlist/", login, h.Listing.ToggleApplication)
	app.Get("/savelist/", login, h.Listing.SaveList)
	app.Post("/savelist/", login, h.Listing.ToggleSaved)

	admin := app.Group("/admin", optional, middleware.AdminRequired(cfg))
	admin.Post("/companies", h.Admin.CreateCompany)
	admin.Post("/skills", h.Admin.CreateSkill)
	admin.Post("/cities", h.Admin.CreateCity)
	admin.Post("/jobposts", h.Admin.CreateJobPost)
	admin.Put("/applications/:id/status", h.Admin.SetApplicationStatus)
}
