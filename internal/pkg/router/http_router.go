package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DavidKiarie/CircleFund/app/controllers"
	"github.com/DavidKiarie/CircleFund/internal/pkg/middleware"
	"github.com/DavidKiarie/CircleFund/internal/pkg/oauth"
	"github.com/DavidKiarie/CircleFund/internal/pkg/session"
	"github.com/DavidKiarie/CircleFund/internal/pkg/statistics"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire the wallet API client once
	controllers.InitializePaymentController()

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":  "CircleFund",
			"stats": statistics.GetStatisticsData(),
		})
	})

	app.Post("/login", controllers.HandleAuthLogin)
	app.Post("/register", controllers.HandleAuthRegister)
	app.Get("/logout", controllers.HandleAuthLogout)

	app.Get("/auth/:provider", controllers.HandleOAuthBegin)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
	app.Get("/auth/logout", controllers.HandleOAuthLogout)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
