package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to the controllers so session pages and the JSON API share
	// one behavior.
	"github.com/DavidKiarie/CircleFund/app/controllers"
	"github.com/DavidKiarie/CircleFund/internal/pkg/middleware"
)

// APIServer groups the /api/v1 handlers.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// RegisterHandlers attaches the v1 routes with their role middleware. The
// capability checks live here at the boundary; the funding core never
// consults roles.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	// Submissions: bce members submit and list; admins review.
	submissions := router.Group("/submissions", middleware.RequireAPISessionAuth)
	submissions.Post("/", controllers.HandleCreateSubmission)
	submissions.Get("/", controllers.HandleListSubmissions)
	submissions.Post("/:uuid/review", middleware.RequireAPIAdmin, controllers.HandleReviewSubmission)

	// Rankings and funding math: admin and above.
	rankings := router.Group("/rankings", middleware.RequireAPIAdmin)
	rankings.Post("/calculate", controllers.HandleCalculateRankings)
	rankings.Get("/", controllers.HandleGetRankings)

	fundingGroup := router.Group("/funding", middleware.RequireAPIAdmin)
	fundingGroup.Post("/calculate", controllers.HandleCalculateFunding)
	fundingGroup.Post("/save", middleware.RequireAPISuperAdmin, controllers.HandleSaveFunding)
	fundingGroup.Post("/merchants", controllers.HandleMerchantFunding)

	// Money movement: super_admin only.
	payments := router.Group("/payments", middleware.RequireAPIAdmin)
	payments.Post("/send", middleware.RequireAPISuperAdmin, controllers.HandleSendPayments)
	payments.Get("/history", controllers.HandlePaymentHistory)

	wallet := router.Group("/wallet", middleware.RequireAPIAdmin)
	wallet.Get("/balance", controllers.HandleWalletBalance)

	addresses := router.Group("/addresses", middleware.RequireAPISessionAuth)
	addresses.Post("/validate", controllers.HandleValidateAddress)
}
