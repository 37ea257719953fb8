package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/controllers"
	"github.com/goleiroon/goleiroon/controllers/admin_controllers"
	"github.com/goleiroon/goleiroon/controllers/convocation_controllers"
	"github.com/goleiroon/goleiroon/controllers/helpers"
	"github.com/goleiroon/goleiroon/controllers/rating_controllers"
	"github.com/goleiroon/goleiroon/controllers/support_controllers"
	"github.com/goleiroon/goleiroon/controllers/user_controllers"
	"github.com/goleiroon/goleiroon/controllers/wallet_controllers"
	"github.com/goleiroon/goleiroon/metrics"
	"github.com/goleiroon/goleiroon/routes/middlewares"
)

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		if e.Code == fiber.StatusNotFound {
			return helpers.ResponseErrors(c, e.Code, "server.route_not_found")
		}
		return helpers.ResponseErrors(c, e.Code, e.Message)
	}

	config.Logger.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)

	return helpers.ResponseErrors(c, fiber.StatusInternalServerError, helpers.ServerInternal)
}

func SetupRouter() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	limiter := middlewares.NewRateLimiter(config.Environment.RateLimitRPS, config.Environment.RateLimitBurst)

	app.Use(recover.New())
	app.Use(middlewares.Metrics)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api/v1")

	public := api.Group("/public", limiter.Handler)
	public.Get("/timestamp", controllers.GetTimestamp)
	public.Get("/health", controllers.GetHealth)
	public.Get("/locais", controllers.GetVenues)
	public.Get("/updates/latest", controllers.GetLatestUpdate)

	identity := api.Group("/auth", limiter.Handler)
	identity.Post("/register", controllers.Register)
	identity.Post("/login", controllers.Login)

	admin := api.Group("/admin", middlewares.Authenticate, middlewares.AdminVaildator, limiter.Handler)
	admin.Get("/dashboard", admin_controllers.GetDashboard)

	admin.Get("/users/pending", admin_controllers.GetPendingUsers)
	admin.Post("/users/:id/approve", admin_controllers.ApproveUser)
	admin.Post("/users/:id/reject", admin_controllers.RejectUser)

	admin.Get("/recargas", admin_controllers.GetRecharges)
	admin.Post("/recargas/:id/approve", admin_controllers.ApproveRecharge)
	admin.Post("/recargas/:id/reject", admin_controllers.RejectRecharge)
	admin.Get("/saques", admin_controllers.GetWithdrawals)
	admin.Post("/saques/:id/approve", admin_controllers.ApproveWithdrawal)
	admin.Post("/saques/:id/reject", admin_controllers.RejectWithdrawal)

	admin.Get("/taxas", admin_controllers.GetFees)
	admin.Put("/taxas", admin_controllers.UpdateFees)

	admin.Get("/avaliacoes/categorias", admin_controllers.GetCategories)
	admin.Post("/avaliacoes/categorias", admin_controllers.CreateCategory)
	admin.Put("/avaliacoes/categorias/:id", admin_controllers.UpdateCategory)

	admin.Get("/locais", admin_controllers.GetVenues)
	admin.Post("/locais", admin_controllers.CreateVenue)
	admin.Put("/locais/:id", admin_controllers.UpdateVenue)

	admin.Post("/updates", admin_controllers.PublishUpdate)

	admin.Get("/suporte/chamados", admin_controllers.GetTickets)
	admin.Post("/suporte/chamados/:id/mensagens", support_controllers.PostMessage)
	admin.Post("/suporte/chamados/:id/fechar", support_controllers.CloseTicket)

	// session prefixes handler with the auth and rate limit middlewares.
	session := func(handler fiber.Handler) []fiber.Handler {
		return []fiber.Handler{middlewares.Authenticate, limiter.Handler, handler}
	}

	api.Get("/users/me", session(user_controllers.GetMe)...)
	api.Put("/users/me", session(user_controllers.UpdateMe)...)
	api.Post("/users/me/push_tokens", session(user_controllers.RegisterPushToken)...)
	api.Delete("/users/me/push_tokens/:token", session(user_controllers.DeletePushToken)...)
	api.Get("/users/:id/avaliacoes", session(rating_controllers.GetUserRatings)...)
	api.Get("/goleiros", session(user_controllers.GetGoalkeepers)...)
	api.Get("/goleiros/:id", session(user_controllers.GetGoalkeeper)...)

	api.Get("/saldo", session(wallet_controllers.GetSaldo)...)
	api.Get("/movimentacoes", session(wallet_controllers.GetMovements)...)
	api.Get("/recargas", session(wallet_controllers.GetRecharges)...)
	api.Post("/recargas", session(wallet_controllers.CreateRecharge)...)
	api.Get("/recargas/:id", session(wallet_controllers.GetRecharge)...)
	api.Get("/saques", session(wallet_controllers.GetWithdrawals)...)
	api.Post("/saques", session(wallet_controllers.CreateWithdrawal)...)

	api.Get("/convocacoes", session(convocation_controllers.GetConvocations)...)
	api.Post("/convocacoes", session(convocation_controllers.CreateConvocation)...)
	api.Get("/convocacoes/:id", session(convocation_controllers.GetConvocation)...)
	api.Post("/convocacoes/:id/aceitar", session(convocation_controllers.AcceptConvocation)...)
	api.Post("/convocacoes/:id/recusar", session(convocation_controllers.DeclineConvocation)...)
	api.Post("/convocacoes/:id/cancelar", session(convocation_controllers.CancelConvocation)...)
	api.Post("/convocacoes/:id/concluir", session(convocation_controllers.CompleteConvocation)...)
	api.Post("/convocacoes/:id/avaliacoes", session(rating_controllers.SubmitRatings)...)

	api.Get("/avaliacoes/categorias", session(rating_controllers.GetCategories)...)

	api.Get("/suporte/chamados", session(support_controllers.GetTickets)...)
	api.Post("/suporte/chamados", session(support_controllers.OpenTicket)...)
	api.Get("/suporte/chamados/:id", session(support_controllers.GetTicket)...)
	api.Get("/suporte/chamados/:id/mensagens", session(support_controllers.GetMessages)...)
	api.Post("/suporte/chamados/:id/mensagens", session(support_controllers.PostMessage)...)
	api.Post("/suporte/chamados/:id/fechar", session(support_controllers.CloseTicket)...)

	return app
}
