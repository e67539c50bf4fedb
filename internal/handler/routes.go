package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	listHandler *ListHandler,
	itemHandler *ItemHandler,
	sharingHandler *SharingHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Health check (public)
	app.Get("/health", healthHandler.Health)

	// User routes
	user := app.Group("/user")
	user.Post("/", userHandler.Register)
	user.Post("/login", authHandler.Login)
	user.Get("/logout", authMiddleware, authHandler.Logout)
	user.Get("/current", authMiddleware, userHandler.Current)
	user.Get("/", authMiddleware, userHandler.Search)
	user.Delete("/", authMiddleware, userHandler.Delete)

	// Shopping list routes (protected)
	lists := app.Group("/shopping_list", authMiddleware)
	lists.Get("/", listHandler.List)
	lists.Post("/", listHandler.Create)
	lists.Patch("/:id", listHandler.Update)
	lists.Delete("/:id", listHandler.Delete)

	// Item routes
	items := lists.Group("/:id/item")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Patch("/:itemId", itemHandler.Update)
	items.Delete("/:itemId", itemHandler.Delete)

	// Sharing routes
	share := lists.Group("/:id/share")
	share.Get("/", sharingHandler.Sharing)
	share.Post("/", sharingHandler.Share)
	share.Delete("/", sharingHandler.Unshare)
}
