package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"multiciber/internal/config"
	"multiciber/internal/http/handlers"
	applog "multiciber/internal/log"
	"multiciber/internal/repos"
	"multiciber/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return the envelope; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "internal error",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "rate limit exceeded, retry soon",
			})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc)

	// Auth routes (login throttled)
	auth := app.Group("/api/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "too many attempts, try again later",
			})
		},
	}), authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/me", handlers.RequireUser(authSvc), authH.Me)

	// Public storefront catalog (no auth)
	app.Get("/api/public/:slug", deps.SettingsHandler.PublicCatalog)

	// Owner-scoped API
	api := app.Group("/api", handlers.RequireUser(authSvc))

	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", deps.ProductHandler.Create)
	api.Get("/products/low-stock", deps.ProductHandler.LowStock)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)

	api.Get("/categories", deps.CategoryHandler.List)
	api.Post("/categories", deps.CategoryHandler.Create)
	api.Put("/categories/:id", deps.CategoryHandler.Update)
	api.Delete("/categories/:id", deps.CategoryHandler.Delete)

	api.Get("/sales", deps.SaleHandler.List)
	api.Post("/sales", deps.SaleHandler.Create)
	api.Get("/sales/:id", deps.SaleHandler.Get)
	api.Put("/sales/:id", deps.SaleHandler.Update)
	api.Delete("/sales/:id", deps.SaleHandler.Delete)

	api.Get("/expenses", deps.ExpenseHandler.List)
	api.Post("/expenses", deps.ExpenseHandler.Create)
	api.Get("/expenses/:id", deps.ExpenseHandler.Get)
	api.Put("/expenses/:id", deps.ExpenseHandler.Update)
	api.Delete("/expenses/:id", deps.ExpenseHandler.Delete)

	api.Get("/payments", deps.PaymentHandler.List)

	api.Get("/clients", deps.ContactHandler.ListClients)
	api.Post("/clients", deps.ContactHandler.CreateClient)
	api.Put("/clients/:id", deps.ContactHandler.UpdateClient)
	api.Delete("/clients/:id", deps.ContactHandler.DeleteClient)
	api.Get("/clients/:id/debt", deps.ContactHandler.ClientDebt)

	api.Get("/suppliers", deps.ContactHandler.ListSuppliers)
	api.Post("/suppliers", deps.ContactHandler.CreateSupplier)
	api.Put("/suppliers/:id", deps.ContactHandler.UpdateSupplier)
	api.Delete("/suppliers/:id", deps.ContactHandler.DeleteSupplier)

	api.Get("/settings", deps.SettingsHandler.Get)
	api.Put("/settings", deps.SettingsHandler.Update)

	api.Get("/dashboard/stats", deps.DashboardHandler.Get)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "not found",
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
