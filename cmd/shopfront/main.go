package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"shopfront/internal/api"
	"shopfront/internal/config"
	"shopfront/internal/http/handlers"
	"shopfront/internal/http/middleware"
	applog "shopfront/internal/log"
	"shopfront/internal/session"
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

	apiLog := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		apiLog.SetLevel(lvl)
	}

	sessions, err := session.Open(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer sessions.Close()

	client := api.New(cfg.APIBaseURL, sessions, apiLog)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard; product image galleries are the largest uploads
	app.Server().MaxRequestBodySize = 10 << 20 // 10 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(middleware.Prometheus())
	// Attach the cached user to the context if logged in (for templates/authz)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := sessions.User(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(client, sessions)
	authH := deps.AuthHandler

	// Public pages
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/categories", deps.CatalogHandler.Categories)
	app.Get("/category/:id", deps.CatalogHandler.CategoryProducts)
	app.Get("/products", deps.CatalogHandler.Products)
	app.Get("/product", func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	})
	app.Get("/product/:id", deps.CatalogHandler.Detail)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Post("/logout", authH.Logout)

	// Signed-in storefront
	requireUser := handlers.RequireUser(sessions)
	app.Get("/dashboard", requireUser, deps.CatalogHandler.Dashboard)
	app.Get("/profile", requireUser, authH.Profile)
	app.Get("/cart", requireUser, deps.CartHandler.View)
	app.Post("/cart/add", requireUser, deps.CartHandler.Add)
	app.Post("/cart/qty", requireUser, deps.CartHandler.ChangeQty)
	app.Post("/cart/remove", requireUser, deps.CartHandler.Remove)
	app.Get("/checkout", requireUser, deps.OrderHandler.CheckoutForm)
	app.Post("/orders", requireUser, deps.OrderHandler.Place)
	app.Get("/orders", requireUser, deps.OrderHandler.History)
	app.Post("/orders/:id/delete", requireUser, deps.OrderHandler.Delete)
	app.Get("/wishlist", requireUser, deps.WishlistHandler.List)
	app.Post("/wishlist", requireUser, deps.WishlistHandler.Save)
	app.Post("/wishlist/delete", requireUser, deps.WishlistHandler.Unsave)
	app.Post("/product/:id/review", requireUser, deps.CatalogHandler.PostReview)

	// Admin
	adminH := deps.AdminHandler
	admin := app.Group("/admin", handlers.RequireAdmin(sessions))
	admin.Get("/", adminH.Dashboard)
	admin.Get("/users", adminH.Users)
	admin.Post("/users/:id", adminH.UpdateUser)
	admin.Post("/users/:id/delete", adminH.DeleteUser)
	admin.Get("/products", adminH.Products)
	admin.Post("/products", adminH.CreateProduct)
	admin.Post("/products/:id", adminH.UpdateProduct)
	admin.Post("/products/:id/delete", adminH.DeleteProduct)
	admin.Get("/categories", adminH.Categories)
	admin.Post("/categories", adminH.CreateCategory)
	admin.Post("/categories/:id", adminH.UpdateCategory)
	admin.Post("/categories/:id/delete", adminH.DeleteCategory)
	admin.Get("/orders", adminH.Orders)
	admin.Post("/orders/:id/status", adminH.UpdateOrderStatus)
	admin.Get("/reviews", adminH.Reviews)

	// Health & metrics & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
