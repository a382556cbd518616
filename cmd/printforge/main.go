package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"printforge/internal/config"
	"printforge/internal/http/handlers"
	applog "printforge/internal/log"
	"printforge/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

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
	if cfg.CatalogFile != "" {
		if err := repos.LoadCatalogFile(db, cfg.CatalogFile); err != nil {
			log.Fatal(err)
		}
	}
	// An empty catalog means nothing can be ordered; refuse to serve.
	if n, err := repos.NewProductRepo(db).Count(); err != nil {
		log.Fatal(err)
	} else if n == 0 {
		log.Fatal("catalog is empty")
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	chat := app.Group("/chat", handlers.RequireBearer(cfg.BotToken, "chat"))
	chat.Post("/:user/start", deps.ChatHandler.Start)
	chat.Post("/:user/message", deps.ChatHandler.Message)
	chat.Post("/:user/select", deps.ChatHandler.Select)

	op := app.Group("/operator", handlers.RequireBearer(cfg.OperatorToken, "operator"))
	op.Get("/", deps.OperatorHandler.Page)
	op.Get("/queue", deps.OperatorHandler.List)
	op.Post("/queue/:pos/done", deps.OperatorHandler.Done)
	op.Post("/queue/clear", deps.OperatorHandler.Clear)
	op.Get("/history", deps.OperatorHandler.History)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
