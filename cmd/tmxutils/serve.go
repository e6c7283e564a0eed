package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr         string
	resourceRoot string
	strictCSV    bool
}

func (c *serveCmd) Name() string     { return "serve" }
func (c *serveCmd) Synopsis() string { return "parse maps over HTTP" }
func (c *serveCmd) Usage() string {
	return "tmxutils serve [-addr :3000 -root <dir> -strict]\n"
}
func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":3000", "Listen address")
	f.StringVar(&c.resourceRoot, "root", "", "Directory external tilesets are read from; references outside it are rejected")
	f.BoolVar(&c.strictCSV, "strict", false, "Reject csv layers with a wrong number of tiles")
}

// newApp serves POST /parse: the request body is a map document, the response
// its summary.
func newApp(logger *slog.Logger, opts ...tmx.Option) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "tmxutils"})
	app.Use(recover.New())

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Post("/parse", func(c fiber.Ctx) error {
		m, err := tmx.Decode(bytes.NewReader(c.Body()), opts...)
		if err != nil {
			logger.Warn("parse failed", "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(summarize(m))
	})

	return app
}

// parseOptions confines external references of posted documents to the
// resource root: os.DirFS rejects rooted paths and paths escaping it with "..".
func (c *serveCmd) parseOptions(logger *slog.Logger) []tmx.Option {
	root := c.resourceRoot
	if root == "" {
		root = "."
	}
	return []tmx.Option{
		tmx.WithFileSystem(os.DirFS(root)),
		tmx.WithLogger(logger),
		tmx.WithStrictCSV(c.strictCSV),
	}
}

func (c *serveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	logger := newLogger(false)
	app := newApp(logger, c.parseOptions(logger)...)

	log.Printf("listening on %s", c.addr)
	if err := app.Listen(c.addr); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
