package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	pkg "github.com/picshare/picshare/pkg/internal"
	"github.com/picshare/picshare/pkg/internal/http/api"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer(deps *api.Deps) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Picshare",
		AppName:               "Picshare v" + pkg.AppVersion,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             50 * 1024 * 1024,
	})

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled.")
		return err
	})

	deps.MapAPIs(app, "/api")

	if path := viper.GetString("storage.path"); len(path) > 0 {
		app.Static("/attachments", path)
	}

	return &App{app: app}
}

func (v *App) Listen() {
	addr := viper.GetString("bind")
	if len(strings.TrimSpace(addr)) == 0 {
		addr = ":8445"
	}

	if err := v.app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
