package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
	"go.uber.org/zap"
)

const Version = "1.0.0"

// BoardBuilder is satisfied by *board.Aggregator.
type BoardBuilder interface {
	Build(ctx context.Context, routes []types.Route) (types.TrainDepartureResult, error)
}

type APIServer struct {
	Board  BoardBuilder
	Routes []types.Route
	Logger *zap.SugaredLogger
}

func NewServer(board BoardBuilder, routes []types.Route, logger *zap.SugaredLogger) *APIServer {
	return &APIServer{
		Board:  board,
		Routes: routes,
		Logger: logger,
	}
}

// NewApp wires the preview routes onto a fiber app.
func NewApp(server *APIServer) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Path() != "/health" {
			server.Logger.Infow("request", "method", c.Method(), "path", c.Path(), "status", c.Response().StatusCode())
		}

		return err
	})

	app.Use(cors.New())

	RegisterHandlers(app, server)

	return app
}

func RegisterHandlers(app *fiber.App, server *APIServer) {
	app.Get("/health", server.GetHealth)
	app.Get("/departures", server.GetDepartures)
}
