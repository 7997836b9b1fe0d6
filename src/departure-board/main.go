package main

import (
	"context"
	"os"

	"github.com/jack-barr3tt/trmnl-departures/src/common/board"
	"github.com/jack-barr3tt/trmnl-departures/src/common/config"
	"github.com/jack-barr3tt/trmnl-departures/src/common/trmnl"
	"github.com/jack-barr3tt/trmnl-departures/src/common/utils"
	"github.com/jack-barr3tt/trmnl-departures/src/http-api/api"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	utils.InitLogger()
	defer utils.SyncLogger()
	log := utils.GetLogger()

	sendAction := func(c *cli.Context) error {
		cfg, ok := loadConfig(log, config.Config.Validate)
		if !ok {
			return nil
		}

		return send(c.Context, cfg, log)
	}

	app := &cli.App{
		Name:   "departure-board",
		Usage:  "post upcoming train departures to a TRMNL screen",
		Action: sendAction,
		Commands: []*cli.Command{
			{
				Name:   "send",
				Usage:  "fetch departures for every route and post them to the TRMNL webhook",
				Action: sendAction,
			},
			{
				Name:  "preview",
				Usage: "serve the webhook payload over http without posting it",
				Action: func(c *cli.Context) error {
					cfg, ok := loadConfig(log, config.Config.ValidateUpstream)
					if !ok {
						return nil
					}

					preview := api.NewApp(api.NewServer(newAggregator(cfg, log), cfg.Routes, log))
					log.Infow("preview api listening", "addr", cfg.PreviewAddr)

					return preview.Listen(cfg.PreviewAddr)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalw("departure board failed", "error", err)
	}
}

// loadConfig logs every configuration problem and reports whether work can go ahead.
func loadConfig(log *zap.SugaredLogger, validate func(config.Config) []error) (config.Config, bool) {
	cfg, err := config.FromEnvironment()
	if err != nil {
		log.Errorw("invalid configuration", "error", err)
		return config.Config{}, false
	}

	log.Infow("configuration",
		"NETWORK_RAIL_ACCESS_TOKEN", cfg.MaskedToken(),
		"TRMNL_WEBHOOK_URL", cfg.WebhookURL,
		"SKIP_SEND_TO_TRMNL", cfg.SkipSend,
		"DEPARTURES_PER_ROUTE", cfg.DeparturesPerRoute,
		"routes", len(cfg.Routes),
	)
	for i, route := range cfg.Routes {
		log.Infow("route", "index", i, "from", route.From, "to", route.To)
	}

	problems := validate(cfg)
	for _, problem := range problems {
		log.Error(problem.Error())
	}

	return cfg, len(problems) == 0
}

func newAggregator(cfg config.Config, log *zap.SugaredLogger) *board.Aggregator {
	return board.NewAggregator(utils.NewRailClient(cfg, log), cfg.DeparturesPerRoute, log)
}

func send(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	result, err := newAggregator(cfg, log).Build(ctx, cfg.Routes)
	if err != nil {
		return err
	}

	sender := trmnl.NewSender(utils.NewHTTPClient(), cfg.WebhookURL, cfg.SkipSend, log)
	if rdb := utils.NewRedisClient(cfg); rdb != nil {
		defer rdb.Close()
		sender = sender.WithGuard(trmnl.NewRateLimitGuard(rdb, cfg.WebhookURL))
	}

	return sender.Send(ctx, result)
}
