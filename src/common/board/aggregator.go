package board

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
	"go.uber.org/zap"
)

var ErrNoRoutes = errors.New("no routes configured")

// DepartureFetcher is satisfied by *ldb.Client.
type DepartureFetcher interface {
	GetDepartures(ctx context.Context, from string, to string, maxRows int) (types.TrainDepartureResult, error)
}

type Aggregator struct {
	fetcher DepartureFetcher
	maxRows int
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewAggregator(fetcher DepartureFetcher, maxRows int, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		maxRows: maxRows,
		logger:  logger,
		now:     time.Now,
	}
}

// FetchAll queries each route in order. The first failure aborts the pass.
func (a *Aggregator) FetchAll(ctx context.Context, routes []types.Route) ([]types.TrainDepartureResult, error) {
	results := make([]types.TrainDepartureResult, 0, len(routes))

	for _, route := range routes {
		result, err := a.fetcher.GetDepartures(ctx, route.From, route.To, a.maxRows)
		if err != nil {
			return nil, err
		}

		a.logger.Infow("fetched departures", "from", route.From, "to", route.To, "count", len(result.Departures))
		results = append(results, result)
	}

	return results, nil
}

// Merge concatenates every route's departures and orders them by scheduled
// time. The order is a plain string comparison of the HH:MM values.
func (a *Aggregator) Merge(results []types.TrainDepartureResult) types.TrainDepartureResult {
	departures := []types.TrainDeparture{}
	for _, result := range results {
		departures = append(departures, result.Departures...)
	}

	sort.SliceStable(departures, func(i, j int) bool {
		return departures[i].ScheduledTime < departures[j].ScheduledTime
	})

	return types.TrainDepartureResult{
		GeneratedAt: a.now(),
		Departures:  departures,
	}
}

func (a *Aggregator) Build(ctx context.Context, routes []types.Route) (types.TrainDepartureResult, error) {
	if len(routes) == 0 {
		return types.TrainDepartureResult{}, ErrNoRoutes
	}

	results, err := a.FetchAll(ctx, routes)
	if err != nil {
		return types.TrainDepartureResult{}, err
	}

	return a.Merge(results), nil
}
