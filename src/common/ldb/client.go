package ldb

import (
	"context"
	"fmt"

	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
	"go.uber.org/zap"
)

// Upstream request shape. numRows is independent of how many departures the
// caller keeps.
const (
	requestRows       = 10
	requestTimeOffset = 0
	requestTimeWindow = 120
)

type Client struct {
	service BoardService
	logger  *zap.SugaredLogger
}

func NewClient(service BoardService, logger *zap.SugaredLogger) *Client {
	return &Client{
		service: service,
		logger:  logger,
	}
}

// GetDepartures fetches the departure board at from, filtered to services
// calling at to, and keeps the first maxRows departures.
func (c *Client) GetDepartures(ctx context.Context, from string, to string, maxRows int) (types.TrainDepartureResult, error) {
	crs := CRSType(from)
	filterCrs := CRSType(to)
	filterType := FilterTypeTo

	response, err := c.service.GetDepBoardWithDetailsContext(ctx, &GetBoardRequestParams{
		NumRows:    requestRows,
		Crs:        &crs,
		FilterCrs:  &filterCrs,
		FilterType: &filterType,
		TimeOffset: requestTimeOffset,
		TimeWindow: requestTimeWindow,
	})
	if err != nil {
		return types.TrainDepartureResult{}, fmt.Errorf("departure board %s->%s: %w", from, to, err)
	}

	if response == nil || response.GetStationBoardResult == nil {
		return types.TrainDepartureResult{}, fmt.Errorf("departure board %s->%s: empty response", from, to)
	}
	board := response.GetStationBoardResult

	departures, err := MapDepartures(board, maxRows)
	if err != nil {
		return types.TrainDepartureResult{}, fmt.Errorf("departure board %s->%s: %w", from, to, err)
	}

	c.logger.Debugw("fetched departure board", "from", from, "to", to, "generated_at", board.GeneratedAt, "departures", len(departures))

	return types.TrainDepartureResult{
		GeneratedAt: board.GeneratedAt,
		Departures:  departures,
	}, nil
}
