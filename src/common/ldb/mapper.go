package ldb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
)

var (
	ErrMissingDestination   = errors.New("service has no destination")
	ErrMissingCallingPoints = errors.New("service has no subsequent calling points")
)

// MapDepartures converts a station board into at most maxRows departures,
// keeping upstream order. A maxRows of zero or less keeps every service.
func MapDepartures(board *StationBoardWithDetails, maxRows int) ([]types.TrainDeparture, error) {
	departures := []types.TrainDeparture{}
	if board == nil || board.TrainServices == nil {
		return departures, nil
	}

	for i, service := range board.TrainServices.Service {
		departure, err := mapService(service)
		if err != nil {
			return nil, fmt.Errorf("service %d (%s): %w", i, serviceRef(service), err)
		}
		departures = append(departures, departure)
	}

	if maxRows > 0 && len(departures) > maxRows {
		departures = departures[:maxRows]
	}

	return departures, nil
}

func mapService(service *ServiceItemWithCallingPoints) (types.TrainDeparture, error) {
	if service == nil {
		return types.TrainDeparture{}, ErrMissingDestination
	}

	if service.Destination == nil || len(service.Destination.Location) == 0 || service.Destination.Location[0] == nil {
		return types.TrainDeparture{}, ErrMissingDestination
	}
	destination := service.Destination.Location[0]

	if service.SubsequentCallingPoints == nil || len(service.SubsequentCallingPoints.CallingPointList) == 0 {
		return types.TrainDeparture{}, ErrMissingCallingPoints
	}

	departure := types.TrainDeparture{
		Destination:     deref(destination.LocationName),
		DestinationCode: deref(destination.Crs),
		ScheduledTime:   deref(service.Std),
		Platform:        optional(service.Platform),
		ExpectedTime:    ExpectedTime(deref(service.Etd)),
		Operator:        optional(service.Operator),
		CancelReason:    service.CancelReason,
		IsCancelled:     service.IsCancelled,
		Stops:           mapCallingPoints(service.SubsequentCallingPoints.CallingPointList[0]),
	}

	if service.Length != nil {
		departure.CarriageLength = int(*service.Length)
	}

	return departure, nil
}

func mapCallingPoints(list *ArrayOfCallingPoints) []types.StationInfo {
	stops := []types.StationInfo{}
	if list == nil {
		return stops
	}

	for _, point := range list.CallingPoint {
		if point == nil {
			continue
		}
		stops = append(stops, types.StationInfo{
			Name:          deref(point.LocationName),
			ScheduledTime: deref(point.St),
			EstimatedTime: deref(point.Et),
		})
	}

	return stops
}

// ExpectedTime prefixes clock times; statuses such as "On time" or
// "Cancelled" pass through unchanged.
func ExpectedTime(etd string) string {
	if strings.Contains(etd, ":") {
		return "expected @ " + etd
	}
	return etd
}

func serviceRef(service *ServiceItemWithCallingPoints) string {
	if service == nil {
		return "nil"
	}
	if service.ServiceID != nil {
		return string(*service.ServiceID)
	}
	return deref(service.Std)
}
