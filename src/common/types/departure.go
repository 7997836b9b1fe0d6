package types

import (
	"encoding/json"
	"errors"
	"time"
)

// GeneratedAtLayout renders timestamps as e.g. "2024 March 05 @ 14:07".
const GeneratedAtLayout = "2006 January 02 @ 15:04"

var ErrNoStops = errors.New("departure has no stops")

type Route struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

type StationInfo struct {
	Name          string `json:"name"`
	ScheduledTime string `json:"scheduled_time"`
	EstimatedTime string `json:"estimated_time"`
}

type TrainDeparture struct {
	Destination     string
	DestinationCode string
	ScheduledTime   string
	Platform        *string
	ExpectedTime    string
	Operator        *string
	CancelReason    *string
	IsCancelled     bool
	CarriageLength  int
	Stops           []StationInfo
}

func (d TrainDeparture) StopsCount() int {
	return len(d.Stops)
}

// LastEstimatedTime is the scheduled time of the final calling point.
func (d TrainDeparture) LastEstimatedTime() (string, error) {
	if len(d.Stops) == 0 {
		return "", ErrNoStops
	}
	return d.Stops[len(d.Stops)-1].ScheduledTime, nil
}

type trainDepartureJSON struct {
	Destination       string  `json:"destination"`
	DestinationCode   string  `json:"destination_code"`
	ScheduledTime     string  `json:"scheduled_time"`
	Platform          *string `json:"platform"`
	ExpectedTime      string  `json:"expected"`
	Operator          *string `json:"operator"`
	CancelReason      *string `json:"cancel_reason"`
	IsCancelled       bool    `json:"isCancelled"`
	CarriageLength    int     `json:"carriage_length"`
	StopsCount        int     `json:"stops_count"`
	LastEstimatedTime string  `json:"last_estimated_time"`
}

func (d TrainDeparture) MarshalJSON() ([]byte, error) {
	last, err := d.LastEstimatedTime()
	if err != nil {
		return nil, err
	}

	return json.Marshal(trainDepartureJSON{
		Destination:       d.Destination,
		DestinationCode:   d.DestinationCode,
		ScheduledTime:     d.ScheduledTime,
		Platform:          d.Platform,
		ExpectedTime:      d.ExpectedTime,
		Operator:          d.Operator,
		CancelReason:      d.CancelReason,
		IsCancelled:       d.IsCancelled,
		CarriageLength:    d.CarriageLength,
		StopsCount:        d.StopsCount(),
		LastEstimatedTime: last,
	})
}

type TrainDepartureResult struct {
	GeneratedAt time.Time
	Departures  []TrainDeparture
}

func (r TrainDepartureResult) FriendlyGeneratedAt() string {
	return r.GeneratedAt.Format(GeneratedAtLayout)
}

func (r TrainDepartureResult) MarshalJSON() ([]byte, error) {
	departures := r.Departures
	if departures == nil {
		departures = []TrainDeparture{}
	}

	return json.Marshal(struct {
		GeneratedAt string           `json:"generated_at"`
		Departures  []TrainDeparture `json:"departures"`
	}{
		GeneratedAt: r.FriendlyGeneratedAt(),
		Departures:  departures,
	})
}

// WebhookRequest is the envelope TRMNL private plugins expect.
type WebhookRequest struct {
	MergeVariables TrainDepartureResult `json:"merge_variables"`
}
