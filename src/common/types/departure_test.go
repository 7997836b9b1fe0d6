package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastEstimatedTimeUsesFinalStop(t *testing.T) {
	d := TrainDeparture{Stops: []StationInfo{
		{Name: "Stevenage", ScheduledTime: "10:20"},
		{Name: "York", ScheduledTime: "12:01"},
	}}

	last, err := d.LastEstimatedTime()
	require.NoError(t, err)
	assert.Equal(t, "12:01", last)
	assert.Equal(t, 2, d.StopsCount())
}

func TestLastEstimatedTimeWithoutStops(t *testing.T) {
	_, err := TrainDeparture{}.LastEstimatedTime()
	assert.ErrorIs(t, err, ErrNoStops)

	_, err = json.Marshal(TrainDeparture{})
	assert.True(t, errors.Is(err, ErrNoStops))
}

func TestWebhookRequestJSON(t *testing.T) {
	reason := "signalling fault"
	platform := "4"
	operator := "LNER"
	req := WebhookRequest{MergeVariables: TrainDepartureResult{
		GeneratedAt: time.Date(2024, time.March, 5, 14, 7, 33, 0, time.UTC),
		Departures: []TrainDeparture{{
			Destination:     "York",
			DestinationCode: "YRK",
			ScheduledTime:   "10:02",
			Platform:        &platform,
			ExpectedTime:    "On time",
			Operator:        &operator,
			CancelReason:    &reason,
			CarriageLength:  9,
			Stops: []StationInfo{
				{Name: "Peterborough", ScheduledTime: "10:47", EstimatedTime: "On time"},
				{Name: "York", ScheduledTime: "12:01", EstimatedTime: "On time"},
			},
		}},
	}}

	body, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"merge_variables": {
			"generated_at": "2024 March 05 @ 14:07",
			"departures": [{
				"destination": "York",
				"destination_code": "YRK",
				"scheduled_time": "10:02",
				"platform": "4",
				"expected": "On time",
				"operator": "LNER",
				"cancel_reason": "signalling fault",
				"isCancelled": false,
				"carriage_length": 9,
				"stops_count": 2,
				"last_estimated_time": "12:01"
			}]
		}
	}`, string(body))
}

func TestEmptyResultSerializesEmptyArray(t *testing.T) {
	body, err := json.Marshal(TrainDepartureResult{GeneratedAt: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"generated_at":"2024 January 01 @ 09:00","departures":[]}`, string(body))
}

func TestDepartureJSONKeepsMissingValuesNull(t *testing.T) {
	body, err := json.Marshal(TrainDeparture{
		Destination: "Leeds",
		IsCancelled: true,
		Stops:       []StationInfo{{Name: "Leeds", ScheduledTime: "11:40"}},
	})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))

	assert.Equal(t, true, fields["isCancelled"])
	assert.NotContains(t, fields, "is_cancelled")
	for _, key := range []string{"platform", "operator", "cancel_reason"} {
		value, ok := fields[key]
		assert.True(t, ok, key)
		assert.Nil(t, value, key)
	}
}
