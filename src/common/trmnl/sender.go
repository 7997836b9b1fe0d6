package trmnl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jack-barr3tt/trmnl-departures/src/common/types"
	"go.uber.org/zap"
)

// MaxPayloadBytes is the largest webhook body TRMNL renders without logging
// a "Large payload received" error on the device.
const MaxPayloadBytes = 2000

// Guard decides whether a webhook may be posted now.
type Guard interface {
	Allow(ctx context.Context) (bool, error)
}

type Sender struct {
	client     *http.Client
	webhookURL string
	skipSend   bool
	guard      Guard
	logger     *zap.SugaredLogger
}

func NewSender(client *http.Client, webhookURL string, skipSend bool, logger *zap.SugaredLogger) *Sender {
	return &Sender{
		client:     client,
		webhookURL: webhookURL,
		skipSend:   skipSend,
		logger:     logger,
	}
}

// WithGuard makes Send consult guard before posting.
func (s *Sender) WithGuard(guard Guard) *Sender {
	s.guard = guard
	return s
}

// Encode returns the webhook body for result.
func Encode(result types.TrainDepartureResult) ([]byte, error) {
	payload, err := json.Marshal(types.WebhookRequest{MergeVariables: result})
	if err != nil {
		return nil, fmt.Errorf("encode webhook payload: %w", err)
	}
	return payload, nil
}

func Oversized(payload []byte) bool {
	return len(payload) > MaxPayloadBytes
}

// Send posts result to the webhook. A non-2xx response is logged, not returned.
func (s *Sender) Send(ctx context.Context, result types.TrainDepartureResult) error {
	payload, err := Encode(result)
	if err != nil {
		return err
	}

	s.logger.Info(string(payload))
	s.logger.Infof("Payload size: %d bytes", len(payload))

	if Oversized(payload) {
		s.logger.Warnw("Payload may be too large for TRMNL - check device logs. URL will be something like: https://usetrmnl.com/devices/{deviceId}/logs",
			"bytes", len(payload), "limit", MaxPayloadBytes)
	}

	if s.skipSend {
		s.logger.Info("Skipping sending to TRMNL webhook - avoiding the 5 min rate limit")
		return nil
	}

	if s.guard != nil {
		allowed, err := s.guard.Allow(ctx)
		if err != nil {
			s.logger.Warnw("rate limit guard unavailable, sending anyway", "error", err)
		} else if !allowed {
			s.logger.Info("Skipping sending to TRMNL webhook - last send was inside the rate limit window")
			return nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		s.logger.Infow("TRMNL webhook posted", "status", res.StatusCode)
	} else {
		s.logger.Errorw("TRMNL webhook rejected payload", "status", res.StatusCode)
	}

	return nil
}
