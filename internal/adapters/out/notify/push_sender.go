package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// PushDeliverer is the host's background push delivery mechanism.
type PushDeliverer interface {
	Deliver(ctx context.Context, alert ports.PushAlert) error
}

// PushSender implements the push alert channel over a PushDeliverer.
// Failures (permission not granted, transport down) are logged; the error is
// still returned so callers can count drops, but it must never be allowed to
// fail an order mutation.
type PushSender struct {
	deliverer PushDeliverer
	logger    *slog.Logger
}

// NewPushSender creates a push alert channel over the given deliverer.
func NewPushSender(deliverer PushDeliverer, logger *slog.Logger) *PushSender {
	return &PushSender{
		deliverer: deliverer,
		logger:    logger.With("component", "push_sender"),
	}
}

// Push dispatches one alert.
func (s *PushSender) Push(ctx context.Context, alert ports.PushAlert) error {
	if err := s.deliverer.Deliver(ctx, alert); err != nil {
		s.logger.ErrorContext(ctx, "push alert delivery failed", "error", err, "tag", alert.Tag)
		return err
	}
	return nil
}

// LogSynthesizer is a host bridge that renders spoken alerts to the
// structured log. Used when no real speech capability is attached.
type LogSynthesizer struct {
	logger *slog.Logger
}

// NewLogSynthesizer creates a log-backed synthesizer.
func NewLogSynthesizer(logger *slog.Logger) *LogSynthesizer {
	return &LogSynthesizer{logger: logger.With("component", "speech")}
}

// Speak logs the utterance.
func (s *LogSynthesizer) Speak(ctx context.Context, text string, volume, rate float64) error {
	s.logger.InfoContext(ctx, "speak", "text", text, "volume", volume, "rate", rate)
	return nil
}

// LogPushDeliverer is a host bridge that renders push alerts to the
// structured log. Used when no real push transport is attached.
type LogPushDeliverer struct {
	logger *slog.Logger
}

// NewLogPushDeliverer creates a log-backed push deliverer.
func NewLogPushDeliverer(logger *slog.Logger) *LogPushDeliverer {
	return &LogPushDeliverer{logger: logger.With("component", "push")}
}

// Deliver logs the alert.
func (d *LogPushDeliverer) Deliver(ctx context.Context, alert ports.PushAlert) error {
	d.logger.InfoContext(ctx, "push", "title", alert.Title, "body", alert.Body, "tag", alert.Tag)
	return nil
}
