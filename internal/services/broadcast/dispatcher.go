package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc"

	"github.com/mcoot/scrumpoker/internal/model"
)

// Report summarizes one fan-out
type Report struct {
	Attempted int
	Delivered int
	Failed    int
}

// Dispatcher fans a payload out to the connected members of a roster
type Dispatcher struct {
	transport Transport
	logger    *slog.Logger
}

// New creates a new Dispatcher
func New(transport Transport, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		logger:    logger.With(slog.String("component", "broadcast")),
	}
}

// Recipients returns the targets that would receive a broadcast: connected
// participants other than the one bound to excludeChannelID
func Recipients(targets []*model.Participant, excludeChannelID model.ChannelID) []*model.Participant {
	return lo.Filter(targets, func(p *model.Participant, _ int) bool {
		return p.Connected() && p.ChannelID != excludeChannelID
	})
}

// Broadcast sends payload to every recipient concurrently and waits for all
// attempts. A failed delivery is logged and counted, never returned; only a
// fault in the fan-out itself is reported as an error.
func (d *Dispatcher) Broadcast(ctx context.Context, targets []*model.Participant, excludeChannelID model.ChannelID, payload []byte) (Report, error) {
	recipients := Recipients(targets, excludeChannelID)

	var delivered, failed atomic.Int64
	var wg conc.WaitGroup
	for _, p := range recipients {
		wg.Go(func() {
			if err := d.transport.Send(ctx, p.ChannelID, payload); err != nil {
				failed.Add(1)
				d.logger.Warn("delivery failed",
					slog.String("channel_id", string(p.ChannelID)),
					slog.String("participant_id", string(p.ID)),
					slog.String("error", err.Error()),
				)
				return
			}
			delivered.Add(1)
		})
	}

	report := Report{Attempted: len(recipients)}
	recovered := wg.WaitAndRecover()
	report.Delivered = int(delivered.Load())
	report.Failed = int(failed.Load())

	if recovered != nil {
		d.logger.Error("fan-out panicked", slog.String("panic", recovered.String()))
		return report, fmt.Errorf("%w: %w", model.ErrDispatchFault, recovered.AsError())
	}

	d.logger.Debug("broadcast complete",
		slog.Int("attempted", report.Attempted),
		slog.Int("delivered", report.Delivered),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}
