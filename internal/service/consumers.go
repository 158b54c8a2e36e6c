package service

import (
	"context"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/dispatch"
	"writeoff_monitor/internal/logger"
	"writeoff_monitor/internal/repository"
)

// Consumer receives a finished classification. Consumers run independently:
// one failing never stops the next.
type Consumer interface {
	Name() string
	Consume(ctx context.Context, res Result, sum *wm.RunSummary) error
}

// DispatchConsumer sends the aggregated payload to a sink, once, only if non-empty.
type DispatchConsumer struct {
	sink dispatch.Sink
}

func NewDispatchConsumer(sink dispatch.Sink) *DispatchConsumer {
	return &DispatchConsumer{sink: sink}
}

func (c *DispatchConsumer) Name() string { return "dispatch" }

func (c *DispatchConsumer) Consume(ctx context.Context, res Result, sum *wm.RunSummary) error {
	if len(res.Payload) == 0 {
		return nil
	}
	if err := c.sink.Send(ctx, res.Payload); err != nil {
		return err
	}
	sum.Dispatched = true
	return nil
}

// PaintConsumer colours the originating cells of the occurrences.
type PaintConsumer struct {
	painter repository.CellPainter
	colors  ColorTable
	log     *logger.Logger
}

func NewPaintConsumer(painter repository.CellPainter, colors ColorTable, log *logger.Logger) *PaintConsumer {
	return &PaintConsumer{painter: painter, colors: colors, log: log}
}

func (c *PaintConsumer) Name() string { return "paint" }

func (c *PaintConsumer) Consume(ctx context.Context, res Result, sum *wm.RunSummary) error {
	n, err := Paint(ctx, c.painter, c.colors, res.Occurrences, c.log)
	sum.Painted = n
	return err
}

// LogConsumer writes the payload to the log.
type LogConsumer struct {
	log *logger.Logger
}

func NewLogConsumer(log *logger.Logger) *LogConsumer { return &LogConsumer{log: log} }

func (c *LogConsumer) Name() string { return "log" }

func (c *LogConsumer) Consume(_ context.Context, res Result, _ *wm.RunSummary) error {
	for _, set := range res.Payload {
		c.log.Infow("unit_events", "unit_id", set.UnitID, "unit_name", set.UnitName, "events", set.Events)
	}
	return nil
}
