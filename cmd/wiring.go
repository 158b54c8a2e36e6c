package main

import (
	"fmt"
	"io"

	"writeoff_monitor/internal/config"
	"writeoff_monitor/internal/dispatch"
	"writeoff_monitor/internal/logger"
	"writeoff_monitor/internal/repository"
	"writeoff_monitor/internal/service"
)

// newSink picks the dispatch sink named in config. The returned closer is nil
// when the sink holds no connections.
func newSink(cfg config.Dispatch) (dispatch.Sink, io.Closer, error) {
	switch cfg.Kind {
	case config.DispatchHTTP:
		return dispatch.NewHTTPSink(cfg.URL, cfg.Timeout), nil, nil
	case config.DispatchKafka:
		s, err := dispatch.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DispatchNone:
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown dispatch kind %q", cfg.Kind)
	}
}

func colorTable(specs []config.ColorSpec) service.ColorTable {
	out := make(service.ColorTable, 0, len(specs))
	for _, c := range specs {
		out = append(out, service.ColorSpec{EventType: c.EventType, Color: c.Color})
	}
	return out
}

// buildConsumers returns dispatch, paint and log consumers in that order,
// skipping the ones switched off in config.
func buildConsumers(cfg *config.Config, painter repository.CellPainter, log *logger.Logger) ([]service.Consumer, io.Closer, error) {
	var consumers []service.Consumer

	sink, closer, err := newSink(cfg.Dispatch)
	if err != nil {
		return nil, nil, err
	}
	if sink != nil {
		consumers = append(consumers, service.NewDispatchConsumer(sink))
	}
	if cfg.PaintEnabled && painter != nil {
		consumers = append(consumers, service.NewPaintConsumer(painter, colorTable(cfg.Colors), log.Named("paint")))
	}
	consumers = append(consumers, service.NewLogConsumer(log.Named("payload")))
	return consumers, closer, nil
}

func engineConfig(cfg *config.Config) service.EngineConfig {
	return service.EngineConfig{
		Filters:  cfg.Filters,
		Policy:   service.CheckedPolicy(cfg.Engine.CheckedPolicy),
		FirstRow: cfg.Engine.FirstRow,
	}
}
