// Package main is the entry point for the headless FABRIK driver.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/fabrik/internal/config"
	"github.com/Faultbox/fabrik/internal/logger"
	"github.com/Faultbox/fabrik/internal/rig"
	"github.com/Faultbox/fabrik/internal/trace"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// summary accumulates per-frame statistics for the final report.
type summary struct {
	frames      int
	unreachable int
	iterations  int
	residuals   []float64
}

func (s *summary) add(f rig.Frame) {
	s.frames++
	s.iterations += f.Iterations
	if !f.Reachable {
		s.unreachable++
	}
	s.residuals = append(s.residuals, f.Residual)
}

func (s *summary) fields() []zap.Field {
	fields := []zap.Field{
		zap.Int("frames", s.frames),
		zap.Int("unreachable", s.unreachable),
	}
	if s.frames > 0 {
		fields = append(fields,
			zap.Float64("max_residual", floats.Max(s.residuals)),
			zap.Float64("mean_iterations", float64(s.iterations)/float64(s.frames)))
	}
	return fields
}

func run(cfg *config.Config) error {
	if cfg.Run.SaveConfig != "" {
		if err := cfg.SaveTo(cfg.Run.SaveConfig); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("path", cfg.Run.SaveConfig))
	}

	r := rig.New(cfg)

	events, err := loadEvents(cfg, r)
	if err != nil {
		return err
	}

	var rec *trace.Recorder
	if cfg.Run.Record != "" {
		rec, err = trace.Create(cfg.Run.Record)
		if err != nil {
			return fmt.Errorf("creating trace: %w", err)
		}
		// Releases the file on early returns; no-op after the Close below.
		defer rec.Close()
	}

	logger.Info("starting run",
		zap.Int("events", len(events)),
		zap.Int("segments", r.Chain().SegmentCount()),
		zap.Float64("reach", r.Chain().TotalLength()),
		logger.Vec("origin", r.Chain().Origin()))

	var sum summary
	for _, ev := range events {
		frame, ok := r.Handle(ev)
		if !ok {
			continue
		}
		sum.add(frame)
		if rec != nil {
			if err := rec.Record(frame); err != nil {
				return err
			}
		}
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			return fmt.Errorf("closing trace: %w", err)
		}
		logger.Info("trace written", zap.String("path", cfg.Run.Record), zap.Int("frames", rec.Frames()))
	}

	logger.Info("run complete", sum.fields()...)
	return nil
}

// loadEvents plays the configured script, or sweeps a circle around the
// origin when there is none.
func loadEvents(cfg *config.Config, r *rig.Rig) ([]rig.Event, error) {
	if cfg.Run.Script != "" {
		s, err := trace.LoadScript(cfg.Run.Script)
		if err != nil {
			return nil, err
		}
		return s.Events(), nil
	}

	reach := r.Chain().TotalLength()
	radius := cfg.Run.SweepRadius
	if radius == 0 {
		radius = 0.75 * reach
	}
	if radius > reach {
		logger.Warn("sweep radius exceeds chain reach, every tick will stretch",
			zap.Float64("radius", radius),
			zap.Float64("reach", reach))
	}
	return trace.Sweep(r.Chain().Origin(), radius, cfg.Run.SweepTicks), nil
}
