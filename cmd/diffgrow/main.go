// Command diffgrow runs a differential-growth simulation headless.
//
// Usage:
//
//	diffgrow [-config sim.yaml] [-steps N] [-metrics-addr :9100] [-dump] [-log-level info]
//
// The simulation is seeded from the config file (or the built-in default
// circle) and stepped until a vertex reaches the boundary margin, the step
// budget runs out, or the process receives SIGINT/SIGTERM. With -dump the
// final edges are written to stdout, one "x1 y1 x2 y2" line per edge, for an
// external renderer. With -metrics-addr the solver series are served on
// /metrics while the simulation runs.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/diffgrowth/config"
	"github.com/katalvlaran/diffgrowth/diffline"
	"github.com/katalvlaran/diffgrowth/metrics"
	"github.com/katalvlaran/diffgrowth/segments"
)

// cliOptions are the parsed command-line flags.
type cliOptions struct {
	configPath  string
	steps       int
	metricsAddr string
	dump        bool
	logLevel    slog.Level
}

func parseFlags(args []string) (cliOptions, error) {
	var (
		opt   cliOptions
		level string
	)
	fs := flag.NewFlagSet("diffgrow", flag.ContinueOnError)
	fs.StringVar(&opt.configPath, "config", "", "simulation YAML file (default: built-in circle)")
	fs.IntVar(&opt.steps, "steps", 0, "step budget; overrides simulation.max_steps when > 0")
	fs.StringVar(&opt.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&opt.dump, "dump", false, "write final edges to stdout as \"x1 y1 x2 y2\" lines")
	fs.StringVar(&level, "log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return opt, err
	}
	if opt.steps < 0 {
		return opt, fmt.Errorf("-steps %d: must not be negative", opt.steps)
	}
	if err := opt.logLevel.UnmarshalText([]byte(level)); err != nil {
		return opt, fmt.Errorf("-log-level: %w", err)
	}
	return opt, nil
}

func main() {
	opt, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opt.logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, opt, os.Stdout, logger)
	stop()
	if err != nil {
		logger.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// run loads the configuration, seeds the mesh and drives the solver.
// Cancelling ctx ends the run normally after the current step.
func run(ctx context.Context, opt cliOptions, out io.Writer, logger *slog.Logger) error {
	cfg, err := config.Load(opt.configPath)
	if err != nil {
		return err
	}
	if opt.steps > 0 {
		cfg.Simulation.MaxSteps = opt.steps
	}

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	coll, err := metrics.NewCollector(prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, reg))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	d, err := diffline.New(cfg.Simulation.Config, diffline.WithLogger(logger), diffline.WithObserver(coll))
	if err != nil {
		return err
	}
	ids, err := cfg.Apply(d.Segments())
	if err != nil {
		return err
	}
	logger.Info("mesh seeded",
		slog.Int("segments", len(ids)),
		slog.Int("vertices", d.Segments().VertexCount()),
		slog.Int("edges", d.Segments().EdgeCount()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if opt.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: opt.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("serving metrics", slog.String("addr", opt.metricsAddr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			return srv.Shutdown(sctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return simulate(gctx, d, cfg.Simulation, logger)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if opt.dump {
		return dump(out, d.Segments())
	}
	return nil
}

// simulate steps d until the boundary margin is reached, the step budget is
// spent or ctx is done. A done ctx is not an error.
func simulate(ctx context.Context, d *diffline.DifferentialLine, sim config.Simulation, logger *slog.Logger) error {
	var lim *rate.Limiter
	if sim.StepsPerSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(sim.StepsPerSecond), 1)
	}

	start := time.Now()
	reason := "step budget"
	for sim.MaxSteps == 0 || d.Steps() < sim.MaxSteps {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				reason = "interrupted"
				break
			}
		} else if ctx.Err() != nil {
			reason = "interrupted"
			break
		}

		ok, err := d.Step(sim.Step)
		if err != nil {
			return err
		}
		if !ok {
			reason = "boundary reached"
			break
		}
	}

	s := d.Segments()
	logger.Info("simulation finished",
		slog.String("reason", reason),
		slog.Int("steps", d.Steps()),
		slog.Int("vertices", s.VertexCount()),
		slog.Int("edges", s.EdgeCount()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// dump writes every live edge as "x1 y1 x2 y2".
func dump(out io.Writer, s *segments.Segments) error {
	w := bufio.NewWriter(out)
	for _, q := range s.EdgesCoordinates() {
		if _, err := fmt.Fprintf(w, "%g %g %g %g\n", q[0], q[1], q[2], q[3]); err != nil {
			return err
		}
	}
	return w.Flush()
}
