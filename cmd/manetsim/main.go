// Command manetsim runs a single MANET simulation and streams its
// emission-record payloads as line-delimited JSON to stdout (spec §6).
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"manetsim/core"
	"manetsim/internal/config"
	"manetsim/internal/metricsexport"
	"manetsim/internal/obslog"
	"manetsim/sim"
)

// version is overwritten at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		logLevel    string
		logFormat   string
		metricsAddr string
		svgOut      string
		seed        int64

		numNodes    int
		areaSize    int
		protocol    string
		simTime     int
		trafficLoad int
		nodeSpeed   int
		txRange     int
		pauseTime   int
	)

	cmd := &cobra.Command{
		Use:   "manetsim",
		Short: "Discrete-event MANET routing protocol simulator",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, configPath != "")
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg, numNodes, areaSize, protocol, simTime, trafficLoad, nodeSpeed, txRange, pauseTime)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, _ := obslog.New(logFormat, logLevel)
			logger.Info("starting run",
				slog.Int("numNodes", cfg.NumNodes),
				slog.String("protocol", string(cfg.Protocol)),
				slog.Int("simTime", cfg.SimTime),
			)

			var reg *prometheus.Registry
			var collector *metricsexport.Collector
			if metricsAddr != "" {
				reg = prometheus.NewRegistry()
				collector = metricsexport.NewCollector(reg)
				go serveMetrics(metricsAddr, reg, logger)
			}

			listener := func(ev *core.Event) {
				logger.Debug("event", slog.Int("type", ev.Type), slog.String("node", ev.Node.String()))
			}

			w := sim.New(cfg, seed, listener)
			enc := json.NewEncoder(os.Stdout)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			done := make(chan struct{})
			go func() {
				defer close(done)
				w.Run(func(rec sim.EmissionRecord) {
					if collector != nil {
						collector.Observe(rec)
					}
					if err := enc.Encode(rec); err != nil {
						logger.Error("encode emission record", slog.String("error", err.Error()))
					}
				})
			}()

			select {
			case <-done:
			case sig := <-sigCh:
				logger.Info("stop requested", slog.String("signal", sig.String()))
				w.Stop()
				<-done
			}

			logger.Info("run complete")

			if svgOut != "" {
				if err := sim.ExportSVG(w, svgOut); err != nil {
					logger.Error("export svg", slog.String("error", err.Error()))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file (YAML)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&svgOut, "svg-out", "", "if set, write a final topology snapshot to this SVG file")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for placement, mobility and traffic")

	cmd.Flags().IntVar(&numNodes, "num-nodes", 0, "number of nodes (overrides config)")
	cmd.Flags().IntVar(&areaSize, "area-size", 0, "arena side length in metres (overrides config)")
	cmd.Flags().StringVar(&protocol, "protocol", "", "routing protocol: AODV, DSDV, DSR, OLSR (overrides config)")
	cmd.Flags().IntVar(&simTime, "sim-time", 0, "horizon in simulated seconds (overrides config)")
	cmd.Flags().IntVar(&trafficLoad, "traffic-load", 0, "offered load in packets/second (overrides config)")
	cmd.Flags().IntVar(&nodeSpeed, "node-speed", 0, "node speed in m/s (overrides config)")
	cmd.Flags().IntVar(&txRange, "tx-range", 0, "transmission range in metres (overrides config)")
	cmd.Flags().IntVar(&pauseTime, "pause-time", 0, "pause time in seconds (overrides config)")

	cmd.AddCommand(versionCmd())
	return cmd
}

// applyFlagOverrides lets explicit, non-zero CLI flags win over whatever
// config.Load already merged from defaults/file/env (spec's config
// layering: file < env < flags).
func applyFlagOverrides(cfg *core.Config, numNodes, areaSize int, protocol string, simTime, trafficLoad, nodeSpeed, txRange, pauseTime int) {
	if numNodes != 0 {
		cfg.NumNodes = numNodes
	}
	if areaSize != 0 {
		cfg.AreaSize = areaSize
	}
	if protocol != "" {
		cfg.Protocol = core.Protocol(protocol)
	}
	if simTime != 0 {
		cfg.SimTime = simTime
	}
	if trafficLoad != 0 {
		cfg.TrafficLoad = trafficLoad
	}
	if nodeSpeed != 0 {
		cfg.NodeSpeed = nodeSpeed
	}
	if txRange != 0 {
		cfg.TxRange = txRange
	}
	if pauseTime != 0 {
		cfg.PauseTime = pauseTime
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil { //nolint:gosec // simulator diagnostics endpoint, not internet-facing
		logger.Error("metrics server exited", slog.String("error", err.Error()))
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the manetsim version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
