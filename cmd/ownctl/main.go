// File: cmd/ownctl/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Command ownctl runs ownership scenario scripts and reports what they
// disposed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/momentics/ownkit/control"
	"github.com/momentics/ownkit/internal/logging"
	"github.com/momentics/ownkit/scenario"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ownctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	dump := fs.Bool("dump", false, "print metrics and probe state as JSON after the run")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ownctl [-config ownctl.toml] [-dump] script...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "ownctl: %v\n", err)
		return 1
	}
	logging.InitTo(stderr, cfg.App, cfg.LogLevel)

	metrics := control.NewMetricsRegistry()
	probes := control.NewDebugProbes()
	opts := cfg.options()
	opts.Metrics = metrics
	opts.Probes = probes

	failed := 0
	for _, path := range fs.Args() {
		s, err := scenario.Load(path)
		if err != nil {
			log.Error().Err(err).Str("script", path).Msg("load failed")
			failed++
			continue
		}
		res, err := scenario.Run(s, opts)
		if err != nil {
			log.Error().Err(err).Str("script", res.Name).Int("steps", res.Steps).Msg("scenario failed")
			failed++
			continue
		}
		log.Info().Str("script", res.Name).Int("steps", res.Steps).Int64("disposed", res.Disposed).Msg("scenario passed")
	}

	if *dump {
		out := map[string]any{
			"metrics": metrics.GetSnapshot(),
			"probes":  probes.DumpState(),
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "ownctl: dump: %v\n", err)
			return 1
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", fs.NArg()).Msg("run finished with failures")
		return 1
	}
	return 0
}
