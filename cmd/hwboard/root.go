// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"

	"github.com/db47h/hwboard"
	"github.com/db47h/hwboard/book"
	"github.com/db47h/hwboard/hwlib"
	"github.com/db47h/hwboard/internal/config"
	"github.com/db47h/hwboard/layout"
	"github.com/db47h/hwboard/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by all commands.
//
type app struct {
	configFile  string
	logLevel    string
	size        int
	strict      bool
	metricsFile string
	books       []string

	cfg       *config.Config
	reg       *hwboard.Registry
	prom      *prometheus.Registry
	collector *metrics.Collector
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "hwboard",
		Short: "Logic board simulator tools",
		Long: `hwboard works with logic boards: layouts of gates, pins and wires saved as
YAML documents, and component books defining parts with boolean expressions.

Parts available to layouts are the default gate set (NOT, AND, OR, MUX,
adders...) plus the parts of the books listed in the configuration file or
given with --book.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	f := root.PersistentFlags()
	f.StringVarP(&a.configFile, "config", "c", "", "configuration file")
	f.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.IntVar(&a.size, "size", 0, "grid size")
	f.BoolVar(&a.strict, "strict", false, "enable extra network consistency warnings")
	f.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	f.StringArrayVarP(&a.books, "book", "b", nil, "load parts from a component book (repeatable)")

	root.AddCommand(
		newCheckCmd(a),
		newTruthCmd(a),
		newBookCmd(a),
		newPartsCmd(a),
	)
	return root
}

// setup merges flags over the configuration file, then sets up logging,
// metrics and the part registry.
//
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if f.Changed("size") {
		cfg.Size = a.size
	}
	if f.Changed("strict") {
		cfg.Strict = a.strict
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	cfg.Books = append(cfg.Books, a.books...)
	if err = cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	l, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "setup logger")
	}
	zap.ReplaceGlobals(l)

	if cfg.MetricsFile != "" {
		a.prom = prometheus.NewRegistry()
		a.collector = metrics.New(a.prom)
	}

	a.reg = hwboard.NewRegistry()
	if err = hwlib.Register(a.reg); err != nil {
		return err
	}
	for _, b := range cfg.Books {
		if err = book.RegisterFile(a.reg, b); err != nil {
			return err
		}
		zap.L().Debug("book loaded", zap.String("file", b))
	}
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.prom == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.prom); err != nil {
		return errors.Wrap(err, "write metrics")
	}
	return nil
}

// options returns the network options for the current configuration.
//
func (a *app) options() []hwboard.Option {
	opts := append(a.cfg.Options(), hwboard.WithLogger(zap.L()))
	if a.collector != nil {
		opts = append(opts, hwboard.WithObserver(a.collector))
	}
	return opts
}

// loadLayout loads and builds the layout in the named file.
//
func (a *app) loadLayout(name string) (*layout.Document, *hwboard.Network, error) {
	d, err := layout.LoadFile(name)
	if err != nil {
		return nil, nil, err
	}
	n, err := d.Build(a.reg, a.options()...)
	if err != nil {
		return d, nil, errors.Wrap(err, name)
	}
	return d, n, nil
}

func isFile(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi.Mode().IsRegular()
}
