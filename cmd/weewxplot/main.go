package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askow/weewxplot/internal/api"
	"github.com/askow/weewxplot/internal/cli"
	"github.com/askow/weewxplot/internal/derive"
	"github.com/askow/weewxplot/internal/render"
	"github.com/askow/weewxplot/internal/resolve"
	"github.com/askow/weewxplot/internal/store"
)

// Exit statuses: help is distinct from both success and failure.
const (
	exitOK    = 0
	exitError = 1
	exitHelp  = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	started := time.Now()

	opts, err := cli.Parse(args)
	if errors.Is(err, cli.ErrHelp) {
		if errors.Is(err, cli.ErrLongHelp) {
			fmt.Print(cli.LongUsage(resolve.Names()))
		} else {
			fmt.Print(cli.Usage())
		}
		return exitHelp
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n\n", err)
		fmt.Fprint(os.Stderr, cli.Usage())
		return exitError
	}

	startEpoch := opts.Start.Unix()
	endEpoch := opts.End.Unix()
	if opts.Verbose {
		log.Printf("epoch_time1: %d  epoch_time2: %d", startEpoch, endEpoch)
	}

	loadStart := time.Now()
	res, err := store.Load(opts.InputPath, startEpoch, endEpoch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitError
	}
	if opts.Verbose {
		log.Printf("loaded %d observations (%d columns) in %s", len(res.Observations), len(res.Columns), time.Since(loadStart).Round(time.Microsecond))
	}
	if opts.Verbose {
		log.Printf("columns: %v", res.Columns)
	}
	if len(res.Observations) == 0 && !opts.ViewRequestTime {
		log.Printf("WARNING: no observations between %s and %s",
			opts.Start.Format(cli.TimeFormat), opts.End.Format(cli.TimeFormat))
	}

	deriveStart := time.Now()
	full := derive.FullSeries(res.Observations)
	days := derive.DailyAggregates(res.Observations, opts.GMTOffset)
	if opts.Verbose {
		log.Printf("derived full-frequency series and %d daily aggregates in %s", len(days), time.Since(deriveStart).Round(time.Microsecond))
	}

	primary, err := resolveAll(opts.PlotVars, "plot_var", res, full, days, opts.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitError
	}
	secondary, err := resolveAll(opts.PlotVars2, "plot_var2", res, full, days, opts.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitError
	}

	var buf bytes.Buffer
	window := render.Bounds{Start: opts.Start, End: opts.End}
	if err := render.Render(render.DefaultConfig(), primary, secondary, window, opts.ViewRequestTime, &buf); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: render chart: %v\n", err)
		return exitError
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: write %s: %v\n", opts.Output, err)
		return exitError
	}
	log.Printf("chart written to %s", opts.Output)
	if opts.Verbose {
		log.Printf("total time %s", time.Since(started).Round(time.Microsecond))
	}

	if opts.ServeAddr != "" {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		log.Printf("serving chart on %s", opts.ServeAddr)
		if err := api.NewServer(opts.ServeAddr, buf.Bytes()).Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: serve: %v\n", err)
			return exitError
		}
	}
	return exitOK
}

func resolveAll(names []string, keyword string, res *store.Result, full derive.Full, days []derive.Day, debug bool) ([]render.Series, error) {
	var out []render.Series
	for _, name := range names {
		b, err := resolve.Resolve(name, keyword)
		if err != nil {
			return nil, err
		}
		if debug {
			log.Printf("resolved %s: kind=%s field=%d unit=%s daily=%v", b.Name, b.Kind, b.Field, b.Unit, b.Daily())
		}
		x, y := resolve.Series(b, res.Observations, full, days)
		out = append(out, render.Series{
			Name: b.Name,
			Unit: b.Unit,
			X:    x,
			Y:    y,
			Bars: b.Kind == resolve.KindDailyRain,
		})
	}
	return out, nil
}
