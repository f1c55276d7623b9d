// Package cli parses the key=value command line into an immutable
// Options value.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the required layout for start and end values,
// interpreted in local time.
const TimeFormat = "2006-01-02T15:04:05"

// ErrHelp is returned when a help flag short-circuits parsing. The
// caller prints usage and exits with the help status, not an error.
var ErrHelp = errors.New("help requested")

// ErrLongHelp additionally asks for the full plottable-variable list.
var ErrLongHelp = fmt.Errorf("%w (long)", ErrHelp)

// ErrInvalidArguments marks rejected command-line input. The wrapped
// message names the offending keyword.
var ErrInvalidArguments = errors.New("invalid arguments")

// DefaultOutput is where the chart lands when output= is not given.
const DefaultOutput = "weewx_plot.png"

// Options is the validated result of parsing one command line.
type Options struct {
	InputPath string
	Start     time.Time
	End       time.Time
	PlotVars  []string // first-axis variables, in request order
	PlotVars2 []string // second-axis variables
	Verbose   bool
	Debug     bool
	// ViewRequestTime pins the chart x-range to [Start, End] even when
	// the data covers less.
	ViewRequestTime bool
	// GMTOffset shifts timestamps by a fraction of a day before
	// calendar-day grouping.
	GMTOffset float64
	Output    string
	// ServeAddr, when set, serves the rendered chart over HTTP.
	ServeAddr string
}

// Parse reads key=value tokens and bare flags in any order. Keys are
// case-sensitive; unknown keys and flags are rejected.
func Parse(args []string) (Options, error) {
	opts := Options{Output: DefaultOutput}
	if len(args) == 0 {
		return opts, fmt.Errorf("%w: no keywords present", ErrInvalidArguments)
	}

	var startRaw, endRaw string
	for _, tok := range args {
		key, val, isPair := strings.Cut(tok, "=")
		if !isPair {
			switch tok {
			case "-h", "--help", "-sh", "--short-help":
				return opts, ErrHelp
			case "-lh", "--long-help":
				return opts, ErrLongHelp
			case "-v", "--verbose":
				opts.Verbose = true
			case "-vrt", "--view_request_time":
				opts.ViewRequestTime = true
			default:
				return opts, fmt.Errorf("%w: unknown flag %q", ErrInvalidArguments, tok)
			}
			continue
		}

		switch key {
		case "inputfile":
			opts.InputPath = val
		case "start", "start_time", "archive_time1":
			startRaw = val
		case "end", "end_time", "archive_time2":
			endRaw = val
		case "plot_var":
			opts.PlotVars = splitVars(val)
		case "plot_var2":
			opts.PlotVars2 = splitVars(val)
		case "verbose", "debug":
			on, err := parseSwitch(key, val)
			if err != nil {
				return opts, err
			}
			if key == "debug" {
				opts.Debug = on
			} else {
				opts.Verbose = on
			}
		case "view_request_time":
			on, err := parseSwitch(key, val)
			if err != nil {
				return opts, err
			}
			opts.ViewRequestTime = on
		case "gmt_offset":
			off, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return opts, fmt.Errorf("%w: gmt_offset %q is not numeric", ErrInvalidArguments, val)
			}
			opts.GMTOffset = off
		case "output":
			opts.Output = val
		case "serve":
			opts.ServeAddr = val
		default:
			return opts, fmt.Errorf("%w: unknown keyword %q", ErrInvalidArguments, key)
		}
	}

	if opts.InputPath == "" {
		return opts, fmt.Errorf("%w: inputfile is required", ErrInvalidArguments)
	}
	var err error
	if opts.Start, err = parseTime("start", startRaw); err != nil {
		return opts, err
	}
	if opts.End, err = parseTime("end", endRaw); err != nil {
		return opts, err
	}
	if opts.End.Before(opts.Start) {
		return opts, fmt.Errorf("%w: start %s is after end %s", ErrInvalidArguments,
			opts.Start.Format(TimeFormat), opts.End.Format(TimeFormat))
	}
	if len(opts.PlotVars)+len(opts.PlotVars2) == 0 {
		return opts, fmt.Errorf("%w: no variables selected for plotting (plot_var, plot_var2)", ErrInvalidArguments)
	}
	return opts, nil
}

func parseSwitch(key, val string) (bool, error) {
	switch val {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be 0 or 1, got %q", ErrInvalidArguments, key, val)
}

func parseTime(key, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidArguments, key)
	}
	t, err := time.ParseInLocation(TimeFormat, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q does not match %s", ErrInvalidArguments, key, raw, TimeFormat)
	}
	return t, nil
}

// splitVars breaks a comma-separated variable list, stripping the
// quotes shells leave on tokens like plot_var="OutTemp","Dewpoint".
func splitVars(val string) []string {
	var vars []string
	for _, v := range strings.Split(val, ",") {
		v = strings.Trim(v, `"'`)
		if v != "" {
			vars = append(vars, v)
		}
	}
	return vars
}
