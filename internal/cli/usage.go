package cli

import (
	"fmt"
	"strings"
)

// Usage returns the short usage text.
func Usage() string {
	return `Usage: weewxplot inputfile=FILE start=TIME end=TIME plot_var=V1,V2,... [options]

Reads a weewx archive database, derives daily aggregates and plots the
requested variables to a PNG chart.

Required keywords:
  inputfile=FILE          weewx archive database (*.sdb)
  start=TIME              window start, format ` + TimeFormat + ` (local time)
                          synonyms: start_time, archive_time1
  end=TIME                window end, same format
                          synonyms: end_time, archive_time2

Optional keywords:
  plot_var=V1,V2,...      variables for the first y-axis
  plot_var2=V1,V2,...     variables for the second y-axis
  gmt_offset=F            fractional-day shift for day boundaries (default 0)
  view_request_time=0|1   pin the x-axis to the requested window
  verbose=0|1  debug=0|1  diagnostics
  output=FILE             chart path (default ` + DefaultOutput + `)
  serve=ADDR              serve the chart over HTTP, e.g. serve=:8080

Flags:
  -h, -sh, --help, --short-help   this message
  -lh, --long-help                this message plus every plottable variable
  -v, --verbose
  -vrt, --view_request_time

Example:
  weewxplot inputfile=weewx.sdb start=2017-07-02T19:00:00 end=2017-07-05T19:00:00 plot_var="OutTemp","Dewpoint" plot_var2="Rain4Day"
`
}

// LongUsage returns the short usage followed by the plottable-variable
// list, which the caller supplies already sorted.
func LongUsage(names []string) string {
	var b strings.Builder
	b.WriteString(Usage())
	b.WriteString("\nPlottable variables:\n")
	for i, name := range names {
		if i%4 == 0 {
			b.WriteString("\n  ")
		}
		fmt.Fprintf(&b, "%-20s", name)
	}
	b.WriteString("\n")
	return b.String()
}
