package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/kailas-cloud/roadbook/internal/domain"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	sectionColor = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
)

func routeColor(r domain.Route) *color.Color {
	switch r {
	case domain.RouteGasStations:
		return color.New(color.FgYellow, color.Bold)
	case domain.RouteAmbiguous:
		return color.New(color.FgMagenta, color.Bold)
	}
	return headerColor
}

// newIngestBar renders ingest progress on stderr.
func newIngestBar(window int) *progressbar.ProgressBar {
	return progressbar.NewOptions(window,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("embedding"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("records"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func fprintln(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}
