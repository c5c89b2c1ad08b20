package core

import "errors"

var (
	// ErrDataLoad marks a dataset that cannot be served from. Fatal at
	// startup; the process must not accept traffic without data.
	ErrDataLoad = errors.New("dataset load failed")

	// ErrPlotRender marks a failed chart render. Callers degrade to a
	// text-only reply and log, never surface it to the user.
	ErrPlotRender = errors.New("plot render failed")
)
