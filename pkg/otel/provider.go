package otel

import (
	"os"
)

const instrumentationName = "github.com/adrianliechti/narrator"

var (
	EnableDebug     = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
)

type Observable interface {
	otelSetup()
}
