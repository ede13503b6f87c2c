package defaults

import (
	"os"

	"go.opentelemetry.io/otel/trace/noop"
)

var (
	Output         = os.Stdout
	TracerProvider = noop.NewTracerProvider()
)
