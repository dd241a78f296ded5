package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger.
// APP_ENV=dev (or development) uses a human-friendly console writer.
// Extra sinks (the fluent forwarder, say) receive the JSON form of every event.
func NewLogger(env string, sinks ...io.Writer) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env == "dev" || env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if len(sinks) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{out}, sinks...)...)
	}
	return zerolog.New(out).With().Timestamp().Str("service", "goodhouse").Logger()
}
