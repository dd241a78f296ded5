package observability

import (
	"encoding/json"
	"fmt"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentWriter forwards zerolog JSON events to a Fluent Bit / fluentd
// forward input. The event level becomes the tag suffix.
type FluentWriter struct {
	client *fluent.Fluent
}

func NewFluentWriter(host string, port int, tagPrefix string) (*FluentWriter, error) {
	client, err := fluent.New(fluent.Config{
		FluentHost: host,
		FluentPort: port,
		TagPrefix:  tagPrefix,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect fluent %s:%d: %w", host, port, err)
	}
	return &FluentWriter{client: client}, nil
}

// Write never fails the log call; undecodable lines are forwarded raw.
func (w *FluentWriter) Write(p []byte) (int, error) {
	var rec map[string]any
	if err := json.Unmarshal(p, &rec); err != nil {
		rec = map[string]any{"message": string(p)}
	}
	level, _ := rec["level"].(string)
	if level == "" {
		level = "info"
	}
	_ = w.client.Post(level, rec)
	return len(p), nil
}

func (w *FluentWriter) Close() error {
	return w.client.Close()
}
