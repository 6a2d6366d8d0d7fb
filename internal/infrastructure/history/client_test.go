package history

import (
	"context"
	"errors"
	"testing"

	"github.com/openhaus/smarthome-core/internal/infrastructure/config"
)

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.HistoryConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestSink_DisconnectedIsNoop(t *testing.T) {
	// A zero-value sink must swallow writes rather than panic; the manager
	// calls these unconditionally when history wiring is present.
	s := &Sink{}

	s.WriteState("d1", "light", map[string]any{"on": true})
	s.WriteStatus("d1", "light", true, nil, nil)
	s.Flush()

	if err := s.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
