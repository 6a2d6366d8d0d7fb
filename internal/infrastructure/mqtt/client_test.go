package mqtt

import (
	"errors"
	"strings"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/openhaus/smarthome-core/internal/infrastructure/config"
)

func testMQTTConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:      "localhost",
			Port:      1883,
			ClientID:  "smarthome-test",
			KeepAlive: 30,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}

// newDisconnectedClient builds a client that has never connected,
// for exercising validation paths without a broker.
func newDisconnectedClient() *Client {
	opts := buildClientOptions(testMQTTConfig())
	return &Client{
		client:        pahomqtt.NewClient(opts),
		options:       opts,
		subscriptions: make(map[string]subscription),
	}
}

func TestBuildClientOptions(t *testing.T) {
	t.Run("plain tcp broker", func(t *testing.T) {
		opts := buildClientOptions(testMQTTConfig())

		if len(opts.Servers) != 1 {
			t.Fatalf("Servers = %d, want 1", len(opts.Servers))
		}
		if got := opts.Servers[0].String(); got != "tcp://localhost:1883" {
			t.Errorf("broker URL = %q, want tcp://localhost:1883", got)
		}
		if opts.ClientID != "smarthome-test" {
			t.Errorf("ClientID = %q, want smarthome-test", opts.ClientID)
		}
		if opts.KeepAlive != int64(30) {
			t.Errorf("KeepAlive = %d, want 30", opts.KeepAlive)
		}
	})

	t.Run("tls broker uses ssl scheme", func(t *testing.T) {
		cfg := testMQTTConfig()
		cfg.Broker.TLS = true
		opts := buildClientOptions(cfg)

		if got := opts.Servers[0].Scheme; got != "ssl" {
			t.Errorf("scheme = %q, want ssl", got)
		}
		if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tlsMinVersion {
			t.Error("TLS config missing or minimum version too low")
		}
	})

	t.Run("empty client ID gets generated suffix", func(t *testing.T) {
		cfg := testMQTTConfig()
		cfg.Broker.ClientID = ""
		opts := buildClientOptions(cfg)

		if !strings.HasPrefix(opts.ClientID, "smarthome-core-") {
			t.Errorf("ClientID = %q, want generated smarthome-core-* ID", opts.ClientID)
		}
	})

	t.Run("zero keepalive falls back to default", func(t *testing.T) {
		cfg := testMQTTConfig()
		cfg.Broker.KeepAlive = 0
		opts := buildClientOptions(cfg)

		if opts.KeepAlive != int64(defaultKeepAlive/time.Second) {
			t.Errorf("KeepAlive = %d, want default %d", opts.KeepAlive, int64(defaultKeepAlive/time.Second))
		}
	})
}

func TestPublish_Validation(t *testing.T) {
	c := newDisconnectedClient()

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("{}"), 1, ErrInvalidTopic},
		{"invalid qos", "smarthome/devices/d1/command", []byte("{}"), 3, ErrInvalidQoS},
		{"oversized payload", "smarthome/devices/d1/command", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "smarthome/devices/d1/command", []byte("{}"), 1, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscribe_Validation(t *testing.T) {
	c := newDisconnectedClient()
	handler := func(string, []byte) error { return nil }

	t.Run("empty topic", func(t *testing.T) {
		if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("Subscribe() error = %v, want ErrInvalidTopic", err)
		}
	})

	t.Run("nil handler", func(t *testing.T) {
		if err := c.Subscribe("smarthome/discovery/#", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
			t.Errorf("Subscribe() error = %v, want ErrSubscribeFailed", err)
		}
	})

	t.Run("not connected", func(t *testing.T) {
		if err := c.Subscribe("smarthome/discovery/#", 1, handler); !errors.Is(err, ErrNotConnected) {
			t.Errorf("Subscribe() error = %v, want ErrNotConnected", err)
		}
		if c.HasSubscription("smarthome/discovery/#") {
			t.Error("failed subscribe must not be tracked")
		}
	})
}

func TestSubscriptionTracking(t *testing.T) {
	c := newDisconnectedClient()

	if c.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", c.SubscriptionCount())
	}
	if c.HasSubscription("smarthome/discovery/#") {
		t.Error("HasSubscription() = true for untracked topic")
	}
}

func TestClose_NeverConnected(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
