package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openhaus/smarthome-core/internal/automation"
	"github.com/openhaus/smarthome-core/internal/infrastructure/config"
	"github.com/openhaus/smarthome-core/internal/infrastructure/logging"
	"github.com/openhaus/smarthome-core/internal/manager"
)

// stubTransport satisfies manager.Transport without a broker.
type stubTransport struct {
	published  []string
	publishErr error
}

func (t *stubTransport) Publish(topic string, _ []byte) error {
	if t.publishErr != nil {
		return t.publishErr
	}
	t.published = append(t.published, topic)
	return nil
}

func (t *stubTransport) Subscribe(string, func(string, []byte) error) error {
	return nil
}

func newTestServer(t *testing.T) (*Server, *manager.Manager, *stubTransport) {
	t.Helper()

	transport := &stubTransport{}
	m := manager.New(transport)

	s, err := New(Deps{
		Config:   config.APIConfig{Host: "127.0.0.1", Port: 0},
		WS:       config.WebSocketConfig{MaxMessageSize: 8192, PingInterval: 30, PongTimeout: 10},
		Logger:   logging.Default(),
		Manager:  m,
		Routines: automation.NewRoutines(m),
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, m, transport
}

func seedDevice(t *testing.T, m *manager.Manager, id, deviceType string) {
	t.Helper()
	payload := `{"device_id":"` + id + `","type":"` + deviceType + `","name":"Test ` + id + `"}`
	if err := m.HandleMessage("smarthome/discovery/announce", []byte(payload)); err != nil {
		t.Fatalf("seeding device: %v", err)
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.buildRouter().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Deps{Logger: logging.Default()}); err == nil {
		t.Error("expected error when manager is missing")
	}
	if _, err := New(Deps{Manager: manager.New(&stubTransport{})}); err == nil {
		t.Error("expected error when logger is missing")
	}
}

func TestHandleHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestDeviceEndpoints(t *testing.T) {
	t.Run("list empty registry", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		rec := doRequest(t, s, http.MethodGet, "/api/v1/devices", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["count"] != 0.0 {
			t.Errorf("count = %v, want 0", body["count"])
		}
	})

	t.Run("list with type filter", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		seedDevice(t, m, "light-1", "light")
		seedDevice(t, m, "lock-1", "lock")

		rec := doRequest(t, s, http.MethodGet, "/api/v1/devices?type=light", "")
		if body := decodeBody(t, rec); body["count"] != 1.0 {
			t.Errorf("count = %v, want 1", body["count"])
		}
	})

	t.Run("get device", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		seedDevice(t, m, "light-1", "light")

		rec := doRequest(t, s, http.MethodGet, "/api/v1/devices/light-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["id"] != "light-1" {
			t.Errorf("id = %v", body["id"])
		}
	})

	t.Run("get unknown device", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		rec := doRequest(t, s, http.MethodGet, "/api/v1/devices/ghost", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("stats", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		seedDevice(t, m, "light-1", "light")

		rec := doRequest(t, s, http.MethodGet, "/api/v1/devices/stats", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["total_devices"] != 1.0 {
			t.Errorf("total_devices = %v", body["total_devices"])
		}
	})
}

func TestHandleDeviceCommand(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		s, m, transport := newTestServer(t)
		seedDevice(t, m, "light-1", "light")

		rec := doRequest(t, s, http.MethodPost, "/api/v1/devices/light-1/command",
			`{"command":"turn_on"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want 202 (%s)", rec.Code, rec.Body.String())
		}
		if len(transport.published) != 1 || transport.published[0] != "smarthome/devices/light-1/command" {
			t.Errorf("published = %v", transport.published)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		s, _, transport := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/devices/ghost/command",
			`{"command":"turn_on"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if len(transport.published) != 0 {
			t.Error("nothing must be published for an unknown device")
		}
	})

	t.Run("missing command", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		seedDevice(t, m, "light-1", "light")
		rec := doRequest(t, s, http.MethodPost, "/api/v1/devices/light-1/command", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		s, m, _ := newTestServer(t)
		seedDevice(t, m, "light-1", "light")
		rec := doRequest(t, s, http.MethodPost, "/api/v1/devices/light-1/command", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("publish failure is a gateway error", func(t *testing.T) {
		s, m, transport := newTestServer(t)
		seedDevice(t, m, "light-1", "light")
		transport.publishErr = errors.New("broker gone")

		rec := doRequest(t, s, http.MethodPost, "/api/v1/devices/light-1/command",
			`{"command":"turn_on"}`)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})
}

func TestSceneEndpoints(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		s, _, transport := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/scenes",
			`{"name":"movie_night","devices":{"light-1":{"power":"on"}}}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d", rec.Code)
		}
		if transport.published[len(transport.published)-1] != "smarthome/scenes/create" {
			t.Errorf("published = %v", transport.published)
		}
	})

	t.Run("create requires name", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/scenes", `{"devices":{}}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("activate", func(t *testing.T) {
		s, _, transport := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/scenes/activate",
			`{"name":"movie_night"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d", rec.Code)
		}
		if transport.published[len(transport.published)-1] != "smarthome/scenes/activate" {
			t.Errorf("published = %v", transport.published)
		}
	})
}

func TestAutomationEndpoints(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		s, _, transport := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/automations",
			`{"name":"motion_light","trigger":{"type":"state"},"actions":[{"command":"turn_on"}]}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
		}
		if transport.published[len(transport.published)-1] != "smarthome/automations/create" {
			t.Errorf("published = %v", transport.published)
		}
	})

	t.Run("trigger required", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/automations", `{"name":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestRoutineEndpoint(t *testing.T) {
	t.Run("runs good night sweep", func(t *testing.T) {
		s, m, transport := newTestServer(t)
		seedDevice(t, m, "light-1", "light")
		seedDevice(t, m, "lock-1", "lock")

		rec := doRequest(t, s, http.MethodPost, "/api/v1/routines/good_night", "")
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d", rec.Code)
		}
		var commands int
		for _, topic := range transport.published {
			if strings.HasSuffix(topic, "/command") {
				commands++
			}
		}
		if commands != 2 {
			t.Errorf("command publishes = %d, want 2 (light off + lock)", commands)
		}
	})

	t.Run("unknown routine", func(t *testing.T) {
		s, _, _ := newTestServer(t)
		rec := doRequest(t, s, http.MethodPost, "/api/v1/routines/party_mode", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestEnergyQueryEndpoint(t *testing.T) {
	s, _, transport := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/energy/query", `{"device_id":"meter-1"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	if transport.published[len(transport.published)-1] != "smarthome/energy/query" {
		t.Errorf("published = %v", transport.published)
	}
}
