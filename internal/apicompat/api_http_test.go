package apicompat

import (
	"net/http"
	"strings"
	"testing"
)

func TestAPIIndex(t *testing.T) {
	client := newAPIClient(t)
	resp, body := client.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("GET / content-type = %q", resp.Header.Get("Content-Type"))
	}
	html := string(body)
	mustContain := []string{
		"<title>Smart Checkout</title>",
		"/video_feed",
		"/api/detection/start",
		"/api/detection/stop",
		"/api/dashboard/stream",
	}
	for _, needle := range mustContain {
		if !strings.Contains(html, needle) {
			t.Fatalf("GET / missing %q", needle)
		}
	}
}

func TestAPIStatus(t *testing.T) {
	client := newAPIClient(t)
	resp, body := client.get(t, "/api/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/status status = %d", resp.StatusCode)
	}
	payload := decodeJSONMap(t, body)

	session := requireMap(t, payload["session"], "session")
	if _, ok := session["active"].(bool); !ok {
		t.Fatalf("expected session.active to be bool, got %T", session["active"])
	}
	requireNumber(t, session["products_tracked"], "session.products_tracked")

	pipeline := requireMap(t, payload["pipeline"], "pipeline")
	for _, field := range []string{"frames_annotated", "frames_dropped", "frames_encoded", "buffer_depth", "stream_clients", "dashboard_clients", "broadcasts_sent"} {
		requireNumber(t, pipeline[field], "pipeline."+field)
	}
	requireNumber(t, payload["timestamp"], "timestamp")
}
