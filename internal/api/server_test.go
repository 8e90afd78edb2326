package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/printcore/thermoprint/internal/printer"
	"github.com/printcore/thermoprint/pkg/template"
)

func testServer(t *testing.T) (*Server, *printer.Manager) {
	t.Helper()

	log := zap.NewNop()
	manager, err := printer.NewManager(filepath.Join(t.TempDir(), "devices.json"), log)
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}
	pool := printer.NewPool()
	queue := printer.NewQueue(pool, manager, 1, log)
	t.Cleanup(queue.Stop)

	return NewServer(manager, pool, queue, []string{"*"}, log), manager
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

const sampleDoc = `{
	"width": "58mm",
	"elements": [
		{ "type": "init" },
		{ "type": "text_line", "text": "hello" },
		{ "type": "cut" }
	]
}`

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	w := doRequest(s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRender_ReturnsExactBytes(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, http.MethodPost, "/render", sampleDoc)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("content type = %q", ct)
	}

	want, err := template.Render([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("reference render failed: %v", err)
	}
	if !bytes.Equal(w.Body.Bytes(), want) {
		t.Error("HTTP render must match library render byte for byte")
	}
}

func TestRender_BadDocument(t *testing.T) {
	s, _ := testServer(t)

	cases := map[string]string{
		"invalid JSON":    `not json`,
		"unknown width":   `{ "width": "999mm", "elements": [] }`,
		"unknown element": `{ "elements": [{ "type": "hologram" }] }`,
		"bad decimal":     `{ "elements": [{ "type": "total", "amount": "abc" }] }`,
	}
	for name, body := range cases {
		if w := doRequest(s, http.MethodPost, "/render", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}

func TestPreview_ReturnsPNG(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, http.MethodPost, "/preview", sampleDoc)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body does not start with the PNG signature")
	}
}

func TestPrint_UnknownDevice(t *testing.T) {
	s, _ := testServer(t)

	body := `{ "device_id": "nope", "document": ` + sampleDoc + ` }`
	if w := doRequest(s, http.MethodPost, "/print", body); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPrint_QueuesJob(t *testing.T) {
	s, manager := testServer(t)
	id := manager.AddNetwork("127.0.0.1", 19100, "test printer")

	body := `{ "device_id": "` + id + `", "document": ` + sampleDoc + ` }`
	w := doRequest(s, http.MethodPost, "/print", body)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("missing job_id")
	}

	jw := doRequest(s, http.MethodGet, "/job/"+resp.JobID, "")
	if jw.Code != http.StatusOK {
		t.Errorf("job lookup status = %d", jw.Code)
	}
}

func TestJob_Unknown(t *testing.T) {
	s, _ := testServer(t)
	if w := doRequest(s, http.MethodGet, "/job/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPrinters_NetworkAddAndRename(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, http.MethodPost, "/printer/network", `{ "host": "10.0.0.5" }`)
	if w.Code != http.StatusOK {
		t.Fatalf("add status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		PrinterID string `json:"printer_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if w := doRequest(s, http.MethodPost, "/printer/"+resp.PrinterID+"/name", `{ "name": "Bar" }`); w.Code != http.StatusOK {
		t.Errorf("rename status = %d", w.Code)
	}
	if w := doRequest(s, http.MethodPost, "/printer/unknown/name", `{ "name": "x" }`); w.Code != http.StatusNotFound {
		t.Errorf("rename unknown status = %d, want 404", w.Code)
	}

	lw := doRequest(s, http.MethodGet, "/printers", "")
	if lw.Code != http.StatusOK {
		t.Fatalf("list status = %d", lw.Code)
	}
	if !strings.Contains(lw.Body.String(), resp.PrinterID) {
		t.Error("added printer missing from list")
	}
	if !strings.Contains(lw.Body.String(), "Bar") {
		t.Error("custom name missing from list")
	}
}
