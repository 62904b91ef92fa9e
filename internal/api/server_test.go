package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"inputhook/internal/event"
	"inputhook/internal/hook"
	"inputhook/internal/hookerr"
	"inputhook/internal/screen"
	"inputhook/internal/settings"
)

type recordingInjector struct {
	mu     sync.Mutex
	events []event.InputEvent
	err    error
}

func (r *recordingInjector) Post(ev event.InputEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingInjector) posted() []event.InputEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.InputEvent(nil), r.events...)
}

type fakeCapture struct {
	mu    sync.Mutex
	state hook.State
	err   error
}

func (c *fakeCapture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.state != hook.Idle {
		return hookerr.ErrAlreadyRunning
	}
	c.state = hook.Running
	return nil
}

func (c *fakeCapture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = hook.Idle
	return nil
}

func (c *fakeCapture) State() hook.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *recordingInjector) {
	t.Helper()
	inj := &recordingInjector{}
	if opts.Injector == nil {
		opts.Injector = inj
	}
	if opts.Screens == nil {
		opts.Screens = func() ([]screen.ScreenInfo, error) {
			return []screen.ScreenInfo{{Index: 0, Width: 1920, Height: 1080}}, nil
		}
	}
	if opts.Settings == nil {
		opts.Settings = func() (settings.Snapshot, map[string]error) {
			v := int64(500)
			return settings.Snapshot{MultiClickTime: &v}, map[string]error{
				"auto_repeat_rate": hookerr.ErrPlatformQueryFailed,
			}
		}
	}
	srv := httptest.NewServer(NewServer(opts).Handler())
	t.Cleanup(srv.Close)
	return srv, inj
}

func do(t *testing.T, method, url, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func TestAuthRequiredExceptHealth(t *testing.T) {
	srv, _ := newTestServer(t, Options{Token: "secret"})

	if resp, _ := do(t, http.MethodGet, srv.URL+"/health", "", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("Expected /health without token to be 200, got %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/status", "", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/status", "wrong", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong token, got %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/status", "secret", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 with token, got %d", resp.StatusCode)
	}
}

func TestStatusReportsCaptureAndStream(t *testing.T) {
	stream := NewStream("json", 1, nil)
	stream.Publish(event.NewHookEnabled(1, 0))
	stream.Publish(event.NewHookEnabled(2, 0))

	srv, _ := newTestServer(t, Options{Capture: &fakeCapture{state: hook.Running}, Stream: stream})
	resp, body := do(t, http.MethodGet, srv.URL+"/api/status", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if body["state"] != "running" {
		t.Errorf("Expected state running, got %v", body["state"])
	}
	if body["dropped"] != float64(1) {
		t.Errorf("Expected 1 dropped, got %v", body["dropped"])
	}
	if body["subscribed"] != false {
		t.Errorf("Expected no subscriber, got %v", body["subscribed"])
	}
}

func TestCaptureControl(t *testing.T) {
	capture := &fakeCapture{}
	srv, _ := newTestServer(t, Options{Capture: capture})

	resp, body := do(t, http.MethodPost, srv.URL+"/api/capture?action=start", "", "")
	if resp.StatusCode != http.StatusOK || body["state"] != "running" {
		t.Fatalf("Expected start to succeed, got %d %v", resp.StatusCode, body)
	}
	resp, body = do(t, http.MethodPost, srv.URL+"/api/capture?action=start", "", "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 on second start, got %d", resp.StatusCode)
	}
	if body["code"] != float64(hookerr.Failure) {
		t.Errorf("Expected failure code, got %v", body["code"])
	}
	resp, body = do(t, http.MethodPost, srv.URL+"/api/capture?action=stop", "", "")
	if resp.StatusCode != http.StatusOK || body["state"] != "idle" {
		t.Errorf("Expected stop to succeed, got %d %v", resp.StatusCode, body)
	}
	if resp, _ := do(t, http.MethodPost, srv.URL+"/api/capture?action=pause", "", ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown action, got %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/capture?action=start", "", ""); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET, got %d", resp.StatusCode)
	}

	capture.mu.Lock()
	capture.err = hookerr.New(hookerr.XOpenDisplay, "open display", errors.New("no DISPLAY"))
	capture.mu.Unlock()
	resp, body = do(t, http.MethodPost, srv.URL+"/api/capture?action=start", "", "")
	if resp.StatusCode != http.StatusInternalServerError || body["code"] != float64(hookerr.XOpenDisplay) {
		t.Errorf("Expected 500 with X open display code, got %d %v", resp.StatusCode, body)
	}
}

func TestScreens(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, err := http.Get(srv.URL + "/api/screens")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var screens []screen.ScreenInfo
	if err := json.NewDecoder(resp.Body).Decode(&screens); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(screens) != 1 || screens[0].Width != 1920 {
		t.Errorf("Unexpected screens %+v", screens)
	}

	failing, _ := newTestServer(t, Options{Screens: func() ([]screen.ScreenInfo, error) {
		return nil, hookerr.ErrPlatformQueryFailed
	}})
	if resp, _ := do(t, http.MethodGet, failing.URL+"/api/screens", "", ""); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", resp.StatusCode)
	}
}

func TestSettings(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	resp, body := do(t, http.MethodGet, srv.URL+"/api/settings", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	values, _ := body["settings"].(map[string]any)
	if values["multi_click_time"] != float64(500) {
		t.Errorf("Expected multi_click_time 500, got %v", values["multi_click_time"])
	}
	if values["auto_repeat_rate"] != nil {
		t.Errorf("Expected null auto_repeat_rate, got %v", values["auto_repeat_rate"])
	}
	errs, _ := body["errors"].(map[string]any)
	if _, ok := errs["auto_repeat_rate"]; !ok {
		t.Errorf("Expected auto_repeat_rate error, got %v", errs)
	}
}

func TestPostInjectsEvent(t *testing.T) {
	srv, inj := newTestServer(t, Options{})
	body := `{"kind":"mouse_pressed","time":0,"mask":0,"mouse":{"button":1,"clicks":1,"x":10,"y":20}}`
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/post", "", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	want := event.NewMousePressed(0, 0, event.Mouse{Button: event.Button1, Clicks: 1, X: 10, Y: 20})
	posted := inj.posted()
	if len(posted) != 1 || posted[0] != want {
		t.Errorf("Expected %s to be posted, got %v", want, posted)
	}
}

func TestPostRejects(t *testing.T) {
	srv, inj := newTestServer(t, Options{})
	cases := []struct {
		name string
		body string
	}{
		{"hook event", `{"kind":"hook_enabled","time":0,"mask":0}`},
		{"mismatched payload", `{"kind":"key_pressed","time":0,"mask":0,"wheel":{}}`},
		{"missing kind", `{}`},
		{"not json", `click`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, _ := do(t, http.MethodPost, srv.URL+"/api/post", "", c.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", resp.StatusCode)
			}
		})
	}
	if len(inj.posted()) != 0 {
		t.Errorf("Expected nothing posted, got %v", inj.posted())
	}

	unsupported, _ := newTestServer(t, Options{Injector: &recordingInjector{err: hookerr.ErrUnsupportedPlatform}})
	resp, _ := do(t, http.MethodPost, unsupported.URL+"/api/post", "", `{"kind":"mouse_moved","time":0,"mask":0,"mouse":{"x":1,"y":1}}`)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("Expected 501, got %d", resp.StatusCode)
	}
}
