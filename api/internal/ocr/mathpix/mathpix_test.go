package mathpix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"classroom-diag/api/internal/types"
)

func TestRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/text" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("app_id") != "id-1" || r.Header.Get("app_key") != "key-1" {
			t.Errorf("missing mathpix credentials")
		}
		var body request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if !strings.HasPrefix(body.Src, "data:image/jpeg;base64,") {
			t.Errorf("unexpected src %q", body.Src)
		}
		if len(body.Formats) != 3 || !body.DataOptions.IncludeLatex {
			t.Errorf("unexpected options %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"request_id":"r1","text":" 3 * 5 = 15 ","latex_styled":"3 \\times 5 = 15",
			"confidence":0.97,"is_handwritten":true,"data":[{"type":"latex","value":"3 \\times 5 = 15"}]}`))
	}))
	defer srv.Close()

	e := New("id-1", "key-1", srv.URL).WithHTTPClient(srv.Client())
	res, err := e.Recognize(context.Background(), types.Image{Data: []byte{1, 2, 3}, MIME: "image/jpeg"})
	if err != nil {
		t.Fatalf("recognize error: %v", err)
	}
	if res.Text != "3 * 5 = 15" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if res.RequestID != "r1" || !res.IsHandwritten || len(res.Data) != 1 || res.Engine != "mathpix" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRecognizeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Cannot read image","error_info":{"id":"image_no_content","message":"Cannot read image"}}`))
	}))
	defer srv.Close()

	e := New("id", "key", srv.URL).WithHTTPClient(srv.Client())
	_, err := e.Recognize(context.Background(), types.Image{Data: []byte{1}})
	if err == nil || !strings.Contains(err.Error(), "image_no_content") {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestRecognizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	e := New("id", "key", srv.URL).WithHTTPClient(srv.Client())
	_, err := e.Recognize(context.Background(), types.Image{Data: []byte{1}})
	if err == nil || !strings.Contains(err.Error(), "mathpix 401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestRecognizeMissingKeys(t *testing.T) {
	if _, err := New("", "", "").Recognize(context.Background(), types.Image{}); err == nil {
		t.Fatalf("expected error without credentials")
	}
}
