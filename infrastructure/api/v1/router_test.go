package v1_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/helixml/docnav"
	"github.com/helixml/docnav/infrastructure/api/jsonapi"
)

const testDocs = "../../pages/testdata/docs"

func newTestClient(t *testing.T, opts ...docnav.Option) *docnav.Client {
	t.Helper()
	all := append([]docnav.Option{
		docnav.WithDataDir(t.TempDir()),
		docnav.WithInMemory(),
		docnav.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	client, err := docnav.New(all...)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, r))
	return w
}

// resourceList decodes a JSON:API list whose attributes are of type A.
type resourceList[A any] struct {
	Data []struct {
		Type       string `json:"type"`
		ID         string `json:"id"`
		Attributes A      `json:"attributes"`
	} `json:"data"`
	Meta  map[string]any `json:"meta"`
	Links jsonapi.Links  `json:"links"`
}

type resource[A any] struct {
	Data struct {
		Type       string `json:"type"`
		ID         string `json:"id"`
		Attributes A      `json:"attributes"`
	} `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func errorStatus(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var doc jsonapi.Document
	decode(t, w, &doc)
	if len(doc.Errors) != 1 {
		t.Fatalf("errors = %d, want 1: %s", len(doc.Errors), w.Body.String())
	}
	return doc.Errors[0].Status
}
