package handler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nhdewitt/orders-server/internal/config"
	"github.com/nhdewitt/orders-server/internal/orders"
	"github.com/nhdewitt/orders-server/internal/request"
	"github.com/nhdewitt/orders-server/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	indexHTML    = "<h1>index</h1>"
	healthHTML   = "<h1>healthy</h1>"
	notFoundHTML = "<h1>not found</h1>"
	ordersJSON   = `[{"order_id":1,"order_date":"2023-01-01","status":"shipped"}]`
)

type fixture struct {
	cfg config.Config
	set *Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		PublicPath: filepath.Join(root, "public"),
		DataPath:   filepath.Join(root, "data"),
	}
	require.NoError(t, os.MkdirAll(cfg.PublicPath, 0o755))
	require.NoError(t, os.MkdirAll(cfg.DataPath, 0o755))

	f := &fixture{cfg: cfg, set: NewSet(cfg)}
	f.public(t, "index.html", indexHTML)
	f.public(t, "health.html", healthHTML)
	f.public(t, "404.html", notFoundHTML)
	f.data(t, ordersJSON)
	return f
}

func (f *fixture) public(t *testing.T, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.PublicPath, name), []byte(contents), 0o644))
}

func (f *fixture) data(t *testing.T, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.DataPath, orders.FileName), []byte(contents), 0o644))
}

func get(path string) *request.Request {
	return request.New("GET", path)
}

func TestNotFoundHandler(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/", "/anything", "/api/shipping/orders"} {
		resp := f.set.NotFound.Handle(get(path))
		assert.Equal(t, response.StatusNotFound, resp.Status)
		assert.Nil(t, resp.Headers)
		require.NotNil(t, resp.Body)
		assert.Equal(t, notFoundHTML, *resp.Body)
	}

	// Without a 404 page there is no body at all.
	require.NoError(t, os.Remove(filepath.Join(f.cfg.PublicPath, "404.html")))
	resp := f.set.NotFound.Handle(get("/"))
	assert.Equal(t, response.StatusNotFound, resp.Status)
	assert.Nil(t, resp.Body)
}

func TestStaticPageHandler(t *testing.T) {
	f := newFixture(t)
	f.public(t, "style.css", "body { margin: 0 } /* style.css")
	f.public(t, "app.js", "console.log('hi') // app.js")
	f.public(t, "about.html", "<p>about</p>")
	f.public(t, "notes", "loosely ends in js")

	cases := []struct {
		path        string
		wantStatus  response.StatusCode
		wantType    string
		wantBody    string
		wantHeaders bool
	}{
		{"/", response.StatusOK, "", indexHTML, false},
		{"/health", response.StatusOK, "", healthHTML, false},
		{"/style.css", response.StatusOK, "text/css", "body { margin: 0 } /* style.css", true},
		{"/app.js", response.StatusOK, "text/javascript", "console.log('hi') // app.js", true},
		{"/about.html", response.StatusOK, "text/html", "<p>about</p>", true},
		{"/notes", response.StatusOK, "text/javascript", "loosely ends in js", true},
		{"/missing.css", response.StatusNotFound, "", notFoundHTML, false},
		// Only the first segment counts.
		{"/health/deeper/still", response.StatusOK, "", healthHTML, false},
		{"/about.html/extra", response.StatusOK, "text/html", "<p>about</p>", true},
		{"/..", response.StatusNotFound, "", notFoundHTML, false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			resp := f.set.Static.Handle(get(c.path))
			assert.Equal(t, c.wantStatus, resp.Status)
			assert.Equal(t, c.wantBody, resp.BodyString())
			if !c.wantHeaders {
				assert.Nil(t, resp.Headers)
				return
			}
			assert.Len(t, resp.Headers, 1)
			assert.Equal(t, c.wantType, resp.Header("Content-Type"))
		})
	}
}

func TestStaticPageHandlerMissingIndex(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.cfg.PublicPath, "index.html")))

	resp := f.set.Static.Handle(get("/"))
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Nil(t, resp.Body)
}

func TestStaticPageHandlerShortPath(t *testing.T) {
	f := newFixture(t)
	resp := f.set.Static.Handle(get("*"))
	assert.Equal(t, response.StatusNotFound, resp.Status)
}

func TestWebServiceOrders(t *testing.T) {
	f := newFixture(t)

	resp := f.set.WebService.Handle(get("/api/shipping/orders"))
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Equal(t, "application/json", resp.Header("Content-Type"))
	assert.Len(t, resp.Headers, 1)
	assert.Equal(t, ordersJSON, resp.BodyString())
}

func TestWebServiceOrdersRoundTrip(t *testing.T) {
	f := newFixture(t)
	want := []orders.OrderStatus{
		{OrderID: 7, OrderDate: "2024-05-01", Status: "pending"},
		{OrderID: 8, OrderDate: "2024-05-02", Status: "delivered"},
		{OrderID: 9, OrderDate: "2024-05-03", Status: "cancelled"},
	}
	doc, err := json.MarshalIndent(want, "", "  ")
	require.NoError(t, err)
	f.data(t, string(doc))

	resp := f.set.WebService.Handle(get("/api/shipping/orders"))
	require.Equal(t, response.StatusOK, resp.Status)

	var got []orders.OrderStatus
	require.NoError(t, json.Unmarshal([]byte(resp.BodyString()), &got))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}
}

func TestWebServiceNotFound(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{
		"/api/shipping",
		"/api/shipping/",
		"/api/shipping/returns",
		"/api/billing/orders",
		"/api/",
		"/api",
		"/",
	} {
		t.Run(path, func(t *testing.T) {
			resp := f.set.WebService.Handle(get(path))
			assert.Equal(t, response.StatusNotFound, resp.Status)
			assert.Nil(t, resp.Headers)
			assert.Equal(t, notFoundHTML, resp.BodyString())
		})
	}
}

func TestWebServiceBadOrders(t *testing.T) {
	f := newFixture(t)
	f.public(t, "500.html", "<h1>oops</h1>")

	f.data(t, "{not json")
	resp := f.set.WebService.Handle(get("/api/shipping/orders"))
	assert.Equal(t, response.StatusInternalServerError, resp.Status)
	assert.Nil(t, resp.Headers)
	assert.Equal(t, "<h1>oops</h1>", resp.BodyString())

	for _, doc := range []string{
		`[{"order_id":1}]`,
		`[{"ORDER_ID":5,"Order_Date":"x","STATUS":"y"}]`,
		`[{"order_id":1,"order_date":null,"status":"shipped"}]`,
		`[{"order_id":3000000000,"order_date":"2023-01-01","status":"shipped"}]`,
	} {
		f.data(t, doc)
		resp = f.set.WebService.Handle(get("/api/shipping/orders"))
		assert.Equal(t, response.StatusInternalServerError, resp.Status, doc)
	}

	require.NoError(t, os.Remove(filepath.Join(f.cfg.DataPath, orders.FileName)))
	resp = f.set.WebService.Handle(get("/api/shipping/orders"))
	assert.Equal(t, response.StatusInternalServerError, resp.Status)
}

func TestOrdersAreReadEveryRequest(t *testing.T) {
	f := newFixture(t)
	first := f.set.WebService.Handle(get("/api/shipping/orders"))

	f.data(t, `[]`)
	second := f.set.WebService.Handle(get("/api/shipping/orders"))

	assert.Equal(t, ordersJSON, first.BodyString())
	assert.Equal(t, "[]", second.BodyString())
}

func TestIdempotent(t *testing.T) {
	f := newFixture(t)
	f.public(t, "style.css", "a{} .css")

	for _, path := range []string{"/", "/health", "/style.css", "/nope", "/api/shipping/orders", "/api/x"} {
		first, _ := f.set.Handle(get(path))
		second, _ := f.set.Handle(get(path))
		assert.Equal(t, first, second, "path %s", path)
	}
}

func TestRoute(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		method, path, want string
	}{
		{"GET", "/", "static"},
		{"GET", "/health", "static"},
		{"GET", "/style.css", "static"},
		{"GET", "/api/shipping/orders", "web_service"},
		{"GET", "/api", "web_service"},
		{"GET", "/apis", "static"},
		{"POST", "/", "not_found"},
		{"DELETE", "/api/shipping/orders", "not_found"},
	}
	for _, c := range cases {
		h := f.set.Route(request.New(c.method, c.path))
		assert.Equal(t, c.want, h.Name(), "%s %s", c.method, c.path)
	}
}

func TestHandleExamples(t *testing.T) {
	f := newFixture(t)

	resp, h := f.set.Handle(get("/api/shipping/orders"))
	assert.Equal(t, "web_service", h.Name())
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Equal(t, `[{"order_id":1,"order_date":"2023-01-01","status":"shipped"}]`, resp.BodyString())

	resp, h = f.set.Handle(get("/style.css"))
	assert.Equal(t, "static", h.Name())
	assert.Equal(t, response.StatusNotFound, resp.Status)
	assert.Equal(t, notFoundHTML, resp.BodyString())
}
