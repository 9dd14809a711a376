package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modkit "robots/internal/modkit"
	"robots/internal/modkit/httpkit"
	"robots/internal/platform/config"
	phttp "robots/internal/platform/net/http"
	"robots/internal/platform/store/storetest"
	"robots/internal/services/robots/repo/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, m modkit.Module, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := phttp.NewServer(config.New().Prefix("ROBOTS_MODULE_TEST_"))
	m.MountRoutes(srv.Router())

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func TestFromConfig(t *testing.T) {
	t.Setenv("ROBOTS_MODULE_TEST_BODY_MAX_BYTES", "2048")

	assert.Equal(t, int64(2048), FromConfig(config.New().Prefix("ROBOTS_MODULE_TEST_")).BodyMaxBytes)
	assert.Equal(t, int64(1<<20), FromConfig(config.New().Prefix("ROBOTS_MODULE_UNSET_")).BodyMaxBytes)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{PG: &storetest.Querier{}}, Options{})
	assert.Equal(t, "robots", m.Name())
	assert.Equal(t, "/robots", m.(*Module).Prefix())
	assert.NotNil(t, m.(*Module).Service())
}

func TestNewWithRepo_ServesRoutes(t *testing.T) {
	t.Parallel()

	mem := repotest.New()
	m := NewWithRepo(modkit.Deps{PG: &storetest.Querier{}}, Options{}, mem.Binder())

	rr := serve(t, m, http.MethodPost, "/robots", `{"name":"Yern","purpose":"AI"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"name":"Yern"`)
	assert.Equal(t, []string{"Insert"}, mem.Calls())
}

func TestNewWithRepo_Options(t *testing.T) {
	t.Parallel()

	var hit bool
	mark := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit = true
			next.ServeHTTP(w, r)
		})
	}
	extra := func(r httpkit.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	}

	m := NewWithRepo(modkit.Deps{PG: &storetest.Querier{}}, Options{}, repotest.New().Binder(),
		WithPrefix("/v2/robots"),
		WithMiddlewares(mark),
		WithRegister(extra),
	)

	rr := serve(t, m, http.MethodGet, "/v2/robots/ping", "")
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.True(t, hit)

	rr = serve(t, m, http.MethodGet, "/v2/robots/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewWithRepo_BodyLimit(t *testing.T) {
	t.Parallel()

	m := NewWithRepo(modkit.Deps{PG: &storetest.Querier{}}, Options{BodyMaxBytes: 8}, repotest.New().Binder())
	rr := serve(t, m, http.MethodPost, "/robots", `{"name":"Yern","purpose":"AI"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
}
