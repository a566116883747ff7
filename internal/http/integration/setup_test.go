package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/geocoder89/staffhub/internal/auth"
	"github.com/geocoder89/staffhub/internal/cache"
	"github.com/geocoder89/staffhub/internal/db"
	apphttp "github.com/geocoder89/staffhub/internal/http"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/geocoder89/staffhub/internal/repo/memory"
	mongorepo "github.com/geocoder89/staffhub/internal/repo/mongo"
	"github.com/geocoder89/staffhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// backends returns the memory store plus any database reachable through
// TEST_DB_DSN or TEST_MONGO_URI.
func backends(t *testing.T) map[string]func(t *testing.T) *repo.Store {
	t.Helper()

	out := map[string]func(t *testing.T) *repo.Store{
		"memory": func(*testing.T) *repo.Store { return memory.NewStore() },
	}

	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		out["postgres"] = func(t *testing.T) *repo.Store {
			ctx := context.Background()

			pool, err := db.NewPool(ctx, dsn)
			require.NoError(t, err)
			require.NoError(t, db.EnsureSchema(ctx, pool))

			_, err = pool.Exec(ctx, `TRUNCATE users, tasks, payroll_requests, payments, messages`)
			require.NoError(t, err)

			store := postgres.NewStore(pool, observability.NewProm(prometheus.NewRegistry()))
			t.Cleanup(func() { _ = store.Close(context.Background()) })
			return store
		}
	}

	if uri := os.Getenv("TEST_MONGO_URI"); uri != "" {
		out["mongo"] = func(t *testing.T) *repo.Store {
			ctx := context.Background()

			client, err := db.NewMongo(ctx, uri)
			require.NoError(t, err)

			database := client.Database("staffhub_test")
			require.NoError(t, database.Drop(ctx))
			require.NoError(t, mongorepo.EnsureIndexes(ctx, database))

			store := mongorepo.NewStore(client, "staffhub_test", observability.NewProm(prometheus.NewRegistry()))
			t.Cleanup(func() { _ = store.Close(context.Background()) })
			return store
		}
	}

	return out
}

type testServer struct {
	router http.Handler
	store  *repo.Store
	tokens *auth.Manager
}

func newTestServer(t *testing.T, store *repo.Store) *testServer {
	t.Helper()

	reg := prometheus.NewRegistry()
	tokens := auth.NewManager(testSecret, time.Hour)

	router := apphttp.NewRouter(apphttp.Deps{
		Env:          "test",
		Store:        store,
		Tokens:       tokens,
		RoleCache:    cache.NewMemoryRoleCache(time.Minute),
		Prom:         observability.NewProm(reg),
		Gatherer:     reg,
		StoreTimeout: 2 * time.Second,
		RateLimit:    1000,
	})

	return &testServer{router: router, store: store, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// token obtains a bearer token through POST /jwt.
func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/jwt", "", map[string]any{"email": email})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

// signUp registers email and returns its id.
func (s *testServer) signUp(t *testing.T, email, name string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/users", "", map[string]any{"email": email, "name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err := s.store.Users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return u.ID
}

func (s *testServer) seedAdmin(t *testing.T, email string) string {
	t.Helper()

	id := s.signUp(t, email, "Admin")
	_, err := s.store.Users.SetRole(context.Background(), id, "admin")
	require.NoError(t, err)
	return s.token(t, email)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
