package system_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/progenglish/modules/system"
)

type envelope struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func ok(context.Context) error { return nil }

func TestRoot(t *testing.T) {
	t.Parallel()
	m := system.NewModule(system.Info{Name: "Programming English API", Version: "2.0.0"})

	rec, env := get(t, m.Handle(), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Programming English API", env.Data["name"])
	assert.Equal(t, "2.0.0", env.Data["version"])
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks map[string]system.CheckFunc
		code   int
		want   map[string]string
	}{
		{
			name:   "all up",
			checks: map[string]system.CheckFunc{"database": ok, "redis": ok},
			code:   http.StatusOK,
			want:   map[string]string{"status": "healthy", "database": "connected", "redis": "connected"},
		},
		{
			name: "database down",
			checks: map[string]system.CheckFunc{
				"database": func(context.Context) error { return errors.New("connection refused") },
			},
			code: http.StatusServiceUnavailable,
			want: map[string]string{"status": "unhealthy", "database": "disconnected"},
		},
		{
			name:   "no checks",
			checks: nil,
			code:   http.StatusOK,
			want:   map[string]string{"status": "healthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var opts []system.Option
			for name, fn := range tt.checks {
				opts = append(opts, system.WithCheck(name, fn))
			}
			m := system.NewModule(system.Info{Name: "api"}, opts...)

			rec, env := get(t, m.Handle(), "/health")
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.code == http.StatusOK, env.Success)
			assert.Equal(t, tt.want, env.Data)
		})
	}
}

func TestHealth_Timeout(t *testing.T) {
	t.Parallel()

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	m := system.NewModule(system.Info{}, system.WithCheck("database", slow), system.WithCheckTimeout(10*time.Millisecond))

	rec, env := get(t, m.Handle(), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "disconnected", env.Data["database"])
}
