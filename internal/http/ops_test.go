package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *OpsServer, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestLiveAndHealth(t *testing.T) {
	s := NewOpsServer("customer", ":0", false)

	code, body := get(t, s, "/live")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = get(t, s, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "customer", body["bot"])
}

func TestReady(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	redisCheck := Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }}
	s := NewOpsServer("admin", ":0", false, redisCheck)

	code, body := get(t, s, "/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{"redis": "ok"}, body["checks"])

	failing := Check{Name: "postgres", Ping: func(context.Context) error { return errors.New("connection refused") }}
	s = NewOpsServer("admin", ":0", false, redisCheck, failing)

	code, body = get(t, s, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body["status"])
	assert.Equal(t, "connection refused", body["checks"].(map[string]interface{})["postgres"])
}
