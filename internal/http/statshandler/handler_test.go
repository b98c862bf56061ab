package statshandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presencehub/internal/hub"
	"presencehub/internal/rooms"
)

type nopConn struct{}

func (nopConn) Send([]byte) error { return nil }
func (nopConn) Close() error      { return nil }

func TestStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := hub.New()
	reg := rooms.NewRegistry(h)
	reg.Join(nopConn{}, rooms.Global)
	reg.Join(nopConn{}, rooms.Chat)

	engine := gin.New()
	New(h, rooms.NewAggregator(reg, []string{"pong"})).Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Rooms)
	assert.Equal(t, 2, got.Members)
	assert.Equal(t, float64(1), got.Counts["globalCount"])
	assert.Equal(t, float64(1), got.Counts["chatCount"])
	assert.Equal(t, float64(0), got.Counts["pongCount"])
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := hub.New()
	engine := gin.New()
	New(h, rooms.NewAggregator(rooms.NewRegistry(h), nil)).Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
