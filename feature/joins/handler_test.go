package joins

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"datajoin/core/source"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	logger := zap.NewNop()
	svc := NewService(logger, source.Config{}, source.Deps{}, 0)
	handler := NewHandler(svc, logger)
	handler.RegisterRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

// TestHandleJoin_Partition tests the stateless join endpoint.
func TestHandleJoin_Partition(t *testing.T) {
	app := setupTestApp(t)

	code, body := postJSON(t, app, "/joins/", JoinRequest{
		Old: []source.Record{{"id": "A"}, {"id": "B"}},
		New: []source.Record{{"id": "B"}, {"id": "C"}},
	})

	assert.Equal(t, 200, code)
	entering := body["entering"].([]any)
	require.Len(t, entering, 1)
	assert.Equal(t, "C", entering[0].(map[string]any)["id"])
	assert.Len(t, body["updating"].([]any), 1)
	assert.Len(t, body["exiting"].([]any), 1)
}

// TestHandleJoin_DuplicateKey tests the 422 mapping with key and positions.
func TestHandleJoin_DuplicateKey(t *testing.T) {
	app := setupTestApp(t)

	code, body := postJSON(t, app, "/joins/", JoinRequest{
		New: []source.Record{{"id": "X"}, {"id": "X"}},
	})

	assert.Equal(t, 422, code)
	assert.Equal(t, "X", body["key"])
	assert.Equal(t, "data", body["in"])
	positions := body["positions"].([]any)
	assert.Equal(t, float64(0), positions[0])
	assert.Equal(t, float64(1), positions[1])
}

// TestHandleJoin_BadBody tests the 400 mapping for malformed JSON.
func TestHandleJoin_BadBody(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/joins/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

// TestHandleSessions_Flow tests create, pass, get, delete over HTTP.
func TestHandleSessions_Flow(t *testing.T) {
	app := setupTestApp(t)

	code, body := postJSON(t, app, "/joins/sessions", CreateSessionRequest{KeyField: "id"})
	require.Equal(t, 201, code)
	id := body["id"].(string)
	require.NotEmpty(t, id)

	code, body = postJSON(t, app, fmt.Sprintf("/joins/sessions/%s/passes", id), PassRequest{
		Data: []source.Record{{"id": "a"}, {"id": "b"}},
	})
	require.Equal(t, 200, code)
	assert.Equal(t, float64(1), body["pass"])
	assert.Equal(t, float64(2), body["bound"])

	req := httptest.NewRequest("GET", "/joins/sessions/"+id, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var info SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Len(t, info.Bound, 2)
	assert.Equal(t, "a", info.Bound[0].Key)

	req = httptest.NewRequest("DELETE", "/joins/sessions/"+id, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	req = httptest.NewRequest("GET", "/joins/sessions/"+id, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

// TestHandleSessions_UnknownID tests 404s for unknown sessions.
func TestHandleSessions_UnknownID(t *testing.T) {
	app := setupTestApp(t)

	code, _ := postJSON(t, app, "/joins/sessions/nope/passes", PassRequest{})
	assert.Equal(t, 404, code)

	code, _ = postJSON(t, app, "/joins/sessions/nope/sync", nil)
	assert.Equal(t, 404, code)
}

// TestHandleSyncSession_PushConflict tests the 409 mapping for push sessions.
func TestHandleSyncSession_PushConflict(t *testing.T) {
	app := setupTestApp(t)

	code, body := postJSON(t, app, "/joins/sessions", CreateSessionRequest{})
	require.Equal(t, 201, code)
	id := body["id"].(string)

	code, _ = postJSON(t, app, fmt.Sprintf("/joins/sessions/%s/sync", id), nil)
	assert.Equal(t, 409, code)
}
