package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, rigOptions ...rig.RigOption) (engine.Engine, *httptest.Server, *Server) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	e := engine.NewEngine(
		engine.WithCamera(camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, -10}))),
		engine.WithRigOptions(rigOptions...),
		engine.WithLogger(logger),
	)
	s := NewServer(e, WithLogger(logger), WithAccessLog(nil))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return e, ts, s
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestGetState(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, out := do(t, http.MethodGet, ts.URL+"/rig/state", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, []any{0.0, 0.0, -10.0}, out["position"])
	assert.Equal(t, true, out["height_resetting"])
}

func TestPutCenter(t *testing.T) {
	e, ts, _ := newTestServer(t)

	resp, out := do(t, http.MethodPut, ts.URL+"/rig/center", `{"center": [4, 0, 0]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{4.0, 0.0, 0.0}, out["velocity_move"])
	assert.Equal(t, false, out["height_resetting"])

	resp, out = do(t, http.MethodPut, ts.URL+"/rig/center", `{"center": [0, 0, 0], "distance": 20}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 10, out["velocity_zoom"], 1e-4)

	resp, out = do(t, http.MethodPut, ts.URL+"/rig/center", `{"center": [0, 0, 0], "rotation": [0, 90, 0]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 90, out["velocity_rotate_horizontal"], 1e-3)
	assert.InDelta(t, 0, out["velocity_zoom"], 1e-4, "distance defaults to the current one")

	var st rig.State
	e.Do(func(r rig.Rig) { st = r.State() })
	assert.InDelta(t, 90, st.VelocityRotateHorizontal, 1e-3)
}

func TestPutCenterRejectsBadBodies(t *testing.T) {
	_, ts, _ := newTestServer(t)

	for name, body := range map[string]string{
		"not json":       `{`,
		"missing center": `{"distance": 3}`,
		"bad distance":   `{"center": [0, 0, 0], "distance": -1}`,
		"unknown field":  `{"center": [0, 0, 0], "speed": 1}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, out := do(t, http.MethodPut, ts.URL+"/rig/center", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestPlaneAxes(t *testing.T) {
	_, ts, _ := newTestServer(t)
	resp, out := do(t, http.MethodGet, ts.URL+"/rig/plane/axes", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, out["error"], "reference plane")

	_, ts, _ = newTestServer(t, rig.WithPlane(common.NewPlane(mgl32.Vec3{}, mgl32.QuatIdent())))
	resp, out = do(t, http.MethodGet, ts.URL+"/rig/plane/axes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{0.0, 0.0, 1.0}, out["forward"])
	assert.Equal(t, []any{1.0, 0.0, 0.0}, out["right"])
}

func TestLimitAndSensitivity(t *testing.T) {
	e, ts, _ := newTestServer(t)

	limit := `{"vertical_rotate_range": {"min": 60, "max": -30}, "zoom_range": {"min": 2, "max": 40}, "can_move": true, "can_rotate": false, "can_zoom": true}`
	resp, out := do(t, http.MethodPut, ts.URL+"/rig/limit", limit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"min": 60.0, "max": -30.0}, out["vertical_rotate_range"])

	var l rig.Limit
	e.Do(func(r rig.Rig) { l = r.SaveLimit() })
	assert.False(t, l.CanRotate)
	assert.Equal(t, float32(40), l.ZoomRange.ActualMax())

	resp, _ = do(t, http.MethodPut, ts.URL+"/rig/limit", `null`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, out = do(t, http.MethodGet, ts.URL+"/rig/sensitivity", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5.0, out["move_speed"])

	sens := rig.DefaultSensitivity()
	sens.ZoomSpeed = 9
	body, err := json.Marshal(sens)
	require.NoError(t, err)
	resp, out = do(t, http.MethodPut, ts.URL+"/rig/sensitivity", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 9.0, out["zoom_speed"])
}

func TestPresetRoundTrip(t *testing.T) {
	e, ts, _ := newTestServer(t)

	resp, out := do(t, http.MethodGet, ts.URL+"/rig/preset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, out, "target")
	require.Contains(t, out, "limit")

	resp, _ = do(t, http.MethodPut, ts.URL+"/rig/preset", `{"target": null, "limit": null}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	target := rig.Target{Position: mgl32.Vec3{1, 0, 1}, Rotation: mgl32.QuatIdent(), Distance: 5}
	limit := rig.DefaultLimit()
	body, err := json.Marshal(rig.Preset{Target: &target, Limit: &limit})
	require.NoError(t, err)
	resp, _ = do(t, http.MethodPut, ts.URL+"/rig/preset", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st rig.State
	e.Do(func(r rig.Rig) { st = r.State() })
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, st.VelocityMove)
	assert.InDelta(t, -5, st.VelocityZoom, 1e-4)
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts, _ := newTestServer(t)
	resp, err := http.Post(ts.URL+"/rig/state", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStream(t *testing.T) {
	e, ts, s := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/rig/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 5*time.Millisecond)

	e.Step(1.0 / 60)
	e.Step(1.0 / 60)

	for _, want := range []uint64{1, 2} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var p engine.Pose
		require.NoError(t, json.Unmarshal(msg, &p))
		assert.Equal(t, want, p.Tick)
		assert.InDelta(t, 10, p.Distance, 1e-4)
	}

	conn.Close()
	require.Eventually(t, func() bool { return s.Clients() == 0 }, time.Second, 5*time.Millisecond)
}
