package remote

import (
	"encoding/json"
	"net/http"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// errBadRequest marks errors caused by the request body.
var errBadRequest = errors.New("bad request")

// CenterRequest moves the orbit center. Rotation is [pitch, yaw, roll] in degrees; without it the
// current orientation is kept. Without a distance the current distance is kept.
type CenterRequest struct {
	Center   *mgl32.Vec3 `json:"center"`
	Rotation *mgl32.Vec3 `json:"rotation,omitempty"`
	Distance *float32    `json:"distance,omitempty"`
}

// PlaneAxes is the rig's forward and right directions flattened onto the reference plane.
type PlaneAxes struct {
	Forward mgl32.Vec3 `json:"forward"`
	Right   mgl32.Vec3 `json:"right"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var st rig.State
	s.engine.Do(func(rg rig.Rig) { st = rg.State() })
	s.writeJSON(w, st)
}

func (s *Server) handleCenter(w http.ResponseWriter, r *http.Request) {
	var req CenterRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Center == nil {
		s.writeError(w, errors.Wrap(errBadRequest, "center is required"))
		return
	}
	if req.Distance != nil && *req.Distance <= 0 {
		s.writeError(w, errors.Wrap(errBadRequest, "distance must be positive"))
		return
	}

	var st rig.State
	s.engine.Do(func(rg rig.Rig) {
		switch {
		case req.Rotation != nil:
			distance := rg.State().Distance()
			if req.Distance != nil {
				distance = *req.Distance
			}
			rot := *req.Rotation
			rg.SetCenterPositionPose(*req.Center, common.EulerToQuat(rot[0], rot[1], rot[2]), distance)
		case req.Distance != nil:
			rg.SetCenterPositionDistance(*req.Center, *req.Distance)
		default:
			rg.SetCenterPosition(*req.Center)
		}
		st = rg.State()
	})
	s.writeJSON(w, st)
}

func (s *Server) handlePlaneAxes(w http.ResponseWriter, r *http.Request) {
	var axes PlaneAxes
	var err error
	s.engine.Do(func(rg rig.Rig) {
		if axes.Forward, err = rg.ForwardInPlane(); err != nil {
			return
		}
		axes.Right, err = rg.RightInPlane()
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, axes)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	var p rig.Preset
	s.engine.Do(func(rg rig.Rig) { p = rg.SavePreset() })
	s.writeJSON(w, p)
}

func (s *Server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	var p rig.Preset
	if err := readJSON(r, &p); err != nil {
		s.writeError(w, err)
		return
	}
	var err error
	s.engine.Do(func(rg rig.Rig) { err = rg.LoadPreset(&p) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.handleGetPreset(w, r)
}

func (s *Server) handleGetLimit(w http.ResponseWriter, r *http.Request) {
	var l rig.Limit
	s.engine.Do(func(rg rig.Rig) { l = rg.SaveLimit() })
	s.writeJSON(w, l)
}

func (s *Server) handlePutLimit(w http.ResponseWriter, r *http.Request) {
	var l *rig.Limit
	if err := readJSON(r, &l); err != nil {
		s.writeError(w, err)
		return
	}
	var err error
	s.engine.Do(func(rg rig.Rig) { err = rg.LoadLimit(l) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.handleGetLimit(w, r)
}

func (s *Server) handleGetSensitivity(w http.ResponseWriter, r *http.Request) {
	var sens rig.Sensitivity
	s.engine.Do(func(rg rig.Rig) { sens = rg.SaveSensitivity() })
	s.writeJSON(w, sens)
}

func (s *Server) handlePutSensitivity(w http.ResponseWriter, r *http.Request) {
	var sens *rig.Sensitivity
	if err := readJSON(r, &sens); err != nil {
		s.writeError(w, err)
		return
	}
	var err error
	s.engine.Do(func(rg rig.Rig) { err = rg.LoadSensitivity(sens) })
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.handleGetSensitivity(w, r)
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(errBadRequest, "decode body: %v", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, errors.Wrap(err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// writeError answers 400 for request and argument errors, 409 when the rig lacks a plane, 500 otherwise.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, rig.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, rig.ErrPreconditionFailed):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
	}

	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
