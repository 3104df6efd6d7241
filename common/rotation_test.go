package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEulerRoundTrip(t *testing.T) {
	cases := []struct {
		pitch, yaw, roll float32
	}{
		{0, 0, 0},
		{30, 0, 0},
		{-45, 120, 0},
		{60, -170, 15},
		{10, 45, -30},
	}
	for _, c := range cases {
		q := EulerToQuat(c.pitch, c.yaw, c.roll)
		e := QuatToEuler(q)
		assert.InDelta(t, c.pitch, e[0], 1e-3, "pitch of %+v", c)
		assert.InDelta(t, c.yaw, e[1], 1e-3, "yaw of %+v", c)
		assert.InDelta(t, c.roll, e[2], 1e-3, "roll of %+v", c)
	}
}

func TestPositivePitchLooksDown(t *testing.T) {
	f := Forward(EulerToQuat(30, 0, 0))
	assert.Less(t, f[1], float32(0))
	assert.InDelta(t, 120, Angle(WorldUp, f), 1e-3)
}

func TestAxesOfIdentity(t *testing.T) {
	q := EulerToQuat(0, 0, 0)
	assert.InDelta(t, 1, Forward(q)[2], 1e-6)
	assert.InDelta(t, 1, Right(q)[0], 1e-6)
	assert.InDelta(t, 1, Up(q)[1], 1e-6)
}
