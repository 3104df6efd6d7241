package rig

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// drain removes this tick's share of a scalar pool and returns it. The share is pool*dt*slowdown,
// clamped so a pool is never overdrawn.
func drain(pool *float32, dt, slowdown float32) float32 {
	off := common.Lerp(0, *pool, dt*slowdown)
	*pool -= off
	return off
}

// drainVec3 is drain for a vector pool.
func drainVec3(pool *mgl32.Vec3, dt, slowdown float32) mgl32.Vec3 {
	off := common.LerpVec3(mgl32.Vec3{}, *pool, dt*slowdown)
	*pool = pool.Sub(off)
	return off
}
