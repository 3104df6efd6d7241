package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	rotation mgl32.Quat

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
}

// Camera is the render-side transform a rig drives. It holds the pose and perspective settings and
// keeps the view and projection matrices current whenever either changes.
//
// World space is +X right, +Y up, +Z forward. View space follows the usual GL convention of looking
// down -Z, so the view matrix flips Z.
type Camera interface {
	// Position returns the camera's world position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the camera's world orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Rotation() mgl32.Quat

	// SetPositionAndRotation applies a new pose and recomputes the matrices.
	//
	// Parameters:
	//   - position: world position
	//   - rotation: world orientation
	SetPositionAndRotation(position mgl32.Vec3, rotation mgl32.Quat)

	// Forward returns the direction the camera looks along.
	Forward() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	SetFar(far float32)

	// ViewMatrix returns the current world-to-view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the projection multiplied by the view matrix.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	InverseProjectionMatrix() mgl32.Mat4

	// WorldToScreen projects a world point onto a viewport.
	//
	// Parameters:
	//   - point: world-space point
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - mgl32.Vec2: pixel coordinates, origin top-left
	//   - bool: false if the point is behind the camera
	WorldToScreen(point mgl32.Vec3, width, height float32) (mgl32.Vec2, bool)

	// Uniform returns the GPU uniform block for the current state.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection and position
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at the origin looking along +Z with a 45 degree field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		rotation: mgl32.QuatIdent(),
		fov:      45.0 * (math.Pi / 180.0), // radians
		aspect:   1.0,
		near:     0.1,
		far:      1000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Rotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) SetPositionAndRotation(position mgl32.Vec3, rotation mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.rotation = rotation.Normalize()
	c.updateMatrices()
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Forward(c.rotation)
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) WorldToScreen(point mgl32.Vec3, width, height float32) (mgl32.Vec2, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clip := c.viewProjectionMatrix.Mul4x1(point.Vec4(1))
	if clip[3] <= 0 {
		return mgl32.Vec2{}, false
	}
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	return mgl32.Vec2{
		(ndcX + 1) * 0.5 * width,
		(1 - ndcY) * 0.5 * height,
	}, true
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

// updateMatrices recalculates the view, projection, view-projection and inverse projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	flipZ := mgl32.Scale3D(1, 1, -1)
	c.viewMatrix = flipZ.
		Mul4(c.rotation.Conjugate().Mat4()).
		Mul4(mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2]))

	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}
