// Package camera provides the fixed viewpoint over the ocean plane.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a node placed in the world by a translation followed by a
// rotation about X. It does not orbit or follow anything.
type Camera struct {
	Position mgl32.Vec3
	Pitch    float32 // Degrees about the X axis, negative looks down

	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32
}

// New creates a camera that frames the default 60×60 plane.
func New() *Camera {
	return &Camera{
		Position: mgl32.Vec3{30, 15, 50},
		Pitch:    -15,
		FOV:      45,
		Near:     0.1,
		Far:      10000,
	}
}

// ViewMatrix returns the inverse of the camera's world transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	world := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z()).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch)))
	return world.Inv()
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection × view.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// baseLight points down and away from the default camera.
var baseLight = mgl32.Vec3{0, -1, -1}.Normalize()

// LightDirection returns the direction light travels after rotating the
// base light by yaw degrees about Y.
func LightDirection(yaw float32) mgl32.Vec3 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(yaw)).Mul4x1(baseLight.Vec4(0)).Vec3()
}

// DefaultLightYaw is the rotation applied to the scene light.
const DefaultLightYaw = -70
