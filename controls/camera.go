package controls

import (
	"github.com/automoto/avatarsync/shared/locomotion"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the view orientation both control sources steer. Yaw zero looks
// down -Z; positive pitch looks up.
type Camera struct {
	Yaw      float64
	Pitch    float64
	MaxPitch float64
}

func NewCamera(maxPitch float64) *Camera {
	return &Camera{MaxPitch: maxPitch}
}

// Rotate turns the camera, clamping pitch to ±MaxPitch.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.MaxPitch > 0 {
		c.Pitch = mgl64.Clamp(c.Pitch, -c.MaxPitch, c.MaxPitch)
	}
}

// Direction returns the unit view direction in world space.
func (c *Camera) Direction() mgl64.Vec3 {
	return locomotion.CameraDirection(c.Yaw, c.Pitch)
}

// Basis returns the horizontal movement axes for the current yaw.
func (c *Camera) Basis() locomotion.Basis {
	return locomotion.BasisFromYaw(c.Yaw)
}
