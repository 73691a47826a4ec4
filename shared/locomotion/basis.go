package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// Basis holds the horizontal movement axes derived from a view orientation.
type Basis struct {
	Forward mgl64.Vec3
	Side    mgl64.Vec3
}

// BasisFromYaw returns the movement axes for a camera yawed by yaw radians.
// Yaw zero looks down -Z.
func BasisFromYaw(yaw float64) Basis {
	forward := mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
	return Basis{Forward: forward, Side: forward.Cross(Up)}
}

// BasisFromDirection flattens a view direction onto the ground plane. A
// vertical or zero direction falls back to yaw zero.
func BasisFromDirection(dir mgl64.Vec3) Basis {
	flat := Flatten(dir)
	if flat == (mgl64.Vec3{}) {
		return BasisFromYaw(0)
	}
	return Basis{Forward: flat, Side: flat.Cross(Up)}
}

// CameraDirection returns the unit view direction for yaw and pitch.
func CameraDirection(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{-math.Sin(yaw) * cp, math.Sin(pitch), -math.Cos(yaw) * cp}
}

// YawOf returns the yaw whose forward axis points along v's horizontal part.
func YawOf(v mgl64.Vec3) float64 {
	return math.Atan2(-v.X(), -v.Z())
}

// Flatten drops the vertical component and normalizes, returning the zero
// vector when nothing horizontal remains.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	flat := mgl64.Vec3{v.X(), 0, v.Z()}
	if flat.Len() < 1e-9 {
		return mgl64.Vec3{}
	}
	return flat.Normalize()
}
