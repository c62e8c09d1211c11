package renderer

import (
	"math"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// CameraConfig describes a look-at pinhole or thin-lens camera
type CameraConfig struct {
	Center        core.Vec3 `json:"center"`
	LookAt        core.Vec3 `json:"lookAt"`
	Up            core.Vec3 `json:"up"`
	VFov          float64   `json:"vfov"`                    // vertical field of view in degrees
	Aperture      float64   `json:"aperture,omitempty"`      // lens diameter, 0 for a pinhole
	FocusDistance float64   `json:"focusDistance,omitempty"` // 0 focuses on LookAt
}

// Camera generates primary rays
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera for an image with the given aspect ratio
func NewCamera(config CameraConfig, aspectRatio float64) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focus)
	vertical := v.Multiply(viewportHeight * focus)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focus))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// The lens sample is only used when the camera has an aperture.
func (c *Camera) GetRay(s, t float64, lens core.Vec2) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(lens).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}
	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))
	return core.NewRay(origin, target.Subtract(origin).Normalize())
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
