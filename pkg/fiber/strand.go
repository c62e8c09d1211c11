package fiber

import (
	"github.com/df07/go-hair-raytracer/pkg/core"
	"github.com/soypat/geometry/ms3"
)

// Strand is a hair fiber stored as a single precision polyline
type Strand struct {
	ID     int
	Points []ms3.Vec
	Radius float32
}

// Length is the summed length of the strand's segments
func (s *Strand) Length() float32 {
	var length float32
	for i := 1; i < len(s.Points); i++ {
		length += ms3.Norm(ms3.Sub(s.Points[i], s.Points[i-1]))
	}
	return length
}

// Bounds returns the box around every control point grown by the radius
func (s *Strand) Bounds() ms3.Box {
	if len(s.Points) == 0 {
		return ms3.Box{}
	}
	box := ms3.Box{Min: s.Points[0], Max: s.Points[0]}
	for _, p := range s.Points[1:] {
		box = box.IncludePoint(p)
	}
	r := ms3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return ms3.Box{Min: ms3.Sub(box.Min, r), Max: ms3.Add(box.Max, r)}
}

// Segments converts the polyline into ray-traceable cylinders.
// Zero length pieces are dropped.
func (s *Strand) Segments() []*Segment {
	segments := make([]*Segment, 0, max(0, len(s.Points)-1))
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i] == s.Points[i-1] {
			continue
		}
		segments = append(segments, NewSegment(toVec3(s.Points[i-1]), toVec3(s.Points[i]), float64(s.Radius), s.ID))
	}
	return segments
}

func toVec3(v ms3.Vec) core.Vec3 {
	return core.NewVec3(float64(v.X), float64(v.Y), float64(v.Z))
}

// Transform scales the strand about the origin, then moves it by offset
func (s *Strand) Transform(scale float32, offset ms3.Vec) {
	for i, p := range s.Points {
		s.Points[i] = ms3.Add(ms3.Scale(scale, p), offset)
	}
	s.Radius *= scale
}
