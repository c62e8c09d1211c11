package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-hair-raytracer/pkg/fiber"
	"github.com/soypat/geometry/ms3"
)

// Array flags of the cyHair file header
const (
	hairHasSegments uint32 = 1 << iota
	hairHasPoints
	hairHasThickness
	hairHasTransparency
	hairHasColors
)

// HairHeader is the fixed 128 byte header of a cyHair .hair file
type HairHeader struct {
	Signature           [4]byte
	StrandCount         uint32
	PointCount          uint32
	Arrays              uint32
	DefaultSegments     uint32
	DefaultThickness    float32
	DefaultTransparency float32
	DefaultColor        [3]float32
	Info                [88]byte
}

// maxHairPoints bounds allocations driven by untrusted header counts
const maxHairPoints = 1 << 28

// LoadHair reads strands from a cyHair file
func LoadHair(filename string) ([]fiber.Strand, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open hair file: %w", err)
	}
	defer file.Close()

	strands, err := ReadHair(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read hair file %s: %w", filename, err)
	}
	return strands, nil
}

// ReadHair decodes a little-endian cyHair stream. Strand ids follow file
// order and each strand's radius is half the thickness at its root.
func ReadHair(r io.Reader) ([]fiber.Strand, error) {
	var header HairHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if string(header.Signature[:]) != "HAIR" {
		return nil, fmt.Errorf("bad signature %q", header.Signature[:])
	}
	if header.Arrays&hairHasPoints == 0 {
		return nil, errors.New("file has no points array")
	}
	if header.PointCount > maxHairPoints || header.StrandCount > maxHairPoints {
		return nil, fmt.Errorf("file too large: %d strands, %d points", header.StrandCount, header.PointCount)
	}

	segments := make([]uint16, header.StrandCount)
	if header.Arrays&hairHasSegments != 0 {
		if err := binary.Read(r, binary.LittleEndian, segments); err != nil {
			return nil, fmt.Errorf("segments: %w", err)
		}
	} else {
		for i := range segments {
			segments[i] = uint16(header.DefaultSegments)
		}
	}

	total := 0
	for _, n := range segments {
		total += int(n) + 1
	}
	if total != int(header.PointCount) {
		return nil, fmt.Errorf("segments describe %d points, header says %d", total, header.PointCount)
	}

	coords := make([]float32, 3*header.PointCount)
	if err := binary.Read(r, binary.LittleEndian, coords); err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}

	var thickness []float32
	if header.Arrays&hairHasThickness != 0 {
		thickness = make([]float32, header.PointCount)
		if err := binary.Read(r, binary.LittleEndian, thickness); err != nil {
			return nil, fmt.Errorf("thickness: %w", err)
		}
	}
	// Transparency and colors are not used for shading and are left unread

	strands := make([]fiber.Strand, len(segments))
	next := 0
	for i, n := range segments {
		points := make([]ms3.Vec, int(n)+1)
		for j := range points {
			k := 3 * (next + j)
			points[j] = ms3.Vec{X: coords[k], Y: coords[k+1], Z: coords[k+2]}
		}
		width := header.DefaultThickness
		if thickness != nil {
			width = thickness[next]
		}
		strands[i] = fiber.Strand{ID: i, Points: points, Radius: width / 2}
		next += len(points)
	}
	return strands, nil
}

// WriteHair encodes strands as a cyHair stream with segment, point and
// thickness arrays
func WriteHair(w io.Writer, strands []fiber.Strand) error {
	header := HairHeader{
		Signature:        [4]byte{'H', 'A', 'I', 'R'},
		StrandCount:      uint32(len(strands)),
		Arrays:           hairHasSegments | hairHasPoints | hairHasThickness,
		DefaultThickness: 1,
	}
	copy(header.Info[:], "go-hair-raytracer")

	segments := make([]uint16, len(strands))
	var coords, thickness []float32
	for i, s := range strands {
		if len(s.Points) == 0 || len(s.Points)-1 > 0xffff {
			return fmt.Errorf("strand %d has %d points", s.ID, len(s.Points))
		}
		segments[i] = uint16(len(s.Points) - 1)
		for _, p := range s.Points {
			coords = append(coords, p.X, p.Y, p.Z)
			thickness = append(thickness, 2*s.Radius)
		}
	}
	header.PointCount = uint32(len(thickness))

	for _, data := range []any{header, segments, coords, thickness} {
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			return err
		}
	}
	return nil
}

// SaveHair writes strands to a cyHair file
func SaveHair(filename string, strands []fiber.Strand) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create hair file: %w", err)
	}
	bw := bufio.NewWriter(file)
	if err := WriteHair(bw, strands); err != nil {
		file.Close()
		return fmt.Errorf("failed to write hair file %s: %w", filename, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
