// Package xray provides the radiograph image layer: decoding, grayscale
// intensity access, physical pixel spacing, and window/level mapping.
package xray

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"

	"radview/pkg/geometry"
)

// Layer is one loaded radiograph. Geometric view state lives elsewhere; the
// layer only owns pixels and their physical scale.
type Layer struct {
	ID   string // image id used to key annotation collections
	Path string // original file path

	// Gray holds the decoded intensities. Windowing is defined on grayscale
	// values only, so any color source is converted to luminance on load.
	Gray *image.Gray16

	// PixelSpacing is the physical size of one pixel in millimeters along
	// each axis. Zero means unknown; measurements then fall back to pixels.
	PixelSpacing geometry.Size
}

// Load decodes a radiograph from disk. TIFF, PNG, and JPEG are supported.
// For TIFF files the resolution tags are probed for physical pixel spacing.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	layer := &Layer{
		ID:   idFromPath(path),
		Path: path,
		Gray: ToGray16(img),
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tiff" || ext == ".tif" {
		if sx, sy, err := extractTIFFSpacing(path); err == nil {
			layer.PixelSpacing = geometry.Size{Width: sx, Height: sy}
		}
	}

	return layer, nil
}

// FromImage wraps an already-decoded raster, e.g. one handed over by an
// external fetch, with its physical pixel spacing.
func FromImage(id string, img image.Image, spacing geometry.Size) *Layer {
	return &Layer{ID: id, Gray: ToGray16(img), PixelSpacing: spacing}
}

// idFromPath derives a stable image id from the file name.
func idFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ToGray16 converts any image to 16-bit grayscale. Gray16 sources are
// returned as-is.
func ToGray16(img image.Image) *image.Gray16 {
	if g, ok := img.(*image.Gray16); ok {
		return g
	}
	bounds := img.Bounds()
	out := image.NewGray16(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x-bounds.Min.X, y-bounds.Min.Y, color.Gray16Model.Convert(img.At(x, y)))
		}
	}
	return out
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l == nil || l.Gray == nil {
		return 0
	}
	return l.Gray.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l == nil || l.Gray == nil {
		return 0
	}
	return l.Gray.Bounds().Dy()
}

// Size returns the image dimensions.
func (l *Layer) Size() geometry.Size {
	return geometry.Size{Width: float64(l.Width()), Height: float64(l.Height())}
}

// IntensityAt returns the raw 16-bit intensity at pixel coordinates, or 0
// outside the image.
func (l *Layer) IntensityAt(x, y int) uint16 {
	if l == nil || l.Gray == nil {
		return 0
	}
	b := l.Gray.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return 0
	}
	return l.Gray.Gray16At(x, y).Y
}

// extractTIFFSpacing reads X/YResolution tags and converts them to
// millimeters per pixel. Returns an error when no resolution is recorded.
func extractTIFFSpacing(path string) (sx, sy float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	header := make([]byte, 8)
	if _, err := file.Read(header); err != nil {
		return 0, 0, err
	}

	var byteOrder binary.ByteOrder
	switch {
	case header[0] == 'I' && header[1] == 'I':
		byteOrder = binary.LittleEndian
	case header[0] == 'M' && header[1] == 'M':
		byteOrder = binary.BigEndian
	default:
		return 0, 0, fmt.Errorf("not a valid TIFF file")
	}

	ifdOffset := byteOrder.Uint32(header[4:8])
	if _, err := file.Seek(int64(ifdOffset), 0); err != nil {
		return 0, 0, err
	}

	var numEntries uint16
	if err := binary.Read(file, byteOrder, &numEntries); err != nil {
		return 0, 0, err
	}

	var xRes, yRes float64
	var resUnit uint16 = 2 // inches unless told otherwise

	for i := uint16(0); i < numEntries; i++ {
		entry := make([]byte, 12)
		if _, err := file.Read(entry); err != nil {
			return 0, 0, err
		}

		tag := byteOrder.Uint16(entry[0:2])
		fieldType := byteOrder.Uint16(entry[2:4])
		valueOffset := byteOrder.Uint32(entry[8:12])

		switch tag {
		case 282: // XResolution
			if fieldType == 5 { // RATIONAL
				xRes = readTIFFRational(file, int64(valueOffset), byteOrder)
			}
		case 283: // YResolution
			if fieldType == 5 {
				yRes = readTIFFRational(file, int64(valueOffset), byteOrder)
			}
		case 296: // ResolutionUnit
			if fieldType == 3 { // SHORT
				resUnit = uint16(valueOffset)
			}
		}
	}

	if xRes == 0 && yRes == 0 {
		return 0, 0, fmt.Errorf("no resolution tags found")
	}
	if xRes == 0 {
		xRes = yRes
	}
	if yRes == 0 {
		yRes = xRes
	}

	// Pixels per unit -> millimeters per pixel.
	unitMM := 25.4 // ResolutionUnit 2: inch
	if resUnit == 3 {
		unitMM = 10 // ResolutionUnit 3: centimeter
	}
	return unitMM / xRes, unitMM / yRes, nil
}

// readTIFFRational reads a RATIONAL value (two uint32s) at the offset.
func readTIFFRational(file *os.File, offset int64, byteOrder binary.ByteOrder) float64 {
	cur, err := file.Seek(0, 1)
	if err != nil {
		return 0
	}
	defer file.Seek(cur, 0)

	if _, err := file.Seek(offset, 0); err != nil {
		return 0
	}
	var num, den uint32
	if err := binary.Read(file, byteOrder, &num); err != nil {
		return 0
	}
	if err := binary.Read(file, byteOrder, &den); err != nil {
		return 0
	}
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
