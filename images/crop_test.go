package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareBaseSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		baseSize      int
		expected      int
	}{
		{name: "landscape", width: 200, height: 100, baseSize: 100, expected: 200},
		{name: "portrait", width: 100, height: 300, baseSize: 100, expected: 300},
		{name: "square", width: 50, height: 50, baseSize: 100, expected: 100},
		{name: "truncates", width: 1000, height: 333, baseSize: 100, expected: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SquareBaseSize(tt.width, tt.height, tt.baseSize)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := SquareBaseSize(10, 10, -5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = SquareBaseSize(0, 10, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSquareIntermediateSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		baseSize      int
		expected      image.Point
	}{
		{name: "landscape", width: 200, height: 100, baseSize: 100, expected: image.Pt(200, 100)},
		{name: "truncated base", width: 1000, height: 333, baseSize: 100, expected: image.Pt(300, 100)},
		{name: "thin strip", width: 20000, height: 1, baseSize: 100, expected: image.Pt(2000000, 100)},
		{name: "upscale", width: 5, height: 9, baseSize: 64, expected: image.Pt(64, 115)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := SquareIntermediateSize(tt.width, tt.height, tt.baseSize)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, image.Pt(w, h))
			assert.GreaterOrEqual(t, min(w, h), tt.baseSize)
		})
	}

	_, _, err := SquareIntermediateSize(10, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCenterSquare(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          int
		expected      image.Rectangle
	}{
		{name: "landscape", width: 200, height: 100, size: 100, expected: image.Rect(50, 0, 150, 100)},
		{name: "portrait", width: 100, height: 300, size: 100, expected: image.Rect(0, 100, 100, 200)},
		{name: "odd sizes", width: 101, height: 100, size: 100, expected: image.Rect(0, 0, 100, 100)},
		{name: "odd square", width: 9, height: 9, size: 3, expected: image.Rect(3, 3, 6, 6)},
		{name: "clamped to far edge", width: 101, height: 101, size: 101, expected: image.Rect(0, 0, 101, 101)},
		{name: "clamped to origin", width: 99, height: 120, size: 100, expected: image.Rect(0, 10, 100, 110)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CenterSquare(tt.width, tt.height, tt.size))
		})
	}
}

func TestCropSquare_Scenario(t *testing.T) {
	src := getTestImage(200, 100)

	cropped, err := CropSquare(src, 100, NearestNeighborFilter)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), cropped.Bounds())

	// The intermediate keeps 200x100, so the crop starts at x=50.
	assert.Equal(t, src.NRGBAAt(50, 0), cropped.NRGBAAt(0, 0))
	assert.Equal(t, src.NRGBAAt(149, 99), cropped.NRGBAAt(99, 99))
}

// TestCropSquare_ExactSize checks that the output is always baseSize x baseSize.
func TestCropSquare_ExactSize(t *testing.T) {
	for _, width := range []int{1, 2, 7, 99, 100, 101, 333, 640} {
		for _, height := range []int{1, 3, 50, 100, 239, 480} {
			for _, baseSize := range []int{1, 16, 100, 129} {
				// Skip shapes whose intermediate would be unreasonably large.
				if baseSize*max(width, height)/min(width, height) > 20000 {
					continue
				}
				cropped, err := CropSquare(getTestImage(width, height), baseSize, BilinearFilter)
				require.NoError(t, err, "%dx%d -> %d", width, height, baseSize)
				assert.Equal(t, baseSize, cropped.Bounds().Dx(), "%dx%d -> %d", width, height, baseSize)
				assert.Equal(t, baseSize, cropped.Bounds().Dy(), "%dx%d -> %d", width, height, baseSize)
			}
		}
	}
}

func TestCropSquare_Centered(t *testing.T) {
	// A single marker pixel in the middle of a wide image must land in the
	// middle of the crop.
	src := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	marker := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	src.SetNRGBA(200, 50, marker)

	cropped, err := CropSquare(src, 100, NearestNeighborFilter)
	require.NoError(t, err)
	assert.Equal(t, marker, cropped.NRGBAAt(50, 50))
}

func TestCropSquare_DoesNotModifySource(t *testing.T) {
	src := getTestImage(30, 60)
	before := append([]uint8(nil), src.Pix...)

	_, err := CropSquare(src, 20, BicubicFilter)
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix)
}

func TestCropSquare_InvalidArguments(t *testing.T) {
	src := getTestImage(20, 10)

	for _, baseSize := range []int{0, -5} {
		cropped, err := CropSquare(src, baseSize, BilinearFilter)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Nil(t, cropped)
	}

	cropped, err := CropSquare(nil, 10, BilinearFilter)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, cropped)
}

func BenchmarkCropSquare(b *testing.B) {
	src := getTestImage(1920, 1080)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := CropSquare(src, 224, BilinearFilter); err != nil {
			b.Fatal(err)
		}
	}
}
