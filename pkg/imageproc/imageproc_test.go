package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func encodeJPEG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return &buf
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		file     *FileInfo
		valid    bool
		wantErrs []string
	}{
		{
			name:     "nil file",
			file:     nil,
			valid:    false,
			wantErrs: []string{"No file selected"},
		},
		{
			name:  "valid jpeg",
			file:  &FileInfo{Name: "photo.jpg", Size: 1024, MIME: MIMEJPEG},
			valid: true,
		},
		{
			name:  "valid png at exact size limit",
			file:  &FileInfo{Name: "photo.png", Size: MaxFileSize, MIME: MIMEPNG},
			valid: true,
		},
		{
			name:  "valid webp",
			file:  &FileInfo{Name: "photo.webp", Size: 500, MIME: MIMEWebP},
			valid: true,
		},
		{
			name:     "oversized",
			file:     &FileInfo{Name: "big.jpg", Size: MaxFileSize + 1, MIME: MIMEJPEG},
			valid:    false,
			wantErrs: []string{"File size must be less than 2MB"},
		},
		{
			name:     "disallowed type",
			file:     &FileInfo{Name: "anim.gif", Size: 1024, MIME: "image/gif"},
			valid:    false,
			wantErrs: []string{"Only JPEG, PNG, and WebP files are allowed"},
		},
		{
			name:  "oversized and disallowed reports both",
			file:  &FileInfo{Name: "movie.mp4", Size: MaxFileSize * 2, MIME: "video/mp4"},
			valid: false,
			wantErrs: []string{
				"File size must be less than 2MB",
				"Only JPEG, PNG, and WebP files are allowed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.file)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.wantErrs, result.Errors)
		})
	}
}

func TestResize_DownscaleWideImage(t *testing.T) {
	src := encodeJPEG(t, 1600, 800)

	result, err := Resize(src, 800, 800, 90)
	require.NoError(t, err)

	assert.Equal(t, 800, result.Width)
	assert.Equal(t, 400, result.Height)
	assert.Equal(t, MIMEJPEG, result.MIME)
	assert.NotEmpty(t, result.Data)
}

func TestResize_DownscaleTallImage(t *testing.T) {
	src := encodeJPEG(t, 600, 1200)

	result, err := Resize(src, 800, 800, 90)
	require.NoError(t, err)

	assert.Equal(t, 400, result.Width)
	assert.Equal(t, 800, result.Height)
}

func TestResize_NeverUpscales(t *testing.T) {
	src := encodePNG(t, 200, 100)

	result, err := Resize(src, 800, 800, 90)
	require.NoError(t, err)

	assert.Equal(t, 200, result.Width)
	assert.Equal(t, 100, result.Height)
}

func TestResize_PreservesAspectRatio(t *testing.T) {
	src := encodeJPEG(t, 1920, 1080)

	result, err := Resize(src, 1200, 630, 85)
	require.NoError(t, err)

	srcRatio := 1920.0 / 1080.0
	outRatio := float64(result.Width) / float64(result.Height)
	assert.InDelta(t, srcRatio, outRatio, 0.01)
	assert.LessOrEqual(t, result.Width, 1200)
}

func TestResize_PNGStaysPNG(t *testing.T) {
	src := encodePNG(t, 1000, 1000)

	result, err := Resize(src, 800, 800, 90)
	require.NoError(t, err)

	assert.Equal(t, MIMEPNG, result.MIME)
	assert.Equal(t, 800, result.Width)
	assert.Equal(t, 800, result.Height)

	decoded, format, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 800, decoded.Bounds().Dx())
}

func TestResize_GarbageInput(t *testing.T) {
	_, err := Resize(bytes.NewReader([]byte("not an image")), 800, 800, 90)
	assert.Error(t, err)
}

func TestResizeToPreset(t *testing.T) {
	src := encodeJPEG(t, 2400, 1260)

	result, err := ResizeToPreset(src, ProjectPreset)
	require.NoError(t, err)

	assert.Equal(t, 1200, result.Width)
	assert.Equal(t, 630, result.Height)
}

func TestFitWithin_TinyEdgeNeverZero(t *testing.T) {
	w, h := fitWithin(4000, 1, 800, 800)
	assert.Equal(t, 800, w)
	assert.Equal(t, 1, h)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", Extension(MIMEJPEG))
	assert.Equal(t, "png", Extension(MIMEPNG))
	assert.Equal(t, "webp", Extension(MIMEWebP))
	assert.Equal(t, "jpg", Extension("application/octet-stream"))
}
