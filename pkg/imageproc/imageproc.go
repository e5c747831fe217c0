package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/devfolio/devfolio-api/pkg/apperror"
)

// MaxFileSize is the upload ceiling, 2 MiB.
const MaxFileSize = 2 * 1024 * 1024

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWebP = "image/webp"
)

var allowedTypes = map[string]bool{
	MIMEJPEG: true,
	MIMEPNG:  true,
	MIMEWebP: true,
}

// Preset is a named target box for resizing before upload.
type Preset struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

var (
	ProfilePreset = Preset{MaxWidth: 800, MaxHeight: 800, Quality: 90}
	ProjectPreset = Preset{MaxWidth: 1200, MaxHeight: 630, Quality: 85}
)

type FileInfo struct {
	Name string
	Size int64
	MIME string
}

type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks an upload against the size ceiling and the MIME allow-list.
// Every violation is reported, not just the first.
func Validate(f *FileInfo) ValidationResult {
	var errs []string

	if f == nil {
		return ValidationResult{Valid: false, Errors: []string{"No file selected"}}
	}

	if f.Size > MaxFileSize {
		errs = append(errs, fmt.Sprintf("File size must be less than %dMB", MaxFileSize/(1024*1024)))
	}

	if !allowedTypes[f.MIME] {
		errs = append(errs, "Only JPEG, PNG, and WebP files are allowed")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

type ResizeResult struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Resize decodes src, scales it down to fit within maxWidth x maxHeight while
// preserving aspect ratio, and re-encodes at the given quality. Images already
// inside the box keep their natural dimensions; output may be smaller than the
// box on one axis since no cropping is performed. WebP sources are re-encoded
// as JPEG: there is no pure-Go webp encoder.
func Resize(src io.Reader, maxWidth, maxHeight, quality int) (*ResizeResult, error) {
	img, format, err := image.Decode(src)
	if err != nil {
		return nil, apperror.NewInvalidInput("cannot decode image", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	outW, outH := fitWithin(width, height, maxWidth, maxHeight)

	out := img
	if outW != width || outH != height {
		dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	mime := MIMEJPEG
	switch format {
	case "png":
		mime = MIMEPNG
		err = png.Encode(&buf, out)
	default:
		err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, apperror.NewInternal("cannot encode resized image", err)
	}

	return &ResizeResult{Data: buf.Bytes(), MIME: mime, Width: outW, Height: outH}, nil
}

// ResizeToPreset applies one of the named target boxes.
func ResizeToPreset(src io.Reader, p Preset) (*ResizeResult, error) {
	return Resize(src, p.MaxWidth, p.MaxHeight, p.Quality)
}

// fitWithin computes output dimensions: the long edge is clamped to its bound
// and the other edge recomputed to keep the source ratio. Never upscales.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width > height {
		if width > maxWidth {
			height = int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
			width = maxWidth
		}
	} else {
		if height > maxHeight {
			width = int(math.Round(float64(width) * float64(maxHeight) / float64(height)))
			height = maxHeight
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Extension maps an output MIME type to the file extension used in storage paths.
func Extension(mime string) string {
	switch mime {
	case MIMEPNG:
		return "png"
	case MIMEWebP:
		return "webp"
	default:
		return "jpg"
	}
}
