package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("image must be png, jpeg, or webp")
	ErrDecodeFailed      = errors.New("unable to decode image")
	ErrInvalidDataURL    = errors.New("invalid data url")
	ErrTooLarge          = errors.New("image exceeds maximum size")
)

// CropSpec describes an optional crop rectangle selected by the client.
// Zero values mean "no explicit crop": a centered square is used.
type CropSpec struct {
	X    int
	Y    int
	Size int
}

// DecodeDataURL decodes a base64 data URL (data:image/png;base64,...) and
// returns the raw bytes after verifying the declared mime against the
// sniffed content type.
func DecodeDataURL(value string, maxBytes int) ([]byte, string, error) {
	raw := strings.TrimSpace(value)
	if !strings.HasPrefix(raw, "data:") {
		return nil, "", ErrInvalidDataURL
	}
	comma := strings.Index(raw, ",")
	if comma <= 5 {
		return nil, "", ErrInvalidDataURL
	}
	meta := raw[5:comma]
	payload := raw[comma+1:]
	if !strings.HasSuffix(strings.ToLower(meta), ";base64") {
		return nil, "", ErrInvalidDataURL
	}
	mime := strings.TrimSpace(meta[:len(meta)-len(";base64")])
	if mime == "" {
		return nil, "", ErrInvalidDataURL
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return nil, "", ErrInvalidDataURL
	}
	if maxBytes > 0 && len(decoded) > maxBytes {
		return nil, "", ErrTooLarge
	}

	detected := http.DetectContentType(decoded)
	if !strings.EqualFold(detected, mime) {
		return nil, "", ErrInvalidDataURL
	}
	return decoded, detected, nil
}

// ProcessSquare crops raw image bytes to a square region and scales the
// result to target x target pixels, returning PNG bytes. Used for profile
// pictures (256x256).
func ProcessSquare(raw []byte, crop CropSpec, target int) ([]byte, error) {
	img, err := decode(raw)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrDecodeFailed
	}

	minDim := width
	if height < minDim {
		minDim = height
	}
	cropX, cropY, cropSize := crop.X, crop.Y, crop.Size
	if cropSize <= 0 || cropSize > minDim {
		cropSize = minDim
		cropX = (width - cropSize) / 2
		cropY = (height - cropSize) / 2
	}
	if cropX < 0 {
		cropX = 0
	}
	if cropY < 0 {
		cropY = 0
	}
	if cropX+cropSize > width {
		cropX = width - cropSize
	}
	if cropY+cropSize > height {
		cropY = height - cropSize
	}

	cropRect := image.Rect(0, 0, cropSize, cropSize)
	cropped := image.NewRGBA(cropRect)
	srcPoint := image.Point{X: bounds.Min.X + cropX, Y: bounds.Min.Y + cropY}
	draw.Draw(cropped, cropRect, img, srcPoint, draw.Src)

	return scalePNG(cropped, target, target)
}

// ProcessBounded scales raw image bytes so the longest edge is at most
// maxEdge, preserving aspect ratio. Used for freeform logo uploads.
func ProcessBounded(raw []byte, maxEdge int) ([]byte, error) {
	img, err := decode(raw)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrDecodeFailed
	}

	targetW, targetH := width, height
	if width > maxEdge || height > maxEdge {
		if width >= height {
			targetW = maxEdge
			targetH = height * maxEdge / width
		} else {
			targetH = maxEdge
			targetW = width * maxEdge / height
		}
		if targetW < 1 {
			targetW = 1
		}
		if targetH < 1 {
			targetH = 1
		}
	}

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(src, src.Bounds(), img, bounds.Min, draw.Src)

	return scalePNG(src, targetW, targetH)
}

func decode(raw []byte) (image.Image, error) {
	mime := http.DetectContentType(raw)
	switch mime {
	case "image/png", "image/jpeg", "image/webp":
	default:
		return nil, ErrUnsupportedFormat
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		// The stdlib registry has no webp decoder; fall back explicitly.
		if decoded, decodeErr := webp.Decode(bytes.NewReader(raw)); decodeErr == nil {
			return decoded, nil
		}
		return nil, ErrDecodeFailed
	}
	return img, nil
}

func scalePNG(src *image.RGBA, width, height int) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
