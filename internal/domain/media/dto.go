package media

import (
	"github.com/punchstack/punchclock-backend-go/internal/pkg/imaging"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/validator"
)

// UploadRequest carries an image either as raw multipart bytes (set by the
// handler) or as a base64 data URL in Image. Crop is optional; without it
// the pipeline center-crops.
type UploadRequest struct {
	Raw   []byte            `json:"-"`
	Image string            `json:"image,omitempty"`
	Crop  *imaging.CropSpec `json:"crop,omitempty"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Raw) == 0 && validator.IsEmpty(r.Image) {
		errs = append(errs, validator.ValidationError{
			Field:   "image",
			Message: "an image file or base64 data URL is required",
		})
	}
	if r.Crop != nil {
		if r.Crop.Size <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "crop.size",
				Message: "crop size must be a positive number",
			})
		}
		if r.Crop.X < 0 || r.Crop.Y < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "crop",
				Message: "crop origin must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ImageResponse struct {
	URL string `json:"url"`
}
