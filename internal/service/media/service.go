package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/punchstack/punchclock-backend-go/internal/domain/employee"
	"github.com/punchstack/punchclock-backend-go/internal/domain/media"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/imaging"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/storage"
)

const (
	profilePictureSize = 256
	logoMaxEdge        = 1024
	maxUploadBytes     = 10 << 20 // 10 MiB
)

type MediaServiceImpl struct {
	media.BrandingRepository
	employeeRepository employee.EmployeeRepository
	fileStorage        storage.FileStorage
}

func NewMediaService(brandingRepo media.BrandingRepository, employeeRepo employee.EmployeeRepository, fileStorage storage.FileStorage) media.MediaService {
	return &MediaServiceImpl{
		BrandingRepository: brandingRepo,
		employeeRepository: employeeRepo,
		fileStorage:        fileStorage,
	}
}

func rawBytes(req media.UploadRequest) ([]byte, error) {
	if len(req.Raw) > 0 {
		if len(req.Raw) > maxUploadBytes {
			return nil, imaging.ErrTooLarge
		}
		return req.Raw, nil
	}
	raw, _, err := imaging.DecodeDataURL(req.Image, maxUploadBytes)
	return raw, err
}

func cropSpec(req media.UploadRequest) imaging.CropSpec {
	if req.Crop == nil {
		return imaging.CropSpec{}
	}
	return *req.Crop
}

// UploadProfilePicture implements media.MediaService. The new image is
// written under a fresh name before the database pointer moves, so a crash
// in between leaves the old picture intact.
func (s *MediaServiceImpl) UploadProfilePicture(ctx context.Context, employeeID string, req media.UploadRequest) (media.ImageResponse, error) {
	if err := req.Validate(); err != nil {
		return media.ImageResponse{}, err
	}

	emp, err := s.employeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return media.ImageResponse{}, err
	}

	raw, err := rawBytes(req)
	if err != nil {
		return media.ImageResponse{}, err
	}

	processed, err := imaging.ProcessSquare(raw, cropSpec(req), profilePictureSize)
	if err != nil {
		return media.ImageResponse{}, err
	}

	path := fmt.Sprintf("profile_pictures/%s/%s.png", employeeID, uuid.NewString())
	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(processed), path, "image/png"); err != nil {
		return media.ImageResponse{}, fmt.Errorf("failed to store profile picture: %w", err)
	}

	if err := s.employeeRepository.UpdateProfilePicture(ctx, employeeID, &path); err != nil {
		_ = s.fileStorage.Delete(ctx, path)
		return media.ImageResponse{}, err
	}

	if emp.ProfilePicturePath != nil {
		_ = s.fileStorage.Delete(ctx, *emp.ProfilePicturePath)
	}

	url, err := s.fileStorage.GetURL(ctx, path, 0)
	if err != nil {
		return media.ImageResponse{}, err
	}
	return media.ImageResponse{URL: url}, nil
}

// GetProfilePicture implements media.MediaService.
func (s *MediaServiceImpl) GetProfilePicture(ctx context.Context, employeeID string) (media.ImageResponse, error) {
	emp, err := s.employeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return media.ImageResponse{}, err
	}
	if emp.ProfilePicturePath == nil {
		return media.ImageResponse{}, media.ErrPictureNotFound
	}

	url, err := s.fileStorage.GetURL(ctx, *emp.ProfilePicturePath, 0)
	if err != nil {
		return media.ImageResponse{}, err
	}
	return media.ImageResponse{URL: url}, nil
}

// DeleteProfilePicture implements media.MediaService.
func (s *MediaServiceImpl) DeleteProfilePicture(ctx context.Context, employeeID string) error {
	emp, err := s.employeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.ProfilePicturePath == nil {
		return media.ErrPictureNotFound
	}

	if err := s.employeeRepository.UpdateProfilePicture(ctx, employeeID, nil); err != nil {
		return err
	}
	_ = s.fileStorage.Delete(ctx, *emp.ProfilePicturePath)
	return nil
}

// UploadLogo implements media.MediaService. Logos keep their aspect ratio;
// only oversized images are scaled down.
func (s *MediaServiceImpl) UploadLogo(ctx context.Context, req media.UploadRequest) (media.ImageResponse, error) {
	if err := req.Validate(); err != nil {
		return media.ImageResponse{}, err
	}

	raw, err := rawBytes(req)
	if err != nil {
		return media.ImageResponse{}, err
	}

	processed, err := imaging.ProcessBounded(raw, logoMaxEdge)
	if err != nil {
		return media.ImageResponse{}, err
	}

	previous, err := s.BrandingRepository.GetLogoPath(ctx)
	if err != nil {
		return media.ImageResponse{}, err
	}

	path := fmt.Sprintf("branding/logo_%s.png", uuid.NewString())
	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(processed), path, "image/png"); err != nil {
		return media.ImageResponse{}, fmt.Errorf("failed to store logo: %w", err)
	}

	if err := s.BrandingRepository.SetLogoPath(ctx, &path); err != nil {
		_ = s.fileStorage.Delete(ctx, path)
		return media.ImageResponse{}, err
	}

	if previous != nil {
		_ = s.fileStorage.Delete(ctx, *previous)
	}

	url, err := s.fileStorage.GetURL(ctx, path, 0)
	if err != nil {
		return media.ImageResponse{}, err
	}
	return media.ImageResponse{URL: url}, nil
}

// GetLogo implements media.MediaService.
func (s *MediaServiceImpl) GetLogo(ctx context.Context) (media.ImageResponse, error) {
	path, err := s.BrandingRepository.GetLogoPath(ctx)
	if err != nil {
		return media.ImageResponse{}, err
	}
	if path == nil {
		return media.ImageResponse{}, media.ErrLogoNotFound
	}

	url, err := s.fileStorage.GetURL(ctx, *path, 0)
	if err != nil {
		return media.ImageResponse{}, err
	}
	return media.ImageResponse{URL: url}, nil
}

// DeleteLogo implements media.MediaService.
func (s *MediaServiceImpl) DeleteLogo(ctx context.Context) error {
	path, err := s.BrandingRepository.GetLogoPath(ctx)
	if err != nil {
		return err
	}
	if path == nil {
		return media.ErrLogoNotFound
	}

	if err := s.BrandingRepository.SetLogoPath(ctx, nil); err != nil {
		return err
	}
	_ = s.fileStorage.Delete(ctx, *path)
	return nil
}
