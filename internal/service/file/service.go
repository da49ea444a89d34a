package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/cmlabs-hris/applicant-intake-go/internal/domain/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/storage"
)

const (
	profileImageMaxWidth  = 600
	profileImageMaxHeight = 800
	profileImageQuality   = 85
)

type FileService interface {
	// UploadDocument stores a supporting document and returns its file identifier
	UploadDocument(ctx context.Context, applicantID string, category applicant.DocumentCategory, file io.Reader, filename string) (string, error)

	// UploadProfileImage stores a JPEG copy of the photo, scaled to fit 600x800
	UploadProfileImage(ctx context.Context, applicantID string, file io.Reader, filename string) (string, error)

	// Open returns the stored file; the caller closes it
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)

	DeleteFile(ctx context.Context, fileID string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var documentContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// UploadDocument stores the file as documents/{applicantID}/{category}-{uuid}{ext}
func (s *fileServiceImpl) UploadDocument(ctx context.Context, applicantID string, category applicant.DocumentCategory, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := documentContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: only pdf, jpg, jpeg, png allowed", applicant.ErrInvalidFileType)
	}

	key := path.Join("documents", applicantID, fmt.Sprintf("%s-%s%s", category, uuid.New().String(), ext))

	fileID, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return fileID, nil
}

func (s *fileServiceImpl) UploadProfileImage(ctx context.Context, applicantID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("%w: only jpg, jpeg, png allowed", applicant.ErrInvalidFileType)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode image: %v", applicant.ErrInvalidFileType, err)
	}

	// Always stored as JPEG so PNG uploads are converted
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitImage(img, profileImageMaxWidth, profileImageMaxHeight), &jpeg.Options{Quality: profileImageQuality}); err != nil {
		return "", fmt.Errorf("failed to encode JPEG: %w", err)
	}

	key := path.Join("profile-images", applicantID, uuid.New().String()+".jpg")
	fileID, err := s.storage.Upload(ctx, buf, key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload profile image: %w", err)
	}

	return fileID, nil
}

func (s *fileServiceImpl) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	rc, err := s.storage.Download(ctx, fileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, applicant.ErrDocumentNotFound
		}
		return nil, err
	}
	return rc, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, fileID string) error {
	return s.storage.Delete(ctx, fileID)
}

// ==================== HELPER FUNCTIONS ====================

// fitImage scales src down to fit within maxWidth x maxHeight, keeping the aspect
// ratio. Smaller images are returned unchanged.
func fitImage(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return src
	}

	scale := min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	newWidth := max(1, int(float64(width)*scale))
	newHeight := max(1, int(float64(height)*scale))

	return resizeImage(src, newWidth, newHeight)
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
