package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"momentcanvas/internal/config"
	"momentcanvas/internal/models"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageDir         = "./images"
	DefaultImageMaxUploadMB = 10
	ImageMaxSize            = 1024
	ImageJPEGQuality        = 82
)

// SavedImage describes a stored upload: the client's original filename and
// the UUID-based name it lives under on disk.
type SavedImage struct {
	OriginalName string
	SavedName    string
}

// ImageService stores profile and diary images on local disk. Uploads are
// decoded, bounded to ImageMaxSize, and re-encoded as JPEG under a UUID
// filename so the original name never reaches the filesystem.
type ImageService struct {
	dir           string
	maxUploadSize int64
}

// NewImageService returns a new ImageService rooted at the configured dir.
func NewImageService(cfg *config.Config) *ImageService {
	dir := DefaultImageDir
	if cfg != nil && cfg.ImageDir != "" {
		dir = cfg.ImageDir
	}
	return &ImageService{
		dir:           dir,
		maxUploadSize: DefaultImageMaxUploadMB * 1024 * 1024,
	}
}

// Save validates and stores one uploaded image, returning the saved name to
// record on the user or diary row.
func (s *ImageService) Save(originalName string, content []byte) (*SavedImage, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSize {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSize/(1024*1024)))
	}

	detected := http.DetectContentType(content)
	if !isAllowedImageMIME(detected) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedImageFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	bounded := resizeToFit(decoded, ImageMaxSize, ImageMaxSize)
	encoded, err := encodeJPEG(bounded, ImageJPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	savedName := uuid.NewString() + ".jpg"
	if err := writeBytesToFile(filepath.Join(s.dir, savedName), encoded); err != nil {
		return nil, models.NewInternalError(err)
	}

	return &SavedImage{OriginalName: originalName, SavedName: savedName}, nil
}

// Resolve maps a saved name back to its on-disk path, rejecting anything that
// could escape the image directory.
func (s *ImageService) Resolve(savedName string) (string, error) {
	if !isValidSavedName(savedName) {
		return "", models.NewValidationError("Invalid image name")
	}
	path := filepath.Join(s.dir, savedName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", savedName)
		}
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// Remove deletes a stored image; a missing file is not an error.
func (s *ImageService) Remove(savedName string) error {
	if !isValidSavedName(savedName) {
		return models.NewValidationError("Invalid image name")
	}
	if err := os.Remove(filepath.Join(s.dir, savedName)); err != nil && !os.IsNotExist(err) {
		return models.NewInternalError(err)
	}
	return nil
}

// isValidSavedName accepts only the "<uuid>.jpg" names Save generates. This
// prevents path traversal via crafted name parameters.
func isValidSavedName(name string) bool {
	base, ok := strings.CutSuffix(name, ".jpg")
	if !ok {
		return false
	}
	_, err := uuid.Parse(base)
	return err == nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isSupportedImageFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
