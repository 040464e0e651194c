package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"microsite-shop/internal/apperr"
	"microsite-shop/pkg/imaging"

	"github.com/google/uuid"
)

// Storage persists an encoded file and returns its public URL.
type Storage interface {
	Save(name string, data []byte) (string, error)
}

// LocalStorage writes files under Dir and serves them below URLPrefix.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

func (l LocalStorage) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(l.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return path.Join("/", strings.Trim(l.URLPrefix, "/"), name), nil
}

type UploadService interface {
	UploadImage(r io.Reader) (string, error)
}

type uploadService struct {
	storage  Storage
	maxWidth uint
}

func NewUploadService(storage Storage, maxWidth uint) UploadService {
	return &uploadService{storage: storage, maxWidth: maxWidth}
}

// UploadImage normalises the picture to a width-capped JPEG and stores it under a random name.
func (s *uploadService) UploadImage(r io.Reader) (string, error) {
	data, err := imaging.ToJPEG(r, s.maxWidth, imaging.DefaultQuality)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return "", apperr.Validation("Unsupported image format, use PNG, JPEG or GIF")
		}
		if errors.Is(err, imaging.ErrTooLarge) {
			return "", apperr.Validation("Image dimensions are too large")
		}
		return "", apperr.Validation(fmt.Sprintf("Invalid image: %v", err))
	}

	url, err := s.storage.Save(uuid.NewString()+".jpg", data)
	if err != nil {
		return "", apperr.Internal("Failed to upload image", err)
	}
	return url, nil
}
