package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"go-gin-portfolio/internal/core/storage"
	"go-gin-portfolio/internal/domain"
)

// UploadRule describes what one form field accepts.
type UploadRule struct {
	Field     string
	Kind      storage.Kind
	Allow     func(m *mimetype.MIME) bool
	TypeError string
}

var (
	ProfileImageRule = UploadRule{
		Field:     "profileImage",
		Kind:      storage.KindImages,
		Allow:     func(m *mimetype.MIME) bool { return strings.HasPrefix(m.String(), "image/") },
		TypeError: "Only image files are allowed for profile images",
	}
	ResumeRule = UploadRule{
		Field: "resume",
		Kind:  storage.KindDocuments,
		Allow: func(m *mimetype.MIME) bool {
			return m.Is("application/pdf") ||
				m.Is("application/msword") ||
				m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		},
		TypeError: "Only PDF and Word documents are allowed for resumes",
	}
)

type UploadService struct {
	store    storage.Store
	maxBytes int64
	now      func() time.Time
}

func NewUploadService(store storage.Store, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &UploadService{store: store, maxBytes: maxBytes, now: time.Now}
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// TooLarge is the validation error for a file over the size limit.
func (s *UploadService) TooLarge() error {
	return domain.Invalid("File too large. Maximum size is "+SizeLabel(s.maxBytes)+".", nil)
}

// SizeLabel renders n as whole or fractional MB, falling back to KB and bytes below 1MB.
func SizeLabel(n int64) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', -1, 64) + "MB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', -1, 64) + "KB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

func (s *UploadService) SaveProfileImage(ctx context.Context, fh *multipart.FileHeader) (storage.Object, error) {
	return s.Save(ctx, ProfileImageRule, fh)
}

func (s *UploadService) SaveResume(ctx context.Context, fh *multipart.FileHeader) (storage.Object, error) {
	return s.Save(ctx, ResumeRule, fh)
}

// SaveFiles stores whichever of the profile image and resume are present, keyed by field.
func (s *UploadService) SaveFiles(ctx context.Context, files map[string]*multipart.FileHeader) (map[string]storage.Object, error) {
	out := map[string]storage.Object{}
	for _, rule := range []UploadRule{ProfileImageRule, ResumeRule} {
		fh := files[rule.Field]
		if fh == nil {
			continue
		}
		obj, err := s.Save(ctx, rule, fh)
		if err != nil {
			return nil, err
		}
		out[rule.Field] = obj
	}
	if len(out) == 0 {
		return nil, domain.Invalid("No files uploaded", nil)
	}
	return out, nil
}

// Save checks size and sniffed content type, then stores the file under a generated name.
func (s *UploadService) Save(ctx context.Context, rule UploadRule, fh *multipart.FileHeader) (storage.Object, error) {
	if fh == nil {
		return storage.Object{}, domain.Invalid("No file uploaded", map[string]string{rule.Field: "is required"})
	}
	if fh.Size > s.maxBytes {
		return storage.Object{}, s.TooLarge()
	}
	f, err := fh.Open()
	if err != nil {
		return storage.Object{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return storage.Object{}, fmt.Errorf("detect type: %w", err)
	}
	if !rule.Allow(mt) {
		return storage.Object{}, domain.Invalid(rule.TypeError, map[string]string{rule.Field: "unsupported type " + mt.String()})
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return storage.Object{}, fmt.Errorf("rewind upload: %w", err)
	}

	// extension follows the sniffed type, not the client filename
	ext := mt.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(fh.Filename))
	}
	name := fmt.Sprintf("%s-%d-%d%s", rule.Field, s.now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
	return s.store.Put(ctx, rule.Kind, name, f)
}
