package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-portfolio/internal/core/storage"
	"go-gin-portfolio/internal/service"
	"go-gin-portfolio/internal/transport/http/ez"
)

type UploadHandler struct {
	svc *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

func (h *UploadHandler) Priority() int { return 40 }

type filesOut struct {
	Files map[string]storage.Object `json:"files"`
}

func (h *UploadHandler) Mount(r ez.Routes) {
	single := func(path, msg string, rule service.UploadRule) {
		ez.RegisterAction(r.Admin, ez.Action[struct{}, storage.Object]{
			Method: http.MethodPost,
			Path:   path,
			Binder: ez.BindNone,
			Msg:    msg,
			Handler: func(c *gin.Context, _ *struct{}) (storage.Object, error) {
				fh, err := c.FormFile(rule.Field)
				if err != nil {
					return storage.Object{}, h.formError(err)
				}
				return h.svc.Save(c, rule, fh)
			},
		})
	}
	single("/upload/profile-image", "Profile image uploaded successfully", service.ProfileImageRule)
	single("/upload/resume", "Resume uploaded successfully", service.ResumeRule)

	ez.RegisterAction(r.Admin, ez.Action[struct{}, filesOut]{
		Method: http.MethodPost,
		Path:   "/upload/files",
		Binder: ez.BindNone,
		Msg:    "Files uploaded successfully",
		Handler: func(c *gin.Context, _ *struct{}) (filesOut, error) {
			form, err := c.MultipartForm()
			if err != nil {
				return filesOut{}, h.formError(err)
			}
			files := map[string]*multipart.FileHeader{}
			for field, fhs := range form.File {
				if len(fhs) > 0 {
					files[field] = fhs[0]
				}
			}
			saved, err := h.svc.SaveFiles(c, files)
			if err != nil {
				return filesOut{}, err
			}
			return filesOut{Files: saved}, nil
		},
	})
}

// formError reports a body cut off by the request size cap as an oversized file.
func (h *UploadHandler) formError(err error) error {
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return ez.BadRequest("No file uploaded")
	case errors.As(err, &mbe):
		return h.svc.TooLarge()
	}
	return ez.BadRequest("invalid multipart form")
}
