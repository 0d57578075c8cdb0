package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/service"
	"go-gin-portfolio/internal/transport/http/ez"
	resp "go-gin-portfolio/internal/transport/http/response"
)

type ContactHandler struct {
	svc *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Priority() int { return 30 }

type listContactsIn struct {
	Status string `form:"status"`
}

type statusIn struct {
	Status string `json:"status"`
}

type testEmailOut struct {
	Configured bool `json:"configured"`
}

func (h *ContactHandler) Mount(r ez.Routes) {
	ez.RegisterAction(r.Public, ez.Action[service.SubmitInput, okOut]{
		Method: http.MethodPost,
		Path:   "/contact",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Msg:    "Message sent successfully! I'll get back to you soon.",
		Use:    r.Throttled(),
		Handler: func(c *gin.Context, in *service.SubmitInput) (okOut, error) {
			in.IPAddress = c.ClientIP()
			in.UserAgent = c.Request.UserAgent()
			if _, err := h.svc.Submit(c, *in); err != nil {
				return okOut{}, err
			}
			return success, nil
		},
	})

	ez.RegisterAction(r.Admin, ez.Action[listContactsIn, []domain.Contact]{
		Method: http.MethodGet,
		Path:   "/contact",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listContactsIn) ([]domain.Contact, error) {
			return h.svc.List(c, in.Status)
		},
	})

	ez.RegisterAction(r.Admin, ez.Action[statusIn, *domain.Contact]{
		Method: http.MethodPut,
		Path:   "/contact/:id",
		Binder: ez.BindJSON,
		Msg:    "Contact status updated",
		Handler: func(c *gin.Context, in *statusIn) (*domain.Contact, error) {
			return h.svc.SetStatus(c, c.Param("id"), in.Status)
		},
	})

	ez.RegisterAction(r.Admin, ez.Action[struct{}, okOut]{
		Method: http.MethodDelete,
		Path:   "/contact/:id",
		Binder: ez.BindNone,
		Msg:    "Contact deleted successfully",
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			if err := h.svc.Delete(c, c.Param("id")); err != nil {
				return okOut{}, err
			}
			return success, nil
		},
	})

	r.Admin.Group().POST("/contact/test-email", func(c *gin.Context) {
		err := h.svc.TestEmail(c)
		switch {
		case errors.Is(err, service.ErrMailNotConfigured):
			c.JSON(http.StatusOK, resp.Message("Email is not configured", testEmailOut{Configured: false}))
		case err != nil:
			r.Admin.Abort(c, ez.Internal("Failed to send test email. Check your email configuration.", err))
		default:
			c.JSON(http.StatusOK, resp.Message("Test email sent successfully! Check your inbox.", testEmailOut{Configured: true}))
		}
	})
}
