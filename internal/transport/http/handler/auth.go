package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/service"
	"go-gin-portfolio/internal/transport/http/ez"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Priority() int { return 10 }

// loginIn accepts the username or the email in either field.
type loginIn struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meOut struct {
	User *domain.User `json:"user"`
}

type changePasswordIn struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) Mount(r ez.Routes) {
	ez.RegisterAction(r.Public, ez.Action[service.RegisterInput, *service.Session]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Msg:    "User registered successfully",
		Use:    r.Throttled(),
		Handler: func(c *gin.Context, in *service.RegisterInput) (*service.Session, error) {
			return h.svc.Register(c, *in)
		},
	})

	ez.RegisterAction(r.Public, ez.Action[loginIn, *service.Session]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Msg:    "Login successful",
		Use:    r.Throttled(),
		Handler: func(c *gin.Context, in *loginIn) (*service.Session, error) {
			id := in.Username
			if id == "" {
				id = in.Email
			}
			return h.svc.Login(c, id, in.Password)
		},
	})

	ez.RegisterAction(r.User, ez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			p, err := principal(c)
			if err != nil {
				return meOut{}, err
			}
			u, err := h.svc.Me(c, p.UserID)
			if err != nil {
				return meOut{}, err
			}
			return meOut{User: u}, nil
		},
	})

	ez.RegisterAction(r.User, ez.Action[changePasswordIn, okOut]{
		Method: http.MethodPut,
		Path:   "/auth/change-password",
		Binder: ez.BindJSON,
		Msg:    "Password changed successfully",
		Handler: func(c *gin.Context, in *changePasswordIn) (okOut, error) {
			p, err := principal(c)
			if err != nil {
				return okOut{}, err
			}
			if err := h.svc.ChangePassword(c, p.UserID, in.CurrentPassword, in.NewPassword); err != nil {
				return okOut{}, err
			}
			return success, nil
		},
	})
}
