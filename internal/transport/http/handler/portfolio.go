package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/service"
	"go-gin-portfolio/internal/transport/http/ez"
	resp "go-gin-portfolio/internal/transport/http/response"
)

type PortfolioHandler struct {
	svc *service.PortfolioService
}

func NewPortfolioHandler(svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

func (h *PortfolioHandler) Priority() int { return 20 }

type initOut struct {
	Created   bool              `json:"created"`
	Portfolio *domain.Portfolio `json:"portfolio"`
}

func (h *PortfolioHandler) Mount(r ez.Routes) {
	ez.RegisterAction(r.Public, ez.Action[struct{}, *domain.Portfolio]{
		Method: http.MethodGet,
		Path:   "/portfolio",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Portfolio, error) {
			return h.svc.Get(c), nil
		},
	})

	ez.RegisterAction(r.Admin, ez.Action[[]byte, *domain.Portfolio]{
		Method: http.MethodPut,
		Path:   "/portfolio",
		Binder: ez.BindRaw,
		Msg:    "Portfolio updated successfully",
		Handler: func(c *gin.Context, body *[]byte) (*domain.Portfolio, error) {
			return h.svc.Replace(c, *body)
		},
	})

	r.Admin.Group().POST("/portfolio/initialize", func(c *gin.Context) {
		p, created, err := h.svc.Initialize(c)
		if err != nil {
			r.Admin.Abort(c, err)
			return
		}
		msg := "Portfolio already exists"
		if created {
			msg = "Portfolio initialized successfully"
		}
		c.JSON(http.StatusOK, resp.Message(msg, initOut{Created: created, Portfolio: p}))
	})

	mountSection(r.Admin, h.svc, domain.Skills)
	mountSection(r.Admin, h.svc, domain.Projects)
	mountSection(r.Admin, h.svc, domain.Experiences)
	mountSection(r.Admin, h.svc, domain.Educations)
}

// mountSection exposes add, update and delete for one embedded collection.
func mountSection[T any, P domain.ItemPtr[T]](e ez.EZ, svc *service.PortfolioService, sec domain.Section[T]) {
	base := "/portfolio/" + string(sec.Name)

	ez.RegisterAction(e, ez.Action[T, *T]{
		Method: http.MethodPost,
		Path:   base,
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Msg:    sec.Label + " added successfully",
		Handler: func(c *gin.Context, in *T) (*T, error) {
			return service.AddItem[T, P](c, svc, sec, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[[]byte, *T]{
		Method: http.MethodPut,
		Path:   base + "/:id",
		Binder: ez.BindRaw,
		Msg:    sec.Label + " updated successfully",
		Handler: func(c *gin.Context, patch *[]byte) (*T, error) {
			return service.UpdateItem[T, P](c, svc, sec, c.Param("id"), *patch)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, okOut]{
		Method: http.MethodDelete,
		Path:   base + "/:id",
		Binder: ez.BindNone,
		Msg:    sec.Label + " deleted successfully",
		Handler: func(c *gin.Context, _ *struct{}) (okOut, error) {
			if err := service.DeleteItem[T, P](c, svc, sec, c.Param("id")); err != nil {
				return okOut{}, err
			}
			return success, nil
		},
	})
}
