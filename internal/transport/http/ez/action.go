package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/transport/http/middleware"
	resp "go-gin-portfolio/internal/transport/http/response"
	"go-gin-portfolio/pkg/validation"
)

type Binder string

const (
	BindJSON  Binder = "json"  // request body into I
	BindQuery Binder = "query" // ?a=b into I
	BindRaw   Binder = "raw"   // raw body into I, which must be []byte
	BindNone  Binder = "none"  // handler reads c.Param / c.PostForm itself
)

// AErr is an error with the status and message to answer with.
type AErr struct {
	Code    int
	Msg     string
	Details map[string]string
	Err     error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// FromError maps domain errors onto AErr. Unknown errors become a 500 whose message
// does not leak the cause.
func FromError(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return &AErr{Code: resp.CodeBadRequest, Msg: ve.Error(), Details: ve.Details, Err: err}
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrWeakPassword):
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrDuplicateUsername), errors.Is(err, domain.ErrDuplicateEmail):
		return &AErr{Code: resp.CodeConflict, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &AErr{Code: resp.CodeUnauthorized, Msg: "Invalid credentials", Err: err}
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrRegistrationClosed):
		return &AErr{Code: resp.CodeForbidden, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return &AErr{Code: resp.CodeNotFound, Msg: err.Error(), Err: err}
	}
	return &AErr{Code: resp.CodeServerError, Msg: resp.CodeMsgMap[resp.CodeServerError], Err: err}
}

// Abort answers with the envelope for err. Server errors are logged with their cause.
func (e EZ) Abort(c *gin.Context, err error) {
	ae := FromError(err)
	if ae.Code >= http.StatusInternalServerError && e.log != nil {
		e.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("rid", c.GetString(middleware.KeyRequestID)),
			zap.Error(err))
	}
	r := resp.Error(ae.Code, ae.Msg)
	r.Details = ae.Details
	c.AbortWithStatusJSON(ae.Code, r)
}

// Action declares one endpoint: I is bound from the request, O is the response data.
type Action[I any, O any] struct {
	Method  string // GET / POST / PUT / DELETE
	Path    string // e.g. "/auth/login", "/contact/:id"
	Binder  Binder
	Status  int    // success status, 200 when zero
	Msg     string // success message
	Use     []gin.HandlerFunc
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			e.Abort(c, err)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.Abort(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, resp.Message(a.Msg, out))
	}

	handlers := append(append([]gin.HandlerFunc{}, a.Use...), h)
	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, handlers...)
	case http.MethodPut:
		e.g.PUT(a.Path, handlers...)
	case http.MethodDelete:
		e.g.DELETE(a.Path, handlers...)
	default:
		e.g.POST(a.Path, handlers...)
	}
}

func bind[I any](c *gin.Context, b Binder, in *I) error {
	var err error
	switch b {
	case BindJSON:
		err = c.ShouldBindJSON(in)
	case BindQuery:
		err = c.ShouldBindQuery(in)
	case BindRaw:
		raw, rerr := c.GetRawData()
		if rerr != nil {
			return bodyError(rerr)
		}
		if p, ok := any(in).(*[]byte); ok {
			*p = raw
		}
		return nil
	}
	if err != nil {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &AErr{Code: resp.CodeTooLarge, Msg: "request body too large", Err: err}
	}
	return &AErr{Code: resp.CodeBadRequest, Msg: "invalid request body", Details: validation.ToDetails(err), Err: err}
}
