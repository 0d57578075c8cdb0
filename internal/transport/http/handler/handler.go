// Package handler holds the HTTP modules of the API. Each module mounts its endpoints on
// the access tiers it is given.
package handler

import (
	"github.com/gin-gonic/gin"

	"go-gin-portfolio/internal/core/auth"
	"go-gin-portfolio/internal/transport/http/ez"
	mdw "go-gin-portfolio/internal/transport/http/middleware"
)

type okOut struct {
	OK bool `json:"ok"`
}

var success = okOut{OK: true}

func principal(c *gin.Context) (auth.Principal, error) {
	p, found := mdw.PrincipalFrom(c)
	if !found {
		return auth.Principal{}, ez.Unauthorized("No token, authorization denied")
	}
	return p, nil
}
