// Package ez registers typed handlers on gin groups and maps their errors onto the
// response envelope.
package ez

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, log *zap.Logger) EZ { return EZ{g: g, log: log} }

func (e EZ) Group() *gin.RouterGroup { return e.g }

// Routes are the access tiers a module mounts its endpoints on.
type Routes struct {
	Public EZ // anyone
	User   EZ // any authenticated account
	Admin  EZ // role admin
	// Throttle guards public writes; nil means no limit.
	Throttle gin.HandlerFunc
}

func (r Routes) Throttled() []gin.HandlerFunc {
	if r.Throttle == nil {
		return nil
	}
	return []gin.HandlerFunc{r.Throttle}
}
