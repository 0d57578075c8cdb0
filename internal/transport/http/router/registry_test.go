package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-gin-portfolio/internal/core/config"
	"go-gin-portfolio/internal/transport/http/ez"
)

type recordMod struct {
	name string
	prio int
	log  *[]string
}

func (m recordMod) Mount(ez.Routes) { *m.log = append(*m.log, m.name) }
func (m recordMod) Priority() int   { return m.prio }

type plainMod struct{ log *[]string }

func (m plainMod) Mount(ez.Routes) { *m.log = append(*m.log, "plain") }

func TestRegistryMountsByPriority(t *testing.T) {
	var order []string
	var reg Registry
	reg.Register(plainMod{&order}, recordMod{"b", 20, &order}, recordMod{"a", 10, &order}, recordMod{"c", 20, &order})
	reg.MountAll(ez.Routes{})
	assert.Equal(t, []string{"a", "b", "c", "plain"}, order)
}

func TestGinMode(t *testing.T) {
	assert.Equal(t, "release", ginMode(configApp("production")))
	assert.Equal(t, "test", ginMode(configApp("test")))
	assert.Equal(t, "debug", ginMode(configApp("development")))
}

func configApp(env string) config.App { return config.App{Env: env} }
