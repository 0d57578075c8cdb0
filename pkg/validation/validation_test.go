package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name" validate:"required,max=5"`
	Level int    `json:"level" validate:"min=1,max=100"`
	Kind  string `json:"kind" validate:"oneof=a b"`
}

type holder struct {
	Items []item `json:"items" validate:"dive"`
}

func TestStructValid(t *testing.T) {
	assert.Nil(t, Struct(item{Name: "go", Level: 10, Kind: "a"}))
}

func TestStructReportsJSONNames(t *testing.T) {
	d := Struct(item{Name: "toolong", Level: 101, Kind: "c"})
	require.NotNil(t, d)
	assert.Equal(t, "cannot exceed 5 characters", d["name"])
	assert.Equal(t, "must be at most 100", d["level"])
	assert.Equal(t, "must be one of: a, b", d["kind"])
}

func TestStructNestedPath(t *testing.T) {
	d := Struct(holder{Items: []item{{Name: "ok", Level: 1, Kind: "a"}, {Level: 1, Kind: "b"}}})
	require.NotNil(t, d)
	assert.Equal(t, "is required", d["items[1].name"])
}

func TestToDetailsJSONErrors(t *testing.T) {
	var it item
	err := json.Unmarshal([]byte(`{"level":"high"}`), &it)
	require.Error(t, err)
	assert.Contains(t, ToDetails(err)["level"], "must be of type")

	err = json.Unmarshal([]byte(`{"level":`), &it)
	require.Error(t, err)
	assert.NotEmpty(t, ToDetails(err)["body"])
}
