package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-portfolio/pkg/validation"
)

func TestDateAcceptsBothLayouts(t *testing.T) {
	var e Experience
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-03-01","endDate":"2024-07-22T10:00:00Z"}`), &e))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.StartDate.Time())
	require.NotNil(t, e.EndDate)
	assert.Equal(t, 22, e.EndDate.Time().Day())

	b, err := json.Marshal(e.StartDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-01T00:00:00Z"`, string(b))
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDefaultPortfolioIsValid(t *testing.T) {
	p := DefaultPortfolio()
	assert.Nil(t, validation.Struct(p))
	for _, s := range p.Skills {
		assert.Empty(t, s.ID)
	}
}

func TestEnsureItemIDs(t *testing.T) {
	p := DefaultPortfolio()
	p.Skills[0].ID = "keep"
	n := 0
	p.EnsureItemIDs(func() string { n++; return "id" + strconv.Itoa(n) })

	assert.Equal(t, "keep", p.Skills[0].ID)
	for _, s := range p.Skills {
		assert.NotEmpty(t, s.ID)
	}
	assert.NotEmpty(t, p.Projects[0].ID)
	assert.NotEmpty(t, p.Experience[0].ID)
	assert.NotEmpty(t, p.Education[0].ID)
}

func TestEnsureItemIDsReplacesDuplicates(t *testing.T) {
	p := &Portfolio{Skills: []Skill{
		{ID: "x", Name: "Go"},
		{ID: "x", Name: "Rust"},
		{ID: "y", Name: "SQL"},
		{Name: "Bash"},
	}}
	n := 0
	p.EnsureItemIDs(func() string { n++; return "new" + strconv.Itoa(n) })

	assert.Equal(t, "x", p.Skills[0].ID)
	assert.Equal(t, "new1", p.Skills[1].ID)
	assert.Equal(t, "y", p.Skills[2].ID)
	assert.Equal(t, "new2", p.Skills[3].ID)
	assert.Equal(t, 1, IndexOf(p.Skills, "new1"))
}

func TestSectionsAndIndexOf(t *testing.T) {
	p := DefaultPortfolio()
	p.Clear(CollectionSkills)
	assert.Empty(t, p.Skills)

	items := Skills.Items(p)
	*items = append(*items, Skill{ID: "a"}, Skill{ID: "b"})
	assert.Len(t, p.Skills, 2)
	assert.Equal(t, 1, IndexOf(p.Skills, "b"))
	assert.Equal(t, -1, IndexOf(p.Skills, "zzz"))
}

func TestSkillValidation(t *testing.T) {
	d := validation.Struct(Skill{Name: "Go", Level: 150, Category: "Cooking"})
	require.NotNil(t, d)
	assert.Contains(t, d, "level")
	assert.Contains(t, d, "category")

	assert.Nil(t, validation.Struct(Skill{Name: "Go", Level: 100, Category: "AI/ML"}))
}

func TestExperienceRequiresStartDate(t *testing.T) {
	d := validation.Struct(Experience{Company: "c", Position: "p", Description: "d"})
	require.NotNil(t, d)
	assert.Equal(t, "is required", d["startDate"])
}

func TestErrorsMatchSentinels(t *testing.T) {
	assert.True(t, errors.Is(NotFound("Skill"), ErrNotFound))
	assert.Equal(t, "Skill not found", NotFound("Skill").Error())

	err := Invalid("bad input", map[string]string{"name": "is required"})
	assert.True(t, errors.Is(err, ErrValidation))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "is required", ve.Details["name"])
}
