package domain

// Collection names an embedded item list of the portfolio.
type Collection string

const (
	CollectionSkills     Collection = "skills"
	CollectionProjects   Collection = "projects"
	CollectionExperience Collection = "experience"
	CollectionEducation  Collection = "education"
)

// Item is implemented by the pointer types of embedded portfolio entries.
type Item interface {
	GetID() string
	SetID(id string)
}

func (s *Skill) GetID() string        { return s.ID }
func (s *Skill) SetID(id string)      { s.ID = id }
func (p *Project) GetID() string      { return p.ID }
func (p *Project) SetID(id string)    { p.ID = id }
func (e *Experience) GetID() string   { return e.ID }
func (e *Experience) SetID(id string) { e.ID = id }
func (e *Education) GetID() string    { return e.ID }
func (e *Education) SetID(id string)  { e.ID = id }

// ItemPtr constrains P to be *T implementing Item.
type ItemPtr[T any] interface {
	*T
	Item
}

// Section binds a collection to its slice inside the aggregate.
type Section[T any] struct {
	Name  Collection
	Label string
	Items func(p *Portfolio) *[]T
}

var (
	Skills = Section[Skill]{
		Name: CollectionSkills, Label: "Skill",
		Items: func(p *Portfolio) *[]Skill { return &p.Skills },
	}
	Projects = Section[Project]{
		Name: CollectionProjects, Label: "Project",
		Items: func(p *Portfolio) *[]Project { return &p.Projects },
	}
	Experiences = Section[Experience]{
		Name: CollectionExperience, Label: "Experience",
		Items: func(p *Portfolio) *[]Experience { return &p.Experience },
	}
	Educations = Section[Education]{
		Name: CollectionEducation, Label: "Education",
		Items: func(p *Portfolio) *[]Education { return &p.Education },
	}
)

// IndexOf returns the position of the item with id, or -1.
func IndexOf[T any, P ItemPtr[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

// ensureIDs gives a fresh id to every item whose id is empty or repeats an earlier one.
func ensureIDs[T any, P ItemPtr[T]](items []T, newID func() string) {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		id := P(&items[i]).GetID()
		if _, dup := seen[id]; id == "" || dup {
			id = newID()
			P(&items[i]).SetID(id)
		}
		seen[id] = struct{}{}
	}
}
