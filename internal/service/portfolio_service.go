package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/pkg/utils"
	"go-gin-portfolio/pkg/validation"
)

type PortfolioService struct {
	repo  domain.PortfolioRepository
	log   *zap.Logger
	newID func() string
	seed  singleflight.Group
}

func NewPortfolioService(repo domain.PortfolioRepository, log *zap.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, log: log, newID: utils.NewID}
}

// Get never fails: visitors see the default template when nothing is stored or the store is down.
func (s *PortfolioService) Get(ctx context.Context) *domain.Portfolio {
	p, err := s.repo.Get(ctx)
	if err != nil {
		s.log.Error("load portfolio failed, serving template", zap.Error(err))
		return domain.DefaultPortfolio()
	}
	if p == nil {
		return domain.DefaultPortfolio()
	}
	return p
}

// Initialize stores the default template unless a portfolio exists.
func (s *PortfolioService) Initialize(ctx context.Context) (*domain.Portfolio, bool, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if p != nil {
		return p, false, nil
	}
	created, err := s.seedTemplate(ctx, "")
	if err != nil {
		return nil, false, err
	}
	p, err = s.mustGet(ctx)
	return p, created, err
}

// loadForWrite returns the stored portfolio, seeding it from the template with the
// collection empty emptied when nothing is stored yet.
func (s *PortfolioService) loadForWrite(ctx context.Context, empty domain.Collection) (*domain.Portfolio, error) {
	p, err := s.repo.Get(ctx)
	if err != nil || p != nil {
		return p, err
	}
	if _, err := s.seedTemplate(ctx, empty); err != nil {
		return nil, err
	}
	return s.mustGet(ctx)
}

func (s *PortfolioService) seedTemplate(ctx context.Context, empty domain.Collection) (bool, error) {
	v, err, _ := s.seed.Do("seed:"+string(empty), func() (any, error) {
		tpl := domain.DefaultPortfolio()
		tpl.Clear(empty)
		tpl.EnsureItemIDs(s.newID)
		created, err := s.repo.Create(context.WithoutCancel(ctx), tpl)
		if err == nil && created {
			s.log.Info("portfolio seeded from template", zap.String("emptied", string(empty)))
		}
		return created, err
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (s *PortfolioService) mustGet(ctx context.Context) (*domain.Portfolio, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("portfolio missing after seeding")
	}
	return p, nil
}

// Replace overwrites each top-level key present in body with its new value. Keys that are
// absent keep their stored value; nested objects are not merged.
func (s *PortfolioService) Replace(ctx context.Context, body []byte) (*domain.Portfolio, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.Invalid("invalid portfolio payload", validation.ToDetails(err))
	}

	p, err := s.loadForWrite(ctx, "")
	if err != nil {
		return nil, err
	}

	details := map[string]string{}
	for key, raw := range fields {
		var err error
		switch key {
		case "personalInfo":
			var v domain.PersonalInfo
			err = json.Unmarshal(raw, &v)
			p.PersonalInfo = v
		case "socialLinks":
			var v domain.SocialLinks
			err = json.Unmarshal(raw, &v)
			p.SocialLinks = v
		case string(domain.CollectionSkills):
			err = replaceItems(raw, &p.Skills)
		case string(domain.CollectionProjects):
			err = replaceItems(raw, &p.Projects)
		case string(domain.CollectionExperience):
			err = replaceItems(raw, &p.Experience)
		case string(domain.CollectionEducation):
			err = replaceItems(raw, &p.Education)
		}
		if err != nil {
			for k, msg := range validation.ToDetails(err) {
				if k == "body" {
					k = key
				} else {
					k = key + "." + k
				}
				details[k] = msg
			}
		}
	}
	if len(details) > 0 {
		return nil, domain.Invalid("invalid portfolio payload", details)
	}

	p.EnsureItemIDs(s.newID)
	if err := check(p, "invalid portfolio"); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func replaceItems[T any](raw json.RawMessage, dst *[]T) error {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	*dst = items
	return nil
}

// AddItem validates item, gives it a fresh id and appends it to its section.
func AddItem[T any, P domain.ItemPtr[T]](ctx context.Context, s *PortfolioService, sec domain.Section[T], item T) (*T, error) {
	P(&item).SetID("")
	if err := check(item, "invalid "+sec.Label); err != nil {
		return nil, err
	}
	p, err := s.loadForWrite(ctx, sec.Name)
	if err != nil {
		return nil, err
	}
	P(&item).SetID(s.newID())
	items := sec.Items(p)
	*items = append(*items, item)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("portfolio item added", zap.String("collection", string(sec.Name)), zap.String("id", P(&item).GetID()))
	return &item, nil
}

// UpdateItem merges the JSON object patch over the stored item. Keys missing from patch
// keep their value and the id never changes.
func UpdateItem[T any, P domain.ItemPtr[T]](ctx context.Context, s *PortfolioService, sec domain.Section[T], id string, patch []byte) (*T, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(sec.Label)
	}
	items := *sec.Items(p)
	i := domain.IndexOf[T, P](items, id)
	if i < 0 {
		return nil, domain.NotFound(sec.Label)
	}

	next := items[i]
	if err := json.Unmarshal(patch, P(&next)); err != nil {
		return nil, domain.Invalid("invalid "+sec.Label, validation.ToDetails(err))
	}
	P(&next).SetID(id)
	if err := check(next, "invalid "+sec.Label); err != nil {
		return nil, err
	}
	items[i] = next
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return &next, nil
}

func DeleteItem[T any, P domain.ItemPtr[T]](ctx context.Context, s *PortfolioService, sec domain.Section[T], id string) error {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound(sec.Label)
	}
	items := sec.Items(p)
	i := domain.IndexOf[T, P](*items, id)
	if i < 0 {
		return domain.NotFound(sec.Label)
	}
	*items = slices.Delete(*items, i, i+1)
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	s.log.Info("portfolio item deleted", zap.String("collection", string(sec.Name)), zap.String("id", id))
	return nil
}
