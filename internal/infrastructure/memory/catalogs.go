package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

type seedTypeRepo struct {
	st *state
}

func (r *seedTypeRepo) Create(_ context.Context, s *entity.SeedType) error {
	for _, other := range r.st.seedTypes {
		if other.ID == s.ID || other.Name == s.Name {
			return fmt.Errorf("%w: tipo de semilla %s", domain.ErrDuplicate, s.Name)
		}
	}
	cp := *s
	r.st.seedTypes[s.ID] = &cp
	return nil
}

func (r *seedTypeRepo) GetByID(_ context.Context, id string) (*entity.SeedType, error) {
	s, ok := r.st.seedTypes[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *seedTypeRepo) List(_ context.Context, limit, offset int) ([]*entity.SeedType, error) {
	list := make([]*entity.SeedType, 0, len(r.st.seedTypes))
	for _, s := range r.st.seedTypes {
		cp := *s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

type clientRepo struct {
	st *state
}

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	if _, ok := r.st.clients[c.ID]; ok {
		return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, c.ID)
	}
	cp := *c
	r.st.clients[c.ID] = &cp
	return nil
}

func (r *clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := r.st.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *clientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	list := make([]*entity.Client, 0, len(r.st.clients))
	for _, c := range r.st.clients {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, offset), nil
}
