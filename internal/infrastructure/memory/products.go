package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

type productRepo struct {
	st *state
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.st.products[p.ID]; ok {
		return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
	}
	if err := r.checkOccupancy(p); err != nil {
		return err
	}
	r.st.products[p.ID] = p.Clone()
	r.st.track(p.ID)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product, expectedVersion int) error {
	cur, ok := r.st.products[p.ID]
	if !ok || cur.Version != expectedVersion {
		return domain.Conflictf("producto %s modificado concurrentemente (versión esperada %d)", p.ID, expectedVersion)
	}
	if err := r.checkOccupancy(p); err != nil {
		return err
	}
	r.st.products[p.ID] = p.Clone()
	return nil
}

// checkOccupancy equivale al índice único parcial de PostgreSQL sobre location_id.
func (r *productRepo) checkOccupancy(p *entity.Product) error {
	if !p.Status.Active() || p.LocationID == nil {
		return nil
	}
	for id, other := range r.st.products {
		if id != p.ID && other.Status.Active() && other.LocationID != nil && *other.LocationID == *p.LocationID {
			return domain.Conflictf("la ubicación %s ya está ocupada", *p.LocationID)
		}
	}
	return nil
}

func (r *productRepo) FindActiveByLocation(_ context.Context, locationID string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.Status.Active() && p.LocationID != nil && *p.LocationID == locationID {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (r *productRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.st.products {
		if p.BatchID != nil && *p.BatchID == batchID {
			list = append(list, p.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool { return r.st.seq[list[i].ID] < r.st.seq[list[j].ID] })
	return list, nil
}
