package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

type locationRepo struct {
	st *state
}

func (r *locationRepo) Create(_ context.Context, l *entity.Location) error {
	for _, other := range r.st.locations {
		if other.ChamberID == l.ChamberID && other.Code == l.Code {
			return fmt.Errorf("%w: código %s ya existe en la cámara", domain.ErrDuplicate, l.Code)
		}
	}
	r.st.locations[l.ID] = l.Clone()
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.st.locations[id]
	if !ok {
		return nil, nil
	}
	return l.Clone(), nil
}

// GetForUpdate no necesita bloqueo: la transacción ya tiene el store en exclusiva.
func (r *locationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Location, error) {
	return r.GetByID(ctx, id)
}

func (r *locationRepo) UpdateWeight(_ context.Context, l *entity.Location) error {
	cur, ok := r.st.locations[l.ID]
	if !ok {
		return domain.NotFoundf("ubicación %s", l.ID)
	}
	if l.CurrentWeight.IsNegative() || l.CurrentWeight.GreaterThan(cur.MaxCapacity) {
		return &domain.CapacityError{LocationID: l.ID, Requested: l.CurrentWeight.Sub(cur.CurrentWeight), Available: cur.AvailableCapacity()}
	}
	next := cur.Clone()
	next.CurrentWeight = l.CurrentWeight
	next.Occupied = l.Occupied
	next.UpdatedAt = l.UpdatedAt
	r.st.locations[l.ID] = next
	return nil
}

func (r *locationRepo) ListByChamber(_ context.Context, chamberID string, limit, offset int) ([]*entity.Location, error) {
	var list []*entity.Location
	for _, l := range r.st.locations {
		if l.ChamberID == chamberID {
			list = append(list, l.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

func (r *locationRepo) ListCodesByChamber(_ context.Context, chamberID string) ([]string, error) {
	var codes []string
	for _, l := range r.st.locations {
		if l.ChamberID == chamberID {
			codes = append(codes, l.Code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

type chamberRepo struct {
	st *state
}

func (r *chamberRepo) Create(_ context.Context, c *entity.Chamber) error {
	for _, other := range r.st.chambers {
		if other.ID == c.ID || other.Name == c.Name {
			return fmt.Errorf("%w: cámara %s", domain.ErrDuplicate, c.Name)
		}
	}
	cp := *c
	r.st.chambers[c.ID] = &cp
	return nil
}

func (r *chamberRepo) GetByID(_ context.Context, id string) (*entity.Chamber, error) {
	c, ok := r.st.chambers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *chamberRepo) List(_ context.Context, limit, offset int) ([]*entity.Chamber, error) {
	list := make([]*entity.Chamber, 0, len(r.st.chambers))
	for _, c := range r.st.chambers {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// page aplica LIMIT/OFFSET; limit <= 0 no limita.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
