package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
)

type movementRepo struct {
	st *state
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if _, ok := r.st.movements[m.ID]; ok {
		return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, m.ID)
	}
	r.st.movements[m.ID] = m.Clone()
	r.st.track(m.ID)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.st.movements[id]
	if !ok {
		return nil, nil
	}
	return m.Clone(), nil
}

func (r *movementRepo) UpdateMetadata(_ context.Context, m *entity.Movement) error {
	cur, ok := r.st.movements[m.ID]
	if !ok {
		return domain.NotFoundf("movimiento %s", m.ID)
	}
	next := cur.Clone()
	next.Status = m.Status
	next.Verified = m.Verified
	next.VerifiedBy = m.VerifiedBy
	next.VerifiedAt = m.VerifiedAt
	next.VerificationNotes = m.VerificationNotes
	next.CancelledBy = m.CancelledBy
	next.CancelledAt = m.CancelledAt
	next.CancellationReason = m.CancellationReason
	r.st.movements[m.ID] = next.Clone()
	return nil
}

// LockProduct no hace nada: las transacciones ya están serializadas.
func (r *movementRepo) LockProduct(context.Context, string) error { return nil }

func (r *movementRepo) FindRecentDuplicate(_ context.Context, k entity.MovementKey, since time.Time) (*entity.Movement, error) {
	var found *entity.Movement
	for _, m := range r.st.movements {
		if m.Status == entity.MovementCancelled || m.Timestamp.Before(since) || !m.Matches(k) {
			continue
		}
		if found == nil || m.Timestamp.After(found.Timestamp) {
			found = m
		}
	}
	if found == nil {
		return nil, nil
	}
	return found.Clone(), nil
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	var list []*entity.MovementView
	for _, m := range r.st.movements {
		if !matchesFilter(m, f) {
			continue
		}
		list = append(list, r.view(m))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return r.st.seq[a.ID] > r.st.seq[b.ID]
	})
	return page(list, f.Limit, f.Offset), nil
}

func matchesFilter(m *entity.Movement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.UserID != "" && m.UserID != f.UserID {
		return false
	}
	if f.LocationID != "" && !eq(m.FromLocationID, f.LocationID) && !eq(m.ToLocationID, f.LocationID) {
		return false
	}
	if f.From != nil && m.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Timestamp.After(*f.To) {
		return false
	}
	return true
}

func (r *movementRepo) view(m *entity.Movement) *entity.MovementView {
	v := &entity.MovementView{Movement: *m.Clone()}
	if p, ok := r.st.products[m.ProductID]; ok {
		v.ProductName = p.Name
	}
	if u, ok := r.st.users[m.UserID]; ok {
		v.UserName = u.Name
	}
	v.FromLocationCode = r.code(m.FromLocationID)
	v.ToLocationCode = r.code(m.ToLocationID)
	return v
}

func (r *movementRepo) code(id *string) string {
	if id == nil {
		return ""
	}
	if l, ok := r.st.locations[*id]; ok {
		return l.Code
	}
	return ""
}

func eq(p *string, v string) bool {
	return p != nil && *p == v
}
