package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

type withdrawalRepo struct {
	st *state
}

func (r *withdrawalRepo) Create(_ context.Context, w *entity.WithdrawalRequest) error {
	for _, other := range r.st.withdrawals {
		if other.ProductID == w.ProductID && other.Status == entity.WithdrawalPending {
			return domain.Conflictf("el producto %s ya tiene una solicitud de retiro pendiente", w.ProductID)
		}
	}
	r.st.withdrawals[w.ID] = w.Clone()
	r.st.track(w.ID)
	return nil
}

func (r *withdrawalRepo) GetByID(_ context.Context, id string) (*entity.WithdrawalRequest, error) {
	w, ok := r.st.withdrawals[id]
	if !ok {
		return nil, nil
	}
	return w.Clone(), nil
}

func (r *withdrawalRepo) GetForUpdate(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *withdrawalRepo) Update(_ context.Context, w *entity.WithdrawalRequest) error {
	if _, ok := r.st.withdrawals[w.ID]; !ok {
		return domain.NotFoundf("solicitud de retiro %s", w.ID)
	}
	r.st.withdrawals[w.ID] = w.Clone()
	return nil
}

func (r *withdrawalRepo) FindPendingByProduct(_ context.Context, productID string) (*entity.WithdrawalRequest, error) {
	for _, w := range r.st.withdrawals {
		if w.ProductID == productID && w.Status == entity.WithdrawalPending {
			return w.Clone(), nil
		}
	}
	return nil, nil
}

func (r *withdrawalRepo) ListPending(_ context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	var list []*entity.WithdrawalRequest
	for _, w := range r.st.withdrawals {
		if w.Status == entity.WithdrawalPending {
			list = append(list, w.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool { return r.st.seq[list[i].ID] < r.st.seq[list[j].ID] })
	return page(list, limit, offset), nil
}
