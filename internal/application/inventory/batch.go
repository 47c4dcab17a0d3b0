package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

// BatchInput registro de N productos de un mismo cliente.
type BatchInput struct {
	ClientID  string
	Products  []ProductInput
	ActorID   string
	BatchName string
}

// BatchResult productos creados con el identificador de lote compartido.
type BatchResult struct {
	BatchID   string
	BatchName string
	Products  []*entity.Product
	Count     int
}

// BatchUseCase registro atómico de lotes: se crean todos los productos o ninguno.
type BatchUseCase struct {
	lc *LifecycleUseCase
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(lc *LifecycleUseCase) *BatchUseCase {
	return &BatchUseCase{lc: lc}
}

// CreateBatch valida 1..MaxBatchSize productos y los crea en PENDING_LOCATION dentro de una sola transacción.
// Cualquier fallo devuelve *domain.BatchError con el índice y el campo del producto que lo causó.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, in BatchInput) (*BatchResult, error) {
	max := uc.lc.deps.Config.MaxBatchSize
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, domain.NewValidationError("client_id", "es requerido")
	}
	if in.ActorID == "" {
		return nil, domain.NewValidationError("actor", "es requerido")
	}
	if len(in.Products) == 0 {
		return nil, domain.NewValidationError("products", "el lote debe tener al menos un producto")
	}
	if len(in.Products) > max {
		return nil, domain.NewValidationError("products", fmt.Sprintf("el lote admite como máximo %d productos", max))
	}

	batchID := uuid.New().String()
	name := strings.TrimSpace(in.BatchName)
	var created []*entity.Product
	err := uc.lc.deps.Tx.Run(ctx, func(r Repos) error {
		s := uc.lc.newScope(ctx, r, in.ActorID, "")
		if name == "" {
			name = "Lote " + s.now.Format("02/01/2006 15:04")
		}
		client, err := r.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.NotFoundf("cliente %s", in.ClientID)
		}

		products := make([]*entity.Product, 0, len(in.Products))
		for i, item := range in.Products {
			item.ClientID = in.ClientID
			p, err := s.buildProduct(item, batchID, name)
			if err != nil {
				return batchError(batchID, i, err)
			}
			if err := p.Place(nil, s.now); err != nil {
				return batchError(batchID, i, err)
			}
			products = append(products, p)
		}
		for i, p := range products {
			if err := r.Products.Create(ctx, p); err != nil {
				return batchError(batchID, i, err)
			}
		}
		created = products
		return nil
	})
	if err != nil {
		uc.lc.reject("create_batch", "", err)
		return nil, err
	}
	for range created {
		uc.lc.deps.Metrics.Transition(entity.ProductStatusRegistered, entity.ProductStatusPendingLocation)
	}
	uc.lc.deps.Log.Info().
		Str("batch_id", batchID).
		Str("client_id", in.ClientID).
		Int("count", len(created)).
		Msg("lote registrado")
	return &BatchResult{BatchID: batchID, BatchName: name, Products: created, Count: len(created)}, nil
}

// ListBatch productos de un lote en orden de alta. Un lote sin productos no existe.
func (uc *BatchUseCase) ListBatch(ctx context.Context, batchID string) ([]*entity.Product, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return nil, domain.NotFoundf("lote %s", batchID)
	}
	var out []*entity.Product
	err := uc.lc.deps.Tx.Run(ctx, func(r Repos) error {
		list, err := r.Products.ListByBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return domain.NotFoundf("lote %s", batchID)
		}
		out = list
		return nil
	})
	return out, err
}

func batchError(batchID string, index int, err error) error {
	be := &domain.BatchError{BatchID: batchID, Index: index, Err: err}
	var fe *fieldError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &fe):
		be.Field = fe.field
	case errors.As(err, &ve):
		be.Field = ve.Field
	}
	return be
}
