package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// CatalogUseCase alta y consulta de tipos de semilla y depositantes.
type CatalogUseCase struct {
	tx  inventory.TxRunner
	log *logger.Logger
	now func() time.Time
}

func NewCatalogUseCase(tx inventory.TxRunner, log *logger.Logger) *CatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase{tx: tx, log: log, now: time.Now}
}

// CreateSeedType registra un tipo de semilla. Nombre repetido -> ErrDuplicate.
func (uc *CatalogUseCase) CreateSeedType(ctx context.Context, in dto.CreateSeedTypeRequest) (*dto.SeedTypeResponse, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if in.MaxStorageDays < 0 {
		return nil, domain.NewValidationError("max_storage_days", "no puede ser negativo")
	}
	st := &entity.SeedType{
		ID:             uuid.New().String(),
		Name:           name,
		MaxStorageDays: in.MaxStorageDays,
		CreatedAt:      uc.now(),
	}
	if err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		return r.SeedTypes.Create(ctx, st)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("seed_type_id", st.ID).Str("name", st.Name).Msg("tipo de semilla creado")
	return toSeedTypeResponse(st), nil
}

func (uc *CatalogUseCase) ListSeedTypes(ctx context.Context, page dto.PageRequest) (*dto.SeedTypeListResponse, error) {
	page.DefaultPage()
	var list []*entity.SeedType
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		var err error
		list, err = r.SeedTypes.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SeedTypeResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSeedTypeResponse(s))
	}
	return &dto.SeedTypeListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// CreateClient registra un depositante.
func (uc *CatalogUseCase) CreateClient(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "formato inválido")
	}
	now := uc.now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Document:  strings.TrimSpace(in.Document),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		return r.Clients.Create(ctx, c)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", c.ID).Msg("cliente creado")
	return toClientResponse(c), nil
}

func (uc *CatalogUseCase) ListClients(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	var list []*entity.Client
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		var err error
		list, err = r.Clients.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toSeedTypeResponse(s *entity.SeedType) *dto.SeedTypeResponse {
	return &dto.SeedTypeResponse{ID: s.ID, Name: s.Name, MaxStorageDays: s.MaxStorageDays, CreatedAt: s.CreatedAt}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{ID: c.ID, Name: c.Name, Document: c.Document, Email: c.Email, CreatedAt: c.CreatedAt}
}
