package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	weights "github.com/jhoicas/bancosemillas-api/internal/domain/inventory"
	"github.com/jhoicas/bancosemillas-api/pkg/codes"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// LocationUseCase alta de cámaras y ubicaciones, y consultas de capacidad.
type LocationUseCase struct {
	tx              inventory.TxRunner
	log             *logger.Logger
	defaultCapacity decimal.Decimal
	now             func() time.Time
}

// NewLocationUseCase construye el caso de uso. defaultCapacity se usa cuando la cámara no define una.
func NewLocationUseCase(tx inventory.TxRunner, log *logger.Logger, defaultCapacity decimal.Decimal) *LocationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LocationUseCase{tx: tx, log: log, defaultCapacity: defaultCapacity, now: time.Now}
}

// CreateChamber crea una cámara con su grilla quadra/lado/fila/andar.
func (uc *LocationUseCase) CreateChamber(ctx context.Context, in dto.CreateChamberRequest) (*dto.ChamberResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	dims := []struct {
		field string
		v     int
	}{{"quadras", in.Quadras}, {"lados", in.Lados}, {"filas", in.Filas}, {"andares", in.Andares}}
	for _, d := range dims {
		if d.v <= 0 {
			return nil, domain.NewValidationError(d.field, "debe ser mayor a 0")
		}
	}
	capacity := uc.defaultCapacity
	if in.DefaultCapacity != nil {
		capacity = *in.DefaultCapacity
	}
	capacity = weights.RoundWeight(capacity)
	if !capacity.IsPositive() {
		return nil, domain.NewValidationError("default_capacity", "debe ser mayor a 0")
	}

	now := uc.now()
	chamber := &entity.Chamber{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     in.Description,
		Quadras:         in.Quadras,
		Lados:           in.Lados,
		Filas:           in.Filas,
		Andares:         in.Andares,
		DefaultCapacity: capacity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		return r.Chambers.Create(ctx, chamber)
	})
	if err != nil {
		return nil, err
	}
	return toChamberResponse(chamber), nil
}

// ListChambers lista cámaras por nombre.
func (uc *LocationUseCase) ListChambers(ctx context.Context, page dto.PageRequest) (*dto.ChamberListResponse, error) {
	page.DefaultPage()
	var list []*entity.Chamber
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		var err error
		list, err = r.Chambers.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChamberResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toChamberResponse(c))
	}
	return &dto.ChamberListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// CreateLocation crea una ubicación dentro de la grilla de la cámara.
// Un código personalizado se normaliza (mayúsculas, sin acentos, espacios a guiones).
func (uc *LocationUseCase) CreateLocation(ctx context.Context, chamberID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	co := entity.Coordinates{Quadra: in.Quadra, Lado: in.Lado, Fila: in.Fila, Andar: in.Andar}
	var loc *entity.Location
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		chamber, err := r.Chambers.GetByID(ctx, chamberID)
		if err != nil {
			return err
		}
		if chamber == nil {
			return domain.NotFoundf("cámara %s", chamberID)
		}
		if !chamber.Contains(co) {
			return domain.NewValidationError("coordinates", "fuera de la grilla de la cámara")
		}
		code := co.Code()
		if strings.TrimSpace(in.Code) != "" {
			code = codes.Normalize(in.Code)
		}
		capacity := chamber.DefaultCapacity
		if in.MaxCapacity != nil {
			capacity = *in.MaxCapacity
		}
		loc, err = uc.newLocation(chamber.ID, code, co, capacity)
		if err != nil {
			return err
		}
		return r.Locations.Create(ctx, loc)
	})
	if err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// GenerateLocations crea todas las ubicaciones de la grilla en una transacción.
// Los códigos ya existentes se omiten y se cuentan en Skipped.
func (uc *LocationUseCase) GenerateLocations(ctx context.Context, chamberID string, in dto.GenerateLocationsRequest) (*dto.GenerateLocationsResponse, error) {
	out := &dto.GenerateLocationsResponse{}
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		chamber, err := r.Chambers.GetByID(ctx, chamberID)
		if err != nil {
			return err
		}
		if chamber == nil {
			return domain.NotFoundf("cámara %s", chamberID)
		}
		capacity := chamber.DefaultCapacity
		if in.MaxCapacity != nil {
			capacity = *in.MaxCapacity
		}
		existing, err := r.Locations.ListCodesByChamber(ctx, chamber.ID)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(existing))
		for _, c := range existing {
			seen[c] = true
		}
		created, skipped := 0, 0
		for _, co := range chamber.Grid() {
			if seen[co.Code()] {
				skipped++
				continue
			}
			loc, err := uc.newLocation(chamber.ID, co.Code(), co, capacity)
			if err != nil {
				return err
			}
			if err := r.Locations.Create(ctx, loc); err != nil {
				return err
			}
			created++
		}
		out.Created, out.Skipped = created, skipped
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("chamber_id", chamberID).
		Int("created", out.Created).
		Int("skipped", out.Skipped).
		Msg("ubicaciones generadas")
	return out, nil
}

// GetCapacity devuelve la ubicación con disponible, porcentaje y estado de capacidad.
func (uc *LocationUseCase) GetCapacity(ctx context.Context, id string) (*dto.LocationResponse, error) {
	var loc *entity.Location
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		var err error
		loc, err = r.Locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.NotFoundf("ubicación %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// ListByChamber ubicaciones de una cámara ordenadas por código.
func (uc *LocationUseCase) ListByChamber(ctx context.Context, chamberID string, page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	var list []*entity.Location
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		chamber, err := r.Chambers.GetByID(ctx, chamberID)
		if err != nil {
			return err
		}
		if chamber == nil {
			return domain.NotFoundf("cámara %s", chamberID)
		}
		list, err = r.Locations.ListByChamber(ctx, chamberID, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *ToLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *LocationUseCase) newLocation(chamberID, code string, co entity.Coordinates, capacity decimal.Decimal) (*entity.Location, error) {
	capacity = weights.RoundWeight(capacity)
	if !capacity.IsPositive() {
		return nil, domain.NewValidationError("max_capacity", "debe ser mayor a 0")
	}
	if code == "" {
		return nil, domain.NewValidationError("code", "es requerido")
	}
	now := uc.now()
	return &entity.Location{
		ID:            uuid.New().String(),
		ChamberID:     chamberID,
		Code:          code,
		Coordinates:   co,
		MaxCapacity:   capacity,
		CurrentWeight: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ToLocationResponse mapea la ubicación con sus vistas derivadas.
func ToLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:                l.ID,
		ChamberID:         l.ChamberID,
		Code:              l.Code,
		Quadra:            l.Coordinates.Quadra,
		Lado:              l.Coordinates.Lado,
		Fila:              l.Coordinates.Fila,
		Andar:             l.Coordinates.Andar,
		MaxCapacity:       l.MaxCapacity,
		CurrentWeight:     l.CurrentWeight,
		AvailableCapacity: l.AvailableCapacity(),
		OccupancyPercent:  l.OccupancyPercent(),
		CapacityStatus:    string(l.CapacityStatus()),
		Occupied:          l.Occupied,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toChamberResponse(c *entity.Chamber) *dto.ChamberResponse {
	return &dto.ChamberResponse{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Quadras:         c.Quadras,
		Lados:           c.Lados,
		Filas:           c.Filas,
		Andares:         c.Andares,
		DefaultCapacity: c.DefaultCapacity,
		CreatedAt:       c.CreatedAt,
	}
}
