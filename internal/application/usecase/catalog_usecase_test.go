package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/memory"
)

func TestCatalog_TiposDeSemilla(t *testing.T) {
	uc := NewCatalogUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	st, err := uc.CreateSeedType(ctx, dto.CreateSeedTypeRequest{Name: "  Milho   híbrido ", MaxStorageDays: 365})
	require.NoError(t, err)
	assert.Equal(t, "Milho híbrido", st.Name)
	assert.NotEmpty(t, st.ID)

	_, err = uc.CreateSeedType(ctx, dto.CreateSeedTypeRequest{Name: "Milho híbrido"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateSeedType(ctx, dto.CreateSeedTypeRequest{Name: "Feijão", MaxStorageDays: -1})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "max_storage_days", ve.Field)

	_, err = uc.CreateSeedType(ctx, dto.CreateSeedTypeRequest{Name: "Arroz"})
	require.NoError(t, err)

	list, err := uc.ListSeedTypes(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Arroz", list.Items[0].Name)
	assert.Equal(t, 50, list.Page.Limit)
}

func TestCatalog_Clientes(t *testing.T) {
	uc := NewCatalogUseCase(memory.NewStore(), nil)
	ctx := context.Background()

	_, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Coop", Email: "sin-arroba"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.CreateClient(ctx, dto.CreateClientRequest{Name: "Cooperativa Sul", Document: "12.345.678/0001-90", Email: " Contato@Coop.com "})
	require.NoError(t, err)
	assert.Equal(t, "contato@coop.com", c.Email)

	list, err := uc.ListClients(ctx, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, c.ID, list.Items[0].ID)
}
