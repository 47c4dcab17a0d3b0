// Package memory implementa los puertos de persistencia en memoria (STORAGE_DRIVER=memory).
// Cada transacción trabaja sobre una copia del estado que solo se publica si fn no falla.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// Las entidades guardadas no se mutan nunca: escrituras y lecturas pasan por Clone.
type state struct {
	products    map[string]*entity.Product
	locations   map[string]*entity.Location
	chambers    map[string]*entity.Chamber
	movements   map[string]*entity.Movement
	withdrawals map[string]*entity.WithdrawalRequest
	seedTypes   map[string]*entity.SeedType
	clients     map[string]*entity.Client
	users       map[string]*entity.User
	// orden de inserción, para listados estables con timestamps iguales
	seq  map[string]int64
	next int64
}

func newState() *state {
	return &state{
		products:    map[string]*entity.Product{},
		locations:   map[string]*entity.Location{},
		chambers:    map[string]*entity.Chamber{},
		movements:   map[string]*entity.Movement{},
		withdrawals: map[string]*entity.WithdrawalRequest{},
		seedTypes:   map[string]*entity.SeedType{},
		clients:     map[string]*entity.Client{},
		users:       map[string]*entity.User{},
		seq:         map[string]int64{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:    maps.Clone(s.products),
		locations:   maps.Clone(s.locations),
		chambers:    maps.Clone(s.chambers),
		movements:   maps.Clone(s.movements),
		withdrawals: maps.Clone(s.withdrawals),
		seedTypes:   maps.Clone(s.seedTypes),
		clients:     maps.Clone(s.clients),
		users:       maps.Clone(s.users),
		seq:         maps.Clone(s.seq),
		next:        s.next,
	}
}

func (s *state) track(id string) {
	s.next++
	s.seq[id] = s.next
}

// Store almacén en memoria; serializa las transacciones con un único mutex.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(reposOn(work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

// AddUser registra un usuario para las proyecciones del ledger (nombre del actor).
func (s *Store) AddUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.state.users[u.ID] = &c
}

func reposOn(st *state) inventory.Repos {
	return inventory.Repos{
		Products:    &productRepo{st: st},
		Locations:   &locationRepo{st: st},
		Chambers:    &chamberRepo{st: st},
		Movements:   &movementRepo{st: st},
		Withdrawals: &withdrawalRepo{st: st},
		SeedTypes:   &seedTypeRepo{st: st},
		Clients:     &clientRepo{st: st},
	}
}
