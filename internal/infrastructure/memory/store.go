// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory para desarrollo local y como doble en los tests.
package memory

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/terraflow-api/internal/domain/entity"
)

// Order pedido mínimo para alimentar las consultas del dashboard.
type Order struct {
	ID          int64
	Status      string // pending, processing, shipped, delivered, cancelled
	TotalAmount decimal.Decimal
	Items       map[int64]int // productID -> unidades
	CreatedAt   time.Time
}

// Store estado compartido por los repositorios en memoria. Seguro para uso concurrente.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]*entity.User
	emails   map[string]int64 // índice único de email
	products map[int64]*entity.Product
	orders   []Order
	nextUser int64
	nextProd int64
	now      func() time.Time
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*entity.User),
		emails:   make(map[string]int64),
		products: make(map[int64]*entity.Product),
		now:      time.Now,
	}
}

// AddOrder registra un pedido (solo para dashboard/reportes).
func (s *Store) AddOrder(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
	}
	o.ID = int64(len(s.orders) + 1)
	s.orders = append(s.orders, o)
}

// UserCount número de usuarios almacenados.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
