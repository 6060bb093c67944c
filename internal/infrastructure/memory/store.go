// Package memory implementa los puertos de repositorio en memoria, con la misma
// semántica que el adaptador de PostgreSQL: alcance por tenant, unicidades y
// stock no negativo. Run serializa las transacciones y restaura el estado
// completo si fn falla. Lo usan los tests y los entornos locales sin base de datos.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Retail-api/internal/application/ports"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

type key struct {
	tenant string
	id     string
}

type movementRow struct {
	seq int64
	m   entity.StockMovement
}

type state struct {
	products  map[key]entity.Product
	movements []movementRow
	sales     map[key]*entity.Sale
	purchases map[key]*entity.Purchase
	suppliers map[key]entity.Supplier
	clients   map[key]entity.Client
	registers map[key]entity.CashRegister
	alerts    map[key]entity.ReorderAlert
	sequences map[key]int64 // id = prefijo
	seq       int64
}

func newState() *state {
	return &state{
		products:  map[key]entity.Product{},
		sales:     map[key]*entity.Sale{},
		purchases: map[key]*entity.Purchase{},
		suppliers: map[key]entity.Supplier{},
		clients:   map[key]entity.Client{},
		registers: map[key]entity.CashRegister{},
		alerts:    map[key]entity.ReorderAlert{},
		sequences: map[key]int64{},
	}
}

// clone copia profunda; los documentos se copian con sus ítems.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = append([]movementRow(nil), s.movements...)
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	for k, v := range s.purchases {
		c.purchases[k] = copyPurchase(v)
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.registers {
		c.registers[k] = v
	}
	for k, v := range s.alerts {
		c.alerts[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	c.seq = s.seq
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
	// Fault, si no es nil, se consulta antes de cada escritura; un error
	// devuelto aborta la operación (simula fallos a mitad de transacción).
	Fault func(op string) error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repos repositorios fuera de transacción: cada llamada toma el lock.
func (s *Store) Repos() ports.Repos {
	return s.repos(false)
}

// TxRunner devuelve la unidad de trabajo del store.
func (s *Store) TxRunner() ports.TxRunner {
	return txRunner{s: s}
}

func (s *Store) repos(inTx bool) ports.Repos {
	v := &view{s: s, inTx: inTx}
	return ports.Repos{
		Products:      (*productRepo)(v),
		Movements:     (*movementRepo)(v),
		Sales:         (*saleRepo)(v),
		Purchases:     (*purchaseRepo)(v),
		Suppliers:     (*supplierRepo)(v),
		Clients:       (*clientRepo)(v),
		CashRegisters: (*cashRegisterRepo)(v),
		Alerts:        (*alertRepo)(v),
		Sequences:     (*sequenceRepo)(v),
	}
}

type txRunner struct {
	s *Store
}

// Run ejecuta fn con el lock tomado; si fn falla, restaura la copia previa.
func (r txRunner) Run(ctx context.Context, fn func(ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snapshot := r.s.data.clone()
	if err := fn(r.s.repos(true)); err != nil {
		r.s.data = snapshot
		return err
	}
	return nil
}

// view acceso al estado; fuera de transacción cada operación toma el lock.
type view struct {
	s    *Store
	inTx bool
}

func (v *view) enter() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (v *view) fail(op string) error {
	if v.s.Fault == nil {
		return nil
	}
	return v.s.Fault(op)
}

func k(t tenant.ID, id string) key { return key{tenant: t.String(), id: id} }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// paginate recorta según la página normalizada y devuelve el total previo.
func paginate[T any](list []T, p repository.Page) ([]T, int) {
	p = p.Normalize()
	total := len(list)
	if p.Offset >= total {
		return nil, total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return list[p.Offset:end], total
}

func sortBy[T any](list []T, less func(a, b T) bool) {
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

func copySale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = make([]*entity.SaleItem, len(s.Items))
	for i, it := range s.Items {
		item := *it
		c.Items[i] = &item
	}
	return &c
}

func copyPurchase(p *entity.Purchase) *entity.Purchase {
	c := *p
	c.Items = make([]*entity.PurchaseItem, len(p.Items))
	for i, it := range p.Items {
		item := *it
		c.Items[i] = &item
	}
	return &c
}
