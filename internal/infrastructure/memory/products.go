package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

type productRepo view

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) v() *view { return (*view)(r) }

func (r *productRepo) Create(_ context.Context, t tenant.ID, p *entity.Product) error {
	defer r.v().enter()()
	if err := r.v().fail("products.create"); err != nil {
		return err
	}
	for kk, existing := range r.s.data.products {
		if kk.tenant == t.String() && existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	if p.Stock.IsNegative() {
		return domain.ErrInsufficientStock
	}
	p.TenantID = t.String()
	r.s.data.products[k(t, p.ID)] = *p
	return nil
}

func (r *productRepo) get(t tenant.ID, id string) *entity.Product {
	p, ok := r.s.data.products[k(t, id)]
	if !ok {
		return nil
	}
	return &p
}

func (r *productRepo) GetByID(_ context.Context, t tenant.ID, id string) (*entity.Product, error) {
	defer r.v().enter()()
	return r.get(t, id), nil
}

func (r *productRepo) GetByCode(_ context.Context, t tenant.ID, code string) (*entity.Product, error) {
	defer r.v().enter()()
	for kk, p := range r.s.data.products {
		if kk.tenant == t.String() && p.Code == code {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, t, id)
}

func (r *productRepo) GetManyForUpdate(_ context.Context, t tenant.ID, ids []string) ([]*entity.Product, error) {
	defer r.v().enter()()
	seen := map[string]bool{}
	var list []*entity.Product
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p := r.get(t, id); p != nil {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *productRepo) List(_ context.Context, t tenant.ID, f repository.ProductFilter) ([]*entity.Product, int, error) {
	defer r.v().enter()()
	var list []*entity.Product
	for kk, p := range r.s.data.products {
		if kk.tenant != t.String() {
			continue
		}
		if f.Search != "" && !containsFold(p.Code, f.Search) && !containsFold(p.Name, f.Search) {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.BelowMin && p.Stock.GreaterThan(p.MinStock) {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sortBy(list, func(a, b *entity.Product) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	page, total := paginate(list, f.Page)
	return page, total, nil
}

func (r *productRepo) Update(_ context.Context, t tenant.ID, p *entity.Product) error {
	defer r.v().enter()()
	if err := r.v().fail("products.update"); err != nil {
		return err
	}
	cur, ok := r.s.data.products[k(t, p.ID)]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.Description, cur.UnitMeasure = p.Name, p.Description, p.UnitMeasure
	cur.Price, cur.MinStock, cur.ReorderPoint = p.Price, p.MinStock, p.ReorderPoint
	cur.IsActive, cur.UpdatedAt = p.IsActive, p.UpdatedAt
	r.s.data.products[k(t, p.ID)] = cur
	return nil
}

func (r *productRepo) AddStock(_ context.Context, t tenant.ID, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	defer r.v().enter()()
	if err := r.v().fail("products.add_stock"); err != nil {
		return decimal.Zero, err
	}
	cur, ok := r.s.data.products[k(t, id)]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next := cur.Stock.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	cur.Stock = next
	cur.UpdatedAt = time.Now()
	r.s.data.products[k(t, id)] = cur
	return next, nil
}

func (r *productRepo) UpdateCost(_ context.Context, t tenant.ID, id string, cost decimal.Decimal) error {
	defer r.v().enter()()
	if err := r.v().fail("products.update_cost"); err != nil {
		return err
	}
	cur, ok := r.s.data.products[k(t, id)]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Cost = cost
	r.s.data.products[k(t, id)] = cur
	return nil
}

func (r *productRepo) SetLastOrderDate(_ context.Context, t tenant.ID, id string, at time.Time) error {
	defer r.v().enter()()
	cur, ok := r.s.data.products[k(t, id)]
	if !ok {
		return domain.ErrNotFound
	}
	cur.LastOrderDate = &at
	r.s.data.products[k(t, id)] = cur
	return nil
}

type movementRepo view

var _ repository.StockMovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(_ context.Context, t tenant.ID, m *entity.StockMovement) error {
	v := (*view)(r)
	defer v.enter()()
	if err := v.fail("movements.create"); err != nil {
		return err
	}
	if !m.PreviousStock.Add(m.Quantity).Equal(m.NewStock) {
		return domain.Invalid("quantity", "newStock debe ser previousStock + quantity")
	}
	if _, ok := r.s.data.products[k(t, m.ProductID)]; !ok {
		return domain.ErrNotFound
	}
	m.TenantID = t.String()
	r.s.data.seq++
	r.s.data.movements = append(r.s.data.movements, movementRow{seq: r.s.data.seq, m: *m})
	return nil
}

func (r *movementRepo) List(_ context.Context, t tenant.ID, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	defer (*view)(r).enter()()
	var rows []movementRow
	for _, row := range r.s.data.movements {
		m := row.m
		if m.TenantID != t.String() {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		rows = append(rows, row)
	}
	sortBy(rows, func(a, b movementRow) bool {
		if !a.m.CreatedAt.Equal(b.m.CreatedAt) {
			return a.m.CreatedAt.After(b.m.CreatedAt)
		}
		return a.seq > b.seq
	})
	page, total := paginate(rows, f.Page)
	list := make([]*entity.StockMovement, len(page))
	for i := range page {
		m := page[i].m
		list[i] = &m
	}
	return list, total, nil
}

// Movements devuelve todas las filas del kardex del tenant en orden de inserción.
func (s *Store) Movements(t tenant.ID) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, row := range s.data.movements {
		if row.m.TenantID == t.String() {
			out = append(out, row.m)
		}
	}
	return out
}
