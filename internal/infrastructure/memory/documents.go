package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/numbering"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

type saleRepo view

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(_ context.Context, t tenant.ID, s *entity.Sale) error {
	v := (*view)(r)
	defer v.enter()()
	if err := v.fail("sales.create"); err != nil {
		return err
	}
	for kk, existing := range r.s.data.sales {
		if kk.tenant == t.String() && existing.Number == s.Number {
			return domain.ErrDuplicate
		}
	}
	s.TenantID = t.String()
	r.s.data.sales[k(t, s.ID)] = copySale(s)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, t tenant.ID, id string) (*entity.Sale, error) {
	defer (*view)(r).enter()()
	s, ok := r.s.data.sales[k(t, id)]
	if !ok {
		return nil, nil
	}
	return copySale(s), nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, t, id)
}

func (r *saleRepo) UpdateStatus(_ context.Context, t tenant.ID, id, status, notes string) error {
	v := (*view)(r)
	defer v.enter()()
	if err := v.fail("sales.update_status"); err != nil {
		return err
	}
	s, ok := r.s.data.sales[k(t, id)]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status, s.Notes, s.UpdatedAt = status, notes, time.Now()
	return nil
}

func (r *saleRepo) List(_ context.Context, t tenant.ID, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	defer (*view)(r).enter()()
	var list []*entity.Sale
	for kk, s := range r.s.data.sales {
		if kk.tenant != t.String() {
			continue
		}
		switch {
		case f.Status != "" && s.Status != f.Status,
			f.PaymentMethod != "" && s.PaymentMethod != f.PaymentMethod,
			f.ClientID != "" && (s.ClientID == nil || *s.ClientID != f.ClientID),
			f.NumberPrefix != "" && !strings.HasPrefix(s.Number, f.NumberPrefix),
			f.From != nil && s.CreatedAt.Before(*f.From),
			f.To != nil && s.CreatedAt.After(*f.To):
			continue
		}
		list = append(list, copySale(s))
	}
	sortBy(list, func(a, b *entity.Sale) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Number > b.Number
	})
	page, total := paginate(list, f.Page)
	return page, total, nil
}

func (r *saleRepo) TotalsByPaymentMethod(_ context.Context, t tenant.ID, since time.Time) ([]repository.PaymentTotal, error) {
	defer (*view)(r).enter()()
	byMethod := map[string]*repository.PaymentTotal{}
	for kk, s := range r.s.data.sales {
		if kk.tenant != t.String() || s.Status != entity.SaleStatusCompleted || s.CreatedAt.Before(since) {
			continue
		}
		pt, ok := byMethod[s.PaymentMethod]
		if !ok {
			pt = &repository.PaymentTotal{Method: s.PaymentMethod, Total: decimal.Zero}
			byMethod[s.PaymentMethod] = pt
		}
		pt.Count++
		pt.Total = pt.Total.Add(s.Total)
	}
	out := make([]repository.PaymentTotal, 0, len(byMethod))
	for _, pt := range byMethod {
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}

type purchaseRepo view

var _ repository.PurchaseRepository = (*purchaseRepo)(nil)

func (r *purchaseRepo) Create(_ context.Context, t tenant.ID, p *entity.Purchase) error {
	v := (*view)(r)
	defer v.enter()()
	if err := v.fail("purchases.create"); err != nil {
		return err
	}
	for kk, existing := range r.s.data.purchases {
		if kk.tenant == t.String() && existing.Number == p.Number {
			return domain.ErrDuplicate
		}
	}
	p.TenantID = t.String()
	r.s.data.purchases[k(t, p.ID)] = copyPurchase(p)
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, t tenant.ID, id string) (*entity.Purchase, error) {
	defer (*view)(r).enter()()
	p, ok := r.s.data.purchases[k(t, id)]
	if !ok {
		return nil, nil
	}
	return copyPurchase(p), nil
}

func (r *purchaseRepo) List(_ context.Context, t tenant.ID, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	defer (*view)(r).enter()()
	var list []*entity.Purchase
	for kk, p := range r.s.data.purchases {
		if kk.tenant != t.String() {
			continue
		}
		switch {
		case f.SupplierID != "" && p.SupplierID != f.SupplierID,
			f.From != nil && p.CreatedAt.Before(*f.From),
			f.To != nil && p.CreatedAt.After(*f.To):
			continue
		}
		list = append(list, copyPurchase(p))
	}
	sortBy(list, func(a, b *entity.Purchase) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Number > b.Number
	})
	page, total := paginate(list, f.Page)
	return page, total, nil
}

type sequenceRepo view

var _ repository.SequenceRepository = (*sequenceRepo)(nil)

func (r *sequenceRepo) Increment(_ context.Context, t tenant.ID, prefix string) (int64, bool, error) {
	defer (*view)(r).enter()()
	cur, ok := r.s.data.sequences[k(t, prefix)]
	if !ok {
		return 0, false, nil
	}
	cur++
	r.s.data.sequences[k(t, prefix)] = cur
	return cur, true, nil
}

func (r *sequenceRepo) Seed(_ context.Context, t tenant.ID, prefix string, value int64) (int64, error) {
	defer (*view)(r).enter()()
	if cur, ok := r.s.data.sequences[k(t, prefix)]; ok {
		value = cur + 1
	}
	r.s.data.sequences[k(t, prefix)] = value
	return value, nil
}

func (r *sequenceRepo) LastNumber(_ context.Context, t tenant.ID, family numbering.Family, prefix string) (string, error) {
	defer (*view)(r).enter()()
	var last string
	consider := func(n string) {
		if strings.HasPrefix(n, prefix) && n > last {
			last = n
		}
	}
	switch family {
	case numbering.FamilySale, numbering.FamilySaleNote:
		for kk, s := range r.s.data.sales {
			if kk.tenant == t.String() {
				consider(s.Number)
			}
		}
	case numbering.FamilyPurchase:
		for kk, p := range r.s.data.purchases {
			if kk.tenant == t.String() {
				consider(p.Number)
			}
		}
	}
	return last, nil
}

// SeedSale inserta una venta ya numerada sin pasar por el motor (datos heredados).
func (s *Store) SeedSale(t tenant.ID, sale *entity.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.TenantID = t.String()
	s.data.sales[k(t, sale.ID)] = copySale(sale)
}
