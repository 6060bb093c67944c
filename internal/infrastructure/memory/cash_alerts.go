package memory

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

type cashRegisterRepo view

var _ repository.CashRegisterRepository = (*cashRegisterRepo)(nil)

func (r *cashRegisterRepo) open(t tenant.ID) *entity.CashRegister {
	for kk, c := range r.s.data.registers {
		if kk.tenant == t.String() && c.ClosedAt == nil {
			c := c
			return &c
		}
	}
	return nil
}

func (r *cashRegisterRepo) Create(_ context.Context, t tenant.ID, c *entity.CashRegister) error {
	defer (*view)(r).enter()()
	if r.open(t) != nil {
		return domain.ErrCashRegisterOpen
	}
	c.TenantID = t.String()
	r.s.data.registers[k(t, c.ID)] = *c
	return nil
}

func (r *cashRegisterRepo) GetOpen(_ context.Context, t tenant.ID) (*entity.CashRegister, error) {
	defer (*view)(r).enter()()
	return r.open(t), nil
}

func (r *cashRegisterRepo) GetOpenForUpdate(ctx context.Context, t tenant.ID) (*entity.CashRegister, error) {
	return r.GetOpen(ctx, t)
}

func (r *cashRegisterRepo) Close(_ context.Context, t tenant.ID, c *entity.CashRegister) error {
	v := (*view)(r)
	defer v.enter()()
	if err := v.fail("cash_registers.close"); err != nil {
		return err
	}
	cur, ok := r.s.data.registers[k(t, c.ID)]
	if !ok || cur.ClosedAt != nil {
		return domain.ErrNoOpenCashRegister
	}
	r.s.data.registers[k(t, c.ID)] = *c
	return nil
}

func (r *cashRegisterRepo) ListClosed(_ context.Context, t tenant.ID, p repository.Page) ([]*entity.CashRegister, int, error) {
	defer (*view)(r).enter()()
	var list []*entity.CashRegister
	for kk, c := range r.s.data.registers {
		if kk.tenant == t.String() && c.ClosedAt != nil {
			c := c
			list = append(list, &c)
		}
	}
	sortBy(list, func(a, b *entity.CashRegister) bool { return a.ClosedAt.After(*b.ClosedAt) })
	page, total := paginate(list, p)
	return page, total, nil
}

type alertRepo view

var _ repository.ReorderAlertRepository = (*alertRepo)(nil)

func (r *alertRepo) pending(t tenant.ID, productID string) *entity.ReorderAlert {
	for kk, a := range r.s.data.alerts {
		if kk.tenant == t.String() && a.ProductID == productID && a.Status == entity.AlertPending {
			a := a
			return &a
		}
	}
	return nil
}

func (r *alertRepo) Create(_ context.Context, t tenant.ID, a *entity.ReorderAlert) error {
	defer (*view)(r).enter()()
	if a.Status == entity.AlertPending && r.pending(t, a.ProductID) != nil {
		return domain.ErrPendingAlertExists
	}
	a.TenantID = t.String()
	r.s.data.alerts[k(t, a.ID)] = *a
	return nil
}

func (r *alertRepo) CreateIfNoPending(_ context.Context, t tenant.ID, a *entity.ReorderAlert) (bool, error) {
	defer (*view)(r).enter()()
	if a.Status == entity.AlertPending && r.pending(t, a.ProductID) != nil {
		return false, nil
	}
	a.TenantID = t.String()
	r.s.data.alerts[k(t, a.ID)] = *a
	return true, nil
}

func (r *alertRepo) GetByID(_ context.Context, t tenant.ID, id string) (*entity.ReorderAlert, error) {
	defer (*view)(r).enter()()
	a, ok := r.s.data.alerts[k(t, id)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *alertRepo) GetForUpdate(ctx context.Context, t tenant.ID, id string) (*entity.ReorderAlert, error) {
	return r.GetByID(ctx, t, id)
}

func (r *alertRepo) GetPendingByProduct(_ context.Context, t tenant.ID, productID string) (*entity.ReorderAlert, error) {
	defer (*view)(r).enter()()
	return r.pending(t, productID), nil
}

func (r *alertRepo) Update(_ context.Context, t tenant.ID, a *entity.ReorderAlert) error {
	v := (*view)(r)
	defer v.enter()()
	if err := v.fail("alerts.update"); err != nil {
		return err
	}
	cur, ok := r.s.data.alerts[k(t, a.ID)]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status, cur.Notes, cur.AcknowledgedBy = a.Status, a.Notes, a.AcknowledgedBy
	cur.AcknowledgedAt, cur.OrderedAt, cur.ResolvedAt, cur.UpdatedAt = a.AcknowledgedAt, a.OrderedAt, a.ResolvedAt, a.UpdatedAt
	r.s.data.alerts[k(t, a.ID)] = cur
	return nil
}

func (r *alertRepo) List(_ context.Context, t tenant.ID, f repository.AlertFilter) ([]*entity.ReorderAlert, int, error) {
	defer (*view)(r).enter()()
	var list []*entity.ReorderAlert
	for kk, a := range r.s.data.alerts {
		if kk.tenant != t.String() {
			continue
		}
		switch {
		case f.Status != "" && a.Status != f.Status,
			f.Type != "" && a.Type != f.Type,
			f.ProductID != "" && a.ProductID != f.ProductID:
			continue
		}
		a := a
		list = append(list, &a)
	}
	sortBy(list, func(a, b *entity.ReorderAlert) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	page, total := paginate(list, f.Page)
	return page, total, nil
}
