package memory

import (
	"context"

	"github.com/jhoicas/Retail-api/internal/domain"
	"github.com/jhoicas/Retail-api/internal/domain/entity"
	"github.com/jhoicas/Retail-api/internal/domain/repository"
	"github.com/jhoicas/Retail-api/internal/domain/tenant"
)

type supplierRepo view

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(_ context.Context, t tenant.ID, s *entity.Supplier) error {
	defer (*view)(r).enter()()
	for kk, existing := range r.s.data.suppliers {
		if kk.tenant == t.String() && existing.RUC == s.RUC {
			return domain.ErrDuplicate
		}
	}
	s.TenantID = t.String()
	r.s.data.suppliers[k(t, s.ID)] = *s
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, t tenant.ID, id string) (*entity.Supplier, error) {
	defer (*view)(r).enter()()
	s, ok := r.s.data.suppliers[k(t, id)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *supplierRepo) List(_ context.Context, t tenant.ID, search string, p repository.Page) ([]*entity.Supplier, error) {
	defer (*view)(r).enter()()
	var list []*entity.Supplier
	for kk, s := range r.s.data.suppliers {
		if kk.tenant != t.String() {
			continue
		}
		if search != "" && !containsFold(s.Name, search) && !containsFold(s.RUC, search) {
			continue
		}
		s := s
		list = append(list, &s)
	}
	sortBy(list, func(a, b *entity.Supplier) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	page, _ := paginate(list, p)
	return page, nil
}

type clientRepo view

var _ repository.ClientRepository = (*clientRepo)(nil)

func (r *clientRepo) Create(_ context.Context, t tenant.ID, c *entity.Client) error {
	defer (*view)(r).enter()()
	for kk, existing := range r.s.data.clients {
		if kk.tenant == t.String() && existing.DocumentNumber == c.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	c.TenantID = t.String()
	r.s.data.clients[k(t, c.ID)] = *c
	return nil
}

func (r *clientRepo) GetByID(_ context.Context, t tenant.ID, id string) (*entity.Client, error) {
	defer (*view)(r).enter()()
	c, ok := r.s.data.clients[k(t, id)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *clientRepo) List(_ context.Context, t tenant.ID, search string, p repository.Page) ([]*entity.Client, error) {
	defer (*view)(r).enter()()
	var list []*entity.Client
	for kk, c := range r.s.data.clients {
		if kk.tenant != t.String() {
			continue
		}
		if search != "" && !containsFold(c.Name, search) && !containsFold(c.DocumentNumber, search) {
			continue
		}
		c := c
		list = append(list, &c)
	}
	sortBy(list, func(a, b *entity.Client) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	page, _ := paginate(list, p)
	return page, nil
}
