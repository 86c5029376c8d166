package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

type fakeProducts struct {
	mu       sync.Mutex
	products map[int]entity.Product
	nextID   int
	reads    int
}

func newFakeProducts(products ...entity.Product) *fakeProducts {
	f := &fakeProducts{products: map[int]entity.Product{}, nextID: 100}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProducts) GetProduct(_ context.Context, id int) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (f *fakeProducts) CreateProduct(_ context.Context, p *entity.Product) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	for i := range p.Variations {
		f.nextID++
		p.Variations[i].ID = f.nextID
		p.Variations[i].ParentID = p.ID
		p.Variations[i].Type = entity.ProductVariation
	}
	f.products[p.ID] = *p
	return p, nil
}

func (f *fakeProducts) UpdatePrices(_ context.Context, product entity.Product, update entity.PriceUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[product.ID]
	p.Prices.Regular, p.Prices.Sale = update.RegularPrice, update.SalePrice

	// roles absent from the update keep their price, as with the SQL upsert
	rolePrices := make(map[pricing.Role]pricing.Price, len(p.Prices.RolePrices))
	for role, price := range p.Prices.RolePrices {
		rolePrices[role] = price
	}
	for role, price := range update.RolePrices {
		if price.IsSet() {
			rolePrices[role] = price
		} else {
			delete(rolePrices, role)
		}
	}
	p.Prices.RolePrices = rolePrices
	if p.Type == entity.ProductVariable {
		for i := range p.Variations {
			if update.RegularPrice.IsSet() {
				p.Variations[i].Prices.Regular = update.RegularPrice
			}
			if update.SalePrice.IsSet() {
				p.Variations[i].Prices.Sale = update.SalePrice
			}
		}
	}
	f.products[p.ID] = p
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[int]entity.Product
	invalidated []int
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int]entity.Product{}}
}

func (c *fakeCache) Get(_ context.Context, id int) (*entity.Product, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	p, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (c *fakeCache) Set(_ context.Context, p *entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[p.ID] = *p
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, ids ...int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.entries, id)
	}
	c.invalidated = append(c.invalidated, ids...)
	return c.err
}

type fakePublisher struct {
	messages []kafka.Message
	err      error
}

func (p *fakePublisher) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	p.messages = append(p.messages, msgs...)
	return p.err
}

type fakeUsers struct {
	byEmail map[string]entity.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]entity.User{}}
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, ErrConflict
	}
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = *u
	return u, nil
}

type fakeSessions struct {
	tokens map[string]string
}

func (s *fakeSessions) Save(_ context.Context, email, token string, _ time.Duration) error {
	s.tokens[email] = token
	return nil
}

func (s *fakeSessions) Get(_ context.Context, email string) (string, error) {
	t, ok := s.tokens[email]
	if !ok {
		return "", ErrUnauthorized
	}
	return t, nil
}
