package dataset

import (
	"errors"
	"math/rand"
	"sort"
)

// ErrProductNotFound indicates a lookup for a product ID not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Store is an in-memory, read-only index over loaded products.
type Store struct {
	products []Product
	byID     map[int64]*Product
}

func NewStore(products []Product) *Store {
	s := &Store{
		products: products,
		byID:     make(map[int64]*Product, len(products)),
	}
	for i := range products {
		s.byID[products[i].ProductID] = &products[i]
	}
	return s
}

// All returns every product ordered by ID.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Get looks up one product by ID.
func (s *Store) Get(id int64) (*Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// RandomSample returns up to n distinct products in random order.
func (s *Store) RandomSample(n int) []Product {
	if n > len(s.products) {
		n = len(s.products)
	}
	if n <= 0 {
		return nil
	}
	perm := rand.Perm(len(s.products))
	out := make([]Product, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, s.products[idx])
	}
	return out
}

// Len reports the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}
