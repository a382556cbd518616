package services

import (
	"printforge/internal/domain"
	"printforge/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add snapshots the product into the user's cart and returns it so the
// caller can name what was added. qty must already be validated.
func (s *CartService) Add(user string, productID, qty int) (domain.Product, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Product{}, err
	}
	s.Carts.Add(user, p, qty)
	return p, nil
}

type CartView struct {
	Items []domain.CartItem
	Total int
}

func (s *CartService) View(user string) CartView {
	return CartView{Items: s.Carts.Items(user), Total: s.Carts.Total(user)}
}

func (s *CartService) Clear(user string) {
	s.Carts.Clear(user)
}
