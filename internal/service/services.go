package service

import (
	"github.com/worlddist/ordering-backend/internal/config"
	"github.com/worlddist/ordering-backend/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Product *ProductService
	Order   *OrderService
	Payment *PaymentService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg),
		Product: NewProductService(repos.Product),
		Order:   NewOrderService(repos.Order, repos.Product),
		Payment: NewPaymentService(cfg),
	}
}
