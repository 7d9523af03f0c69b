package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"marnie-pos/internal/domain"
	"marnie-pos/internal/infrastructure/idgen"
	"marnie-pos/internal/repo"
)

type LedgerService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, raw domain.RawInput) (*domain.Product, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, raw domain.RawInput) (*domain.Customer, error)
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
	CreatePurchase(ctx context.Context, raw domain.RawInput) (*domain.Purchase, error)
	DashboardStats(ctx context.Context) (*domain.Stats, error)
	Seed(ctx context.Context) error
}

type ledgerService struct {
	stores repo.Set
	ids    idgen.Generator
	now    func() time.Time
	log    log.FieldLogger
}

type Option func(*ledgerService)

func WithClock(now func() time.Time) Option {
	return func(s *ledgerService) { s.now = now }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(s *ledgerService) { s.log = logger }
}

func NewLedgerService(stores repo.Set, ids idgen.Generator, opts ...Option) LedgerService {
	s := &ledgerService{
		stores: stores,
		ids:    ids,
		now:    time.Now,
		log:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ledgerService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.stores.Products.List(ctx)
}

func (s *ledgerService) CreateProduct(ctx context.Context, raw domain.RawInput) (*domain.Product, error) {
	product, err := domain.BuildProduct(raw, s.ids.NewID(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.stores.Products.Append(ctx, product); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"product_id": product.ID,
		"code":       product.Code,
		"price":      product.Price,
	}).Info("product created")
	return product, nil
}

func (s *ledgerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.stores.Customers.List(ctx)
}

func (s *ledgerService) CreateCustomer(ctx context.Context, raw domain.RawInput) (*domain.Customer, error) {
	customer, err := domain.BuildCustomer(raw, s.ids.NewID(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.stores.Customers.Append(ctx, customer); err != nil {
		return nil, err
	}

	s.log.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

func (s *ledgerService) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	return s.stores.Purchases.List(ctx)
}

func (s *ledgerService) CreatePurchase(ctx context.Context, raw domain.RawInput) (*domain.Purchase, error) {
	purchase, err := domain.BuildPurchase(raw, s.ids.NewID(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.stores.Purchases.Append(ctx, purchase); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"purchase_id":  purchase.ID,
		"customer_id":  purchase.CustomerID,
		"line_items":   len(purchase.Products),
		"total_amount": purchase.TotalAmount,
	}).Info("purchase created")
	return purchase, nil
}

// DashboardStats recomputes the figures from the current store contents on
// every call.
func (s *ledgerService) DashboardStats(ctx context.Context) (*domain.Stats, error) {
	purchases, err := s.stores.Purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.stores.Customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.stores.Products.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.ComputeStats(purchases, customers, products)
	return &stats, nil
}

// Seed loads the sample catalogue into empty stores. Stores that already
// hold products or customers are left alone, so restarts against a shared
// database do not duplicate the samples.
func (s *ledgerService) Seed(ctx context.Context) error {
	products, err := s.stores.Products.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "seed products")
	}
	customers, err := s.stores.Customers.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "seed customers")
	}
	if products > 0 || customers > 0 {
		s.log.WithFields(log.Fields{
			"products":  products,
			"customers": customers,
		}).Info("stores already populated, skipping seed")
		return nil
	}

	for _, raw := range seedProducts {
		if _, err := s.CreateProduct(ctx, raw); err != nil {
			return errors.Wrap(err, "seed products")
		}
	}
	for _, raw := range seedCustomers {
		if _, err := s.CreateCustomer(ctx, raw); err != nil {
			return errors.Wrap(err, "seed customers")
		}
	}
	return nil
}
