package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"marnie-pos/internal/domain"
)

type CustomerRepo interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Append(ctx context.Context, customer *domain.Customer) error
	Count(ctx context.Context) (int, error)
}

type memoryCustomerRepo struct {
	customers memoryList[domain.Customer]
}

func NewMemoryCustomerRepo() CustomerRepo {
	return &memoryCustomerRepo{}
}

func (r *memoryCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	return r.customers.list(), nil
}

func (r *memoryCustomerRepo) Append(ctx context.Context, customer *domain.Customer) error {
	r.customers.append(*customer)
	return nil
}

func (r *memoryCustomerRepo) Count(ctx context.Context) (int, error) {
	return r.customers.count(), nil
}

type customerRepo struct {
	db *sqlx.DB
}

func NewCustomerRepo(db *sqlx.DB) CustomerRepo {
	return &customerRepo{db: db}
}

func (r *customerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	err := r.db.SelectContext(ctx, &customers,
		"SELECT id, name, phone, email, created_at FROM customers ORDER BY seq",
	)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

func (r *customerRepo) Append(ctx context.Context, customer *domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (id, name, phone, email, created_at) VALUES ($1, $2, $3, $4, $5)",
		customer.ID, customer.Name, customer.Phone, customer.Email, customer.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "insert customer %s", customer.ID)
	}
	return nil
}

func (r *customerRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT count(*) FROM customers"); err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return n, nil
}
