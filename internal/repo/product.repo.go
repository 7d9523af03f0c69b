package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"marnie-pos/internal/domain"
)

type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Append(ctx context.Context, product *domain.Product) error
	Count(ctx context.Context) (int, error)
}

type memoryProductRepo struct {
	products memoryList[domain.Product]
}

func NewMemoryProductRepo() ProductRepo {
	return &memoryProductRepo{}
}

func (r *memoryProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.products.list(), nil
}

func (r *memoryProductRepo) Append(ctx context.Context, product *domain.Product) error {
	r.products.append(*product)
	return nil
}

func (r *memoryProductRepo) Count(ctx context.Context) (int, error) {
	return r.products.count(), nil
}

type productRepo struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	err := r.db.SelectContext(ctx, &products,
		"SELECT id, code, name, price, created_at FROM products ORDER BY seq",
	)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (r *productRepo) Append(ctx context.Context, product *domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO products (id, code, name, price, created_at) VALUES ($1, $2, $3, $4, $5)",
		product.ID, product.Code, product.Name, product.Price, product.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "insert product %s", product.ID)
	}
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT count(*) FROM products"); err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return n, nil
}
