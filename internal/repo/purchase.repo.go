package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"marnie-pos/internal/domain"
)

type PurchaseRepo interface {
	List(ctx context.Context) ([]domain.Purchase, error)
	Append(ctx context.Context, purchase *domain.Purchase) error
	Count(ctx context.Context) (int, error)
}

type memoryPurchaseRepo struct {
	purchases memoryList[domain.Purchase]
}

func NewMemoryPurchaseRepo() PurchaseRepo {
	return &memoryPurchaseRepo{}
}

func (r *memoryPurchaseRepo) List(ctx context.Context) ([]domain.Purchase, error) {
	return r.purchases.list(), nil
}

func (r *memoryPurchaseRepo) Append(ctx context.Context, purchase *domain.Purchase) error {
	r.purchases.append(*purchase)
	return nil
}

func (r *memoryPurchaseRepo) Count(ctx context.Context) (int, error) {
	return r.purchases.count(), nil
}

type purchaseRepo struct {
	db *sqlx.DB
}

func NewPurchaseRepo(db *sqlx.DB) PurchaseRepo {
	return &purchaseRepo{db: db}
}

// purchaseRow mirrors the purchases table; line items live in a jsonb array.
type purchaseRow struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	CustomerName string    `db:"customer_name"`
	Products     []byte    `db:"products"`
	TotalAmount  float64   `db:"total_amount"`
	Status       string    `db:"status"`
	PurchaseDate time.Time `db:"purchase_date"`
}

func (r *purchaseRepo) List(ctx context.Context) ([]domain.Purchase, error) {
	var rows []purchaseRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, customer_name, products, total_amount, status, purchase_date
		FROM purchases
		ORDER BY seq
	`)
	if err != nil {
		return nil, errors.Wrap(err, "list purchases")
	}

	purchases := make([]domain.Purchase, 0, len(rows))
	for _, row := range rows {
		items := []domain.LineItem{}
		if err := json.Unmarshal(row.Products, &items); err != nil {
			return nil, errors.Wrapf(err, "decode line items of purchase %s", row.ID)
		}
		purchases = append(purchases, domain.Purchase{
			ID:           row.ID,
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Products:     items,
			TotalAmount:  row.TotalAmount,
			Status:       domain.PurchaseStatus(row.Status),
			PurchaseDate: row.PurchaseDate,
		})
	}
	return purchases, nil
}

func (r *purchaseRepo) Append(ctx context.Context, purchase *domain.Purchase) error {
	items := purchase.Products
	if items == nil {
		items = []domain.LineItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encode line items of purchase %s", purchase.ID)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO purchases (id, customer_id, customer_name, products, total_amount, status, purchase_date)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7)
	`,
		purchase.ID,
		purchase.CustomerID,
		purchase.CustomerName,
		string(encoded),
		purchase.TotalAmount,
		string(purchase.Status),
		purchase.PurchaseDate,
	)
	if err != nil {
		return errors.Wrapf(err, "insert purchase %s", purchase.ID)
	}
	return nil
}

func (r *purchaseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT count(*) FROM purchases"); err != nil {
		return 0, errors.Wrap(err, "count purchases")
	}
	return n, nil
}
