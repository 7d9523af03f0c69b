package repo

import "github.com/jmoiron/sqlx"

// Set groups the three ledger stores of one backend.
type Set struct {
	Products  ProductRepo
	Customers CustomerRepo
	Purchases PurchaseRepo
}

func NewMemorySet() Set {
	return Set{
		Products:  NewMemoryProductRepo(),
		Customers: NewMemoryCustomerRepo(),
		Purchases: NewMemoryPurchaseRepo(),
	}
}

func NewPostgresSet(db *sqlx.DB) Set {
	return Set{
		Products:  NewProductRepo(db),
		Customers: NewCustomerRepo(db),
		Purchases: NewPurchaseRepo(db),
	}
}
