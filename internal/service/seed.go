package service

import "marnie-pos/internal/domain"

var seedProducts = []domain.RawInput{
	{"code": "P001", "name": "Product A", "price": 10.99},
	{"code": "P002", "name": "Product B", "price": 15.50},
	{"code": "P003", "name": "Product C", "price": 8.75},
}

var seedCustomers = []domain.RawInput{
	{"name": "John Doe", "phone": "123-456-7890", "email": "john@example.com"},
	{"name": "Jane Smith", "phone": "098-765-4321", "email": "jane@example.com"},
}
