package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marnie-pos/internal/domain"
)

func TestMemoryStoresStartEmpty(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet()

	products, err := set.Products.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	customers, err := set.Customers.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)

	purchases, err := set.Purchases.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, purchases)
	assert.Empty(t, purchases)

	n, err := set.Purchases.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryProductRepoKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProductRepo()

	for i := 1; i <= 3; i++ {
		require.NoError(t, r.Append(ctx, &domain.Product{ID: fmt.Sprintf("p%d", i), Price: float64(i)}))
	}

	products, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, "p3", products[2].ID)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMemoryListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryCustomerRepo()
	require.NoError(t, r.Append(ctx, &domain.Customer{ID: "c1", Name: "Ann"}))

	customers, _ := r.List(ctx)
	customers[0].Name = "changed"

	again, _ := r.List(ctx)
	assert.Equal(t, "Ann", again[0].Name)
}

func TestMemoryAppendStoresValue(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryPurchaseRepo()

	p := &domain.Purchase{ID: "pu1", TotalAmount: 10, Status: domain.PurchasePending, PurchaseDate: time.Now()}
	require.NoError(t, r.Append(ctx, p))
	p.TotalAmount = 99

	purchases, _ := r.List(ctx)
	assert.Equal(t, 10.0, purchases[0].TotalAmount)
}

func TestMemoryConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryPurchaseRepo()

	const workers, perWorker = 10, 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = r.Append(ctx, &domain.Purchase{ID: fmt.Sprintf("%d-%d", w, i)})
				_, _ = r.List(ctx)
			}
		}(w)
	}
	wg.Wait()

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, n)
}
