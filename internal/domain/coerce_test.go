package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marnie-pos/internal/domain"
)

var now = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func mustParse(t *testing.T, body string) domain.RawInput {
	t.Helper()
	raw, err := domain.ParseRawInput([]byte(body))
	require.NoError(t, err)
	return raw
}

func TestParseRawInput(t *testing.T) {
	t.Run("Missing body", func(t *testing.T) {
		for _, body := range []string{"", "   \n", "null"} {
			_, err := domain.ParseRawInput([]byte(body))
			assert.ErrorIs(t, err, domain.ErrMissingInput, "body %q", body)
		}
	})

	t.Run("Not an object", func(t *testing.T) {
		_, err := domain.ParseRawInput([]byte(`[1, 2]`))
		assert.True(t, domain.IsInvalidInput(err))
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := domain.ParseRawInput([]byte(`{"name": `))
		assert.True(t, domain.IsInvalidInput(err))

		_, err = domain.ParseRawInput([]byte(`{} {}`))
		assert.True(t, domain.IsInvalidInput(err))
	})

	t.Run("Empty object is valid", func(t *testing.T) {
		raw := mustParse(t, `{}`)
		assert.NotNil(t, raw)
		assert.Empty(t, raw)
	})
}

func TestBuildProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p, err := domain.BuildProduct(mustParse(t, `{"code":"X1","name":"Widget","price":12.5}`), "id-1", now)

		require.NoError(t, err)
		assert.Equal(t, "id-1", p.ID)
		assert.Equal(t, "X1", p.Code)
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, 12.5, p.Price)
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("Defaults", func(t *testing.T) {
		p, err := domain.BuildProduct(mustParse(t, `{"name": null}`), "id-2", now)

		require.NoError(t, err)
		assert.Equal(t, "", p.Code)
		assert.Equal(t, "", p.Name)
		assert.Zero(t, p.Price)
	})

	t.Run("Numeric string price", func(t *testing.T) {
		p, err := domain.BuildProduct(mustParse(t, `{"price":" 8.75 "}`), "id-3", now)

		require.NoError(t, err)
		assert.Equal(t, 8.75, p.Price)
	})

	t.Run("Input id and timestamp are ignored", func(t *testing.T) {
		p, err := domain.BuildProduct(mustParse(t, `{"id":"mine","created_at":"yesterday"}`), "id-4", now)

		require.NoError(t, err)
		assert.Equal(t, "id-4", p.ID)
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("Fail on non-numeric price", func(t *testing.T) {
		p, err := domain.BuildProduct(mustParse(t, `{"code":"X1","name":"Widget","price":"abc"}`), "id-5", now)

		assert.Nil(t, p)
		require.True(t, domain.IsInvalidInput(err))
		var derr *domain.Error
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "price", derr.Field)
	})

	t.Run("Fail on negative or non-scalar price", func(t *testing.T) {
		for _, body := range []string{`{"price":-1}`, `{"price":true}`, `{"price":[1]}`, `{"price":"NaN"}`, `{"price":"Inf"}`} {
			_, err := domain.BuildProduct(mustParse(t, body), "id", now)
			assert.True(t, domain.IsInvalidInput(err), "body %s", body)
		}
	})

	t.Run("Fail on object code", func(t *testing.T) {
		_, err := domain.BuildProduct(mustParse(t, `{"code":{"a":1}}`), "id", now)
		assert.True(t, domain.IsInvalidInput(err))
	})

	t.Run("Fail on nil input", func(t *testing.T) {
		_, err := domain.BuildProduct(nil, "id", now)
		assert.ErrorIs(t, err, domain.ErrMissingInput)
	})
}

func TestBuildCustomer(t *testing.T) {
	c, err := domain.BuildCustomer(mustParse(t, `{"name":"Ann","phone":5551234}`), "c-1", now)

	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, "5551234", c.Phone)
	assert.Equal(t, "", c.Email)
	assert.Equal(t, now, c.CreatedAt)

	_, err = domain.BuildCustomer(mustParse(t, `{"email":["a@b.c"]}`), "c-2", now)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestBuildPurchase(t *testing.T) {
	t.Run("Status is always pending", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"status":"paid"}`, `{"status":"pending"}`, `{"status":42}`} {
			p, err := domain.BuildPurchase(mustParse(t, body), "pu", now)
			require.NoError(t, err)
			assert.Equal(t, domain.PurchasePending, p.Status, "body %s", body)
		}
	})

	t.Run("Line items pass through", func(t *testing.T) {
		p, err := domain.BuildPurchase(mustParse(t, `{
			"customer_id": "1",
			"customer_name": "John Doe",
			"products": [{"id": "p1", "quantity": 2, "price": 10.99}, "loose"],
			"total_amount": "21.98"
		}`), "pu-1", now)

		require.NoError(t, err)
		assert.Equal(t, "1", p.CustomerID)
		assert.Equal(t, "John Doe", p.CustomerName)
		assert.Equal(t, 21.98, p.TotalAmount)
		assert.Equal(t, now, p.PurchaseDate)
		require.Len(t, p.Products, 2)
		assert.JSONEq(t, `{"id":"p1","quantity":2,"price":10.99}`, string(p.Products[0]))
		assert.JSONEq(t, `"loose"`, string(p.Products[1]))
	})

	t.Run("Missing products default to empty list", func(t *testing.T) {
		p, err := domain.BuildPurchase(mustParse(t, `{"products": null}`), "pu-2", now)

		require.NoError(t, err)
		assert.NotNil(t, p.Products)
		assert.Empty(t, p.Products)

		b, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"products":[]`)
	})

	t.Run("Fail on non-list products", func(t *testing.T) {
		_, err := domain.BuildPurchase(mustParse(t, `{"products": "p1"}`), "pu-3", now)
		assert.True(t, domain.IsInvalidInput(err))
	})

	t.Run("Fail on bad total", func(t *testing.T) {
		_, err := domain.BuildPurchase(mustParse(t, `{"total_amount": "ten"}`), "pu-4", now)
		assert.True(t, domain.IsInvalidInput(err))
	})
}

func TestBuildFromGoValues(t *testing.T) {
	t.Run("Integer price", func(t *testing.T) {
		p, err := domain.BuildProduct(domain.RawInput{"price": 3}, "id", now)

		require.NoError(t, err)
		assert.Equal(t, 3.0, p.Price)
	})

	t.Run("Other numeric kinds", func(t *testing.T) {
		for _, v := range []any{int8(2), int32(2), int64(2), uint(2), uint16(2), uint64(2), float32(2)} {
			p, err := domain.BuildPurchase(domain.RawInput{"total_amount": v}, "pu", now)
			require.NoError(t, err, "%T", v)
			assert.Equal(t, 2.0, p.TotalAmount, "%T", v)
		}
	})

	t.Run("Negative integer is rejected", func(t *testing.T) {
		_, err := domain.BuildProduct(domain.RawInput{"price": -3}, "id", now)
		assert.True(t, domain.IsInvalidInput(err))
	})

	t.Run("Integer phone becomes text", func(t *testing.T) {
		c, err := domain.BuildCustomer(domain.RawInput{"phone": 42}, "c", now)

		require.NoError(t, err)
		assert.Equal(t, "42", c.Phone)
	})
}
