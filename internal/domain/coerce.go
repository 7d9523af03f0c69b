package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawInput is a decoded request body before coercion. Numbers are kept as
// json.Number so that coercion sees the client's literal.
type RawInput map[string]any

// ParseRawInput decodes a JSON object body. An empty body or a literal null
// is reported as ErrMissingInput.
func ParseRawInput(body []byte) (RawInput, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrMissingInput
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, invalidInput("malformed JSON body: %v", err)
	}
	if dec.More() {
		return nil, invalidInput("malformed JSON body: trailing data")
	}

	switch v := doc.(type) {
	case nil:
		return nil, ErrMissingInput
	case map[string]any:
		return RawInput(v), nil
	default:
		return nil, invalidInput("request body must be a JSON object")
	}
}

func BuildProduct(raw RawInput, id string, now time.Time) (*Product, error) {
	if raw == nil {
		return nil, ErrMissingInput
	}

	code, err := raw.text("code")
	if err != nil {
		return nil, err
	}
	name, err := raw.text("name")
	if err != nil {
		return nil, err
	}
	price, err := raw.amount("price")
	if err != nil {
		return nil, err
	}

	return &Product{
		ID:        id,
		Code:      code,
		Name:      name,
		Price:     price,
		CreatedAt: now,
	}, nil
}

func BuildCustomer(raw RawInput, id string, now time.Time) (*Customer, error) {
	if raw == nil {
		return nil, ErrMissingInput
	}

	customer := &Customer{ID: id, CreatedAt: now}
	for key, dst := range map[string]*string{
		"name":  &customer.Name,
		"phone": &customer.Phone,
		"email": &customer.Email,
	} {
		v, err := raw.text(key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}

	return customer, nil
}

// BuildPurchase ignores any status in raw: new purchases are always pending.
func BuildPurchase(raw RawInput, id string, now time.Time) (*Purchase, error) {
	if raw == nil {
		return nil, ErrMissingInput
	}

	customerID, err := raw.text("customer_id")
	if err != nil {
		return nil, err
	}
	customerName, err := raw.text("customer_name")
	if err != nil {
		return nil, err
	}
	items, err := raw.lineItems("products")
	if err != nil {
		return nil, err
	}
	total, err := raw.amount("total_amount")
	if err != nil {
		return nil, err
	}

	return &Purchase{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: customerName,
		Products:     items,
		TotalAmount:  total,
		Status:       PurchasePending,
		PurchaseDate: now,
	}, nil
}

func (r RawInput) text(key string) (string, error) {
	switch v := r[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	}

	if f, ok := goNumber(r[key]); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", invalidField(key, "expected a string")
}

func (r RawInput) amount(key string) (float64, error) {
	var (
		f   float64
		err error
	)

	switch v := r[key].(type) {
	case nil:
		return 0, nil
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		var ok bool
		if f, ok = goNumber(v); !ok {
			return 0, invalidField(key, "expected a number")
		}
	}

	if err != nil {
		return 0, invalidField(key, "could not convert %q to a number", r[key])
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidField(key, "must be a finite number")
	}
	if f < 0 {
		return 0, invalidField(key, "must not be negative")
	}
	return f, nil
}

// goNumber accepts the numeric kinds a Go caller may put in a RawInput.
func goNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func (r RawInput) lineItems(key string) ([]LineItem, error) {
	switch v := r[key].(type) {
	case nil:
		return []LineItem{}, nil
	case []any:
		items := make([]LineItem, 0, len(v))
		for i, item := range v {
			b, err := json.Marshal(item)
			if err != nil {
				return nil, invalidField(key, "item %d: %v", i, err)
			}
			items = append(items, LineItem(b))
		}
		return items, nil
	default:
		return nil, invalidField(key, "expected a list")
	}
}
