package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyEUR(t *testing.T) {
	m := NewMoneyEUR(decimal.NewFromFloat(50.00))
	assert.Equal(t, EUR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestNewMoneyEURFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyEURFromString("123.45")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyEURFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds amounts with same currency", func(t *testing.T) {
		a := NewMoneyEURFromFloat(10.50)
		b := NewMoneyEURFromFloat(5.25)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(15.75)))
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		a := NewMoneyEURFromFloat(10)
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyEURFromFloat(9.99)
	result := m.MultiplyByInt(3)
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(29.97)))
	assert.Equal(t, EUR, result.Currency())
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyEURFromFloat(100.01)
	b := NewMoneyEURFromFloat(100)

	gt, err := a.GreaterThan(b)
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := b.LessThan(a)
	require.NoError(t, err)
	assert.True(t, lt)

	assert.True(t, a.Equals(NewMoneyEURFromFloat(100.01)))
	assert.False(t, a.Equals(b))
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, ZeroEUR().IsZero())
	assert.True(t, NewMoneyEURFromFloat(1).IsPositive())
	assert.True(t, NewMoneyEURFromFloat(-1).IsNegative())
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyEURFromFloat(125.99)
	assert.Equal(t, "125.99 EUR", m.String())
	assert.Equal(t, "125.99", m.StringFixed(2))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	original := NewMoneyEURFromFloat(80.00)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}

func TestMoneyUnmarshalDefaultsCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.34"}`), &m))
	assert.Equal(t, DefaultCurrency, m.Currency())
}

func TestMoneyUnmarshalInvalidAmount(t *testing.T) {
	var m Money
	err := json.Unmarshal([]byte(`{"amount":"oops","currency":"EUR"}`), &m)
	assert.Error(t, err)
}
