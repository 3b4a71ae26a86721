package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"pgregory.net/rapid"
)

var currencies = []models.Currency{models.CurrencyLKR, models.CurrencyUSD}

func drawAmount(t *rapid.T) decimal.Decimal {
	cents := rapid.Int64Range(0, 1_000_000_000_00).Draw(t, "cents")
	return decimal.New(cents, -2)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		from   models.Currency
		to     models.Currency
		want   string
	}{
		{"usd to lkr multiplies", "10", models.CurrencyUSD, models.CurrencyLKR, "3200"},
		{"lkr to usd divides", "3200", models.CurrencyLKR, models.CurrencyUSD, "10"},
		{"fractional usd", "12.5", models.CurrencyUSD, models.CurrencyLKR, "4000"},
		{"small lkr amount is not rounded", "1", models.CurrencyLKR, models.CurrencyUSD, "0.003125"},
		{"same currency", "99.99", models.CurrencyUSD, models.CurrencyUSD, "99.99"},
		{"zero", "0", models.CurrencyUSD, models.CurrencyLKR, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Convert(decimal.RequireFromString(tt.amount), tt.from, tt.to)
			require.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestConvert_Properties(t *testing.T) {
	t.Parallel()

	t.Run("same currency is identity", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			amount := drawAmount(t)
			c := rapid.SampledFrom(currencies).Draw(t, "currency")
			got := Convert(amount, c, c)
			if got.String() != amount.String() {
				t.Fatalf("Convert(%s, %s, %s) = %s", amount, c, c, got)
			}
		})
	})

	t.Run("usd round trip returns the amount", func(t *testing.T) {
		t.Parallel()
		tolerance := decimal.New(1, -8)
		rapid.Check(t, func(t *rapid.T) {
			amount := drawAmount(t)
			back := Convert(Convert(amount, models.CurrencyUSD, models.CurrencyLKR), models.CurrencyLKR, models.CurrencyUSD)
			if back.Sub(amount).Abs().GreaterThan(tolerance) {
				t.Fatalf("round trip of %s gave %s", amount, back)
			}
		})
	})

	t.Run("lkr round trip returns the amount", func(t *testing.T) {
		t.Parallel()
		tolerance := decimal.New(1, -8)
		rapid.Check(t, func(t *rapid.T) {
			amount := drawAmount(t)
			back := Convert(Convert(amount, models.CurrencyLKR, models.CurrencyUSD), models.CurrencyUSD, models.CurrencyLKR)
			if back.Sub(amount).Abs().GreaterThan(tolerance) {
				t.Fatalf("round trip of %s gave %s", amount, back)
			}
		})
	})
}

func TestPrice(t *testing.T) {
	t.Parallel()

	p := models.Project{Price: decimal.NewFromInt(250), Currency: models.CurrencyUSD}
	require.True(t, decimal.NewFromInt(80000).Equal(Price(p, models.CurrencyLKR)))
	require.True(t, decimal.NewFromInt(250).Equal(Price(p, models.CurrencyUSD)))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		code   models.Currency
		want   string
	}{
		{"1250", models.CurrencyUSD, "$1,250.00"},
		{"400000", models.CurrencyLKR, "LKR 400,000.00"},
		{"0.005", models.CurrencyUSD, "$0.01"},
		{"3.14159", models.CurrencyUSD, "$3.14"},
		{"-1234.5", models.CurrencyLKR, "-LKR 1,234.50"},
		{"7", "EUR", "EUR 7.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Format(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}
