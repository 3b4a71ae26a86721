// Package exchange converts and formats amounts in the supported currencies.
package exchange

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// USDToLKR is the fixed exchange rate: one US dollar in Sri Lankan rupees.
const USDToLKR = 320

var usdToLKR = decimal.NewFromInt(USDToLKR)

// Convert converts amount between the two supported currencies at the fixed
// rate. Same-currency conversion returns amount unchanged. No rounding is
// applied; callers must only pass supported currency codes.
func Convert(amount decimal.Decimal, from, to models.Currency) decimal.Decimal {
	if from == to {
		return amount
	}
	if from == models.CurrencyUSD && to == models.CurrencyLKR {
		return amount.Mul(usdToLKR)
	}
	return amount.Div(usdToLKR)
}

// Price returns the project price in the target currency.
func Price(p models.Project, to models.Currency) decimal.Decimal {
	return Convert(p.Price, p.Currency, to)
}

// Symbol returns the display prefix of a currency, or the code itself if it
// is not supported.
func Symbol(code models.Currency) string {
	if symbol, ok := models.SupportedCurrencies[code]; ok {
		return symbol
	}
	return string(code) + " "
}

// Format renders amount with two decimals and thousands separators,
// e.g. "$1,250.00" or "LKR 400,000.00".
func Format(amount decimal.Decimal, code models.Currency) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	frac := fixed[strings.IndexByte(fixed, '.'):]

	return sign + Symbol(code) + humanize.Comma(rounded.IntPart()) + frac
}
