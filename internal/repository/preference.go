package repository

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// CurrencyPreference persists the selected display currency under its own key.
type CurrencyPreference struct {
	kv  KV
	def models.Currency
}

// NewCurrencyPreference creates a preference that falls back to def.
func NewCurrencyPreference(kv KV, def models.Currency) *CurrencyPreference {
	return &CurrencyPreference{kv: kv, def: def}
}

// Load returns the stored currency. It always returns a usable currency:
// a missing value yields the default with a nil error, while unreadable or
// unsupported values yield the default together with the error to log.
func (p *CurrencyPreference) Load(ctx context.Context) (models.Currency, error) {
	ctx, span := tracer.Start(ctx, "preference.Load")
	defer span.End()

	data, ok, err := p.kv.Get(ctx, KeyCurrency)
	if err != nil {
		return p.def, observe(span, fmt.Errorf("%w: %s: %w", ErrStorageRead, KeyCurrency, err))
	}
	if !ok {
		return p.def, nil
	}

	code := models.Currency(strings.Trim(strings.TrimSpace(string(data)), `"`))
	if !models.IsSupportedCurrency(code) {
		return p.def, observe(span, fmt.Errorf("%w: %s: unsupported currency %q", ErrCorruptData, KeyCurrency, code))
	}
	return code, nil
}

// Save stores code as the selected currency.
func (p *CurrencyPreference) Save(ctx context.Context, code models.Currency) error {
	ctx, span := tracer.Start(ctx, "preference.Save")
	defer span.End()

	if !models.IsSupportedCurrency(code) {
		return observe(span, fmt.Errorf("%w: %q", models.ErrUnsupportedCurrency, code))
	}
	if err := p.kv.Put(ctx, KeyCurrency, []byte(code)); err != nil {
		return observe(span, fmt.Errorf("%w: %s: %w", ErrStorageWrite, KeyCurrency, err))
	}
	return nil
}
