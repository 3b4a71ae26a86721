package models

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

// MaxTitleLength is the maximum allowed length for project titles.
const MaxTitleLength = 120

// Field validation errors reported to front ends.
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	ErrClientRequired      = errors.New("client is required")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrUnknownServiceType  = errors.New("unknown service type")
	ErrDueBeforeStart      = errors.New("due date must not be before start date")
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidEmail        = errors.New("invalid email address")
)

// IsSupportedCurrency reports whether code is one of the ledger currencies.
func IsSupportedCurrency(code Currency) bool {
	_, ok := SupportedCurrencies[code]
	return ok
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !IsSupportedCurrency(c) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}

// ParseServiceType matches s case-insensitively against the known service types.
func ParseServiceType(s string) (ServiceType, error) {
	s = strings.TrimSpace(s)
	for _, st := range ServiceTypes {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
}

// ParseStatus matches s case-insensitively against the project statuses.
func ParseStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Statuses, st) {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// ValidateProject checks the fields a project form must fill in.
func ValidateProject(p Project) error {
	var errs []error

	title := strings.TrimSpace(p.Title)
	switch {
	case title == "":
		errs = append(errs, ErrTitleRequired)
	case len(title) > MaxTitleLength:
		errs = append(errs, ErrTitleTooLong)
	}
	if strings.TrimSpace(p.ClientID) == "" {
		errs = append(errs, ErrClientRequired)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrNegativePrice)
	}
	if !IsSupportedCurrency(p.Currency) {
		errs = append(errs, ErrUnsupportedCurrency)
	}
	if !slices.Contains(ServiceTypes, p.ServiceType) {
		errs = append(errs, ErrUnknownServiceType)
	}
	if !p.StartDate.IsZero() && p.DueDate.Before(p.StartDate) {
		errs = append(errs, ErrDueBeforeStart)
	}

	return errors.Join(errs...)
}

// ValidateClient checks the fields a client form must fill in.
func ValidateClient(c Client) error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			errs = append(errs, ErrInvalidEmail)
		}
	}

	return errors.Join(errs...)
}
