package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	t.Parallel()

	t.Run("serializes with camelCase keys", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		p := Project{
			ID:          "project-1",
			Title:       "Landing page",
			ClientID:    "client-1",
			ServiceType: ServiceWebDevelopment,
			Price:       decimal.NewFromInt(1200),
			Currency:    CurrencyUSD,
			StartDate:   now,
			DueDate:     now.AddDate(0, 1, 0),
			Status:      StatusOngoing,
			Attachments: []Attachment{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Equal(t, "client-1", raw["clientId"])
		require.Equal(t, "Web Development", raw["serviceType"])
		require.NotContains(t, raw, "completedDate")
	})

	t.Run("EntityID returns the id", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "p-9", Project{ID: "p-9"}.EntityID())
		require.Equal(t, "c-9", Client{ID: "c-9"}.EntityID())
	})
}

func TestClient(t *testing.T) {
	t.Parallel()

	t.Run("omits empty optional fields", func(t *testing.T) {
		t.Parallel()
		c := Client{ID: "client-1", Name: "Nimal", SocialMedia: SocialMedia{Instagram: "@nimal"}}

		data, err := json.Marshal(c)
		require.NoError(t, err)
		require.NotContains(t, string(data), "website")
		require.NotContains(t, string(data), "facebook")
		require.Contains(t, string(data), `"instagram":"@nimal"`)
	})
}

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{"LKR", CurrencyLKR, false},
		{" usd ", CurrencyUSD, false},
		{"EUR", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedCurrency)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseServiceType(t *testing.T) {
	t.Parallel()

	got, err := ParseServiceType("ui/ux design")
	require.NoError(t, err)
	require.Equal(t, ServiceUIUXDesign, got)

	_, err = ParseServiceType("Plumbing")
	require.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseStatus("Overdue")
	require.NoError(t, err)
	require.Equal(t, StatusOverdue, got)

	_, err = ParseStatus("paused")
	require.Error(t, err)
}

func TestValidateProject(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := Project{
		Title:       "Logo refresh",
		ClientID:    "client-1",
		ServiceType: ServiceLogoDesign,
		Price:       decimal.NewFromInt(50000),
		Currency:    CurrencyLKR,
		StartDate:   start,
		DueDate:     start.AddDate(0, 0, 14),
	}

	t.Run("accepts a complete project", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, ValidateProject(valid))
	})

	t.Run("reports every failing field", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Title = "  "
		p.ClientID = ""
		p.Price = decimal.NewFromInt(-1)
		p.Currency = "EUR"
		p.ServiceType = "Plumbing"
		p.DueDate = start.AddDate(0, 0, -1)

		err := ValidateProject(p)
		require.ErrorIs(t, err, ErrTitleRequired)
		require.ErrorIs(t, err, ErrClientRequired)
		require.ErrorIs(t, err, ErrNegativePrice)
		require.ErrorIs(t, err, ErrUnsupportedCurrency)
		require.ErrorIs(t, err, ErrUnknownServiceType)
		require.ErrorIs(t, err, ErrDueBeforeStart)
	})

	t.Run("rejects overly long titles", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Title = strings.Repeat("a", MaxTitleLength+1)
		require.ErrorIs(t, ValidateProject(p), ErrTitleTooLong)
	})
}

func TestValidateClient(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateClient(Client{Name: "Kamal", Email: "kamal@example.com"}))
	require.NoError(t, ValidateClient(Client{Name: "Kamal"}))
	require.ErrorIs(t, ValidateClient(Client{Name: ""}), ErrNameRequired)
	require.ErrorIs(t, ValidateClient(Client{Name: "Kamal", Email: "not-an-email"}), ErrInvalidEmail)
}
