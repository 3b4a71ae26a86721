// Package report builds income reports over labeled date periods.
package report

import (
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/freelance-ledger/internal/exchange"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// InPeriod reports whether p was completed strictly inside the period.
func InPeriod(p models.Project, period models.ReportPeriod) bool {
	if p.CompletedDate == nil {
		return false
	}
	return p.CompletedDate.After(period.StartDate) && p.CompletedDate.Before(period.EndDate)
}

// Generate summarizes the projects completed inside period in the given
// currency. Breakdowns are grouped in order of first occurrence; clients
// that no longer exist are reported as models.UnknownClientName.
func Generate(projects []models.Project, clients []models.Client, period models.ReportPeriod, currency models.Currency) models.Report {
	r := models.Report{
		Period:           period,
		Currency:         currency,
		TotalIncome:      decimal.Zero,
		ProjectBreakdown: []models.ServiceBreakdown{},
		ClientBreakdown:  []models.ClientBreakdown{},
	}

	names := make(map[string]string, len(clients))
	for i := range clients {
		if _, ok := names[clients[i].ID]; !ok {
			names[clients[i].ID] = clients[i].Name
		}
	}

	services := make(map[models.ServiceType]int)
	byClient := make(map[string]int)

	for i := range projects {
		p := &projects[i]
		if !InPeriod(*p, period) {
			continue
		}

		amount := exchange.Price(*p, currency)
		r.TotalProjects++
		if p.Status == models.StatusCompleted {
			r.CompletedProjects++
		}
		r.TotalIncome = r.TotalIncome.Add(amount)

		idx, ok := services[p.ServiceType]
		if !ok {
			idx = len(r.ProjectBreakdown)
			services[p.ServiceType] = idx
			r.ProjectBreakdown = append(r.ProjectBreakdown, models.ServiceBreakdown{
				ServiceType: p.ServiceType,
				Income:      decimal.Zero,
			})
		}
		r.ProjectBreakdown[idx].Count++
		r.ProjectBreakdown[idx].Income = r.ProjectBreakdown[idx].Income.Add(amount)

		idx, ok = byClient[p.ClientID]
		if !ok {
			name, known := names[p.ClientID]
			if !known {
				name = models.UnknownClientName
			}
			idx = len(r.ClientBreakdown)
			byClient[p.ClientID] = idx
			r.ClientBreakdown = append(r.ClientBreakdown, models.ClientBreakdown{
				ClientID:   p.ClientID,
				ClientName: name,
				Income:     decimal.Zero,
			})
		}
		r.ClientBreakdown[idx].ProjectCount++
		r.ClientBreakdown[idx].Income = r.ClientBreakdown[idx].Income.Add(amount)
	}

	return r
}
