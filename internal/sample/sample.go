// Package sample provides the dataset written on first run.
package sample

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var raw []byte

type clientDoc struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	Email          string             `yaml:"email"`
	Phone          string             `yaml:"phone"`
	Address        string             `yaml:"address"`
	Company        string             `yaml:"company"`
	Website        string             `yaml:"website"`
	SocialMedia    models.SocialMedia `yaml:"socialMedia"`
	Notes          string             `yaml:"notes"`
	CreatedDaysAgo int                `yaml:"createdDaysAgo"`
}

type projectDoc struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Notes         string `yaml:"notes"`
	ClientID      string `yaml:"clientId"`
	InvoiceNumber string `yaml:"invoiceNumber"`
	ServiceType   string `yaml:"serviceType"`
	Price         string `yaml:"price"`
	Currency      string `yaml:"currency"`
	StartDays     int    `yaml:"startDays"`
	DueDays       int    `yaml:"dueDays"`
	CompletedDays *int   `yaml:"completedDays"`

	Attachments []attachmentDoc `yaml:"attachments"`
}

type attachmentDoc struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	Type         string `yaml:"type"`
	Size         int64  `yaml:"size"`
	UploadedDays int    `yaml:"uploadedDays"`
}

type document struct {
	Clients  []clientDoc  `yaml:"clients"`
	Projects []projectDoc `yaml:"projects"`
}

// Data is a generated dataset.
type Data struct {
	Clients  []models.Client
	Projects []models.Project
}

// Generate builds the sample dataset with dates relative to now. Projects
// reference the generated clients and carry statuses consistent with now.
func Generate(now time.Time) (Data, error) {
	return generate(raw, now)
}

func generate(src []byte, now time.Time) (Data, error) {
	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return Data{}, fmt.Errorf("parse sample data: %w", err)
	}

	data := Data{
		Clients:  make([]models.Client, 0, len(doc.Clients)),
		Projects: make([]models.Project, 0, len(doc.Projects)),
	}

	for _, c := range doc.Clients {
		created := days(now, -c.CreatedDaysAgo)
		data.Clients = append(data.Clients, models.Client{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			Address:     c.Address,
			Company:     c.Company,
			Website:     c.Website,
			SocialMedia: c.SocialMedia,
			Notes:       c.Notes,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}

	for _, p := range doc.Projects {
		project, err := p.project(now)
		if err != nil {
			return Data{}, fmt.Errorf("sample project %s: %w", p.ID, err)
		}
		data.Projects = append(data.Projects, project)
	}

	return data, nil
}

// Clients returns the sample clients, or nil if the dataset cannot be built.
func Clients(now time.Time) []models.Client {
	return seed(raw, now).Clients
}

// Projects returns the sample projects, or nil if the dataset cannot be built.
func Projects(now time.Time) []models.Project {
	return seed(raw, now).Projects
}

// seed builds the dataset for seeding storage, logging why it is empty when
// the dataset is invalid.
func seed(src []byte, now time.Time) Data {
	data, err := generate(src, now)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to build sample data, seeding empty collections")
		return Data{}
	}
	return data
}

func (p projectDoc) project(now time.Time) (models.Project, error) {
	service, err := models.ParseServiceType(p.ServiceType)
	if err != nil {
		return models.Project{}, err
	}
	currency, err := models.ParseCurrency(p.Currency)
	if err != nil {
		return models.Project{}, err
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return models.Project{}, fmt.Errorf("price %q: %w", p.Price, err)
	}

	start := days(now, p.StartDays)
	project := models.Project{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Notes:         p.Notes,
		ClientID:      p.ClientID,
		InvoiceNumber: p.InvoiceNumber,
		ServiceType:   service,
		Price:         price,
		Currency:      currency,
		StartDate:     start,
		DueDate:       days(now, p.DueDays),
		Attachments:   make([]models.Attachment, 0, len(p.Attachments)),
		CreatedAt:     start,
		UpdatedAt:     start,
	}
	for _, a := range p.Attachments {
		project.Attachments = append(project.Attachments, models.Attachment{
			ID:         a.ID,
			Name:       a.Name,
			URL:        a.URL,
			Type:       a.Type,
			Size:       a.Size,
			UploadedAt: days(now, a.UploadedDays),
		})
	}
	if p.CompletedDays != nil {
		completed := days(now, *p.CompletedDays)
		project.CompletedDate = &completed
		project.UpdatedAt = completed
	}

	return models.Normalize(project, now), nil
}

func days(now time.Time, n int) time.Time {
	return now.AddDate(0, 0, n)
}
