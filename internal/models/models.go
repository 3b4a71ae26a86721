// Package models defines the domain entities for the freelance ledger.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code supported by the ledger.
type Currency string

// Supported currencies.
const (
	CurrencyLKR Currency = "LKR"
	CurrencyUSD Currency = "USD"
)

// DefaultCurrency is the display currency used until the user picks one.
const DefaultCurrency = CurrencyLKR

// SupportedCurrencies maps each supported currency code to its display prefix.
var SupportedCurrencies = map[Currency]string{
	CurrencyLKR: "LKR ",
	CurrencyUSD: "$",
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project statuses.
const (
	StatusOngoing   ProjectStatus = "ongoing"
	StatusCompleted ProjectStatus = "completed"
	StatusOverdue   ProjectStatus = "overdue"
)

// Statuses lists every project status in display order.
var Statuses = []ProjectStatus{StatusOngoing, StatusCompleted, StatusOverdue}

// ServiceType classifies the work done for a project.
type ServiceType string

// Service types offered.
const (
	ServiceWebDevelopment  ServiceType = "Web Development"
	ServiceMobileApp       ServiceType = "Mobile App"
	ServiceUIUXDesign      ServiceType = "UI/UX Design"
	ServiceGraphicDesign   ServiceType = "Graphic Design"
	ServiceLogoDesign      ServiceType = "Logo Design"
	ServiceBranding        ServiceType = "Branding"
	ServiceContentCreation ServiceType = "Content Creation"
	ServiceOther           ServiceType = "Other"
)

// ServiceTypes lists every service type in form order.
var ServiceTypes = []ServiceType{
	ServiceWebDevelopment,
	ServiceMobileApp,
	ServiceUIUXDesign,
	ServiceGraphicDesign,
	ServiceLogoDesign,
	ServiceBranding,
	ServiceContentCreation,
	ServiceOther,
}

// UnknownClientName is shown for projects whose client no longer exists.
const UnknownClientName = "Unknown Client"

// Attachment is a file linked to a project.
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Project is a piece of billable work for a client.
type Project struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	ClientID      string          `json:"clientId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ServiceType   ServiceType     `json:"serviceType"`
	Price         decimal.Decimal `json:"price"`
	Currency      Currency        `json:"currency"`
	StartDate     time.Time       `json:"startDate"`
	DueDate       time.Time       `json:"dueDate"`
	CompletedDate *time.Time      `json:"completedDate,omitempty"`
	Status        ProjectStatus   `json:"status"`
	Attachments   []Attachment    `json:"attachments"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// EntityID returns the project ID.
func (p Project) EntityID() string { return p.ID }

// SocialMedia holds optional social handles for a client.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// Client is a person or company the freelancer works for.
type Client struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	Company     string      `json:"company"`
	Website     string      `json:"website,omitempty"`
	SocialMedia SocialMedia `json:"socialMedia"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// EntityID returns the client ID.
func (c Client) EntityID() string { return c.ID }

// DashboardStats summarizes the project collection.
type DashboardStats struct {
	TotalProjects     int             `json:"totalProjects"`
	ActiveProjects    int             `json:"activeProjects"`
	CompletedProjects int             `json:"completedProjects"`
	OverdueProjects   int             `json:"overdueProjects"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
}

// Dataset is one series of chart values.
type Dataset struct {
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors,omitempty"`
}

// ChartData is a labeled set of chart series.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ReportPeriod is a labeled date interval. Reports include completions
// strictly between StartDate and EndDate.
type ReportPeriod struct {
	Label     string    `json:"label"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ServiceBreakdown aggregates report projects of one service type.
type ServiceBreakdown struct {
	ServiceType ServiceType     `json:"serviceType"`
	Count       int             `json:"count"`
	Income      decimal.Decimal `json:"income"`
}

// ClientBreakdown aggregates report projects of one client.
type ClientBreakdown struct {
	ClientID     string          `json:"clientId"`
	ClientName   string          `json:"clientName"`
	ProjectCount int             `json:"projectCount"`
	Income       decimal.Decimal `json:"income"`
}

// Report is the financial summary of a period. It is derived, never stored.
type Report struct {
	Period            ReportPeriod       `json:"period"`
	Currency          Currency           `json:"currency"`
	TotalProjects     int                `json:"totalProjects"`
	CompletedProjects int                `json:"completedProjects"`
	TotalIncome       decimal.Decimal    `json:"totalIncome"`
	ProjectBreakdown  []ServiceBreakdown `json:"projectBreakdown"`
	ClientBreakdown   []ClientBreakdown  `json:"clientBreakdown"`
}
