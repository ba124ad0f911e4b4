package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportCategory represents the specific type of nuisance reported.
// Using a custom type prevents string typos in the business logic.
type ReportCategory string

const (
	ReportSpam     ReportCategory = "SPAM"
	ReportFraud    ReportCategory = "FRAUD"
	ReportPhishing ReportCategory = "PHISHING"
	ReportDebt     ReportCategory = "DEBT_COLLECTION"
	ReportSales    ReportCategory = "SALES"
)

// Report is a raw user report for a number. The volume of reports per
// number feeds the "user_reports" source of the reputation fusion.
type Report struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"` // E.164 format
	CountryCode string    `json:"country_code" db:"country_code"` // ISO 3166-1 alpha-2

	// ReporterHash is the HMAC-SHA256 of the reporter's identifier.
	// We NEVER store the raw reporter identity for privacy reasons.
	ReporterHash string `json:"reporter_hash" db:"reporter_hash"`

	Category  ReportCategory `json:"category" db:"category"`
	Comment   string         `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// NewReport is a factory to create a clean report instance.
// Note: It expects the ReporterHash to be already calculated by the caller (Service layer).
func NewReport(phone, country, reporterHash string, cat ReportCategory, comment string) *Report {
	return &Report{
		ID:           uuid.New(),
		PhoneNumber:  phone,
		CountryCode:  country,
		ReporterHash: reporterHash,
		Category:     cat,
		Comment:      comment,
		CreatedAt:    time.Now().UTC(),
	}
}

// Favorite is a user-pinned number with an optional note.
type Favorite struct {
	Number    string    `json:"number" db:"number"`
	Note      string    `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
