package http

import (
	"errors"
	"strings"
)

// maxBatchSize bounds one batch request. Larger jobs should go through
// the document endpoint or be split by the caller.
const maxBatchSize = 100

type LookupRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (r *LookupRequest) Validate() error {
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.New("phone_number is required")
	}
	return nil
}

type BatchLookupRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
}

func (r *BatchLookupRequest) Validate() error {
	if len(r.PhoneNumbers) == 0 {
		return errors.New("phone_numbers must not be empty")
	}
	if len(r.PhoneNumbers) > maxBatchSize {
		return errors.New("too many numbers in one batch")
	}
	return nil
}

type CreateReportRequest struct {
	PhoneNumber string `json:"phone_number"`
	Category    string `json:"category"`
	Comment     string `json:"comment"`
}

func (r *CreateReportRequest) Validate() error {
	if len(r.PhoneNumber) < 5 {
		return errors.New("phone_number is too short")
	}

	validCategories := map[string]bool{
		"SPAM": true, "FRAUD": true, "PHISHING": true,
		"DEBT_COLLECTION": true, "SALES": true,
	}

	if !validCategories[strings.ToUpper(r.Category)] {
		return errors.New("invalid category")
	}

	return nil
}

type FavoriteRequest struct {
	PhoneNumber string `json:"phone_number"`
	Note        string `json:"note"`
}

func (r *FavoriteRequest) Validate() error {
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.New("phone_number is required")
	}
	return nil
}

type ExportRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
	Format       string   `json:"format"`
}

func (r *ExportRequest) Validate() error {
	if len(r.PhoneNumbers) == 0 {
		return errors.New("phone_numbers must not be empty")
	}
	if len(r.PhoneNumbers) > maxBatchSize {
		return errors.New("too many numbers in one export")
	}

	switch strings.ToLower(r.Format) {
	case "", "json", "csv", "pdf":
		return nil
	default:
		return errors.New("format must be one of json, csv, pdf")
	}
}
