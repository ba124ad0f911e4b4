package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/extract"
)

var validCategories = map[domain.ReportCategory]bool{
	domain.ReportSpam:     true,
	domain.ReportFraud:    true,
	domain.ReportPhishing: true,
	domain.ReportDebt:     true,
	domain.ReportSales:    true,
}

// IngestReport implements the logic to validate and save a report.
// Report counts feed the reputation fusion, so the stored number must
// match the canonical form Lookup keys on.
func (s *intelService) IngestReport(ctx context.Context, rawPhone, rawReporter, category, comment string) error {
	num, err := phonenumbers.Parse(strings.TrimSpace(rawPhone), "")
	if err != nil {
		return errors.New("invalid phone format: ensure it includes country code (e.g. +569...)")
	}

	if !phonenumbers.IsValidNumber(num) {
		return errors.New("invalid phone number: number does not exist")
	}

	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "" || region == "ZZ" {
		return errors.New("could not detect country from phone number")
	}

	cat := domain.ReportCategory(strings.ToUpper(category))
	if !validCategories[cat] {
		return errors.New("invalid category")
	}

	canonical := phonenumbers.Format(num, phonenumbers.E164)

	report := domain.NewReport(canonical, region, s.hashReporter(rawReporter), cat, comment)
	return s.repo.SaveReport(ctx, report)
}

// ReportsFor lists the stored reports for one number. Reporter
// identities come back hashed, never raw.
func (s *intelService) ReportsFor(ctx context.Context, phoneNumber string) ([]*domain.Report, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, ErrMissingNumber
	}

	canonical, _ := extract.Canonicalize(phoneNumber)
	return s.repo.GetReports(ctx, canonical)
}

// hashReporter derives the stored reporter identity. Keyed with the app
// salt so the raw identifier cannot be recovered from the database.
func (s *intelService) hashReporter(rawReporter string) string {
	mac := hmac.New(sha256.New, []byte(s.saltSecret))
	mac.Write([]byte(rawReporter))
	return hex.EncodeToString(mac.Sum(nil))
}
