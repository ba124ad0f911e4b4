package provider

import (
	"context"

	"github.com/osintkit/phone-intel/internal/domain"
)

// Twilio reserves a slot for the Twilio Lookup API. The integration is
// not wired yet, so the adapter reports the unconfigured steady state
// and the aggregator simply works without it.
type Twilio struct{}

func NewTwilio() *Twilio { return &Twilio{} }

func (*Twilio) Source() string { return "twilio" }

func (*Twilio) Lookup(_ context.Context, _ string) domain.ProviderResult {
	return domain.UnconfiguredResult("twilio")
}
