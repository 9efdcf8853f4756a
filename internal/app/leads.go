package app

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Booking-lead submission states. Invalid input drops back to idle with
// field errors; a valid lead always reaches submitted (simulated success,
// no failure path is modeled for this form).
type LeadState string

const (
	LeadIdle       LeadState = "idle"
	LeadValidating LeadState = "validating"
	LeadSubmitting LeadState = "submitting"
	LeadSubmitted  LeadState = "submitted"
)

// Indian mobile format: ten digits, leading 6-9.
var mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)

type Lead struct {
	HotelID string `json:"hotelId,omitempty"`
	Name    string `json:"name"`
	Phone   string `json:"number"`
}

// Banner is the transient success notice; the client dismisses it after
// Duration.
type Banner struct {
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
	Millis   int64         `json:"dismissAfterMs"`
}

type LeadResult struct {
	State       LeadState         `json:"state"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Banner      *Banner           `json:"banner,omitempty"`
}

type LeadService struct {
	submitDelay time.Duration
	bannerTTL   time.Duration
}

func NewLeadService(submitDelay, bannerTTL time.Duration) *LeadService {
	return &LeadService{submitDelay: submitDelay, bannerTTL: bannerTTL}
}

// ValidateLead returns field errors keyed by field name; empty map means
// the lead is valid.
func ValidateLead(l Lead) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(l.Name) == "" {
		errs["name"] = "Name is required."
	}
	if !mobileRe.MatchString(l.Phone) {
		errs["number"] = "Enter a valid 10-digit Indian mobile number."
	}
	return errs
}

// Submit runs the lead through the state machine. The submitting state is a
// fixed-delay simulated success; the only early exit is context
// cancellation.
func (s *LeadService) Submit(ctx context.Context, l Lead) (LeadResult, error) {
	if errs := ValidateLead(l); len(errs) > 0 {
		return LeadResult{State: LeadIdle, FieldErrors: errs}, nil
	}

	if !sleepCtx(ctx, s.submitDelay) {
		return LeadResult{State: LeadSubmitting}, ctx.Err()
	}

	log.Info().Str("hotel", l.HotelID).Str("name", l.Name).Msg("booking lead submitted")
	return LeadResult{
		State: LeadSubmitted,
		Banner: &Banner{
			Message:  "Booking Confirmed! Our team will contact you soon.",
			Duration: s.bannerTTL,
			Millis:   s.bannerTTL.Milliseconds(),
		},
	}, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
