package app

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// The contact form validates differently from the booking lead and, unlike
// it, keeps a failure state the UI can show.

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type ContactResult struct {
	Submitted   bool              `json:"submitted"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

type ContactService struct {
	submitDelay time.Duration
}

func NewContactService(submitDelay time.Duration) *ContactService {
	return &ContactService{submitDelay: submitDelay}
}

func ValidateContact(m ContactMessage) map[string]string {
	errs := make(map[string]string)
	name := strings.TrimSpace(m.Name)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case len([]rune(name)) < 2:
		errs["name"] = "Name must be at least 2 characters"
	}
	email := strings.TrimSpace(m.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email"
	}
	msg := strings.TrimSpace(m.Message)
	switch {
	case msg == "":
		errs["message"] = "Message is required"
	case len([]rune(msg)) < 10:
		errs["message"] = "Message must be at least 10 characters"
	}
	return errs
}

func (s *ContactService) Submit(ctx context.Context, m ContactMessage) (ContactResult, error) {
	if errs := ValidateContact(m); len(errs) > 0 {
		return ContactResult{FieldErrors: errs}, nil
	}
	if !sleepCtx(ctx, s.submitDelay) {
		return ContactResult{}, ctx.Err()
	}
	log.Info().Str("email", m.Email).Msg("contact message submitted")
	return ContactResult{Submitted: true}, nil
}
