package dto

import (
	"time"

	"github.com/google/uuid"
)

type JoinWaitlistRequest struct {
	Email  string `json:"email" validate:"omitempty,email,max=254"`
	ApiKey string `json:"apiKey" validate:"omitempty,min=8,max=512"`
}

type JoinWaitlistResponse struct {
	Id        uuid.UUID `json:"id"`
	HasEmail  bool      `json:"has_email"`
	HasApiKey bool      `json:"has_api_key"`
}

type WaitlistStatusResponse struct {
	OnWaitlist   bool       `json:"on_waitlist"`
	HasApiKey    bool       `json:"has_api_key"`
	TrialExpired bool       `json:"trial_expired"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
}
