package dto

import (
	"net/http"
	"time"

	"workflow-hub-be/pkg/linkparser"
)

type SendChatRequest struct {
	UserInput      string `json:"userInput"`
	ThreadId       string `json:"threadId,omitempty"`
	ConsultingMode bool   `json:"consultingMode,omitempty"`
	ApiKey         string `json:"apiKey,omitempty"`
}

type SendChatResponse struct {
	Response string            `json:"response"`
	ThreadId string            `json:"threadId"`
	Links    []linkparser.Link `json:"links,omitempty"`
}

// ChatErrorResponse is the body of every failed chat call. The trial fields
// are only set on 429.
type ChatErrorResponse struct {
	Error             string     `json:"error"`
	TrialEndedAt      *time.Time `json:"trial_ended_at,omitempty"`
	ShowWaitlistModal bool       `json:"show_waitlist_modal,omitempty"`
}

type ChatTurnResponse struct {
	UserInput         string            `json:"user_input"`
	AssistantResponse string            `json:"assistant_response"`
	Links             []linkparser.Link `json:"links,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

type ChatHistoryResponse struct {
	ThreadId string             `json:"thread_id"`
	Turns    []ChatTurnResponse `json:"turns"`
}

// --- Trial Gate Error Types ---

// TrialExpiredError tells the client to show the waitlist/API-key modal.
type TrialExpiredError struct {
	EndedAt time.Time
}

func (e *TrialExpiredError) Error() string {
	return "free chat trial has ended, join the waitlist or add your own API key"
}

func (e *TrialExpiredError) StatusCode() int {
	return http.StatusTooManyRequests
}

func (e *TrialExpiredError) ResponseData() any {
	return TrialExpiredData{
		TrialEndedAt:      e.EndedAt,
		ShowWaitlistModal: true,
	}
}

type TrialExpiredData struct {
	TrialEndedAt      time.Time `json:"trial_ended_at"`
	ShowWaitlistModal bool      `json:"show_waitlist_modal"`
}
