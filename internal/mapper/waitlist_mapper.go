package mapper

import (
	"time"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/model"
)

type WaitlistMapper struct{}

func NewWaitlistMapper() *WaitlistMapper {
	return &WaitlistMapper{}
}

func (m *WaitlistMapper) ToEntity(w *model.WaitlistEntry) *entity.WaitlistEntry {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.WaitlistEntry{
		Id:              w.Id,
		IpAddress:       w.IpAddress,
		Email:           derefString(w.Email),
		HasApiKey:       w.Apikey,
		EncryptedApiKey: derefString(w.ApiKey),
		Paid:            w.Paid,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *WaitlistMapper) ToModel(w *entity.WaitlistEntry) *model.WaitlistEntry {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.WaitlistEntry{
		Id:        w.Id,
		IpAddress: w.IpAddress,
		Email:     optionalString(w.Email),
		Apikey:    w.HasApiKey,
		ApiKey:    optionalString(w.EncryptedApiKey),
		Paid:      w.Paid,
		CreatedAt: w.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
