package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/internal/pkg/mailer"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/repository/specification"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/pkg/events"
	"workflow-hub-be/pkg/secretbox"
	"workflow-hub-be/pkg/trial"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const waitlistModule = "WaitlistService"

type IWaitlistService interface {
	Join(ctx context.Context, request *dto.JoinWaitlistRequest, callerIP string) (*dto.JoinWaitlistResponse, error)
	Status(ctx context.Context, callerIP string) (*dto.WaitlistStatusResponse, error)
}

type waitlistService struct {
	uowFactory unitofwork.RepositoryFactory
	keys       *secretbox.Box       // nil rejects API keys
	mailer     mailer.IEmailService // nil skips the confirmation email
	gate       trial.Gate           // nil reports no trial
	publishers []events.Publisher
	logger     logger.ILogger
}

func NewWaitlistService(
	uowFactory unitofwork.RepositoryFactory,
	keys *secretbox.Box,
	emailService mailer.IEmailService,
	gate trial.Gate,
	log logger.ILogger,
	publishers ...events.Publisher,
) IWaitlistService {
	return &waitlistService{
		uowFactory: uowFactory,
		keys:       keys,
		mailer:     emailService,
		gate:       gate,
		publishers: publishers,
		logger:     log,
	}
}

func (s *waitlistService) Join(ctx context.Context, request *dto.JoinWaitlistRequest, callerIP string) (*dto.JoinWaitlistResponse, error) {
	email := strings.TrimSpace(request.Email)
	apiKey := strings.TrimSpace(request.ApiKey)
	if email == "" && apiKey == "" {
		return nil, serverutils.BadRequest("either email or apiKey is required")
	}

	entry := &entity.WaitlistEntry{
		Id:        uuid.New(),
		IpAddress: callerIP,
		Email:     email,
		CreatedAt: time.Now(),
	}

	if apiKey != "" {
		if s.keys == nil {
			return nil, &serverutils.AppError{Code: fiber.StatusServiceUnavailable, Message: "API keys cannot be stored right now"}
		}
		sealed, err := s.keys.Seal(apiKey)
		if err != nil {
			return nil, fmt.Errorf("seal api key: %w", err)
		}
		entry.HasApiKey = true
		entry.EncryptedApiKey = sealed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WaitlistRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info(waitlistModule, "Visitor joined waitlist", map[string]interface{}{
		"entry_id":    entry.Id.String(),
		"has_email":   email != "",
		"has_api_key": entry.HasApiKey,
	})

	if email != "" && s.mailer != nil {
		if err := s.mailer.SendWaitlistConfirmation(email); err != nil {
			s.logger.Warn(waitlistModule, "Failed to send waitlist confirmation", map[string]interface{}{"error": err.Error()})
		}
	}

	event := events.NewWaitlistJoined(callerIP, email != "", entry.HasApiKey)
	for _, p := range s.publishers {
		if err := p.Publish(ctx, event); err != nil {
			s.logger.Warn(waitlistModule, "Failed to publish waitlist.joined", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.JoinWaitlistResponse{
		Id:        entry.Id,
		HasEmail:  email != "",
		HasApiKey: entry.HasApiKey,
	}, nil
}

func (s *waitlistService) Status(ctx context.Context, callerIP string) (*dto.WaitlistStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.WaitlistRepository().FindOne(ctx, specification.ByIPAddress{IPAddress: callerIP})
	if err != nil {
		return nil, err
	}

	res := &dto.WaitlistStatusResponse{OnWaitlist: entry != nil}
	if entry != nil {
		keyed, err := uow.WaitlistRepository().FindOne(ctx,
			specification.ByIPAddress{IPAddress: callerIP},
			specification.HasAPIKey{},
		)
		if err != nil {
			return nil, err
		}
		res.HasApiKey = keyed != nil

		paid, err := uow.WaitlistRepository().FindOne(ctx,
			specification.ByIPAddress{IPAddress: callerIP},
			specification.IsPaid{},
		)
		if err != nil {
			return nil, err
		}
		if paid != nil {
			return res, nil
		}
	}

	// Peek so that polling the status does not start the trial window.
	if s.gate != nil && !res.HasApiKey {
		status, seen, err := s.gate.Peek(ctx, callerIP)
		if err != nil {
			s.logger.Warn(waitlistModule, "Trial gate unavailable", map[string]interface{}{"error": err.Error()})
			return res, nil
		}
		if !seen {
			return res, nil
		}
		res.TrialExpired = status.Expired
		if status.EndsAt.After(status.FirstSeen) {
			ends := status.EndsAt
			res.TrialEndsAt = &ends
		}
	}

	return res, nil
}
