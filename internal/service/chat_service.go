package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workflow-hub-be/internal/config"
	"workflow-hub-be/internal/constant"
	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/repository/specification"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/pkg/catalog"
	"workflow-hub-be/pkg/events"
	"workflow-hub-be/pkg/linkparser"
	"workflow-hub-be/pkg/llm"
	"workflow-hub-be/pkg/secretbox"
	"workflow-hub-be/pkg/trial"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest, callerIP string) (*dto.SendChatResponse, error)
	History(ctx context.Context, threadId string) (*dto.ChatHistoryResponse, error)
}

// ProviderSource hands out the completion provider for a request.
// *factory.Factory implements it.
type ProviderSource interface {
	Default() llm.LLMProvider
	WithAPIKey(apiKey string) llm.LLMProvider
	Label() string
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	providers  ProviderSource
	catalog    ICatalogService
	gate       trial.Gate     // nil disables the trial window
	keys       *secretbox.Box // nil when stored API keys cannot be opened
	cfg        config.ChatConfig
	llmOpts    []llm.Option
	publishers []events.Publisher
	logger     logger.ILogger
	llmLogger  logger.ILogger
}

type ChatServiceDeps struct {
	UowFactory unitofwork.RepositoryFactory
	Providers  ProviderSource
	Catalog    ICatalogService
	Gate       trial.Gate
	Keys       *secretbox.Box
	Config     config.ChatConfig
	LLMOptions []llm.Option
	Publishers []events.Publisher
	Logger     logger.ILogger
	LLMLogger  logger.ILogger
}

func NewChatService(deps ChatServiceDeps) IChatService {
	if deps.LLMLogger == nil {
		deps.LLMLogger = deps.Logger
	}
	return &chatService{
		uowFactory: deps.UowFactory,
		providers:  deps.Providers,
		catalog:    deps.Catalog,
		gate:       deps.Gate,
		keys:       deps.Keys,
		cfg:        deps.Config,
		llmOpts:    deps.LLMOptions,
		publishers: deps.Publishers,
		logger:     deps.Logger,
		llmLogger:  deps.LLMLogger,
	}
}

func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest, callerIP string) (*dto.SendChatResponse, error) {
	userInput := strings.TrimSpace(request.UserInput)
	if userInput == "" {
		return nil, serverutils.BadRequest("userInput is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Resolve provider (caller key > stored key > trial)
	apiKey := strings.TrimSpace(request.ApiKey)
	if apiKey == "" {
		stored, paid := s.storedAccess(ctx, uow, callerIP)
		apiKey = stored
		if apiKey == "" && !paid {
			if err := s.checkTrial(ctx, callerIP); err != nil {
				return nil, err
			}
		}
	}
	provider := s.providers.Default()
	if apiKey != "" {
		provider = s.providers.WithAPIKey(apiKey)
	}

	// 2. Thread
	threadId := strings.TrimSpace(request.ThreadId)
	newThread := threadId == ""
	if newThread {
		threadId = uuid.NewString()
	}

	var prior []*entity.ChatTurn
	if !newThread {
		var err error
		prior, err = s.loadHistory(ctx, uow, threadId)
		if err != nil {
			return nil, err
		}
	}

	// 3. Prompt
	systemPrompt, err := s.buildSystemPrompt(ctx, request.ConsultingMode, len(prior))
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, 2*len(prior)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, t := range prior {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: t.UserInput},
			llm.Message{Role: llm.RoleAssistant, Content: t.AssistantResponse},
		)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userInput})

	// 4. Completion
	start := time.Now()
	reply, err := provider.Chat(ctx, messages, s.llmOpts...)
	s.logExchange(threadId, messages, reply, time.Since(start), err)
	if err != nil {
		s.logger.Error(constant.ChatModuleName, "Completion failed", map[string]interface{}{
			"thread_id": threadId,
			"error":     err.Error(),
		})
		return nil, err
	}

	// 5. Persist (best effort)
	turn := &entity.ChatTurn{
		Id:                uuid.New(),
		ThreadId:          threadId,
		UserInput:         userInput,
		AssistantResponse: reply,
		AssistantId:       s.providers.Label(),
		CreatedAt:         time.Now(),
	}
	if err := uow.ChatTurnRepository().Create(ctx, turn); err != nil {
		s.logger.Error(constant.ChatModuleName, "Failed to save chat turn", map[string]interface{}{
			"thread_id": threadId,
			"error":     err.Error(),
		})
	} else {
		s.publish(ctx, events.NewChatTurnRecorded(threadId, turn.AssistantId))
	}

	return &dto.SendChatResponse{
		Response: reply,
		ThreadId: threadId,
		Links:    linkparser.Extract(reply),
	}, nil
}

func (s *chatService) History(ctx context.Context, threadId string) (*dto.ChatHistoryResponse, error) {
	threadId = strings.TrimSpace(threadId)
	if threadId == "" {
		return nil, serverutils.BadRequest("threadId is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, serverutils.NotFound("thread %q not found", threadId)
	}

	res := &dto.ChatHistoryResponse{
		ThreadId: threadId,
		Turns:    make([]dto.ChatTurnResponse, 0, len(turns)),
	}
	for _, t := range turns {
		res.Turns = append(res.Turns, dto.ChatTurnResponse{
			UserInput:         t.UserInput,
			AssistantResponse: t.AssistantResponse,
			Links:             linkparser.Extract(t.AssistantResponse),
			CreatedAt:         t.CreatedAt,
		})
	}
	return res, nil
}

// storedAccess returns the newest API key the caller saved, if any, and
// whether any of the caller's entries is marked paid. Entries are
// append-only, so a later email-only join must not hide an earlier key.
func (s *chatService) storedAccess(ctx context.Context, uow unitofwork.UnitOfWork, callerIP string) (string, bool) {
	if callerIP == "" {
		return "", false
	}
	repo := uow.WaitlistRepository()

	paidEntry, err := repo.FindOne(ctx, specification.ByIPAddress{IPAddress: callerIP}, specification.IsPaid{})
	if err != nil {
		s.logger.Warn(constant.ChatModuleName, "Failed to look up waitlist entry", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	paid := paidEntry != nil

	if s.keys == nil {
		return "", paid
	}

	entry, err := repo.FindOne(ctx,
		specification.ByIPAddress{IPAddress: callerIP},
		specification.HasAPIKey{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		s.logger.Warn(constant.ChatModuleName, "Failed to look up stored API key", map[string]interface{}{"error": err.Error()})
		return "", paid
	}
	if entry == nil {
		return "", paid
	}

	key, err := s.keys.Open(entry.EncryptedApiKey)
	if err != nil {
		s.logger.Warn(constant.ChatModuleName, "Stored API key could not be opened", map[string]interface{}{"entry_id": entry.Id.String()})
		return "", paid
	}
	return key, paid
}

// checkTrial fails open when the gate's backend is unavailable.
func (s *chatService) checkTrial(ctx context.Context, callerIP string) error {
	if s.gate == nil || callerIP == "" {
		return nil
	}

	status, err := s.gate.Check(ctx, callerIP)
	if err != nil {
		s.logger.Warn(constant.ChatModuleName, "Trial gate unavailable", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if status.Expired {
		return &dto.TrialExpiredError{EndedAt: status.EndsAt}
	}
	return nil
}

// loadHistory returns the newest HistoryLimit turns, oldest first.
func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, threadId string) ([]*entity.ChatTurn, error) {
	specs := []specification.Specification{
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if s.cfg.HistoryLimit > 0 {
		specs = append(specs, specification.Pagination{Limit: s.cfg.HistoryLimit})
	}

	turns, err := uow.ChatTurnRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func (s *chatService) buildSystemPrompt(ctx context.Context, consulting bool, priorTurns int) (string, error) {
	if consulting && priorTurns < s.cfg.ConsultingMinTurns {
		return fmt.Sprintf(constant.ChatConsultingPrompt, priorTurns, s.cfg.ConsultingMinTurns), nil
	}

	workflows, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("load catalog: %w", err)
	}

	if consulting {
		return fmt.Sprintf(constant.ChatConsultingRecommendPrompt, catalog.Flatten(workflows)), nil
	}
	return fmt.Sprintf(constant.ChatSystemPrompt, catalog.Flatten(workflows)), nil
}

func (s *chatService) logExchange(threadId string, messages []llm.Message, reply string, took time.Duration, err error) {
	details := map[string]interface{}{
		"thread_id":   threadId,
		"provider":    s.providers.Label(),
		"messages":    len(messages),
		"user_input":  messages[len(messages)-1].Content,
		"duration_ms": took.Milliseconds(),
	}
	if err != nil {
		details["error"] = err.Error()
		s.llmLogger.Error(constant.ChatModuleName, "LLM exchange failed", details)
		return
	}
	details["response"] = reply
	s.llmLogger.Info(constant.ChatModuleName, "LLM exchange", details)
}

func (s *chatService) publish(ctx context.Context, event events.Event) {
	for _, p := range s.publishers {
		if err := p.Publish(ctx, event); err != nil {
			s.logger.Warn(constant.ChatModuleName, "Failed to publish event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
