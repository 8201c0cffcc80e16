package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/internal/pkg/testdb"
	"workflow-hub-be/internal/repository/memory"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/pkg/events"
	"workflow-hub-be/pkg/llm"
	"workflow-hub-be/pkg/trial"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const catalogFixture = `[
  {
    "category_url": "email-automation",
    "full_url": "https://n8n.io/workflows/categories/email-automation",
    "workflows": [
      {
        "workflow_name": "Email Parser",
        "workflow_url": "https://n8n.io/workflows/email-parser-123",
        "workflow_description": "Extracts invoices from incoming mail",
        "creator_name": "Ada",
        "creator_avatar": "https://cdn.example.com/ada.png",
        "icon_urls": ["https://cdn.example.com/gmail.svg"],
        "paid_or_free": "Free"
      },
      {
        "workflow_name": "Inbox Zero",
        "workflow_url": "https://n8n.io/workflows/inbox-zero",
        "workflow_description": "Archives newsletters automatically",
        "creator_name": "Grace",
        "creator_avatar": "https://cdn.example.com/grace.png",
        "icon_urls": ["https://cdn.example.com/gmail.svg", "https://cdn.example.com/ai.svg"],
        "paid_or_free": "Paid"
      }
    ]
  },
  {
    "category_url": "crm",
    "workflows": [
      {
        "workflow_name": "CRM Sync",
        "workflow_url": "https://n8n.io/workflows/crm-sync",
        "workflow_description": "Keeps HubSpot contacts in sync",
        "creator_name": "Linus",
        "creator_avatar": "https://cdn.example.com/linus.png",
        "icon_urls": ["https://cdn.example.com/hubspot.svg"],
        "paid_or_free": "Free"
      }
    ]
  }
]`

type fakeLLM struct {
	mu    sync.Mutex
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, history)
	return f.reply, f.err
}

func (f *fakeLLM) lastCall(t *testing.T) []llm.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "provider was never called")
	return f.calls[len(f.calls)-1]
}

type fakeProviders struct {
	llm      *fakeLLM
	keyUsed  string
	defaults int
}

func (p *fakeProviders) Default() llm.LLMProvider {
	p.defaults++
	return p.llm
}

func (p *fakeProviders) Label() string { return "fake:test-model" }

func (p *fakeProviders) WithAPIKey(apiKey string) llm.LLMProvider {
	p.keyUsed = apiKey
	return p.llm
}

type fixedGate struct {
	status  trial.Status
	err     error
	unseen  bool
	checked int
	peeked  int
}

func (g *fixedGate) Check(ctx context.Context, visitor string) (trial.Status, error) {
	g.checked++
	return g.status, g.err
}

func (g *fixedGate) Peek(ctx context.Context, visitor string) (trial.Status, bool, error) {
	g.peeked++
	return g.status, !g.unseen, g.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type testEnv struct {
	db        *gorm.DB
	uow       unitofwork.RepositoryFactory
	catalog   ICatalogService
	importer  IImportService
	publisher *recordingPublisher
	log       logger.ILogger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testdb.New(t)
	uow := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	pub := &recordingPublisher{}
	cat := NewCatalogService(uow, memory.NewCatalogCache(time.Minute))
	return &testEnv{
		db:        db,
		uow:       uow,
		catalog:   cat,
		importer:  NewImportService(uow, cat, log, pub),
		publisher: pub,
		log:       log,
	}
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	_, err := e.importer.Import(context.Background(), []byte(catalogFixture))
	require.NoError(t, err)
}
