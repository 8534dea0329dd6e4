package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

type recordedEvent struct {
	Kind    string
	Actor   string
	Payload map[string]interface{}
}

type memoryRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *memoryRecorder) Record(ctx context.Context, kind, actor string, payload map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Kind: kind, Actor: actor, Payload: payload})
}

func (r *memoryRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

type stubGate struct {
	roles map[string]models.Role
}

func (g *stubGate) Require(ctx context.Context, callerID string, required models.Role) error {
	role, ok := g.roles[callerID]
	if !ok {
		return appErrors.Clone(appErrors.ErrUnauthorized, "unknown principal")
	}
	if role != required {
		return appErrors.Clone(appErrors.ErrNotAuthorized, fmt.Sprintf("operation requires the %s role", required))
	}
	return nil
}

type mockPrincipalRepo struct {
	mu         sync.Mutex
	principals map[string]*models.Principal
	byEmail    map[string]*models.Principal
}

func newMockPrincipalRepo() *mockPrincipalRepo {
	return &mockPrincipalRepo{
		principals: make(map[string]*models.Principal),
		byEmail:    make(map[string]*models.Principal),
	}
}

func (m *mockPrincipalRepo) add(p *models.Principal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.principals[p.ID] = p
	m.byEmail[p.Email] = p
}

func (m *mockPrincipalRepo) Create(ctx context.Context, principal *models.Principal) error {
	if principal.ID == "" {
		principal.ID = fmt.Sprintf("p-%d", len(m.principals)+1)
	}
	principal.CreatedAt = time.Now().UTC()
	m.add(principal)
	return nil
}

func (m *mockPrincipalRepo) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.principals[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPrincipalRepo) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byEmail[email]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPrincipalRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.principals[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.Role = role
	return nil
}

// disabledCache returns a cache service that never stores anything.
func disabledCache() *CacheService {
	return NewCacheService(nil, nil, 0, nil, false)
}

// fundedEngine admits the given students and mints tokens for each via a
// fee payment of 18000 at the default rate of 1000 per UOC.
func fundedEngine(t *testing.T, students ...string) *engine.Engine {
	t.Helper()
	eng := engine.New(engine.Options{})
	for _, id := range students {
		require.NoError(t, eng.AdmitStudent(id))
		_, err := eng.PayFees(id, 18000)
		require.NoError(t, err)
	}
	return eng
}
