package usecase

import (
	"context"
	"fmt"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/domain/entity"
	"github.com/lumigen/lumigen/infrastructure/service/logger"
)

func testLogger() outbound.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{Level: "debug", Format: "text", ServiceName: "usecase-test"})
}

// Mock implementations

type mockUserRepository struct {
	users map[string]*entity.User
	// assignWinner, when set, simulates a concurrent call winning the
	// billing-identity race: Assign stores it and reports the conflict.
	assignWinner   string
	assignCalls    int
	markSubscribed []string
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*entity.User)}
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if user, exists := m.users[id]; exists {
		return user, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByBillingIdentity(ctx context.Context, customerID string) (*entity.User, error) {
	for _, user := range m.users {
		if id, ok := user.BillingIdentity(); ok && id == customerID {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, exists := m.users[user.ID]; exists {
		return outbound.ErrUserAlreadyExists
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) AssignBillingIdentity(ctx context.Context, userID, customerID string) error {
	m.assignCalls++
	user, exists := m.users[userID]
	if !exists {
		return outbound.ErrUserNotFound
	}
	if _, ok := user.BillingIdentity(); ok {
		return outbound.ErrBillingIdentityTaken
	}
	if m.assignWinner != "" {
		setBillingIdentity(user, m.assignWinner)
		return outbound.ErrBillingIdentityTaken
	}
	setBillingIdentity(user, customerID)
	return nil
}

func (m *mockUserRepository) MarkSubscribed(ctx context.Context, userID string) error {
	user, exists := m.users[userID]
	if !exists {
		return outbound.ErrUserNotFound
	}
	user.Subscribed = true
	m.markSubscribed = append(m.markSubscribed, userID)
	return nil
}

func setBillingIdentity(user *entity.User, customerID string) {
	user.StripeCustomerID.String = customerID
	user.StripeCustomerID.Valid = true
}

type mockGenerationRepository struct {
	records   []*entity.GenerationRecord
	createErr error
}

func (m *mockGenerationRepository) Create(ctx context.Context, record *entity.GenerationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockGenerationRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*entity.GenerationRecord, error) {
	var out []*entity.GenerationRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubEnhancer struct {
	prefix    string
	lastInput string
}

func (s *stubEnhancer) Enhance(ctx context.Context, prompt string) string {
	s.lastInput = prompt
	return s.prefix + prompt
}

type stubGenerator struct {
	outcome    outbound.GenerationOutcome
	err        error
	lastPrompt string
	calls      int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (outbound.GenerationOutcome, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.outcome, s.err
}

type mockBillingGateway struct {
	createCalls   int
	retrieveCalls int
	checkoutCalls int
	checkoutURL   string
	createErr     error
	event         outbound.BillingEvent
	verifyErr     error
}

func (m *mockBillingGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	return fmt.Sprintf("cus_%d", m.createCalls), nil
}

func (m *mockBillingGateway) RetrieveCustomer(ctx context.Context, customerID string) (string, error) {
	m.retrieveCalls++
	return customerID, nil
}

func (m *mockBillingGateway) CreateCheckoutSession(ctx context.Context, customerID string) (string, error) {
	m.checkoutCalls++
	return m.checkoutURL, nil
}

func (m *mockBillingGateway) VerifyEvent(payload []byte, signature string) (outbound.BillingEvent, error) {
	if m.verifyErr != nil {
		return outbound.BillingEvent{}, m.verifyErr
	}
	return m.event, nil
}

type stubPasswordService struct{}

func (stubPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubPasswordService) VerifyPassword(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type stubTokenService struct{}

func (stubTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	return "token-" + claims.UserID, nil
}

func (stubTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	return nil, fmt.Errorf("not implemented")
}
