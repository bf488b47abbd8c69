package admins

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	adminRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/admin"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

// bcrypt.MinCost ускоряет тесты, семантика сверки пароля та же
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

type fakeAdminRepo struct {
	byEmail    *domain.Admin
	byEmailErr error
	byID       *domain.Admin
	byIDErr    error

	created   *domain.Admin
	createErr error

	lastLoginID     int64
	setActiveID     int64
	setActiveValue  bool
	setActiveErr    error
	setActiveCalls  int
	lastLoginCalled int
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, _ string) (*domain.Admin, error) {
	return f.byEmail, f.byEmailErr
}

func (f *fakeAdminRepo) GetByID(_ context.Context, _ int64) (*domain.Admin, error) {
	return f.byID, f.byIDErr
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	copied := *admin
	copied.ID = 12
	f.created = &copied
	return &copied, nil
}

func (f *fakeAdminRepo) UpdateLastLogin(_ context.Context, id int64) error {
	f.lastLoginCalled++
	f.lastLoginID = id
	return nil
}

func (f *fakeAdminRepo) SetActive(_ context.Context, id int64, active bool) error {
	f.setActiveCalls++
	f.setActiveID = id
	f.setActiveValue = active
	return f.setActiveErr
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type adminsFixture struct {
	svc  *Service
	repo *fakeAdminRepo
	now  time.Time
}

func newAdminsFixture(t *testing.T) *adminsFixture {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	f := &adminsFixture{
		repo: &fakeAdminRepo{
			byEmail: &domain.Admin{
				ID:           5,
				Email:        "admin@example.com",
				PasswordHash: hashPassword(t, "correct-horse"),
				Name:         "관리자",
				Role:         domain.AdminRoleSuperAdmin,
				IsActive:     true,
			},
		},
		now: now,
	}
	f.repo.byID = f.repo.byEmail

	f.svc = NewService(f.repo, "test-secret", time.Hour, &fakeClock{now: now}, nopLogger{})
	return f
}

func TestLogin_IssuesParsableToken(t *testing.T) {
	f := newAdminsFixture(t)

	resp, err := f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, f.now.Add(time.Hour), resp.ExpiresAt)
	assert.Equal(t, int64(5), resp.Admin.ID)
	assert.Equal(t, 1, f.repo.lastLoginCalled)

	claims, err := f.svc.ParseToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(5, 10), claims.Subject)
	assert.Equal(t, string(domain.AdminRoleSuperAdmin), claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAdminsFixture(t)

	_, err := f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	f := newAdminsFixture(t)
	f.repo.byEmail = nil
	f.repo.byEmailErr = adminRepo.ErrAdminNotFound

	_, err := f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	f := newAdminsFixture(t)
	f.repo.byEmail.IsActive = false

	_, err := f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestParseToken_RejectsForeignSignature(t *testing.T) {
	f := newAdminsFixture(t)

	resp, err := f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	other := NewService(f.repo, "another-secret", time.Hour, &fakeClock{now: f.now}, nopLogger{})
	_, err = other.ParseToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	f := newAdminsFixture(t)

	_, err := f.svc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreate_HashesPasswordAndStoresAdmin(t *testing.T) {
	f := newAdminsFixture(t)

	resp, err := f.svc.Create(context.Background(), &models.CreateAdminRequest{
		ActorID:  5,
		Email:    "manager@example.com",
		Password: "long-enough-pw",
		Name:     "매니저",
		Role:     "manager",
	})
	assert.NoError(t, err)

	assert.Equal(t, int64(12), resp.ID)
	assert.Equal(t, "manager", resp.Role)
	assert.True(t, resp.IsActive)

	// Пароль не хранится в открытом виде
	assert.NotEqual(t, "long-enough-pw", f.repo.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(f.repo.created.PasswordHash), []byte("long-enough-pw")))
}

func TestCreate_RequiresSuperAdmin(t *testing.T) {
	f := newAdminsFixture(t)
	f.repo.byID = &domain.Admin{ID: 6, Role: domain.AdminRoleManager, IsActive: true}

	_, err := f.svc.Create(context.Background(), &models.CreateAdminRequest{
		ActorID:  6,
		Email:    "new@example.com",
		Password: "long-enough-pw",
		Name:     "신규",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_InactiveActorDenied(t *testing.T) {
	f := newAdminsFixture(t)
	f.repo.byID = &domain.Admin{ID: 5, Role: domain.AdminRoleSuperAdmin, IsActive: false}

	_, err := f.svc.Create(context.Background(), &models.CreateAdminRequest{
		ActorID:  5,
		Email:    "new@example.com",
		Password: "long-enough-pw",
		Name:     "신규",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newAdminsFixture(t)

	tests := []struct {
		name string
		req  models.CreateAdminRequest
	}{
		{"unknown role", models.CreateAdminRequest{ActorID: 5, Email: "a@b.c", Password: "long-enough-pw", Name: "n", Role: "owner"}},
		{"short password", models.CreateAdminRequest{ActorID: 5, Email: "a@b.c", Password: "short", Name: "n", Role: "admin"}},
		{"missing email", models.CreateAdminRequest{ActorID: 5, Password: "long-enough-pw", Name: "n", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	f := newAdminsFixture(t)
	f.repo.createErr = adminRepo.ErrDuplicateEmail

	_, err := f.svc.Create(context.Background(), &models.CreateAdminRequest{
		ActorID:  5,
		Email:    "admin@example.com",
		Password: "long-enough-pw",
		Name:     "중복",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeactivate_DisablesAccount(t *testing.T) {
	f := newAdminsFixture(t)

	err := f.svc.Deactivate(context.Background(), 8, &models.DeactivateAdminRequest{ActorID: 5})
	assert.NoError(t, err)

	assert.Equal(t, int64(8), f.repo.setActiveID)
	assert.False(t, f.repo.setActiveValue)
}

func TestDeactivate_SelfDeactivationForbidden(t *testing.T) {
	f := newAdminsFixture(t)

	err := f.svc.Deactivate(context.Background(), 5, &models.DeactivateAdminRequest{ActorID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.repo.setActiveCalls)
}

func TestDeactivate_UnknownAdmin(t *testing.T) {
	f := newAdminsFixture(t)
	f.repo.setActiveErr = adminRepo.ErrAdminNotFound

	err := f.svc.Deactivate(context.Background(), 999, &models.DeactivateAdminRequest{ActorID: 5})
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
