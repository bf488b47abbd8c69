package bankaccounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bankaccountRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/bankaccount"
	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts/models"
)

// fakeAccountRepo хранит счета в памяти и повторяет семантику
// UnsetDefaultAll/SetDefault настоящего репозитория
type fakeAccountRepo struct {
	accounts []*domain.BankAccount
	nextID   int64

	unsetCalls int
	setErr     error
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.BankAccount) (*domain.BankAccount, error) {
	f.nextID++
	copied := *account
	copied.ID = f.nextID
	f.accounts = append(f.accounts, &copied)
	return &copied, nil
}

func (f *fakeAccountRepo) List(_ context.Context) ([]*domain.BankAccount, error) {
	return f.accounts, nil
}

func (f *fakeAccountRepo) GetDefault(_ context.Context) (*domain.BankAccount, error) {
	for _, a := range f.accounts {
		if a.IsDefault {
			return a, nil
		}
	}
	return nil, bankaccountRepo.ErrNoDefaultAccount
}

func (f *fakeAccountRepo) UnsetDefaultAll(_ context.Context) error {
	f.unsetCalls++
	for _, a := range f.accounts {
		a.IsDefault = false
	}
	return nil
}

func (f *fakeAccountRepo) SetDefault(_ context.Context, id int64) error {
	if f.setErr != nil {
		return f.setErr
	}
	for _, a := range f.accounts {
		if a.ID == id {
			a.IsDefault = true
			return nil
		}
	}
	return bankaccountRepo.ErrAccountNotFound
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture() (*Service, *fakeAccountRepo) {
	repo := &fakeAccountRepo{}
	return NewService(repo, &fakeTxManager{}, nopLogger{}), repo
}

func createRequest(bank string, isDefault bool) *models.CreateAccountRequest {
	return &models.CreateAccountRequest{
		BankName:      bank,
		AccountNumber: "123-456-789012",
		AccountHolder: "칼갈이서비스",
		IsDefault:     isDefault,
	}
}

func TestCreate_FirstAccount(t *testing.T) {
	svc, _ := newFixture()

	resp, err := svc.Create(context.Background(), createRequest("국민은행", true))
	assert.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "국민은행", resp.BankName)
	assert.True(t, resp.IsDefault)
}

func TestCreate_NewDefaultDisplacesOld(t *testing.T) {
	svc, repo := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", true))
	assert.NoError(t, err)

	resp, err := svc.Create(context.Background(), createRequest("신한은행", true))
	assert.NoError(t, err)
	assert.True(t, resp.IsDefault)

	// Основной счет ровно один
	defaults := 0
	for _, a := range repo.accounts {
		if a.IsDefault {
			defaults++
			assert.Equal(t, "신한은행", a.BankName)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestCreate_NonDefaultLeavesExistingDefault(t *testing.T) {
	svc, repo := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", true))
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest("신한은행", false))
	assert.NoError(t, err)

	def, repoErr := repo.GetDefault(context.Background())
	assert.NoError(t, repoErr)
	assert.Equal(t, "국민은행", def.BankName)
}

func TestCreate_RequiresAllFields(t *testing.T) {
	svc, _ := newFixture()

	req := createRequest("국민은행", false)
	req.AccountNumber = ""

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetDefault_MovesDefault(t *testing.T) {
	svc, repo := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", true))
	assert.NoError(t, err)
	second, err := svc.Create(context.Background(), createRequest("신한은행", false))
	assert.NoError(t, err)

	resp, err := svc.SetDefault(context.Background(), second.ID)
	assert.NoError(t, err)

	assert.Equal(t, second.ID, resp.ID)
	assert.True(t, resp.IsDefault)

	defaults := 0
	for _, a := range repo.accounts {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSetDefault_UnknownAccount(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", true))
	assert.NoError(t, err)

	_, err = svc.SetDefault(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetDefault_ReturnsTransferDetails(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", false))
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest("신한은행", true))
	assert.NoError(t, err)

	resp, err := svc.GetDefault(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, "신한은행", resp.BankName)
	assert.Equal(t, "123-456-789012", resp.AccountNumber)
	assert.Equal(t, "칼갈이서비스", resp.AccountHolder)
	assert.True(t, resp.IsDefault)
}

func TestGetDefault_NoneAssigned(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", false))
	assert.NoError(t, err)

	_, err = svc.GetDefault(context.Background())
	assert.ErrorIs(t, err, ErrNoDefaultAccount)
}

func TestList_ReturnsAllAccounts(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), createRequest("국민은행", true))
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest("신한은행", false))
	assert.NoError(t, err)

	resp, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, resp.Accounts, 2)
}
