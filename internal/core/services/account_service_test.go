package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/myfinanceapp/mfa_backend/internal/core/services"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountName(ctx context.Context, accountID string, name string, now time.Time) error {
	args := m.Called(ctx, accountID, name, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:            "Test Savings",
		StartingBalance: decimal.NewFromInt(1000),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdAccount)
	suite.NotEmpty(createdAccount.AccountID)
	suite.Equal(req.Name, createdAccount.Name)
	suite.True(createdAccount.StartingBalance.Equal(req.StartingBalance))
	suite.WithinDuration(time.Now(), createdAccount.CreatedAt, time.Second)
	suite.WithinDuration(time.Now(), createdAccount.LastUpdatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:            "Test Error",
		StartingBalance: decimal.Zero,
	}

	expectedErr := assert.AnError
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(expectedErr).Once()

	createdAccount, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdAccount)
	suite.ErrorIs(err, expectedErr)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	expectedAccount := &domain.Account{
		AccountID:       testID,
		Name:            "Found Account",
		StartingBalance: decimal.NewFromInt(250),
	}

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(expectedAccount, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, testID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(expectedAccount, account)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, testID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameSuccess() {
	ctx := context.Background()
	testID := uuid.NewString()
	newName := "Renamed Account"
	existing := &domain.Account{
		AccountID:       testID,
		Name:            "Old Name",
		StartingBalance: decimal.NewFromInt(50),
	}

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccountName", ctx, testID, newName, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, testID, dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(newName, updated.Name)
	suite.True(updated.StartingBalance.Equal(existing.StartingBalance))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChange() {
	ctx := context.Background()
	testID := uuid.NewString()
	sameName := "Same Name"
	existing := &domain.Account{
		AccountID: testID,
		Name:      sameName,
	}

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, testID, dto.UpdateAccountRequest{Name: &sameName})

	suite.Require().NoError(err)
	suite.Equal(existing, updated)

	// UpdateAccountName must not be called when the name is unchanged
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccountName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()
	newName := "Whatever"

	suite.mockRepo.On("FindAccountByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateAccount(ctx, testID, dto.UpdateAccountRequest{Name: &newName})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
