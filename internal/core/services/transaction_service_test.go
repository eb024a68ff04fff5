package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	"github.com/myfinanceapp/mfa_backend/internal/core/domain"
	"github.com/myfinanceapp/mfa_backend/internal/core/services"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByYear(ctx context.Context, year int) ([]domain.Transaction, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo)
}

func strPtr(s string) *string { return &s }

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeAppliesPositiveDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	dateStr := "2025-03-15"
	req := dto.CreateTransactionRequest{
		Date:      &dateStr,
		Name:      "Salary",
		Tag:       "work",
		Amount:    decimal.NewFromInt(200),
		Type:      domain.Income,
		AccountID: &accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: {AccountID: accountID}}, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Require().NotNil(txn.Date)
	suite.Equal(2025, txn.Date.Year())

	suite.Require().Len(capturedChanges, 1)
	suite.True(capturedChanges[accountID].Equal(decimal.NewFromInt(200)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseAppliesNegativeDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Name:      "Groceries",
		Amount:    decimal.NewFromInt(75),
		Type:      domain.Expense,
		AccountID: &accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: {AccountID: accountID}}, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Nil(txn.Date)
	suite.Require().Len(capturedChanges, 1)
	suite.True(capturedChanges[accountID].Equal(decimal.NewFromInt(-75)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferMovesBothLegs() {
	ctx := context.Background()
	fromID := uuid.NewString()
	toID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Name:                  "Savings top-up",
		Amount:                decimal.NewFromInt(300),
		Type:                  domain.Transfer,
		TransferFromAccountID: &fromID,
		TransferToAccountID:   &toID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2
	})).Return(map[string]domain.Account{
		fromID: {AccountID: fromID},
		toID:   {AccountID: toID},
	}, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(capturedChanges, 2)
	suite.True(capturedChanges[fromID].Equal(decimal.NewFromInt(-300)))
	suite.True(capturedChanges[toID].Equal(decimal.NewFromInt(300)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CreditCardMovesNoBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Name:           "Online order",
		Amount:         decimal.NewFromInt(40),
		Type:           domain.Expense,
		AccountID:      &accountID, // Ignored: credit card purchases carry no account link
		CreditCardUsed: true,
		CreditCardName: strPtr("Visa"),
	}

	var savedTxn domain.Transaction
	var capturedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.Transaction)
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Nil(savedTxn.AccountID)
	suite.Empty(capturedChanges)

	// No account lookup needed when nothing moves
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidType() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "Mystery",
		Amount: decimal.NewFromInt(10),
		Type:   domain.TransactionType("refund"),
	}

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativeAmount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Name:      "Oops",
		Amount:    decimal.NewFromInt(-5),
		Type:      domain.Income,
		AccountID: &accountID,
	}

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingAccountLink() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Name:   "No account",
		Amount: decimal.NewFromInt(10),
		Type:   domain.Income,
	}

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Name:      "Ghost account",
		Amount:    decimal.NewFromInt(10),
		Type:      domain.Income,
		AccountID: &accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesExactDeltas() {
	ctx := context.Background()
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	stored := &domain.Transaction{
		TransactionID: txnID,
		Name:          "Salary",
		Amount:        decimal.NewFromInt(200),
		Type:          domain.Income,
		AccountID:     &accountID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("DeleteTransaction", ctx, *stored, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txnID)

	suite.Require().NoError(err)
	suite.Require().Len(capturedChanges, 1)
	suite.True(capturedChanges[accountID].Equal(decimal.NewFromInt(-200)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, txnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// A create followed by its delete must leave balances where they started:
// +200 income onto a 1000 account takes it to 1200, the reversal hands the
// repository -200 to bring it back to 1000.
func (suite *TransactionServiceTestSuite) TestCreateThenDelete_BalanceRoundTrips() {
	ctx := context.Background()
	accountID := uuid.NewString()
	balance := decimal.NewFromInt(1000)

	req := dto.CreateTransactionRequest{
		Name:      "Bonus",
		Amount:    decimal.NewFromInt(200),
		Type:      domain.Income,
		AccountID: &accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: {AccountID: accountID, StartingBalance: balance}}, nil).Once()

	var created domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.Transaction)
			balance = balance.Add(args.Get(2).(map[string]decimal.Decimal)[accountID])
		}).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1200)))

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&created, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, created, mock.Anything).
		Run(func(args mock.Arguments) {
			balance = balance.Add(args.Get(2).(map[string]decimal.Decimal)[accountID])
		}).Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteTransaction(ctx, txn.TransactionID))
	suite.True(balance.Equal(decimal.NewFromInt(1000)))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
