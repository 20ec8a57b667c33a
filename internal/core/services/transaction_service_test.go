package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	"github.com/pennyflow/penny_tracker_app/internal/core/services"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filters portsrepo.TransactionListFilters, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filters, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SumExpensesByCategory(ctx context.Context, userID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, userID, transactionID, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionWithScheduleUpdate(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, payment domain.PlannedPayment) error {
	args := m.Called(ctx, txn, balanceChanges, payment)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          *services.TransactionService
	userID           string
	checkingAccount  domain.Account
	savingsAccount   domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)

	suite.userID = uuid.NewString()
	suite.checkingAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		AccountType: domain.Bank,
		IsActive:    true,
	}
	suite.savingsAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		AccountType: domain.Bank,
		IsActive:    true,
	}
}

func (suite *TransactionServiceTestSuite) mockAccountLookup(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[a.AccountID] = a
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.userID, mock.Anything).Return(accountsMap, nil).Once()
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseSuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(40),
		SourceAccountID: &suite.checkingAccount.AccountID,
		TransactionDate: time.Now(),
	}

	suite.mockAccountLookup(suite.checkingAccount)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-40))
		})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.userID, txn.UserID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferSuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:                 domain.Transfer,
		Amount:               decimal.NewFromInt(100),
		SourceAccountID:      &suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.savingsAccount.AccountID,
		TransactionDate:      time.Now(),
	}

	suite.mockAccountLookup(suite.checkingAccount, suite.savingsAccount)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 &&
				changes[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-100)) &&
				changes[suite.savingsAccount.AccountID].Equal(decimal.NewFromInt(100))
		})).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingRequiredAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Income,
		Amount:          decimal.NewFromInt(10),
		TransactionDate: time.Now(),
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferSameAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:                 domain.Transfer,
		Amount:               decimal.NewFromInt(10),
		SourceAccountID:      &suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.checkingAccount.AccountID,
		TransactionDate:      time.Now(),
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.checkingAccount
	inactive.IsActive = false
	req := dto.CreateTransactionRequest{
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(10),
		SourceAccountID: &inactive.AccountID,
		TransactionDate: time.Now(),
	}

	suite.mockAccountLookup(inactive)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:            domain.Expense,
		Amount:          decimal.Zero,
		SourceAccountID: &suite.checkingAccount.AccountID,
		TransactionDate: time.Now(),
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// Editing an expense into a transfer must leave the source account untouched
// and move only the destination side.
func (suite *TransactionServiceTestSuite) TestUpdateTransaction_TypeChange() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	oldTxn := &domain.Transaction{
		TransactionID:   transactionID,
		UserID:          suite.userID,
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(50),
		SourceAccountID: &suite.checkingAccount.AccountID,
		TransactionDate: time.Now(),
	}
	req := dto.UpdateTransactionRequest{
		Type:                 domain.Transfer,
		Amount:               decimal.NewFromInt(50),
		SourceAccountID:      &suite.checkingAccount.AccountID,
		DestinationAccountID: &suite.savingsAccount.AccountID,
		TransactionDate:      oldTxn.TransactionDate,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, transactionID).Return(oldTxn, nil).Once()
	suite.mockAccountLookup(suite.checkingAccount, suite.savingsAccount)
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// Source delta is -50 in both versions, so only the destination moves.
			return len(changes) == 1 && changes[suite.savingsAccount.AccountID].Equal(decimal.NewFromInt(50))
		})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, transactionID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.Transfer, updated.Type)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesBalances() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	oldTxn := &domain.Transaction{
		TransactionID:        transactionID,
		UserID:               suite.userID,
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(75),
		DestinationAccountID: &suite.savingsAccount.AccountID,
		TransactionDate:      time.Now(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, transactionID).Return(oldTxn, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.userID, transactionID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[suite.savingsAccount.AccountID].Equal(decimal.NewFromInt(-75))
		})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, transactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, transactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Recording a planned payment execution hands the ledger insert and the
// payment's schedule rewrite to the repository as one unit of work.
func (suite *TransactionServiceTestSuite) TestRecordPlannedExecution_SingleUnitOfWork() {
	ctx := context.Background()
	executedAt := time.Now()
	payment := domain.PlannedPayment{
		PlannedPaymentID: uuid.NewString(),
		UserID:           suite.userID,
		Name:             "Rent",
		Type:             domain.Expense,
		Amount:           decimal.NewFromInt(900),
		SourceAccountID:  &suite.checkingAccount.AccountID,
		Frequency:        domain.Recurrent,
		RecurrenceType:   domain.Monthly,
		LastExecutedAt:   &executedAt,
	}
	req := dto.CreateTransactionRequest{
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(900),
		SourceAccountID: &suite.checkingAccount.AccountID,
		Notes:           "Rent",
		TransactionDate: executedAt,
	}

	suite.mockAccountLookup(suite.checkingAccount)
	suite.mockTxnRepo.On("SaveTransactionWithScheduleUpdate", ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-900))
		}),
		mock.MatchedBy(func(p domain.PlannedPayment) bool {
			return p.PlannedPaymentID == payment.PlannedPaymentID && p.LastExecutedAt != nil
		})).Return(nil).Once()

	txn, err := suite.service.RecordPlannedExecution(ctx, suite.userID, req, payment)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordPlannedExecution_ValidationFailureWritesNothing() {
	ctx := context.Background()
	payment := domain.PlannedPayment{
		PlannedPaymentID: uuid.NewString(),
		UserID:           suite.userID,
		Type:             domain.Expense,
		Amount:           decimal.Zero,
		SourceAccountID:  &suite.checkingAccount.AccountID,
	}
	req := dto.CreateTransactionRequest{
		Type:            domain.Expense,
		Amount:          decimal.Zero,
		SourceAccountID: &suite.checkingAccount.AccountID,
		TransactionDate: time.Now(),
	}

	_, err := suite.service.RecordPlannedExecution(ctx, suite.userID, req, payment)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionWithScheduleUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_UnknownTypeFilter() {
	ctx := context.Background()
	badType := "REFUND"

	_, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{Type: &badType})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
