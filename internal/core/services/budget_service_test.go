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

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetByCategoryMonth(ctx context.Context, userID string, categoryID string, month time.Time) (*domain.Budget, error) {
	args := m.Called(ctx, userID, categoryID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByMonth(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	args := m.Called(ctx, userID, budgetID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	mockCategoryRepo *MockCategoryRepository
	mockTxnRepo      *MockTransactionRepository
	service          *services.BudgetService
	userID           string
	categoryID       string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockCategoryRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
	suite.categoryID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_NormalizesMonth() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		CategoryID: suite.categoryID,
		Month:      time.Date(2025, 5, 17, 13, 45, 0, 0, time.UTC),
		Limit:      decimal.NewFromInt(400),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.userID, suite.categoryID).
		Return(&domain.Category{CategoryID: suite.categoryID, UserID: suite.userID}, nil).Once()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Month.Equal(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), budget.Month)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_CategoryNotFound() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		CategoryID: suite.categoryID,
		Month:      time.Now(),
		Limit:      decimal.NewFromInt(100),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.userID, suite.categoryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NonPositiveLimit() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		CategoryID: suite.categoryID,
		Month:      time.Now(),
		Limit:      decimal.Zero,
	}

	_, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestListBudgetProgress_JoinsSpending() {
	ctx := context.Background()
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	otherCategoryID := uuid.NewString()
	budgets := []domain.Budget{
		{BudgetID: uuid.NewString(), UserID: suite.userID, CategoryID: suite.categoryID, Month: month, Limit: decimal.NewFromInt(400)},
		{BudgetID: uuid.NewString(), UserID: suite.userID, CategoryID: otherCategoryID, Month: month, Limit: decimal.NewFromInt(150)},
	}
	spending := map[string]decimal.Decimal{
		suite.categoryID: decimal.NewFromInt(123),
	}

	suite.mockBudgetRepo.On("ListBudgetsByMonth", ctx, suite.userID, month).Return(budgets, nil).Once()
	suite.mockTxnRepo.On("SumExpensesByCategory", ctx, suite.userID, month, month.AddDate(0, 1, 0)).Return(spending, nil).Once()

	progress, err := suite.service.ListBudgetProgress(ctx, suite.userID, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Require().Len(progress, 2)
	suite.True(progress[0].Spent.Equal(decimal.NewFromInt(123)))
	// No spending recorded for the second category.
	suite.True(progress[1].Spent.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestListBudgetProgress_NoBudgets() {
	ctx := context.Background()
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	suite.mockBudgetRepo.On("ListBudgetsByMonth", ctx, suite.userID, month).Return([]domain.Budget{}, nil).Once()

	progress, err := suite.service.ListBudgetProgress(ctx, suite.userID, month)

	suite.Require().NoError(err)
	suite.Empty(progress)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SumExpensesByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
