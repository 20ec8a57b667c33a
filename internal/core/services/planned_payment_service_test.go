package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pennyflow/penny_tracker_app/internal/core/ports/services"
	"github.com/pennyflow/penny_tracker_app/internal/core/services"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PlannedPaymentRepository ---
type MockPlannedPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PlannedPaymentRepositoryFacade = (*MockPlannedPaymentRepository)(nil)

func (m *MockPlannedPaymentRepository) FindPlannedPaymentByID(ctx context.Context, userID string, plannedPaymentID string) (*domain.PlannedPayment, error) {
	args := m.Called(ctx, userID, plannedPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannedPayment), args.Error(1)
}

func (m *MockPlannedPaymentRepository) ListPlannedPayments(ctx context.Context, userID string) ([]domain.PlannedPayment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlannedPayment), args.Error(1)
}

func (m *MockPlannedPaymentRepository) ListDuePlannedPayments(ctx context.Context, userID string, asOf time.Time) ([]domain.PlannedPayment, error) {
	args := m.Called(ctx, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlannedPayment), args.Error(1)
}

func (m *MockPlannedPaymentRepository) SavePlannedPayment(ctx context.Context, payment domain.PlannedPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPlannedPaymentRepository) UpdatePlannedPayment(ctx context.Context, payment domain.PlannedPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPlannedPaymentRepository) DeletePlannedPayment(ctx context.Context, userID string, plannedPaymentID string) error {
	args := m.Called(ctx, userID, plannedPaymentID)
	return args.Error(0)
}

// --- Mock TransactionWriterSvc ---
type MockTransactionWriterSvc struct {
	mock.Mock
}

var _ portssvc.TransactionWriterSvc = (*MockTransactionWriterSvc)(nil)

func (m *MockTransactionWriterSvc) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriterSvc) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionWriterSvc) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionWriterSvc) RecordPlannedExecution(ctx context.Context, userID string, req dto.CreateTransactionRequest, payment domain.PlannedPayment) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Test Suite Setup ---
type PlannedPaymentServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockPlannedPaymentRepository
	mockTxnSvc *MockTransactionWriterSvc
	service    *services.PlannedPaymentService
	userID     string
	accountID  string
}

func (suite *PlannedPaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPlannedPaymentRepository)
	suite.mockTxnSvc = new(MockTransactionWriterSvc)
	suite.service = services.NewPlannedPaymentService(suite.mockRepo, suite.mockTxnSvc)
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

// --- Test Cases ---

func (suite *PlannedPaymentServiceTestSuite) TestCreatePlannedPayment_OneTime() {
	ctx := context.Background()
	startDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	req := dto.CreatePlannedPaymentRequest{
		Name:            "Car insurance",
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(300),
		SourceAccountID: &suite.accountID,
		Frequency:       domain.OneTime,
		StartDate:       startDate,
	}

	suite.mockRepo.On("SavePlannedPayment", ctx, mock.AnythingOfType("domain.PlannedPayment")).Return(nil).Once()

	payment, err := suite.service.CreatePlannedPayment(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment.NextExecutionDate)
	suite.True(payment.NextExecutionDate.Equal(startDate))
	suite.mockRepo.AssertExpectations(suite.T())
}

// A never-executed daily payment is scheduled for its start date, not the day after.
func (suite *PlannedPaymentServiceTestSuite) TestCreatePlannedPayment_DailyFiresOnStartDate() {
	ctx := context.Background()
	startDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	req := dto.CreatePlannedPaymentRequest{
		Name:            "Coffee budget",
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(5),
		SourceAccountID: &suite.accountID,
		Frequency:       domain.Recurrent,
		RecurrenceType:  domain.Daily,
		StartDate:       startDate,
	}

	suite.mockRepo.On("SavePlannedPayment", ctx, mock.AnythingOfType("domain.PlannedPayment")).Return(nil).Once()

	payment, err := suite.service.CreatePlannedPayment(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment.NextExecutionDate)
	suite.True(payment.NextExecutionDate.Equal(startDate))
	suite.mockRepo.AssertExpectations(suite.T())
}

// An empty weekday set cannot be scheduled; the payment is still saved, with a
// null next execution date, rather than failing the create.
func (suite *PlannedPaymentServiceTestSuite) TestCreatePlannedPayment_UnschedulableWeekly() {
	ctx := context.Background()
	req := dto.CreatePlannedPaymentRequest{
		Name:            "Gym",
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(20),
		SourceAccountID: &suite.accountID,
		Frequency:       domain.Recurrent,
		RecurrenceType:  domain.Weekly,
		WeeklyDays:      []int{},
		StartDate:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SavePlannedPayment", ctx, mock.MatchedBy(func(p domain.PlannedPayment) bool {
		return p.NextExecutionDate == nil
	})).Return(nil).Once()

	payment, err := suite.service.CreatePlannedPayment(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Nil(payment.NextExecutionDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PlannedPaymentServiceTestSuite) TestCreatePlannedPayment_InvalidWeekdayIndex() {
	ctx := context.Background()
	req := dto.CreatePlannedPaymentRequest{
		Name:            "Broken",
		Type:            domain.Expense,
		Amount:          decimal.NewFromInt(20),
		SourceAccountID: &suite.accountID,
		Frequency:       domain.Recurrent,
		RecurrenceType:  domain.Weekly,
		WeeklyDays:      []int{7},
		StartDate:       time.Now(),
	}

	_, err := suite.service.CreatePlannedPayment(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePlannedPayment", mock.Anything, mock.Anything)
}

func (suite *PlannedPaymentServiceTestSuite) TestExecutePlannedPayment_Monthly() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	nextDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	payment := &domain.PlannedPayment{
		PlannedPaymentID:  plannedPaymentID,
		UserID:            suite.userID,
		Name:              "Rent",
		Type:              domain.Expense,
		Amount:            decimal.NewFromInt(900),
		SourceAccountID:   &suite.accountID,
		Frequency:         domain.Recurrent,
		RecurrenceType:    domain.Monthly,
		MonthlyInterval:   1,
		StartDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NextExecutionDate: &nextDate,
	}
	createdTxn := &domain.Transaction{TransactionID: uuid.NewString(), UserID: suite.userID}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()
	suite.mockTxnSvc.On("RecordPlannedExecution", ctx, suite.userID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.Expense &&
			req.Amount.Equal(decimal.NewFromInt(900)) &&
			req.TransactionDate.Equal(nextDate)
	}), mock.MatchedBy(func(p domain.PlannedPayment) bool {
		// The schedule advances one month from the execution time.
		return p.LastExecutedAt != nil && p.NextExecutionDate != nil
	})).Return(createdTxn, nil).Once()

	txn, err := suite.service.ExecutePlannedPayment(ctx, suite.userID, plannedPaymentID)

	suite.Require().NoError(err)
	suite.Equal(createdTxn.TransactionID, txn.TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTxnSvc.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePlannedPayment", mock.Anything, mock.Anything)
}

// Executing a one-time payment clears its next execution date for good.
func (suite *PlannedPaymentServiceTestSuite) TestExecutePlannedPayment_OneTimeClearsSchedule() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	nextDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	payment := &domain.PlannedPayment{
		PlannedPaymentID:     plannedPaymentID,
		UserID:               suite.userID,
		Name:                 "Deposit",
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(500),
		DestinationAccountID: &suite.accountID,
		Frequency:            domain.OneTime,
		StartDate:            nextDate,
		NextExecutionDate:    &nextDate,
	}
	createdTxn := &domain.Transaction{TransactionID: uuid.NewString(), UserID: suite.userID}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()
	suite.mockTxnSvc.On("RecordPlannedExecution", ctx, suite.userID, mock.Anything, mock.MatchedBy(func(p domain.PlannedPayment) bool {
		return p.LastExecutedAt != nil && p.NextExecutionDate == nil
	})).Return(createdTxn, nil).Once()

	_, err := suite.service.ExecutePlannedPayment(ctx, suite.userID, plannedPaymentID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *PlannedPaymentServiceTestSuite) TestExecutePlannedPayment_OneTimeAlreadyExecuted() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	executedAt := time.Now().Add(-24 * time.Hour)
	payment := &domain.PlannedPayment{
		PlannedPaymentID: plannedPaymentID,
		UserID:           suite.userID,
		Type:             domain.Expense,
		Amount:           decimal.NewFromInt(10),
		SourceAccountID:  &suite.accountID,
		Frequency:        domain.OneTime,
		StartDate:        executedAt,
		LastExecutedAt:   &executedAt,
	}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()

	_, err := suite.service.ExecutePlannedPayment(ctx, suite.userID, plannedPaymentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnSvc.AssertNotCalled(suite.T(), "RecordPlannedExecution", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A stored payment whose recurrence type is no longer recognized still
// executes; the schedule is cleared instead of failing the write.
func (suite *PlannedPaymentServiceTestSuite) TestExecutePlannedPayment_LegacyRecurrenceClearsSchedule() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	nextDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	payment := &domain.PlannedPayment{
		PlannedPaymentID:     plannedPaymentID,
		UserID:               suite.userID,
		Name:                 "Paycheck",
		Type:                 domain.Income,
		Amount:               decimal.NewFromInt(1200),
		DestinationAccountID: &suite.accountID,
		Frequency:            domain.Recurrent,
		RecurrenceType:       domain.RecurrenceType("FORTNIGHTLY"),
		StartDate:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NextExecutionDate:    &nextDate,
	}
	createdTxn := &domain.Transaction{TransactionID: uuid.NewString(), UserID: suite.userID}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()
	suite.mockTxnSvc.On("RecordPlannedExecution", ctx, suite.userID, mock.Anything, mock.MatchedBy(func(p domain.PlannedPayment) bool {
		return p.LastExecutedAt != nil && p.NextExecutionDate == nil
	})).Return(createdTxn, nil).Once()

	txn, err := suite.service.ExecutePlannedPayment(ctx, suite.userID, plannedPaymentID)

	suite.Require().NoError(err)
	suite.Equal(createdTxn.TransactionID, txn.TransactionID)
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

// A failed execution makes no other persistence call, so nothing is left
// half-written for a retry to double-book.
func (suite *PlannedPaymentServiceTestSuite) TestExecutePlannedPayment_WriteFailureMakesNoOtherWrite() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	nextDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	payment := &domain.PlannedPayment{
		PlannedPaymentID:  plannedPaymentID,
		UserID:            suite.userID,
		Name:              "Rent",
		Type:              domain.Expense,
		Amount:            decimal.NewFromInt(900),
		SourceAccountID:   &suite.accountID,
		Frequency:         domain.Recurrent,
		RecurrenceType:    domain.Monthly,
		MonthlyInterval:   1,
		StartDate:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NextExecutionDate: &nextDate,
	}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()
	suite.mockTxnSvc.On("RecordPlannedExecution", ctx, suite.userID, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ExecutePlannedPayment(ctx, suite.userID, plannedPaymentID)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePlannedPayment", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePlannedPayment", mock.Anything, mock.Anything)
}

func (suite *PlannedPaymentServiceTestSuite) TestUpdatePlannedPayment_RecomputesSchedule() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	oldNext := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	payment := &domain.PlannedPayment{
		PlannedPaymentID:  plannedPaymentID,
		UserID:            suite.userID,
		Name:              "Rent",
		Type:              domain.Expense,
		Amount:            decimal.NewFromInt(900),
		SourceAccountID:   &suite.accountID,
		Frequency:         domain.Recurrent,
		RecurrenceType:    domain.Monthly,
		MonthlyInterval:   1,
		StartDate:         time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		NextExecutionDate: &oldNext,
	}
	newStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()
	suite.mockRepo.On("UpdatePlannedPayment", ctx, mock.MatchedBy(func(p domain.PlannedPayment) bool {
		// Never executed, so the anchor is startDate-1 and the next fire lands
		// one month from there, clamped: 2025-07-14.
		return p.NextExecutionDate != nil && p.NextExecutionDate.Equal(time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	updated, err := suite.service.UpdatePlannedPayment(ctx, suite.userID, plannedPaymentID, dto.UpdatePlannedPaymentRequest{StartDate: &newStart})

	suite.Require().NoError(err)
	suite.NotNil(updated.NextExecutionDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PlannedPaymentServiceTestSuite) TestListDuePlannedPayments() {
	ctx := context.Background()
	asOf := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	due := []domain.PlannedPayment{
		{PlannedPaymentID: uuid.NewString(), UserID: suite.userID, Name: "Rent"},
	}

	suite.mockRepo.On("ListDuePlannedPayments", ctx, suite.userID, asOf).Return(due, nil).Once()

	payments, err := suite.service.ListDuePlannedPayments(ctx, suite.userID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(payments, 1)
	suite.Equal("Rent", payments[0].Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PlannedPaymentServiceTestSuite) TestListDuePlannedPayments_NoneDue() {
	ctx := context.Background()
	asOf := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListDuePlannedPayments", ctx, suite.userID, asOf).Return(nil, nil).Once()

	payments, err := suite.service.ListDuePlannedPayments(ctx, suite.userID, asOf)

	suite.Require().NoError(err)
	suite.NotNil(payments)
	suite.Empty(payments)
}

func (suite *PlannedPaymentServiceTestSuite) TestPreviewUpcomingOccurrences_OneTimeFuture() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	startDate := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	payment := &domain.PlannedPayment{
		PlannedPaymentID: plannedPaymentID,
		UserID:           suite.userID,
		Name:             "Car insurance",
		Type:             domain.Expense,
		Amount:           decimal.NewFromInt(300),
		SourceAccountID:  &suite.accountID,
		Frequency:        domain.OneTime,
		StartDate:        startDate,
	}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()

	occurrences, err := suite.service.PreviewUpcomingOccurrences(ctx, suite.userID, plannedPaymentID, 5)

	suite.Require().NoError(err)
	suite.Require().Len(occurrences, 1)
	suite.True(occurrences[0].Equal(startDate))
}

func (suite *PlannedPaymentServiceTestSuite) TestPreviewUpcomingOccurrences_BrokenRecurrenceIsEmpty() {
	ctx := context.Background()
	plannedPaymentID := uuid.NewString()
	payment := &domain.PlannedPayment{
		PlannedPaymentID: plannedPaymentID,
		UserID:           suite.userID,
		Name:             "Gym",
		Type:             domain.Expense,
		Amount:           decimal.NewFromInt(20),
		SourceAccountID:  &suite.accountID,
		Frequency:        domain.Recurrent,
		RecurrenceType:   domain.Weekly,
		StartDate:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindPlannedPaymentByID", ctx, suite.userID, plannedPaymentID).Return(payment, nil).Once()

	occurrences, err := suite.service.PreviewUpcomingOccurrences(ctx, suite.userID, plannedPaymentID, 5)

	suite.Require().NoError(err)
	suite.Empty(occurrences)
}

func TestPlannedPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlannedPaymentServiceTestSuite))
}
