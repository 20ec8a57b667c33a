package mapping

import (
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/models"
)

// ToModelPlannedPayment converts a domain planned payment to its model representation.
func ToModelPlannedPayment(d domain.PlannedPayment) models.PlannedPayment {
	m := models.PlannedPayment{
		PlannedPaymentID:     d.PlannedPaymentID,
		UserID:               d.UserID,
		Name:                 d.Name,
		Type:                 models.TransactionType(d.Type),
		Amount:               d.Amount,
		SourceAccountID:      d.SourceAccountID,
		DestinationAccountID: d.DestinationAccountID,
		CategoryID:           d.CategoryID,
		Frequency:            string(d.Frequency),
		StartDate:            d.StartDate,
		LastExecutedAt:       d.LastExecutedAt,
		NextExecutionDate:    d.NextExecutionDate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
	if d.RecurrenceType != "" {
		rt := string(d.RecurrenceType)
		m.RecurrenceType = &rt
	}
	if len(d.WeeklyDays) > 0 {
		m.WeeklyDays = make([]int32, len(d.WeeklyDays))
		for i, day := range d.WeeklyDays {
			m.WeeklyDays[i] = int32(day)
		}
	}
	if d.MonthlyInterval > 0 {
		interval := int32(d.MonthlyInterval)
		m.MonthlyInterval = &interval
	}
	return m
}

// ToDomainPlannedPayment converts a model planned payment to its domain representation.
func ToDomainPlannedPayment(m models.PlannedPayment) domain.PlannedPayment {
	d := domain.PlannedPayment{
		PlannedPaymentID:     m.PlannedPaymentID,
		UserID:               m.UserID,
		Name:                 m.Name,
		Type:                 domain.TransactionType(m.Type),
		Amount:               m.Amount,
		SourceAccountID:      m.SourceAccountID,
		DestinationAccountID: m.DestinationAccountID,
		CategoryID:           m.CategoryID,
		Frequency:            domain.PaymentFrequency(m.Frequency),
		StartDate:            m.StartDate,
		LastExecutedAt:       m.LastExecutedAt,
		NextExecutionDate:    m.NextExecutionDate,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
	if m.RecurrenceType != nil {
		d.RecurrenceType = domain.RecurrenceType(*m.RecurrenceType)
	}
	if len(m.WeeklyDays) > 0 {
		d.WeeklyDays = make([]int, len(m.WeeklyDays))
		for i, day := range m.WeeklyDays {
			d.WeeklyDays[i] = int(day)
		}
	}
	if m.MonthlyInterval != nil {
		d.MonthlyInterval = int(*m.MonthlyInterval)
	}
	return d
}

// ToDomainPlannedPaymentSlice converts a slice of model planned payments.
func ToDomainPlannedPaymentSlice(ms []models.PlannedPayment) []domain.PlannedPayment {
	ds := make([]domain.PlannedPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlannedPayment(m)
	}
	return ds
}
