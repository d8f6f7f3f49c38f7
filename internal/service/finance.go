package service

import (
	"context"
	"math"

	"barberpro/internal/domain"
	"barberpro/internal/models"

	"github.com/rs/zerolog"
)

// FinancialStats is the admin dashboard report. The multipliers are the
// shop's fixed operating model: 40% barber commission over service
// revenue and 20% fixed expenses over gross.
type FinancialStats struct {
	ServiceRevenue float64 `json:"serviceRevenue"`
	ProductRevenue float64 `json:"productRevenue"`
	Gross          float64 `json:"gross"`
	Commissions    float64 `json:"commissions"`
	Expenses       float64 `json:"expenses"`
	Net            float64 `json:"net"`
	AvgTicket      float64 `json:"avgTicket"`
	Appointments   int     `json:"appointments"`
}

type FinanceService struct {
	appointments domain.AppointmentRepository
	products     domain.ProductCatalog
	logger       *zerolog.Logger
}

func NewFinanceService(appointments domain.AppointmentRepository, products domain.ProductCatalog, logger *zerolog.Logger) *FinanceService {
	return &FinanceService{
		appointments: appointments,
		products:     products,
		logger:       logger,
	}
}

func (s *FinanceService) Compute(ctx context.Context) (*FinancialStats, error) {
	apts, err := s.appointments.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	var serviceRevenue float64
	for _, apt := range apts {
		serviceRevenue += apt.Price
	}

	productRevenue := float64(len(products)) * models.ProductRevenueUnit
	gross := serviceRevenue + productRevenue
	commissions := math.Round(serviceRevenue * models.CommissionRate)
	expenses := math.Round(gross * models.ExpenseRate)

	stats := &FinancialStats{
		ServiceRevenue: serviceRevenue,
		ProductRevenue: productRevenue,
		Gross:          gross,
		Commissions:    commissions,
		Expenses:       expenses,
		Net:            gross - commissions - expenses,
		Appointments:   len(apts),
	}
	if len(apts) > 0 {
		stats.AvgTicket = math.Round(gross / float64(len(apts)))
	}
	return stats, nil
}
