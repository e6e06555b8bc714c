package statistics

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cineconnect/sponsorpay/internal/models"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// FundingStatistic aggregates the application book for the admin dashboard.
type FundingStatistic struct {
	TotalApplications int64                             `json:"total_applications"`
	ByStatus          map[types.ApplicationStatus]int64 `json:"by_status"`
	PaidApplications  int64                             `json:"paid_applications"`
	TotalPaidAmount   float64                           `json:"total_paid_amount"`
}

type statusCount struct {
	Status types.ApplicationStatus
	Count  int64
}

func (s *Service) FundingStatistic(ctx context.Context) (*FundingStatistic, error) {
	res := &FundingStatistic{ByStatus: map[types.ApplicationStatus]int64{}}

	var counts []statusCount
	err := s.db.WithContext(ctx).
		Model(&models.SponsorshipApplication{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	for _, c := range counts {
		res.ByStatus[c.Status] = c.Count
		res.TotalApplications += c.Count
	}

	paid := s.db.WithContext(ctx).
		Model(&models.SponsorshipApplication{}).
		Where("payment_status = ?", types.ApplicationPaymentStatusPaid)
	if err := paid.Count(&res.PaidApplications).Error; err != nil {
		return nil, fmt.Errorf("failed to count paid applications: %w", err)
	}
	var total *float64
	if err := paid.Select("sum(paid_amount)").Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to sum paid amounts: %w", err)
	}
	if total != nil {
		res.TotalPaidAmount = *total
	}

	return res, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
