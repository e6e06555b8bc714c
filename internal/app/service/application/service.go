package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cineconnect/sponsorpay/internal/models"
	"github.com/cineconnect/sponsorpay/pkg/tool"
	"github.com/cineconnect/sponsorpay/pkg/types"
)

// ErrNotFound is returned when no application exists for the given id.
var ErrNotFound = errors.New("application not found")

type CreateRequest struct {
	ProjectID            string  `json:"projectId"`
	SponsorID            string  `json:"sponsorId"`
	SponsorshipPackageID string  `json:"sponsorshipPackageId"`
	Amount               float64 `json:"amount"`
}

// StatusUpdates carries the payment fields written alongside a status change.
// Nil fields are left untouched.
type StatusUpdates struct {
	PaymentStatus *types.ApplicationPaymentStatus
	PaymentID     *string
	PaidAmount    *float64
	PaidCurrency  *string
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.SponsorshipApplication `json:"items"`
	Total int64                            `json:"total"`
}

// Manager is the persistence boundary for sponsorship applications. The
// webhook reconciler depends on Get/UpdateStatus only.
type Manager interface {
	Create(ctx context.Context, req *CreateRequest) (*models.SponsorshipApplication, error)
	Get(ctx context.Context, id string) (*models.SponsorshipApplication, error)
	ListBySponsor(ctx context.Context, sponsorID string) ([]*models.SponsorshipApplication, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.SponsorshipApplication, error)
	// UpdateStatus overwrites the application status and any provided payment
	// fields. The write is an unconditional overwrite: redelivering the same
	// update is safe. ResponseDate is stamped whenever status leaves pending.
	UpdateStatus(ctx context.Context, id string, status types.ApplicationStatus, updates *StatusUpdates) error
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) Manager {
	return &Service{db: db, log: log}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.SponsorshipApplication, error) {
	now := time.Now()
	app := &models.SponsorshipApplication{
		ID:                   tool.GenerateUUIDV7(),
		ProjectID:            req.ProjectID,
		SponsorID:            req.SponsorID,
		SponsorshipPackageID: req.SponsorshipPackageID,
		Amount:               req.Amount,
		Status:               types.ApplicationStatusPending,
		PaymentStatus:        types.ApplicationPaymentStatusPending,
		ApplicationDate:      now,
	}
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.SponsorshipApplication, error) {
	var app models.SponsorshipApplication
	if err := s.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (s *Service) ListBySponsor(ctx context.Context, sponsorID string) ([]*models.SponsorshipApplication, error) {
	var apps []*models.SponsorshipApplication
	err := s.db.WithContext(ctx).
		Where("sponsor_id = ?", sponsorID).
		Order("application_date desc").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsor applications: %w", err)
	}
	return apps, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]*models.SponsorshipApplication, error) {
	var apps []*models.SponsorshipApplication
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("application_date desc").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project applications: %w", err)
	}
	return apps, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status types.ApplicationStatus, updates *StatusUpdates) error {
	fields := map[string]any{"status": status}
	if status != types.ApplicationStatusPending {
		fields["response_date"] = time.Now()
	}
	if updates != nil {
		if updates.PaymentStatus != nil {
			fields["payment_status"] = *updates.PaymentStatus
		}
		if updates.PaymentID != nil {
			fields["payment_id"] = *updates.PaymentID
		}
		if updates.PaidAmount != nil {
			fields["paid_amount"] = *updates.PaidAmount
		}
		if updates.PaidCurrency != nil {
			fields["paid_currency"] = *updates.PaidCurrency
		}
	}

	res := s.db.WithContext(ctx).
		Model(&models.SponsorshipApplication{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update application status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// filtersAnd combines multiple CommonFilter into a single AND expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Scan implements paginated/admin listing with filters.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.SponsorshipApplication{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	var rows []*models.SponsorshipApplication

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return &ScanResponse{Items: rows, Total: total}, nil
}
