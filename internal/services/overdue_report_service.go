package services

import (
	"context"
	"time"

	"github.com/AdelereKehinde/Estate-management/internal/metrics"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// OverdueReportService counts pending invoices that are past due. It only
// reads: invoice status is never changed here.
type OverdueReportService struct {
	store repositories.Store
	now   func() time.Time
}

func NewOverdueReportService(store repositories.Store) *OverdueReportService {
	return &OverdueReportService{store: store, now: time.Now}
}

// Run publishes the overdue count as of today (UTC) and returns it.
func (s *OverdueReportService) Run(ctx context.Context) (int, error) {
	today := models.DateOf(s.now().UTC())
	n, err := s.store.Invoices().CountOverdue(ctx, today)
	if err != nil {
		return 0, utils.InternalError("Failed to count overdue invoices", err)
	}
	metrics.OverdueInvoicesGauge.Set(float64(n))
	utils.Logger.WithField("as_of", today.String()).Infof("Overdue report: %d pending invoice(s) past due", n)
	return n, nil
}
