package worker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"marnie-pos/internal/service"
)

// StatsReporter periodically writes the dashboard figures to the log.
type StatsReporter struct {
	ledger   service.LedgerService
	interval time.Duration
	log      log.FieldLogger
}

func NewStatsReporter(ledger service.LedgerService, interval time.Duration, logger log.FieldLogger) *StatsReporter {
	return &StatsReporter{
		ledger:   ledger,
		interval: interval,
		log:      logger,
	}
}

// Run blocks until ctx is done. A non-positive interval disables reporting.
func (sr *StatsReporter) Run(ctx context.Context) error {
	if sr.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(sr.interval)
	defer ticker.Stop()

	sr.log.WithField("interval", sr.interval.String()).Info("stats reporter started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := sr.process(ctx); err != nil {
				sr.log.WithError(err).Warn("stats report failed")
			}
		}
	}
}

func (sr *StatsReporter) process(ctx context.Context) error {
	stats, err := sr.ledger.DashboardStats(ctx)
	if err != nil {
		return err
	}

	sr.log.WithFields(log.Fields{
		"total_sales":      stats.TotalSales,
		"total_customers":  stats.TotalCustomers,
		"total_products":   stats.TotalProducts,
		"pending_payments": stats.PendingPayments,
		"recent":           len(stats.RecentTransactions),
	}).Info("dashboard stats")
	return nil
}
