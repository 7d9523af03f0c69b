package domain

// RecentWindow is the number of purchases reported in Stats.RecentTransactions.
const RecentWindow = 10

type Stats struct {
	TotalSales         float64    `json:"total_sales"`
	TotalCustomers     int        `json:"total_customers"`
	TotalProducts      int        `json:"total_products"`
	PendingPayments    int        `json:"pending_payments"`
	RecentTransactions []Purchase `json:"recent_transactions"`
}

// ComputeStats derives the dashboard figures from the purchases in insertion
// order and the sizes of the other two stores. It does not modify purchases.
func ComputeStats(purchases []Purchase, totalCustomers, totalProducts int) Stats {
	stats := Stats{
		TotalCustomers:     totalCustomers,
		TotalProducts:      totalProducts,
		RecentTransactions: make([]Purchase, 0, min(RecentWindow, len(purchases))),
	}

	for _, p := range purchases {
		stats.TotalSales += p.TotalAmount
		if p.Status == PurchasePending {
			stats.PendingPayments++
		}
	}

	for i := len(purchases) - 1; i >= 0 && len(stats.RecentTransactions) < RecentWindow; i-- {
		stats.RecentTransactions = append(stats.RecentTransactions, purchases[i])
	}

	return stats
}
