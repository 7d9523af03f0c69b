package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"marnie-pos/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderStats prints the dashboard summary followed by the recent
// transactions, most recent first.
func RenderStats(w io.Writer, stats *domain.Stats) error {
	summary := tablewriter.NewWriter(w)
	summary.Header("Metric", "Value")
	rows := [][]string{
		{"Total sales", money(stats.TotalSales)},
		{"Customers", strconv.Itoa(stats.TotalCustomers)},
		{"Products", strconv.Itoa(stats.TotalProducts)},
		{"Pending payments", strconv.Itoa(stats.PendingPayments)},
	}
	for _, row := range rows {
		if err := summary.Append(row); err != nil {
			return errors.Wrap(err, "summary row")
		}
	}
	if err := summary.Render(); err != nil {
		return errors.Wrap(err, "render summary")
	}

	if len(stats.RecentTransactions) == 0 {
		_, err := fmt.Fprintln(w, "No transactions yet.")
		return err
	}

	recent := tablewriter.NewWriter(w)
	recent.Header("Purchase", "Customer", "Items", "Total", "Status", "Date")
	for _, p := range stats.RecentTransactions {
		err := recent.Append([]string{
			p.ID,
			p.CustomerName,
			strconv.Itoa(len(p.Products)),
			money(p.TotalAmount),
			string(p.Status),
			p.PurchaseDate.Format(timeLayout),
		})
		if err != nil {
			return errors.Wrap(err, "transaction row")
		}
	}
	return errors.Wrap(recent.Render(), "render transactions")
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
