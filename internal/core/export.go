package core

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/panwartanish/SubSentry/internal/models"
)

// RenderCSV renders a subscription sequence as CSV: a header row followed by
// one row per subscription. Costs are the raw stored values formatted to two
// decimals; no currency conversion is applied.
func RenderCSV(subs []models.Subscription) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Name", "Cost", "Currency", "Category", "RenewalDate"})
	for _, sub := range subs {
		w.Write([]string{
			sub.Name,
			fmt.Sprintf("%.2f", sub.Cost),
			sub.Currency,
			sub.Category,
			sub.RenewalDate,
		})
	}
	w.Flush()
	return buf.String()
}
