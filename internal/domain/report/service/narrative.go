package service

import (
	"fmt"

	"github.com/dpereyra/historial-firmante/pkg/money"
)

// narrative renders the one-sentence summary shown above the detail table.
func narrative(sum *Summary) string {
	total := money.FromDecimal(sum.Total).Display()
	if sum.Rejected.IsPositive() {
		return fmt.Sprintf(
			"Durante los últimos 12 meses se descontaron %d valores de la firma por un total de %s con un margen de rechazos de %s%%.",
			sum.Count, total, sum.RejectedPct.StringFixed(2),
		)
	}
	return fmt.Sprintf(
		"Durante los últimos 12 meses se descontaron %d valores de la firma por un total de %s. Sin registrar rechazos.",
		sum.Count, total,
	)
}
