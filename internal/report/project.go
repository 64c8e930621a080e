package report

import (
	"strconv"

	"creditreport/internal/core"
)

// Project turns credit trades into display rows, one per trade, in order.
func Project(credits []CreditTrade) []core.ReportRow {
	rows := make([]core.ReportRow, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, core.ReportRow{
			Order:     strconv.FormatInt(c.Trade.Order, 10),
			Login:     strconv.FormatInt(c.Trade.Login, 10),
			Name:      c.Account.Name,
			CloseTime: core.FormatTimestamp(c.Trade.CloseTime),
			Comment:   c.Trade.Comment,
			Profit:    core.FormatProfit(c.Trade.Profit),
			Currency:  c.Currency,
		})
	}
	return rows
}
