package drip

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// this file contains the export format of a simulation result.
// Column names are the Korean export schema and must stay stable
// for downstream consumers.

// CSVHeader returns the export column set. The currency symbol is
// embedded in the three aggregate money headers at this serialization
// boundary only; internal field names stay currency-neutral.
func CSVHeader(cur Currency) []string {
	return []string{
		"날짜",
		"주당배당",
		"보유주식",
		fmt.Sprintf("총배당금(%s)", cur.Symbol),
		fmt.Sprintf("누적현금(%s)", cur.Symbol),
		fmt.Sprintf("주가(%s)", cur.Symbol),
		"신규매수",
		"총보유주식",
		"구분",
	}
}

// ExportCSV writes the full ledger of a result to 'w' in the export
// schema, one row per dividend event in chronological order.
func ExportCSV(w io.Writer, r *Result, cur Currency) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(cur)); err != nil {
		return fmt.Errorf("cannot write export header: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{
			row.Date.String(),
			row.DividendPerShare.Amount(),
			strconv.FormatInt(row.SharesBefore.IntPart(), 10),
			row.DividendCash.Amount(),
			row.CashCarry.Amount(),
			row.Price.Amount(),
			strconv.FormatInt(row.SharesPurchased.IntPart(), 10),
			strconv.FormatInt(row.TotalShares.IntPart(), 10),
			row.Category.Label(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write export row for %s: %w", row.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
