// Package renderer turns simulation results into markdown documents
// for terminal display.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/dripsim/drip"
	md "github.com/nao1215/markdown"
)

// SimulationMarkdown renders the full report of a run: headline
// metrics, the forecast assumptions, and the detailed ledger.
func SimulationMarkdown(r *drip.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s 배당 재투자 시뮬레이션", r.Ticker))

	doc.H2("결과 요약")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"항목", "값"},
		Rows: [][]string{
			{"최종 보유 주식", fmt.Sprintf("%s주", r.FinalShares)},
			{"초기 보유", fmt.Sprintf("%s주", r.InitialShares)},
			{"증가", fmt.Sprintf("+%s주 (%s)", r.SharesGained, r.IncreaseRate().SignedString())},
			{"잔여 현금", r.RemainingCash.String()},
		},
	})

	doc.H2("예측 가정사항")
	assumptions := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"가정", "값"},
		Rows: [][]string{
			{"배당 주기", r.Cadence.Label()},
			{"배당금/회", r.DividendPerPayment.String()},
			{"고정 주가", r.FixedPrice.String()},
		},
	}
	if r.Cadence.Measured {
		assumptions.Rows = append(assumptions.Rows, []string{
			"평균 배당 간격", fmt.Sprintf("%.0f일", r.Cadence.AvgIntervalDays),
		})
	}
	doc.Table(assumptions)

	doc.H2("상세 내역")
	doc.Table(ledgerTable(r.Rows))

	return doc.String()
}

// LedgerMarkdown renders the ledger table alone, used by exports that
// already printed their own summary.
func LedgerMarkdown(rows []drip.LedgerRow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(ledgerTable(rows))
	return doc.String()
}

func ledgerTable(rows []drip.LedgerRow) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignCenter,
		},
		Header: []string{"날짜", "주당배당", "보유주식", "총배당금", "누적현금", "주가", "신규매수", "총보유주식", "구분"},
		Rows:   [][]string{},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Date.String(),
			row.DividendPerShare.Amount(),
			row.SharesBefore.String(),
			row.DividendCash.String(),
			row.CashCarry.String(),
			row.Price.String(),
			row.SharesPurchased.String(),
			row.TotalShares.String(),
			row.Category.Label(),
		})
	}
	return table
}
