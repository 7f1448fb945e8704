package report

import (
	"github.com/bhushanhacker007/solar-burji-app/internal/models"

	"github.com/shopspring/decimal"
)

// SalesTotals are the sums over a set of sales.
type SalesTotals struct {
	Total  decimal.Decimal
	Cash   decimal.Decimal
	Online decimal.Decimal
}

func SumSales(rows []models.Sale) SalesTotals {
	var t SalesTotals
	for _, r := range rows {
		t.Total = t.Total.Add(r.Amount)
		switch r.PaymentMethod {
		case models.PaymentCash:
			t.Cash = t.Cash.Add(r.Amount)
		case models.PaymentOnline:
			t.Online = t.Online.Add(r.Amount)
		}
	}
	return t
}

func Sales(rows []models.Sale) *Table {
	sum := SumSales(rows)
	t := &Table{
		Entity:  "sales",
		RowsKey: "transactions",
		Rows:    rows,
		Totals: []Total{
			{Key: "total_amount", Value: sum.Total, Places: MoneyPlaces},
			{Key: "cash_amount", Value: sum.Cash, Places: MoneyPlaces},
			{Key: "online_amount", Value: sum.Online, Places: MoneyPlaces},
		},
		Header:  []string{"Date", "Amount (INR)", "Payment Method", "Note"},
		Records: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Records = append(t.Records, []string{
			r.TxnDate.String(), r.Amount.String(), string(r.PaymentMethod), optional(r.Note),
		})
	}
	t.Footer = []string{
		"TOTALS",
		t.Totals[0].Fixed(),
		"cash=" + t.Totals[1].Fixed() + "; online=" + t.Totals[2].Fixed(),
		"",
	}
	return t
}

// BorrowingTotals are the sums over a set of borrowing entries.
type BorrowingTotals struct {
	Borrowed decimal.Decimal
	Repaid   decimal.Decimal
}

// Net is the change in what customers owe over the range.
func (b BorrowingTotals) Net() decimal.Decimal {
	return b.Borrowed.Sub(b.Repaid)
}

func SumBorrowings(rows []models.Borrowing) BorrowingTotals {
	var t BorrowingTotals
	for _, r := range rows {
		if r.IsRepayment {
			t.Repaid = t.Repaid.Add(r.Amount)
		} else {
			t.Borrowed = t.Borrowed.Add(r.Amount)
		}
	}
	return t
}

func Borrowings(rows []models.Borrowing) *Table {
	sum := SumBorrowings(rows)
	t := &Table{
		Entity:  "borrowings",
		RowsKey: "entries",
		Rows:    rows,
		Totals: []Total{
			{Key: "borrow_total", Value: sum.Borrowed, Places: MoneyPlaces},
			{Key: "repayment_total", Value: sum.Repaid, Places: MoneyPlaces},
			{Key: "net_outstanding_change", Value: sum.Net(), Places: MoneyPlaces},
		},
		Header:  []string{"Date", "Customer", "Amount (INR)", "Type", "Note"},
		Records: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		kind := "borrow"
		if r.IsRepayment {
			kind = "repayment"
		}
		t.Records = append(t.Records, []string{
			r.TxnDate.String(), r.CustomerName, r.Amount.String(), kind, optional(r.Note),
		})
	}
	t.Footer = []string{
		"TOTALS",
		"",
		"borrow=" + t.Totals[0].Fixed() + "; repayment=" + t.Totals[1].Fixed(),
		"net=" + t.Totals[2].Fixed(),
		"",
	}
	return t
}

// SolarTotals are the energy sums over a set of days.
type SolarTotals struct {
	Import     decimal.Decimal
	Export     decimal.Decimal
	Generation decimal.Decimal
}

func SumSolar(rows []models.SolarDaily) SolarTotals {
	var t SolarTotals
	for _, r := range rows {
		t.Import = t.Import.Add(r.ImportKWh)
		t.Export = t.Export.Add(r.ExportKWh)
		t.Generation = t.Generation.Add(r.GenerationKWh)
	}
	return t
}

func Solar(rows []models.SolarDaily) *Table {
	sum := SumSolar(rows)
	t := &Table{
		Entity:  "solar",
		RowsKey: "days",
		Rows:    rows,
		Totals: []Total{
			{Key: "total_import_kwh", Value: sum.Import, Places: EnergyPlaces},
			{Key: "total_export_kwh", Value: sum.Export, Places: EnergyPlaces},
			{Key: "total_generation_kwh", Value: sum.Generation, Places: EnergyPlaces},
		},
		Header:  []string{"Date", "Import (kWh)", "Export (kWh)", "Generation (kWh)", "Notes"},
		Records: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Records = append(t.Records, []string{
			r.ReadingDate.String(), r.ImportKWh.String(), r.ExportKWh.String(), r.GenerationKWh.String(), optional(r.Notes),
		})
	}
	t.Footer = []string{"TOTALS", t.Totals[0].Fixed(), t.Totals[1].Fixed(), t.Totals[2].Fixed(), ""}
	return t
}
