package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"qmatrix/internal/domain/privacy"
	"qmatrix/internal/domain/projection"
)

func formatAvg(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *avg)
}

// MatrixPDF renders the per-employee rows of a report as a printable
// document. With pseudonymize set, employee names are replaced by aliases
// from a fresh table so the export carries no direct identifiers.
func MatrixPDF(report projection.Report, pseudonymize bool) ([]byte, error) {
	var aliases *privacy.AliasTable
	if pseudonymize {
		aliases = privacy.NewAliasTable("EMP")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(60, 10, "Qualification Matrix")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", report.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Average fulfillment: %s (forecast %s)",
		formatAvg(report.KPIs.CurrentAvg), formatAvg(report.KPIs.ForecastAvg)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Employee", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Department", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Current", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Forecast", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, "Weakest skill", "1", 0, "", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range report.Employees {
		name := row.Name
		if aliases != nil {
			name = aliases.Alias(row.EmployeeID)
		}
		forecast := formatAvg(row.ForecastAvg)
		if row.Departing {
			forecast = "departing"
		}
		weakest := "-"
		if len(row.Skills) > 0 {
			weakest = row.Skills[0].SkillName
		}
		pdf.CellFormat(60, 7, name, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, row.Department, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, formatAvg(row.CurrentAvg), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, forecast, "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, weakest, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
