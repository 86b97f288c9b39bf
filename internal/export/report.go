package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"frontdesk/internal/config"
	"frontdesk/internal/domain"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const billsSheet = "Счета"

// Reporter writes the bills listing to .xlsx files.
type Reporter struct {
	bills  domain.BillStore
	config config.ExportConfig
	logger zerolog.Logger
}

func NewReporter(bills domain.BillStore, cfg config.ExportConfig, logger *zerolog.Logger) *Reporter {
	return &Reporter{
		bills:  bills,
		config: cfg,
		logger: logger.With().Str("component", "export").Logger(),
	}
}

// BillsReport exports the current bills listing (optionally filtered) to an
// Excel file: bold headers, one row per bill, and a final row with the sum
// of paid bills. Returns the written file path.
func (r *Reporter) BillsReport(ctx context.Context, search string) (string, error) {
	if err := os.MkdirAll(r.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	bills, err := r.bills.ListBills(ctx, search)
	if err != nil {
		return "", fmt.Errorf("error getting bills: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(billsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{"ID счета", "ID брони", "Гость", "Номер", "Сумма", "Статус оплаты"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(billsSheet, cell, header)
		_ = f.SetCellStyle(billsSheet, cell, cell, headerStyle)
	}

	var paidTotal float64
	for i, bill := range bills {
		row := i + 2
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("A%d", row), bill.ID)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("B%d", row), bill.BookingID)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("C%d", row), bill.GuestInfo)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("D%d", row), bill.RoomInfo)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("E%d", row), bill.Total)
		_ = f.SetCellValue(billsSheet, fmt.Sprintf("F%d", row), paymentLabel(bill.PaymentStatus))

		if bill.PaymentStatus == models.PaymentPaid {
			paidTotal += bill.Total
		}
	}

	totalRow := len(bills) + 2
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellValue(billsSheet, fmt.Sprintf("A%d", totalRow), "Итого оплачено")
	_ = f.SetCellValue(billsSheet, fmt.Sprintf("E%d", totalRow), paidTotal)
	_ = f.SetCellStyle(billsSheet, fmt.Sprintf("A%d", totalRow),
		fmt.Sprintf("F%d", totalRow), totalStyle)

	_ = f.SetColWidth(billsSheet, "A", "B", 10)
	_ = f.SetColWidth(billsSheet, "C", "D", 28)
	_ = f.SetColWidth(billsSheet, "E", "F", 16)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bills_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(r.config.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	r.logger.Info().Str("file_path", filePath).Int("bills", len(bills)).Msg("bills report created")
	return filePath, nil
}

func paymentLabel(status models.PaymentStatus) string {
	if status == models.PaymentPaid {
		return "Оплачен"
	}
	return "Не оплачен"
}
