package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"barberpro/internal/domain"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Agendamentos"

// LedgerExporter writes the full appointment history to an Excel file.
// The ledger is rewritten as a whole on every export, mirroring how the
// history itself is stored.
type LedgerExporter struct {
	appointments domain.AppointmentRepository
	path         string
	logger       *zerolog.Logger
}

func NewLedgerExporter(appointments domain.AppointmentRepository, path string, logger *zerolog.Logger) *LedgerExporter {
	return &LedgerExporter{
		appointments: appointments,
		path:         path,
		logger:       logger,
	}
}

// Export renders the ledger and saves it to the configured path,
// returning the written file path.
func (e *LedgerExporter) Export(ctx context.Context) (string, error) {
	apts, err := e.appointments.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load appointments: %w", err)
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Cliente", "Barbeiro", "Serviço", "Data", "Horário", "Status", "Preço", "Criado em",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, apt := range apts {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), apt.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), apt.ClientName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), apt.BarberName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), apt.ServiceName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), apt.Date)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), apt.Time)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), apt.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), apt.Price)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), apt.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "D", 22)
	_ = f.SetColWidth(sheetName, "E", "G", 14)
	_ = f.SetColWidth(sheetName, "H", "H", 10)
	_ = f.SetColWidth(sheetName, "I", "I", 18)

	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(e.path); err != nil {
		return "", fmt.Errorf("save ledger: %w", err)
	}

	e.logger.Info().
		Str("file_path", e.path).
		Int("appointments", len(apts)).
		Time("exported_at", time.Now()).
		Msg("Appointment ledger exported")
	return e.path, nil
}

// Path returns the configured output file path.
func (e *LedgerExporter) Path() string {
	return e.path
}
