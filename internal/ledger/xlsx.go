package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"visiting-card-bot/constants"
)

const xlsxSheet = "Cards"

// XLSX appends rows to a workbook on disk, writing the header row once when
// the file is first created. The workbook is saved after every append so a
// crash never loses acknowledged rows.
type XLSX struct {
	mu     sync.Mutex
	path   string
	file   *excelize.File
	next   int // next 1-based row to write
	logger *slog.Logger
}

func NewXLSX(path string, logger *slog.Logger) (*XLSX, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l := &XLSX{path: path, logger: logger}
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		l.file = f
		rows, err := f.GetRows(xlsxSheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet: %w", err)
		}
		l.next = len(rows) + 1
		return l, nil
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet(xlsxSheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	for i, h := range constants.LedgerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("create workbook: %w", err)
	}
	l.file = f
	l.next = 2
	return l, nil
}

func (l *XLSX) Append(ctx context.Context, row Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, v := range row.Values() {
		cell, err := excelize.CoordinatesToCellName(i+1, l.next)
		if err != nil {
			return err
		}
		if err := l.file.SetCellValue(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	if err := l.file.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	l.next++

	l.logger.Info("ledger.xlsx.appended", "path", l.path, "row", l.next-1, "conversation_id", row.ConversationID)
	return nil
}

func (l *XLSX) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
