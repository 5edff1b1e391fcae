package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// loadTransactionsXLSX reads transactions from the first sheet of an XLSX
// workbook. The header row names the columns; recognized headers match the
// CSV column names, unknown columns are ignored.
func (r *Reader) loadTransactionsXLSX(path string) ([]models.FinancialTransaction, error) {
	r.logger.Info("Reading XLSX file",
		logging.Field{Key: logging.FieldInputFile, Value: path})

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening XLSX file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close XLSX file")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	columns := map[string]int{}
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var transactions []models.FinancialTransaction
	for n, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		amount, err := decimal.NewFromString(cell(row, "amount"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", n+2, cell(row, "amount"))
		}

		tx := models.FinancialTransaction{
			ID:          cell(row, "id"),
			UserID:      cell(row, "user_id"),
			Amount:      amount,
			Description: cell(row, "description"),
			Category:    cell(row, "category"),
			Date:        cell(row, "date"),
			PropertyID:  cell(row, "property_id"),
			Reference:   cell(row, "reference"),
		}
		if raw := cell(row, "vat_amount"); raw != "" {
			vat, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid vat_amount %q", n+2, raw)
			}
			tx.VATAmount = &vat
		}
		if raw := cell(row, "vat_rate"); raw != "" {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid vat_rate %q", n+2, raw)
			}
			tx.VATRate = &rate
		}
		transactions = append(transactions, tx)
	}

	r.logger.Info("Successfully read XLSX data",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}
