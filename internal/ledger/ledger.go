// Package ledger reads financial input files into the structures the
// transformers consume. It supports JSON bundles, CSV transaction and
// property exports, and XLSX transaction sheets.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// Reader loads financial data from disk.
type Reader struct {
	logger logging.Logger
}

// NewReader builds a ledger reader.
func NewReader(logger logging.Logger) *Reader {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Reader{logger: logger}
}

// LoadFinancialData reads a complete FinancialData bundle from a JSON file.
func (r *Reader) LoadFinancialData(path string) (*models.FinancialData, error) {
	r.logger.Info("Reading financial data file",
		logging.Field{Key: logging.FieldInputFile, Value: path})

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening financial data file: %w", err)
	}

	var data models.FinancialData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("error parsing financial data file: %w", err)
	}

	r.logger.Info("Successfully read financial data",
		logging.Field{Key: logging.FieldCount, Value: len(data.Transactions)})
	return &data, nil
}

// LoadTransactions reads transactions from a CSV or XLSX file, chosen by
// extension.
func (r *Reader) LoadTransactions(path string) ([]models.FinancialTransaction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return r.loadTransactionsCSV(path)
	case ".xlsx":
		return r.loadTransactionsXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported transaction file format: %s", filepath.Ext(path))
	}
}

// LoadProperties reads property records from a CSV file.
func (r *Reader) LoadProperties(path string) ([]models.PropertyDetails, error) {
	rows, err := readCSVFile[models.PropertyDetails](path, r.logger)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
