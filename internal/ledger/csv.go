package ledger

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// readCSVFile reads CSV data into a slice of structs using gocsv.
func readCSVFile[TRow any](path string, logger logging.Logger) ([]TRow, error) {
	logger.Info("Reading CSV file",
		logging.Field{Key: logging.FieldInputFile, Value: path})

	file, err := os.Open(path)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

func (r *Reader) loadTransactionsCSV(path string) ([]models.FinancialTransaction, error) {
	return readCSVFile[models.FinancialTransaction](path, r.logger)
}
