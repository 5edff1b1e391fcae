// Package transformer builds HMRC submission payloads from categorized
// financial data. Transformers perform structural guards and aggregation
// only; rule-set validation runs separately so that transformation and
// validation findings stay distinguishable.
package transformer

import (
	"github.com/shopspring/decimal"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/dateutils"
	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// VATTransformer aggregates transactions into the nine boxes of a VAT
// return.
type VATTransformer struct {
	opts   models.TransformationOptions
	cat    *categorizer.Categorizer
	logger logging.Logger
}

// NewVATTransformer builds a VAT transformer with the given options.
func NewVATTransformer(opts models.TransformationOptions, cat *categorizer.Categorizer, logger logging.Logger) *VATTransformer {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &VATTransformer{opts: opts, cat: cat, logger: logger}
}

func (t *VATTransformer) code() currency.Code {
	return currency.ParseCode(t.opts.CurrencyCode)
}

func (t *VATTransformer) round(v decimal.Decimal) decimal.Decimal {
	return currency.FormatForSubmissionAt(v, t.opts.RoundingPrecision)
}

// Transform builds a VAT return payload. The result is always populated;
// structural problems (bad dates, inverted ranges) mark it invalid.
func (t *VATTransformer) Transform(data *models.FinancialData) models.TransformationResult[models.VATReturnPayload] {
	result := models.TransformationResult[models.VATReturnPayload]{Valid: true, Errors: []models.ValidationIssue{}}

	start, end, ok := checkPeriod(data, &result.Errors)
	if !ok {
		result.Valid = false
		return result
	}

	code := t.code()
	transactions := t.cat.ForVAT(data)

	payload := models.VATReturnPayload{
		PeriodKey:                    dateutils.PeriodKey(start, end),
		VATDueSales:                  t.vatDueSales(transactions, code),
		VATDueAcquisitions:           t.vatDueAcquisitions(transactions, code),
		VATReclaimedCurrPeriod:       t.vatReclaimed(transactions, code),
		TotalValueSalesExVAT:         t.sumExVAT(transactions, code, func(tx *categorizer.VATTransaction) bool { return tx.IsIncome }),
		TotalValuePurchasesExVAT:     t.sumExVAT(transactions, code, func(tx *categorizer.VATTransaction) bool { return tx.IsExpense }),
		TotalValueGoodsSuppliedExVAT: t.sumExVAT(transactions, code, func(tx *categorizer.VATTransaction) bool { return tx.VATCategory == categorizer.VATECSupply }),
		TotalAcquisitionsExVAT:       t.sumExVAT(transactions, code, func(tx *categorizer.VATTransaction) bool { return tx.VATCategory == categorizer.VATECAcquisition }),
		Finalised:                    true,
	}

	payload.TotalVATDue = t.round(currency.Add(payload.VATDueSales, payload.VATDueAcquisitions, code))
	net := t.round(currency.Subtract(payload.TotalVATDue, payload.VATReclaimedCurrPeriod, code))
	if net.IsNegative() {
		net = t.round(decimal.Zero)
	}
	payload.NetVATDue = net

	scheme := data.VATScheme
	if scheme == "" {
		scheme = "standard"
	}
	result.Data = payload
	result.Metadata = map[string]interface{}{
		"transactionCount": len(transactions),
		"periodStart":      data.StartDate,
		"periodEnd":        data.EndDate,
		"vatScheme":        scheme,
	}
	if data.VATFlatRate != nil {
		result.Metadata["flatRatePercentage"] = *data.VATFlatRate
	}

	if t.opts.Debug {
		t.logger.Debug("built VAT return",
			logging.Field{Key: logging.FieldPeriodKey, Value: payload.PeriodKey},
			logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	}

	return result
}

// vatDueSales sums positive VAT amounts on income transactions.
func (t *VATTransformer) vatDueSales(transactions []categorizer.VATTransaction, code currency.Code) decimal.Decimal {
	var parts []decimal.Decimal
	for i := range transactions {
		tx := &transactions[i]
		if tx.IsIncome && tx.VATAmount != nil && tx.VATAmount.IsPositive() {
			parts = append(parts, *tx.VATAmount)
		}
	}
	return t.round(currency.Sum(parts, code))
}

// vatDueAcquisitions sums VAT amounts on EC acquisition transactions.
func (t *VATTransformer) vatDueAcquisitions(transactions []categorizer.VATTransaction, code currency.Code) decimal.Decimal {
	var parts []decimal.Decimal
	for i := range transactions {
		tx := &transactions[i]
		if tx.VATCategory == categorizer.VATECAcquisition && tx.VATAmount != nil {
			parts = append(parts, *tx.VATAmount)
		}
	}
	return t.round(currency.Sum(parts, code))
}

// vatReclaimed sums positive VAT amounts on expense transactions.
func (t *VATTransformer) vatReclaimed(transactions []categorizer.VATTransaction, code currency.Code) decimal.Decimal {
	var parts []decimal.Decimal
	for i := range transactions {
		tx := &transactions[i]
		if tx.IsExpense && tx.VATAmount != nil && tx.VATAmount.IsPositive() {
			parts = append(parts, *tx.VATAmount)
		}
	}
	return t.round(currency.Sum(parts, code))
}

// sumExVAT totals transaction amounts net of VAT for transactions matched by
// the filter.
func (t *VATTransformer) sumExVAT(transactions []categorizer.VATTransaction, code currency.Code, match func(*categorizer.VATTransaction) bool) decimal.Decimal {
	var parts []decimal.Decimal
	for i := range transactions {
		tx := &transactions[i]
		if !match(tx) {
			continue
		}
		amount := tx.Amount
		if tx.VATAmount != nil {
			amount = amount.Sub(*tx.VATAmount)
		}
		parts = append(parts, amount)
	}
	return t.round(currency.Sum(parts, code))
}

