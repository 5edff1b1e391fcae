package transformer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/currency"
	"github.com/Jagbo/zenrent-sub000/internal/dateutils"
	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// SelfAssessmentTransformer assembles an annual Self Assessment submission
// from all income and deduction sources present in the input data. Property
// income is delegated to the PropertyIncomeTransformer.
type SelfAssessmentTransformer struct {
	opts     models.TransformationOptions
	cat      *categorizer.Categorizer
	property *PropertyIncomeTransformer
	logger   logging.Logger
}

// NewSelfAssessmentTransformer builds a Self Assessment transformer.
func NewSelfAssessmentTransformer(opts models.TransformationOptions, cat *categorizer.Categorizer, property *PropertyIncomeTransformer, logger logging.Logger) *SelfAssessmentTransformer {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	if property == nil {
		property = NewPropertyIncomeTransformer(opts, cat, logger)
	}
	return &SelfAssessmentTransformer{opts: opts, cat: cat, property: property, logger: logger}
}

func (t *SelfAssessmentTransformer) code() currency.Code {
	return currency.ParseCode(t.opts.CurrencyCode)
}

func (t *SelfAssessmentTransformer) round(v decimal.Decimal) decimal.Decimal {
	return currency.FormatForSubmissionAt(v, t.opts.RoundingPrecision)
}

// Transform builds a Self Assessment payload for the tax year containing the
// period start date. Income sections with no matching transactions are left
// out of the payload entirely; dividends, savings and deductions are
// non-mandatory sections and are only built when the options ask for them.
func (t *SelfAssessmentTransformer) Transform(data *models.FinancialData) models.TransformationResult[models.SelfAssessmentPayload] {
	result := models.TransformationResult[models.SelfAssessmentPayload]{Valid: true, Errors: []models.ValidationIssue{}}

	start, _, ok := checkPeriod(data, &result.Errors)
	if !ok {
		result.Valid = false
		return result
	}

	code := t.code()
	payload := models.SelfAssessmentPayload{
		TaxYear: dateutils.TaxYearShort(start),
	}

	if len(data.Properties) > 0 {
		propertyResult := t.property.Transform(data)
		if propertyResult.Valid {
			payload.Income.UKProperty = &propertyResult.Data
		} else {
			for _, issue := range propertyResult.Errors {
				result.AddError("income.ukProperty."+issue.Field, issue.Message, issue.Code)
			}
		}
	}

	payload.Income.Employment = t.employmentIncome(data, code)
	payload.Income.SelfEmployment = t.selfEmploymentIncome(data, code)
	if t.opts.IncludeNonMandatoryFields {
		payload.Income.Dividends = t.dividendsIncome(data, code)
		payload.Income.Savings = t.savingsIncome(data, code)
		payload.Deductions = t.deductions(data, code)
	}

	result.Data = payload
	result.Metadata = map[string]interface{}{
		"taxYear":     payload.TaxYear,
		"periodStart": data.StartDate,
		"periodEnd":   data.EndDate,
		"incomeTypes": incomeSections(&payload.Income),
	}

	if t.opts.Debug {
		t.logger.Debug("built self assessment",
			logging.Field{Key: logging.FieldTaxYear, Value: payload.TaxYear},
			logging.Field{Key: logging.FieldCount, Value: len(data.Transactions)})
	}

	return result
}

// incomeSections lists the populated income section names in payload order.
func incomeSections(income *models.SelfAssessmentIncome) []string {
	var sections []string
	if len(income.Employment) > 0 {
		sections = append(sections, "employment")
	}
	if len(income.SelfEmployment) > 0 {
		sections = append(sections, "selfEmployment")
	}
	if income.UKProperty != nil {
		sections = append(sections, "ukProperty")
	}
	if income.Dividends != nil {
		sections = append(sections, "dividends")
	}
	if income.Savings != nil {
		sections = append(sections, "savings")
	}
	return sections
}

type employerGroup struct {
	name         string
	reference    string
	payrollID    string
	transactions []*models.FinancialTransaction
}

// employmentIncome groups employment transactions by employer and sums pay
// and tax deducted per employer. Returns nil when there is no employment
// income.
func (t *SelfAssessmentTransformer) employmentIncome(data *models.FinancialData, code currency.Code) []models.EmploymentIncome {
	groups := map[string]*employerGroup{}
	for i := range data.Transactions {
		tx := &data.Transactions[i]
		if categorizer.IncomeTypeOf(tx) != categorizer.IncomeEmployment {
			continue
		}
		key := tx.MetaString(categorizer.MetaEmployerID)
		if key == "" {
			key = tx.MetaString(categorizer.MetaEmployerName)
		}
		if key == "" {
			key = tx.Description
		}
		if key == "" {
			key = "default-employer"
		}
		group := groups[key]
		if group == nil {
			name := tx.MetaString(categorizer.MetaEmployerName)
			if name == "" {
				name = tx.Description
			}
			if name == "" {
				name = "Unknown Employer"
			}
			group = &employerGroup{
				name:      name,
				reference: tx.MetaString(categorizer.MetaEmployerRef),
				payrollID: tx.MetaString(categorizer.MetaEmployerID),
			}
			groups[key] = group
		}
		group.transactions = append(group.transactions, tx)
	}
	if len(groups) == 0 {
		return nil
	}

	var entries []models.EmploymentIncome
	for _, key := range sortedKeys(groups) {
		group := groups[key]
		var pay, tax []decimal.Decimal
		for _, tx := range group.transactions {
			pay = append(pay, tx.Amount)
			if deducted, ok := tx.MetaDecimal(categorizer.MetaTaxDeducted); ok {
				tax = append(tax, deducted)
			}
		}
		entries = append(entries, models.EmploymentIncome{
			EmployerName:      group.name,
			EmployerReference: group.reference,
			PayrollID:         group.payrollID,
			TaxablePayToDate:  t.round(currency.Sum(pay, code)),
			TotalTaxToDate:    t.round(currency.Sum(tax, code)),
		})
	}
	return entries
}

type businessGroup struct {
	name         string
	description  string
	commencement string
	transactions []*models.FinancialTransaction
}

// selfEmploymentIncome groups self-employment transactions by business and
// splits each business into income and categorized expenses.
func (t *SelfAssessmentTransformer) selfEmploymentIncome(data *models.FinancialData, code currency.Code) []models.SelfEmploymentIncome {
	groups := map[string]*businessGroup{}
	for i := range data.Transactions {
		tx := &data.Transactions[i]
		if categorizer.IncomeTypeOf(tx) != categorizer.IncomeSelfEmployment {
			continue
		}
		key := tx.MetaString(categorizer.MetaBusinessID)
		if key == "" {
			key = tx.MetaString(categorizer.MetaBusinessName)
		}
		if key == "" {
			key = "default-business"
		}
		group := groups[key]
		if group == nil {
			name := tx.MetaString(categorizer.MetaBusinessName)
			if name == "" {
				name = "Self-employed Business"
			}
			desc := tx.MetaString(categorizer.MetaBusinessDesc)
			if desc == "" {
				desc = "Self-employed Activity"
			}
			group = &businessGroup{
				name:         name,
				description:  desc,
				commencement: tx.MetaString(categorizer.MetaCommencementDate),
			}
			groups[key] = group
		}
		group.transactions = append(group.transactions, tx)
	}
	if len(groups) == 0 {
		return nil
	}

	var entries []models.SelfEmploymentIncome
	for _, key := range sortedKeys(groups) {
		group := groups[key]

		var income []decimal.Decimal
		expenses := map[string]decimal.Decimal{}
		for _, tx := range group.transactions {
			cat := strings.ToLower(tx.Category)
			switch {
			case strings.Contains(cat, "income") || strings.Contains(cat, "revenue") || tx.Amount.IsPositive():
				income = append(income, tx.Amount)
			case strings.Contains(cat, "expense") || strings.Contains(cat, "cost") || tx.Amount.IsNegative():
				bucket := tx.MetaString(categorizer.MetaExpenseCategory)
				if bucket == "" {
					bucket = sanitizeCategory(tx.Category)
				}
				expenses[bucket] = currency.Add(expenses[bucket], tx.Amount.Abs(), code)
			}
		}

		for bucket := range expenses {
			expenses[bucket] = t.round(expenses[bucket])
		}

		commencement := group.commencement
		if commencement == "" {
			commencement = earliestDate(group.transactions, data.StartDate)
		}

		entries = append(entries, models.SelfEmploymentIncome{
			BusinessID:                key,
			BusinessName:              group.name,
			BusinessDescription:       group.description,
			CommencementDate:          commencement,
			AccountingPeriodStartDate: data.StartDate,
			AccountingPeriodEndDate:   data.EndDate,
			Income:                    t.round(currency.Sum(income, code)),
			Expenses:                  expenses,
			Additions:                 map[string]decimal.Decimal{},
			Deductions:                map[string]decimal.Decimal{},
		})
	}
	return entries
}

// dividendsIncome splits dividend receipts into UK and other sources.
// Transactions without a dividendType are treated as UK dividends.
func (t *SelfAssessmentTransformer) dividendsIncome(data *models.FinancialData, code currency.Code) *models.DividendsIncome {
	var uk, other []decimal.Decimal
	found := false
	for i := range data.Transactions {
		tx := &data.Transactions[i]
		if categorizer.IncomeTypeOf(tx) != categorizer.IncomeDividends {
			continue
		}
		found = true
		if tx.MetaString(categorizer.MetaDividendType) == "other" {
			other = append(other, tx.Amount)
		} else {
			uk = append(uk, tx.Amount)
		}
	}
	if !found {
		return nil
	}
	return &models.DividendsIncome{
		UKDividends:      t.round(currency.Sum(uk, code)),
		OtherUKDividends: t.round(currency.Sum(other, code)),
	}
}

// savingsIncome splits interest receipts into UK and foreign sources.
// Transactions without an interestType are treated as UK interest.
func (t *SelfAssessmentTransformer) savingsIncome(data *models.FinancialData, code currency.Code) *models.SavingsIncome {
	var uk, foreign []decimal.Decimal
	found := false
	for i := range data.Transactions {
		tx := &data.Transactions[i]
		if categorizer.IncomeTypeOf(tx) != categorizer.IncomeSavings {
			continue
		}
		found = true
		if tx.MetaString(categorizer.MetaInterestType) == "foreign" {
			foreign = append(foreign, tx.Amount)
		} else {
			uk = append(uk, tx.Amount)
		}
	}
	if !found {
		return nil
	}
	return &models.SavingsIncome{
		UKInterest:      t.round(currency.Sum(uk, code)),
		ForeignInterest: t.round(currency.Sum(foreign, code)),
	}
}

// deductions builds the gift aid and pension contribution sections. Amounts
// are taken as absolute values since deductions are usually recorded as
// outgoing payments.
func (t *SelfAssessmentTransformer) deductions(data *models.FinancialData, code currency.Code) *models.SelfAssessmentDeductions {
	var giftAid, giftAidPrevious, giftAidNext []decimal.Decimal
	var pension, overseas []decimal.Decimal
	for i := range data.Transactions {
		tx := &data.Transactions[i]
		if !categorizer.IsDeduction(tx) {
			continue
		}
		switch categorizer.DeductionTypeOf(tx) {
		case categorizer.DeductionGiftAid:
			amount := tx.Amount.Abs()
			giftAid = append(giftAid, amount)
			if tx.MetaBool(categorizer.MetaPreviousTaxYear) {
				giftAidPrevious = append(giftAidPrevious, amount)
			}
			if tx.MetaBool(categorizer.MetaNextTaxYear) {
				giftAidNext = append(giftAidNext, amount)
			}
		case categorizer.DeductionPension:
			amount := tx.Amount.Abs()
			pension = append(pension, amount)
			if tx.MetaBool(categorizer.MetaOverseasTransfer) {
				overseas = append(overseas, amount)
			}
		}
	}
	if len(giftAid) == 0 && len(pension) == 0 {
		return nil
	}

	deductions := &models.SelfAssessmentDeductions{}
	if len(giftAid) > 0 {
		total := currency.Sum(giftAid, code)
		previous := currency.Sum(giftAidPrevious, code)
		next := currency.Sum(giftAidNext, code)
		deductions.GiftAid = &models.GiftAidDeductions{
			GiftAidPayments:                       t.round(currency.Subtract(currency.Subtract(total, previous, code), next, code)),
			GiftAidTreatedAsPaidInPreviousTaxYear: t.round(previous),
			GiftAidTreatedAsPaidInCurrentTaxYear:  t.round(next),
		}
	}
	if len(pension) > 0 {
		total := currency.Sum(pension, code)
		transfers := currency.Sum(overseas, code)
		deductions.PensionContributions = &models.PensionDeductions{
			PensionSchemeOverseasTransfers: t.round(transfers),
			PensionContributionsAmount:     t.round(currency.Subtract(total, transfers, code)),
		}
	}
	return deductions
}

// sanitizeCategory lowercases a raw category and replaces every
// non-alphanumeric character with an underscore, producing a stable expense
// bucket key.
func sanitizeCategory(category string) string {
	if category == "" {
		return "other"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(category) {
		if unicode.IsLower(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// earliestDate returns the earliest parseable transaction date, or fallback
// when none parses.
func earliestDate(txs []*models.FinancialTransaction, fallback string) string {
	best := ""
	for _, tx := range txs {
		if _, err := dateutils.ParseISO(tx.Date); err != nil {
			continue
		}
		if best == "" || tx.Date < best {
			best = tx.Date
		}
	}
	if best == "" {
		return fallback
	}
	return best
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
