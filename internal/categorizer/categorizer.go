// Package categorizer classifies financial transactions into the HMRC
// categories each payload needs. Classification is deterministic: explicit
// metadata wins, then keyword matching on the transaction's category string.
package categorizer

import (
	"fmt"
	"strings"

	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// VATCategory classifies a transaction for VAT box calculations.
type VATCategory string

const (
	VATStandardRate  VATCategory = "standard_rate"
	VATReducedRate   VATCategory = "reduced_rate"
	VATZeroRate      VATCategory = "zero_rate"
	VATExempt        VATCategory = "exempt"
	VATOutsideScope  VATCategory = "outside_scope"
	VATECAcquisition VATCategory = "ec_acquisitions"
	VATECSupply      VATCategory = "ec_supplies"
	VATReverseCharge VATCategory = "reverse_charge"
)

// PropertyCategory classifies a transaction into a property income,
// expense or allowance payload field.
type PropertyCategory string

const (
	RentIncome           PropertyCategory = "rent_income"
	PremiumsOfLeaseGrant PropertyCategory = "premiums_of_lease_grant"
	ReversePremiums      PropertyCategory = "reverse_premiums"
	OtherIncome          PropertyCategory = "other_income"

	PremisesRunningCosts  PropertyCategory = "premises_running_costs"
	RepairsAndMaintenance PropertyCategory = "repairs_and_maintenance"
	FinancialCosts        PropertyCategory = "financial_costs"
	ProfessionalFees      PropertyCategory = "professional_fees"
	CostOfServices        PropertyCategory = "cost_of_services"
	OtherExpenses         PropertyCategory = "other_expenses"

	AnnualInvestmentAllowance   PropertyCategory = "annual_investment_allowance"
	BusinessPremisesRenovation  PropertyCategory = "business_premises_renovation"
	OtherCapitalAllowance       PropertyCategory = "other_capital_allowance"
	WearAndTearAllowance        PropertyCategory = "wear_and_tear_allowance"
	PropertyAllowanceCat        PropertyCategory = "property_allowance"
)

// IncomeType tags a transaction for Self Assessment section routing.
type IncomeType string

const (
	IncomeEmployment     IncomeType = "employment"
	IncomeSelfEmployment IncomeType = "self_employment"
	IncomeDividends      IncomeType = "dividends"
	IncomeSavings        IncomeType = "savings"
)

// DeductionType tags a transaction as a Self Assessment deduction.
type DeductionType string

const (
	DeductionGiftAid  DeductionType = "gift_aid"
	DeductionPension  DeductionType = "pension_contributions"
)

// Metadata keys recognized on transactions. Explicit metadata always beats
// keyword matching.
const (
	MetaVATCategory      = "vatCategory"
	MetaPropertyCategory = "propertyIncomeCategory"
	MetaIncomeType       = "incomeType"
	MetaDeductionType    = "deductionType"
	MetaTransactionType  = "transactionType"
	MetaEmployerID       = "employerId"
	MetaEmployerName     = "employerName"
	MetaEmployerRef      = "employerReference"
	MetaBusinessID       = "businessId"
	MetaBusinessName     = "businessName"
	MetaBusinessDesc     = "businessDescription"
	MetaCommencementDate = "commencementDate"
	MetaTaxDeducted      = "taxDeducted"
	MetaExpenseCategory  = "expenseCategory"
	MetaDividendType     = "dividendType"
	MetaInterestType     = "interestType"
	MetaPreviousTaxYear  = "previousTaxYear"
	MetaNextTaxYear      = "nextTaxYear"
	MetaOverseasTransfer = "overseasTransfer"
	MetaReverseCharge    = "reverseCharge"
	MetaHolidayLetting   = "holidayLetting"
	MetaRentARoom        = "rentARoom"
)

// Overrides extends the built-in keyword sets from external configuration.
// All lists are additive; the defaults cannot be removed.
type Overrides struct {
	VATIncome         []string          `yaml:"vat_income"`
	VATExpense        []string          `yaml:"vat_expense"`
	PropertyIncome    []string          `yaml:"property_income"`
	PropertyExpense   []string          `yaml:"property_expense"`
	PropertyAllowance []string          `yaml:"property_allowance"`
	Categories        map[string]string `yaml:"categories"`
}

// VATTransaction is a transaction annotated with its VAT classification.
type VATTransaction struct {
	models.FinancialTransaction
	VATCategory VATCategory
	IsIncome    bool
	IsExpense   bool
}

// PropertyTransaction is a transaction annotated with its property
// income classification.
type PropertyTransaction struct {
	models.FinancialTransaction
	Category    PropertyCategory
	IsIncome    bool
	IsExpense   bool
	IsAllowance bool
}

// AmbiguousPropertyError is returned by GroupByProperty in strict mode when a
// transaction carries no property reference.
type AmbiguousPropertyError struct {
	TransactionID string
}

func (e *AmbiguousPropertyError) Error() string {
	return fmt.Sprintf("transaction %s has no property reference", e.TransactionID)
}

var (
	vatIncomeKeywords  = []string{"income", "revenue", "sale", "rent"}
	vatExpenseKeywords = []string{"expense", "cost", "purchase", "fee"}

	propIncomeKeywords    = []string{"income", "revenue", "rent", "premium"}
	propExpenseKeywords   = []string{"expense", "cost", "fee", "repair", "maintenance", "service"}
	propAllowanceKeywords = []string{"allowance", "capital", "investment", "wear", "tear"}
)

// Categorizer classifies transactions for all three payload types.
type Categorizer struct {
	logger    logging.Logger
	overrides Overrides
}

// New returns a Categorizer. Overrides may be the zero value when no external
// keyword configuration is loaded. Override keywords and category map keys are
// lowercased so they match the same way the built-in sets do.
func New(logger logging.Logger, overrides Overrides) *Categorizer {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	overrides.VATIncome = lowercaseAll(overrides.VATIncome)
	overrides.VATExpense = lowercaseAll(overrides.VATExpense)
	overrides.PropertyIncome = lowercaseAll(overrides.PropertyIncome)
	overrides.PropertyExpense = lowercaseAll(overrides.PropertyExpense)
	overrides.PropertyAllowance = lowercaseAll(overrides.PropertyAllowance)
	if len(overrides.Categories) > 0 {
		mapped := make(map[string]string, len(overrides.Categories))
		for k, v := range overrides.Categories {
			mapped[strings.ToLower(k)] = v
		}
		overrides.Categories = mapped
	}
	return &Categorizer{logger: logger, overrides: overrides}
}

func lowercaseAll(keywords []string) []string {
	if len(keywords) == 0 {
		return keywords
	}
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = strings.ToLower(k)
	}
	return out
}

// IsVATIncome reports whether a raw category string counts as income for VAT
// box calculation.
func IsVATIncome(category string) bool {
	return containsAny(strings.ToLower(category), vatIncomeKeywords)
}

// IsVATExpense reports whether a raw category string counts as an expense for
// VAT box calculation.
func IsVATExpense(category string) bool {
	return containsAny(strings.ToLower(category), vatExpenseKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ForVAT classifies every transaction for VAT box calculation. An explicit
// vatCategory metadata entry wins; otherwise the VAT rate decides the
// category and keywords decide the income/expense split.
func (c *Categorizer) ForVAT(data *models.FinancialData) []VATTransaction {
	result := make([]VATTransaction, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		cat := strings.ToLower(tx.Category)

		vt := VATTransaction{
			FinancialTransaction: tx,
			IsIncome:             containsAny(cat, vatIncomeKeywords) || containsAny(cat, c.overrides.VATIncome),
			IsExpense:            containsAny(cat, vatExpenseKeywords) || containsAny(cat, c.overrides.VATExpense),
		}

		if meta := tx.MetaString(MetaVATCategory); meta != "" {
			vt.VATCategory = VATCategory(meta)
		} else if tx.VATRate != nil {
			switch tx.VATRate.IntPart() {
			case 20:
				vt.VATCategory = VATStandardRate
			case 5:
				vt.VATCategory = VATReducedRate
			case 0:
				vt.VATCategory = VATZeroRate
			}
		}

		result = append(result, vt)
	}
	return result
}

// ForProperty classifies every transaction into property income, expense and
// allowance categories. Metadata wins; keyword matching covers the rest, with
// a logged fallback to the catch-all category of the matched kind.
func (c *Categorizer) ForProperty(data *models.FinancialData) []PropertyTransaction {
	result := make([]PropertyTransaction, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		cat := strings.ToLower(tx.Category)

		pt := PropertyTransaction{
			FinancialTransaction: tx,
			IsIncome:             containsAny(cat, propIncomeKeywords) || containsAny(cat, c.overrides.PropertyIncome),
			IsExpense:            containsAny(cat, propExpenseKeywords) || containsAny(cat, c.overrides.PropertyExpense),
			IsAllowance:          containsAny(cat, propAllowanceKeywords) || containsAny(cat, c.overrides.PropertyAllowance),
		}

		switch {
		case pt.IsIncome:
			pt.Category = classifyIncome(cat)
		case pt.IsExpense:
			pt.Category = classifyExpense(cat)
		case pt.IsAllowance:
			pt.Category = classifyAllowance(cat)
		}

		if mapped, ok := c.overrides.Categories[cat]; ok {
			pt.Category = PropertyCategory(mapped)
		}
		if meta := tx.MetaString(MetaPropertyCategory); meta != "" {
			pt.Category = PropertyCategory(meta)
		}

		if pt.Category == "" {
			c.logger.Debug("transaction did not match any property category",
				logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
				logging.Field{Key: logging.FieldCategory, Value: tx.Category})
		}

		result = append(result, pt)
	}
	return result
}

func classifyIncome(cat string) PropertyCategory {
	switch {
	case strings.Contains(cat, "rent"):
		return RentIncome
	case strings.Contains(cat, "premium") && strings.Contains(cat, "lease"):
		return PremiumsOfLeaseGrant
	case strings.Contains(cat, "reverse") && strings.Contains(cat, "premium"):
		return ReversePremiums
	default:
		return OtherIncome
	}
}

func classifyExpense(cat string) PropertyCategory {
	switch {
	case strings.Contains(cat, "running"), strings.Contains(cat, "utility"), strings.Contains(cat, "insurance"):
		return PremisesRunningCosts
	case strings.Contains(cat, "repair"), strings.Contains(cat, "maintenance"):
		return RepairsAndMaintenance
	case strings.Contains(cat, "financial"), strings.Contains(cat, "interest"), strings.Contains(cat, "mortgage"):
		return FinancialCosts
	case strings.Contains(cat, "professional"), strings.Contains(cat, "legal"), strings.Contains(cat, "accountant"):
		return ProfessionalFees
	case strings.Contains(cat, "service"):
		return CostOfServices
	default:
		return OtherExpenses
	}
}

func classifyAllowance(cat string) PropertyCategory {
	switch {
	case strings.Contains(cat, "annual") && strings.Contains(cat, "investment"):
		return AnnualInvestmentAllowance
	case strings.Contains(cat, "business") && strings.Contains(cat, "renovation"):
		return BusinessPremisesRenovation
	case strings.Contains(cat, "wear") && strings.Contains(cat, "tear"):
		return WearAndTearAllowance
	case strings.Contains(cat, "property") && strings.Contains(cat, "allowance"):
		return PropertyAllowanceCat
	default:
		return OtherCapitalAllowance
	}
}

// GroupByProperty buckets transactions by property ID. Every known property
// gets a bucket, even when empty. Transactions without a property reference
// go to the first property when strict is false, or produce an
// AmbiguousPropertyError when strict is true.
func (c *Categorizer) GroupByProperty(
	transactions []PropertyTransaction,
	properties []models.PropertyDetails,
	strict bool,
) (map[string][]PropertyTransaction, error) {
	result := make(map[string][]PropertyTransaction, len(properties))
	for _, p := range properties {
		result[p.ID] = []PropertyTransaction{}
	}

	for _, tx := range transactions {
		id := tx.PropertyID
		if id == "" {
			if strict {
				return nil, &AmbiguousPropertyError{TransactionID: tx.ID}
			}
			if len(properties) == 0 {
				continue
			}
			id = properties[0].ID
			c.logger.Debug("transaction has no property reference, assigning to first property",
				logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
				logging.Field{Key: logging.FieldPropertyID, Value: id})
		}
		result[id] = append(result[id], tx)
	}

	return result, nil
}

// IncomeTypeOf resolves the Self Assessment income section for a transaction,
// or "" when it belongs to none.
func IncomeTypeOf(tx *models.FinancialTransaction) IncomeType {
	if meta := tx.MetaString(MetaIncomeType); meta != "" {
		return IncomeType(meta)
	}
	cat := strings.ToLower(tx.Category)
	switch {
	case containsAny(cat, []string{"self_employment", "self-employment", "business", "freelance"}):
		return IncomeSelfEmployment
	case containsAny(cat, []string{"employment", "salary", "wage"}):
		return IncomeEmployment
	case strings.Contains(cat, "dividend"):
		return IncomeDividends
	case containsAny(cat, []string{"interest", "saving"}):
		return IncomeSavings
	}
	return ""
}

// IsDeduction reports whether a transaction is a Self Assessment deduction.
func IsDeduction(tx *models.FinancialTransaction) bool {
	if tx.MetaString(MetaTransactionType) == "deduction" {
		return true
	}
	cat := strings.ToLower(tx.Category)
	return containsAny(cat, []string{"deduction", "gift_aid", "pension"})
}

// DeductionTypeOf resolves the deduction section for a transaction, or ""
// when it matches none.
func DeductionTypeOf(tx *models.FinancialTransaction) DeductionType {
	if meta := tx.MetaString(MetaDeductionType); meta != "" {
		return DeductionType(meta)
	}
	cat := strings.ToLower(tx.Category)
	switch {
	case strings.Contains(cat, "gift_aid"):
		return DeductionGiftAid
	case strings.Contains(cat, "pension"):
		return DeductionPension
	}
	return ""
}
