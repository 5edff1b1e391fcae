package models

import (
	"github.com/shopspring/decimal"
)

// VATReturnPayload mirrors the body of the HMRC VAT (MTD) submit-return
// endpoint. The nine numbered boxes map to the fields in declaration order.
type VATReturnPayload struct {
	PeriodKey                    string          `json:"periodKey"`
	VATDueSales                  decimal.Decimal `json:"vatDueSales"`
	VATDueAcquisitions           decimal.Decimal `json:"vatDueAcquisitions"`
	TotalVATDue                  decimal.Decimal `json:"totalVatDue"`
	VATReclaimedCurrPeriod       decimal.Decimal `json:"vatReclaimedCurrPeriod"`
	NetVATDue                    decimal.Decimal `json:"netVatDue"`
	TotalValueSalesExVAT         decimal.Decimal `json:"totalValueSalesExVAT"`
	TotalValuePurchasesExVAT     decimal.Decimal `json:"totalValuePurchasesExVAT"`
	TotalValueGoodsSuppliedExVAT decimal.Decimal `json:"totalValueGoodsSuppliedExVAT"`
	TotalAcquisitionsExVAT       decimal.Decimal `json:"totalAcquisitionsExVAT"`
	Finalised                    bool            `json:"finalised"`
}

// PropertyIncome holds the income lines reported for a single property.
type PropertyIncome struct {
	RentIncome           decimal.Decimal `json:"rentIncome"`
	PremiumsOfLeaseGrant decimal.Decimal `json:"premiumsOfLeaseGrant"`
	ReversePremiums      decimal.Decimal `json:"reversePremiums"`
	OtherPropertyIncome  decimal.Decimal `json:"otherPropertyIncome"`
}

// PropertyExpenses holds the expense lines reported for a single property.
type PropertyExpenses struct {
	PremisesRunningCosts  decimal.Decimal `json:"premisesRunningCosts"`
	RepairsAndMaintenance decimal.Decimal `json:"repairsAndMaintenance"`
	FinancialCosts        decimal.Decimal `json:"financialCosts"`
	ProfessionalFees      decimal.Decimal `json:"professionalFees"`
	CostOfServices        decimal.Decimal `json:"costOfServices"`
	Other                 decimal.Decimal `json:"other"`
}

// PropertyAllowances holds the capital allowance claims for a single property.
type PropertyAllowances struct {
	AnnualInvestmentAllowance            decimal.Decimal `json:"annualInvestmentAllowance"`
	BusinessPremisesRenovationAllowance  decimal.Decimal `json:"businessPremisesRenovationAllowance"`
	OtherCapitalAllowance                decimal.Decimal `json:"otherCapitalAllowance"`
	WearAndTearAllowance                 decimal.Decimal `json:"wearAndTearAllowance"`
	PropertyAllowance                    decimal.Decimal `json:"propertyAllowance"`
}

// PropertySubmission is the per-property entry inside UKProperties.
type PropertySubmission struct {
	PropertyID string             `json:"propertyId"`
	Income     PropertyIncome     `json:"income"`
	Expenses   PropertyExpenses   `json:"expenses"`
	Allowances PropertyAllowances `json:"allowances"`
}

// UKProperties aggregates all UK property submissions for a period.
type UKProperties struct {
	TotalIncome   decimal.Decimal      `json:"totalIncome"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses"`
	NetProfit     decimal.Decimal      `json:"netProfit"`
	NetLoss       decimal.Decimal      `json:"netLoss"`
	Properties    []PropertySubmission `json:"properties"`
}

// PropertyIncomePayload mirrors the HMRC Property Business (MTD) period
// submission body.
type PropertyIncomePayload struct {
	FromDate     string       `json:"fromDate"`
	ToDate       string       `json:"toDate"`
	UKProperties UKProperties `json:"ukProperties"`
}

// EmploymentIncome is one employment entry in a Self Assessment submission.
type EmploymentIncome struct {
	EmployerName      string          `json:"employerName"`
	EmployerReference string          `json:"employerReference"`
	PayrollID         string          `json:"payrollId,omitempty"`
	TaxablePayToDate  decimal.Decimal `json:"taxablePayToDate"`
	TotalTaxToDate    decimal.Decimal `json:"totalTaxToDate"`
}

// SelfEmploymentIncome is one self-employment business entry.
type SelfEmploymentIncome struct {
	BusinessID                 string                     `json:"businessId"`
	BusinessName               string                     `json:"businessName"`
	BusinessDescription        string                     `json:"businessDescription"`
	CommencementDate           string                     `json:"commencementDate"`
	AccountingPeriodStartDate  string                     `json:"accountingPeriodStartDate"`
	AccountingPeriodEndDate    string                     `json:"accountingPeriodEndDate"`
	Income                     decimal.Decimal            `json:"income"`
	Expenses                   map[string]decimal.Decimal `json:"expenses"`
	Additions                  map[string]decimal.Decimal `json:"additions"`
	Deductions                 map[string]decimal.Decimal `json:"deductions"`
}

// DividendsIncome splits dividend receipts by source.
type DividendsIncome struct {
	UKDividends      decimal.Decimal `json:"ukDividends"`
	OtherUKDividends decimal.Decimal `json:"otherUkDividends"`
}

// SavingsIncome splits interest receipts by source.
type SavingsIncome struct {
	UKInterest      decimal.Decimal `json:"ukInterest"`
	ForeignInterest decimal.Decimal `json:"foreignInterest"`
}

// SelfAssessmentIncome groups all income sections of a Self Assessment
// submission. Sections with no data are omitted from the payload.
type SelfAssessmentIncome struct {
	Employment     []EmploymentIncome     `json:"employment,omitempty"`
	SelfEmployment []SelfEmploymentIncome `json:"selfEmployment,omitempty"`
	UKProperty     *PropertyIncomePayload `json:"ukProperty,omitempty"`
	Dividends      *DividendsIncome       `json:"dividends,omitempty"`
	Savings        *SavingsIncome         `json:"savings,omitempty"`
}

// GiftAidDeductions covers charitable giving relief claims.
type GiftAidDeductions struct {
	GiftAidPayments                       decimal.Decimal `json:"giftAidPayments"`
	GiftAidTreatedAsPaidInPreviousTaxYear decimal.Decimal `json:"giftAidTreatedAsPaidInPreviousTaxYear"`
	GiftAidTreatedAsPaidInCurrentTaxYear  decimal.Decimal `json:"giftAidTreatedAsPaidInCurrentTaxYear"`
}

// PensionDeductions covers pension contribution relief claims.
type PensionDeductions struct {
	PensionSchemeOverseasTransfers decimal.Decimal `json:"pensionSchemeOverseasTransfers"`
	PensionContributionsAmount     decimal.Decimal `json:"pensionContributionsAmount"`
}

// SelfAssessmentDeductions groups the deduction sections of a submission.
type SelfAssessmentDeductions struct {
	GiftAid              *GiftAidDeductions `json:"giftAid,omitempty"`
	PensionContributions *PensionDeductions `json:"pensionContributions,omitempty"`
}

// SelfAssessmentPayload is the annual Self Assessment submission body.
type SelfAssessmentPayload struct {
	TaxYear    string                    `json:"taxYear"`
	Income     SelfAssessmentIncome      `json:"income"`
	Deductions *SelfAssessmentDeductions `json:"deductions,omitempty"`
}
