package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Service name reported in structured logs
	ServiceName = "tax-engine"

	// Currencies
	CADCurrency = "CAD"

	// MoneyScale is the number of fractional digits used when money leaves the engine
	MoneyScale = 2
)

// Return types
const (
	ReturnTypeMonthly   = "monthly"
	ReturnTypeQuarterly = "quarterly"
	ReturnTypeAnnual    = "annual"
)

// Filing due date offsets in days after the period end
const (
	MonthlyDueOffsetDays   = 30
	QuarterlyDueOffsetDays = 30
	AnnualDueOffsetDays    = 180
)

// Audit risk thresholds on the exemption rate of a return
const (
	HighAuditRiskExemptionRate   = "0.8"
	MediumAuditRiskExemptionRate = "0.5"
)

// DefaultITCRatio is the share of collected tax assumed recoverable as input tax credits
const DefaultITCRatio = "0.30"

// DateLayout formats calendar dates in CLI output and period labels
const DateLayout = "2006-01-02"
