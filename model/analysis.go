package model

// AnalysisResult is the structured object the analysis model is prompted
// to return. Field names mirror the JSON schema in the system prompt.
type AnalysisResult struct {
	Summary         string           `json:"summary"`
	Parties         []Party          `json:"parties,omitempty"`
	Dates           KeyDates         `json:"dates"`
	Obligations     []Obligation     `json:"obligations,omitempty"`
	FinancialTerms  []FinancialTerm  `json:"financial_terms,omitempty"`
	RiskAssessment  RiskAssessment   `json:"risk_assessment"`
	ConfidenceScore *float64         `json:"confidence_score,omitempty"`
	UnclearSections []UnclearSection `json:"unclear_sections,omitempty"`
}

type Party struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// KeyDates holds the contract's key dates, each optional
type KeyDates struct {
	EffectiveDate   string `json:"effective_date,omitempty"`
	TerminationDate string `json:"termination_date,omitempty"`
	RenewalDate     string `json:"renewal_date,omitempty"`
	SignatureDate   string `json:"signature_date,omitempty"`
}

type Obligation struct {
	Party    string `json:"party"`
	Text     string `json:"text"`
	Deadline string `json:"deadline,omitempty"`
	Category string `json:"category,omitempty"`
}

type FinancialTerm struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	Description string `json:"description,omitempty"`
}

type RiskAssessment struct {
	RiskLevel       string   `json:"risk_level"` // Low, Medium, High
	RiskFactors     []string `json:"risk_factors,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type UnclearSection struct {
	Section  string `json:"section"`
	Issue    string `json:"issue"`
	Priority string `json:"priority,omitempty"` // high, medium, low
}
