package usecase

import "github.com/creditwise/backend/internal/domain"

// The two flows intentionally use different completion policies. The
// conversational gate requires the five core fields; the questionnaire never
// gates at all and instead substitutes defaults for missing answers. Keep
// them separate: unifying them would change observable behavior.

// Questionnaire fallback defaults
const (
	defaultIncome          = 50_000
	defaultMonthlySpending = 25_000
	defaultAge             = 25
	defaultCreditScore     = 650
	defaultCreditHistory   = "fair"
)

// ConversationComplete is the conversational completion gate: ready to score
// once name, income, age, credit score and benefit preference are all known.
// Per-category spend is informative but deliberately not required, even
// though the advisor prompt asks for it.
func ConversationComplete(p domain.Profile) bool {
	return p.Name != "" &&
		p.Income != 0 &&
		p.Age != 0 &&
		p.CreditScore != 0 &&
		p.Benefits != ""
}

// QuestionnaireResponses carries the structured questionnaire answers.
type QuestionnaireResponses struct {
	Income             int      `json:"income"`
	SpendingCategories []string `json:"spending_categories"`
	MonthlySpending    int      `json:"monthly_spending"`
	CardPreferences    []string `json:"card_preferences"`
	CreditHistory      string   `json:"credit_history"`
	Age                int      `json:"age"`
	CreditScore        int      `json:"creditScore"`
}

// ApplyDefaults is the questionnaire completion policy: any missing answer
// is replaced with a default so the scorer always has a full profile.
func (r *QuestionnaireResponses) ApplyDefaults() {
	if r.Income == 0 {
		r.Income = defaultIncome
	}
	if r.MonthlySpending == 0 {
		r.MonthlySpending = defaultMonthlySpending
	}
	if r.Age == 0 {
		r.Age = defaultAge
	}
	if r.CreditScore == 0 {
		r.CreditScore = defaultCreditScore
	}
	if r.CreditHistory == "" {
		r.CreditHistory = defaultCreditHistory
	}
}
