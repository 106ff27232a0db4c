package domain

// Spend category keys used by the extractor and the profile.
const (
	SpendDining        = "dining"
	SpendGroceries     = "groceries"
	SpendFuel          = "fuel"
	SpendTravel        = "travel"
	SpendShopping      = "shopping"
	SpendEntertainment = "entertainment"
	SpendOthers        = "others"
)

// Profile is the session-scoped accumulator of user-supplied financial data.
// Zero values mean "not yet known": every accepted numeric range excludes
// zero (income >= 10000, age >= 18, credit score >= 300, spend amounts > 0).
// Fields are only ever added or overwritten for the lifetime of a session,
// never cleared.
type Profile struct {
	Name        string `json:"name,omitempty"`
	Income      int    `json:"income,omitempty"` // INR/month
	Age         int    `json:"age,omitempty"`
	CreditScore int    `json:"creditScore,omitempty"`
	Benefits    string `json:"benefits,omitempty"`

	// Monthly spend per category, INR
	Dining        int `json:"dining,omitempty"`
	Groceries     int `json:"groceries,omitempty"`
	Fuel          int `json:"fuel,omitempty"`
	Travel        int `json:"travel,omitempty"`
	Shopping      int `json:"shopping,omitempty"`
	Entertainment int `json:"entertainment,omitempty"`
	Others        int `json:"others,omitempty"`

	// Categories mentioned without an amount, in first-mention order
	SpendingCategories []string `json:"spendingCategories,omitempty"`
}

// Merge folds a patch into the profile. Only fields the patch actually
// carries are copied; a field the extractor failed to detect never erases
// a previously known value.
func (p *Profile) Merge(patch Profile) {
	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.Income != 0 {
		p.Income = patch.Income
	}
	if patch.Age != 0 {
		p.Age = patch.Age
	}
	if patch.CreditScore != 0 {
		p.CreditScore = patch.CreditScore
	}
	if patch.Benefits != "" {
		p.Benefits = patch.Benefits
	}
	if patch.Dining != 0 {
		p.Dining = patch.Dining
	}
	if patch.Groceries != 0 {
		p.Groceries = patch.Groceries
	}
	if patch.Fuel != 0 {
		p.Fuel = patch.Fuel
	}
	if patch.Travel != 0 {
		p.Travel = patch.Travel
	}
	if patch.Shopping != 0 {
		p.Shopping = patch.Shopping
	}
	if patch.Entertainment != 0 {
		p.Entertainment = patch.Entertainment
	}
	if patch.Others != 0 {
		p.Others = patch.Others
	}
	for _, cat := range patch.SpendingCategories {
		if !containsString(p.SpendingCategories, cat) {
			p.SpendingCategories = append(p.SpendingCategories, cat)
		}
	}
}

// FieldCount reports how many distinct fields the profile (or a patch)
// carries. Spending categories count as a single field.
func (p Profile) FieldCount() int {
	n := 0
	if p.Name != "" {
		n++
	}
	if p.Income != 0 {
		n++
	}
	if p.Age != 0 {
		n++
	}
	if p.CreditScore != 0 {
		n++
	}
	if p.Benefits != "" {
		n++
	}
	for _, amount := range []int{p.Dining, p.Groceries, p.Fuel, p.Travel, p.Shopping, p.Entertainment, p.Others} {
		if amount != 0 {
			n++
		}
	}
	if len(p.SpendingCategories) > 0 {
		n++
	}
	return n
}

// HasSpendingInfo reports whether any per-category spend amount is known.
// Informative only: the completion gate does not require it.
func (p Profile) HasSpendingInfo() bool {
	return p.Dining != 0 || p.Groceries != 0 || p.Travel != 0 || p.Fuel != 0 ||
		p.Shopping != 0 || p.Entertainment != 0 || p.Others != 0
}

// SpendAmount returns the stored amount for a category key, 0 if unknown.
func (p Profile) SpendAmount(category string) int {
	switch category {
	case SpendDining:
		return p.Dining
	case SpendGroceries:
		return p.Groceries
	case SpendFuel:
		return p.Fuel
	case SpendTravel:
		return p.Travel
	case SpendShopping:
		return p.Shopping
	case SpendEntertainment:
		return p.Entertainment
	case SpendOthers:
		return p.Others
	}
	return 0
}

// SetSpendAmount stores an amount under a category key.
func (p *Profile) SetSpendAmount(category string, amount int) {
	switch category {
	case SpendDining:
		p.Dining = amount
	case SpendGroceries:
		p.Groceries = amount
	case SpendFuel:
		p.Fuel = amount
	case SpendTravel:
		p.Travel = amount
	case SpendShopping:
		p.Shopping = amount
	case SpendEntertainment:
		p.Entertainment = amount
	case SpendOthers:
		p.Others = amount
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
