package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/creditwise/backend/internal/domain"
)

// Income accepted range, INR per month
const (
	minMonthlyIncome = 10_000
	maxMonthlyIncome = 10_000_000
)

// Accepted demographic ranges
const (
	minAge         = 18
	maxAge         = 80
	minCreditScore = 300
	maxCreditScore = 900
	maxSpendAmount = 100_000
)

// Name pattern family. Self-introduction phrasings run first; a bare
// capitalized two-token message is the last resort.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:i'm|i am|my name is|name is|call me)\s+([a-zA-Z\s]+?)(?:[,.]|$)`),
	regexp.MustCompile(`(?i)hi,?\s*i'?m\s+([a-zA-Z\s]+?)(?:[,.]|$)`),
	regexp.MustCompile(`(?i)hello,?\s*i'?m\s+([a-zA-Z\s]+?)(?:[,.]|$)`),
	regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)$`),
}

// Income pattern family, tried in order against the lowercased message.
// The first pattern whose captured figure lands in the accepted range wins.
var incomePatterns = []*regexp.Regexp{
	// "monthly income is ₹100,000" / "income is ₹1,00,000"
	regexp.MustCompile(`(?:monthly income|income)\s+is\s+₹?\s*(\d+(?:,\d+)*)`),
	// "i earn ₹100,000 per month"
	regexp.MustCompile(`(?:i earn|earning)\s+₹?\s*(\d+(?:,\d+)*)\s*(?:per month|monthly|/month)?`),
	// "₹100,000 monthly income"
	regexp.MustCompile(`₹?\s*(\d+(?:,\d+)*)\s+(?:monthly income|per month|monthly)`),
	// "income: ₹100,000"
	regexp.MustCompile(`income[:\s]+₹?\s*(\d+(?:,\d+)*)`),
	// suffix forms
	regexp.MustCompile(`(\d+)\s*lakhs?\s*(?:per month|monthly|/month|income)?`),
	regexp.MustCompile(`(\d+)k\s*(?:per month|monthly|/month|income)?`),
	regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*(?:per month|monthly|/month)?`),
	regexp.MustCompile(`(\d+)\s*thousand\s*(?:per month|monthly|/month)?`),
	// bare "90k" style messages
	regexp.MustCompile(`^(\d+)k$`),
	regexp.MustCompile(`^(\d+)\s*k$`),
	regexp.MustCompile(`^₹?\s*(\d+)k$`),
	// "324234 its my approximate income"
	regexp.MustCompile(`(\d{5,})\s*(?:its?\s*my\s*(?:approximate|approx)?\s*(?:income|salary))`),
	// a bare 5-plus-digit integer is accepted as an income figure
	regexp.MustCompile(`^(\d{5,})$`),
}

// Per-category spend pattern family: category keyword followed by an amount.
// Keyword lists tolerate a few common misspellings.
var spendPatterns = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?:groceries?|grocery|grocer)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendGroceries},
	{regexp.MustCompile(`(?:travel|travelling?)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendTravel},
	{regexp.MustCompile(`(?:dining|food|restaurant|dinning)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendDining},
	{regexp.MustCompile(`(?:fuel|petrol|gas)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendFuel},
	{regexp.MustCompile(`(?:shopping|online shopping|online)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendShopping},
	{regexp.MustCompile(`(?:entertainment|movies?)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendEntertainment},
	{regexp.MustCompile(`(?:other[s]?[\s\w]*expenses?|miscellaneous|parents|normal expense)[:\s]*₹?\s*(\d+(?:,\d+)*)`), domain.SpendOthers},
}

// Combined spend phrasings like "grocer and dining: 10" assign one amount to
// several categories at once, without clobbering a per-category match.
var combinedSpendPatterns = []struct {
	re         *regexp.Regexp
	categories []string
}{
	{regexp.MustCompile(`(?:grocer|grocery|groceries?)\s*(?:and|&)?\s*(?:dining|dinning|food)[:\s]*₹?\s*(\d+(?:,\d+)*)`), []string{domain.SpendGroceries, domain.SpendDining}},
	{regexp.MustCompile(`(?:online shopping|shopping|online)[:\s]*around\s*₹?\s*(\d+(?:,\d+)*)`), []string{domain.SpendShopping}},
	{regexp.MustCompile(`(?:parents|family)[:\s]*₹?\s*(\d+(?:,\d+)*)`), []string{domain.SpendOthers}},
	{regexp.MustCompile(`(?:saved?|saving)[:\s]*₹?\s*(\d+(?:,\d+)*)`), []string{domain.SpendOthers}},
}

// Bare category mentions (no amount) recorded as categories of interest.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{domain.SpendDining, []string{"dining", "dinig", "food", "restaurant"}},
	{domain.SpendGroceries, []string{"groceries", "grocerries", "grocery", "grocer", "groc"}},
	{domain.SpendFuel, []string{"fuel", "petrol", "gas"}},
	{domain.SpendTravel, []string{"travel", "travelling"}},
	{domain.SpendShopping, []string{"shopping", "shop", "online"}},
	{domain.SpendEntertainment, []string{"entertainment", "movies"}},
}

var creditScorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:credit score|score)\s+(?:is\s+)?(\d+)`),
	regexp.MustCompile(`(?:my|current)\s+credit score\s+(?:is\s+)?(\d+)`),
	regexp.MustCompile(`score[:\s]+(\d+)`),
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:age|years? old)[:\s]+(\d+)`),
	regexp.MustCompile(`(?:i'm|i am)\s+(\d+)\s+years?\s+old`),
	regexp.MustCompile(`(\d+)\s+years?\s+old`),
}

// Extractor turns one free-text message into a partial-profile patch via
// ordered pattern families. Within a family the first pattern that matches a
// token in an accepted range wins; a family with no match simply contributes
// nothing to the patch.
type Extractor struct {
	debug bool
}

// NewExtractor creates an extractor. Debug logging traces every detected
// field the way the conversation actually resolved it.
func NewExtractor(debug bool) *Extractor {
	return &Extractor{debug: debug}
}

// Extract produces a patch of only the fields detected in this message.
// The known profile is consulted for suppression rules (name extraction is
// skipped once a name is known); it is never modified here.
func (e *Extractor) Extract(message string, known domain.Profile) domain.Profile {
	var patch domain.Profile
	lower := strings.ToLower(message)

	if known.Name == "" {
		if name, ok := e.extractName(message); ok {
			patch.Name = name
		}
	}
	if income, ok := e.extractIncome(lower); ok {
		patch.Income = income
	}
	e.extractSpending(lower, &patch)
	if score, ok := matchIntInRange(creditScorePatterns, lower, minCreditScore, maxCreditScore); ok {
		patch.CreditScore = score
		e.logf("[EXTRACT] credit score: %d", score)
	}
	if age, ok := matchIntInRange(agePatterns, lower, minAge, maxAge); ok {
		patch.Age = age
		e.logf("[EXTRACT] age: %d", age)
	}
	if benefits, ok := extractBenefits(lower); ok {
		patch.Benefits = benefits
		e.logf("[EXTRACT] benefits: %s", benefits)
	}

	if e.debug && patch.FieldCount() > 0 {
		log.Printf("[EXTRACT] patch carries %d field(s)", patch.FieldCount())
	}
	return patch
}

func (e *Extractor) extractName(message string) (string, bool) {
	for _, re := range namePatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 1 && len(name) < 30 {
			e.logf("[EXTRACT] name: %q", name)
			return name, true
		}
	}
	return "", false
}

func (e *Extractor) extractIncome(lower string) (int, bool) {
	for _, re := range incomePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		income, err := strconv.Atoi(stripNumber(m[1]))
		if err != nil {
			continue
		}

		// Multiplier rules: "lakh" always, trailing "k" only for a sub-1000
		// base numeral, "thousand" otherwise.
		switch {
		case strings.Contains(lower, "lakh"):
			income *= 100_000
		case strings.Contains(lower, "k") && income < 1000:
			income *= 1000
		case strings.Contains(lower, "thousand"):
			income *= 1000
		}

		if income >= minMonthlyIncome && income <= maxMonthlyIncome {
			e.logf("[EXTRACT] income: %d", income)
			return income, true
		}
	}
	return 0, false
}

func (e *Extractor) extractSpending(lower string, patch *domain.Profile) {
	// Bare category mentions, independent of amounts
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(lower, w) {
				patch.SpendingCategories = append(patch.SpendingCategories, kw.category)
				break
			}
		}
	}
	if e.debug && len(patch.SpendingCategories) > 0 {
		log.Printf("[EXTRACT] spending categories: %v", patch.SpendingCategories)
	}

	for _, sp := range spendPatterns {
		for _, m := range sp.re.FindAllStringSubmatch(lower, -1) {
			amount, err := strconv.Atoi(stripNumber(m[1]))
			if err != nil {
				continue
			}
			if amount > 0 && amount < maxSpendAmount {
				patch.SetSpendAmount(sp.category, amount)
				e.logf("[EXTRACT] %s spend: %d", sp.category, amount)
				break
			}
		}
	}

	for _, cp := range combinedSpendPatterns {
		for _, m := range cp.re.FindAllStringSubmatch(lower, -1) {
			amount, err := strconv.Atoi(stripNumber(m[1]))
			if err != nil {
				continue
			}
			if amount > 0 && amount < maxSpendAmount {
				for _, cat := range cp.categories {
					if patch.SpendAmount(cat) == 0 {
						patch.SetSpendAmount(cat, amount)
						e.logf("[EXTRACT] %s spend (combined): %d", cat, amount)
					}
				}
				break
			}
		}
	}
}

// extractBenefits checks the fixed preference priority list; the first
// matching keyword wins and only one value is ever stored.
func extractBenefits(lower string) (string, bool) {
	switch {
	case strings.Contains(lower, "cashback") || strings.Contains(lower, "cash back"):
		return "cashback", true
	case strings.Contains(lower, "reward"):
		return "rewards", true
	case strings.Contains(lower, "travel") && (strings.Contains(lower, "benefits") || strings.Contains(lower, "perks")):
		return "travel benefits", true
	case strings.Contains(lower, "lounge") || strings.Contains(lower, "airport"):
		return "airport lounge access", true
	}
	return "", false
}

func matchIntInRange(patterns []*regexp.Regexp, lower string, min, max int) (int, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if v >= min && v <= max {
			return v, true
		}
	}
	return 0, false
}

// stripNumber removes the thousands separators and stray spaces from a
// captured numeric token.
func stripNumber(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.ReplaceAll(s, " ", "")
}

func (e *Extractor) logf(format string, args ...interface{}) {
	if e.debug {
		log.Printf(format, args...)
	}
}
