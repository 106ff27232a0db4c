package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/creditwise/backend/internal/domain"
)

// Questionnaire scoring uses its own weight table and reason wording,
// distinct from the conversational pass in scorer.go. The two differ on
// purpose: this path scores preference checkboxes and coarse ranges, not a
// free-text profile, and when nothing clears the income floor it scores an
// unfiltered slice of the pool instead of erroring.

const questionnaireFallbackSize = 5

// RecommendFromQuestionnaire scores the pool against structured form
// responses. Cards below the income floor are skipped, but when the whole
// pool is ineligible the first entries are scored unfiltered instead of
// returning an error: the form flow always shows something. Results are
// the top 3 by score, padded back to 3 from the raw pool when needed.
func (s *Scorer) RecommendFromQuestionnaire(resp QuestionnaireResponses, pool []domain.Card) []domain.Recommendation {
	resp.ApplyDefaults()

	eligible := make([]domain.Card, 0, len(pool))
	for _, card := range pool {
		if card.MinIncome <= resp.Income {
			eligible = append(eligible, card)
		}
	}
	if len(eligible) == 0 {
		for _, card := range pool {
			if len(eligible) >= questionnaireFallbackSize {
				break
			}
			eligible = append(eligible, card)
		}
	}

	scored := make([]domain.Recommendation, 0, len(eligible))
	for _, card := range eligible {
		score, reasons := scoreQuestionnaireCard(resp, card)
		scored = append(scored, domain.Recommendation{Card: card, Score: score, Reasons: reasons})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > 3 {
		scored = scored[:3]
	}
	return padRecommendations(scored, pool)
}

func scoreQuestionnaireCard(resp QuestionnaireResponses, card domain.Card) (int, []string) {
	total := 0
	var reasons []string

	rewardType := strings.ToLower(card.RewardType)

	// 1. Card preference match (35 max)
	switch {
	case hasPreference(resp.CardPreferences, "cashback") && strings.Contains(rewardType, "cashback"):
		total += 35
		reasons = append(reasons, fmt.Sprintf("Perfect %s match for your cashback preference", card.RewardType))
	case hasPreference(resp.CardPreferences, "high_rewards") && card.RewardRate >= 3:
		total += 30
		reasons = append(reasons, fmt.Sprintf("High %s%% reward rate", formatRate(card.RewardRate)))
	case hasPreference(resp.CardPreferences, "no_annual_fee") && card.AnnualFee == 0:
		total += 35
		reasons = append(reasons, "Zero annual fee - excellent value")
	case hasPreference(resp.CardPreferences, "travel_benefits") && strings.Contains(rewardType, "miles"):
		total += 30
		reasons = append(reasons, "Excellent travel rewards and benefits")
	default:
		total += 15
		reasons = append(reasons, "Good card features for your needs")
	}

	// 2. Spending category overlap with best_for (25 max)
	if len(resp.SpendingCategories) > 0 {
		if categoryOverlap(resp.SpendingCategories, card.BestFor) {
			total += 25
			reasons = append(reasons, fmt.Sprintf("Perfect match for your %s spending", strings.Join(resp.SpendingCategories, ", ")))
		} else {
			total += 10
			reasons = append(reasons, "Good overall benefits for various spending categories")
		}
	}

	// 3. Annual fee (20 max)
	switch {
	case card.AnnualFee == 0:
		total += 20
		reasons = append(reasons, "Zero annual fee - exceptional value")
	case card.AnnualFee <= 1000:
		total += 15
		reasons = append(reasons, fmt.Sprintf("Low ₹%d annual fee with great benefits", card.AnnualFee))
	default:
		total += 5
		reasons = append(reasons, fmt.Sprintf("Premium benefits justify the ₹%d annual fee", card.AnnualFee))
	}

	// 4. Income headroom (10 max)
	minIncome := card.MinIncome
	if minIncome == 0 {
		minIncome = 1
	}
	ratio := float64(resp.Income) / float64(minIncome)
	switch {
	case ratio >= 3:
		total += 10
		reasons = append(reasons, "Well above minimum income - guaranteed approval")
	case ratio >= 1.5:
		total += 8
		reasons = append(reasons, "Comfortably meets income requirement")
	default:
		total += 5
		reasons = append(reasons, "Meets minimum income requirement")
	}

	// 5. Age band (5 max)
	if resp.Age >= 25 && resp.Age <= 50 {
		total += 5
		reasons = append(reasons, "Perfect age range for this card category")
	} else {
		total += 3
		reasons = append(reasons, "Meets age requirements for application")
	}

	// 6. Credit score (5 max)
	switch {
	case resp.CreditScore >= 750:
		total += 5
		reasons = append(reasons, "Excellent credit score - best rates and approval")
	case resp.CreditScore >= 700:
		total += 4
		reasons = append(reasons, "Good credit score for favorable terms")
	default:
		total += 2
		reasons = append(reasons, "Credit score meets minimum requirements")
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return total, reasons
}

func hasPreference(prefs []string, want string) bool {
	for _, p := range prefs {
		if strings.EqualFold(strings.TrimSpace(p), want) {
			return true
		}
	}
	return false
}

func categoryOverlap(categories, bestFor []string) bool {
	for _, cat := range categories {
		for _, b := range bestFor {
			if strings.Contains(strings.ToLower(b), strings.ToLower(cat)) ||
				strings.Contains(strings.ToLower(cat), strings.ToLower(b)) {
				return true
			}
		}
	}
	return false
}
