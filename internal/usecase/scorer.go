package usecase

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/creditwise/backend/internal/domain"
)

// Conversational scoring weights, points out of a soft 100-point budget.
// The per-step maxima sum past 100; that headroom is intentional and the
// total is never clamped.
const (
	benefitExactPoints   = 35.0 // cashback<->cashback, travel<->miles
	benefitSoftPoints    = 30.0 // rewards<->points
	benefitGenericPoints = 10.0
	rewardRateFactor     = 4.0  // rate x 4, capped: a 6.25% rate saturates
	rewardRateCapPoints  = 25.0
	tierFitPoints        = 5.0
	paddedScore          = 85 // flat score for pool-recycled padding entries
)

// Fee value steps, INR thresholds
var feeSteps = []struct {
	limit  int
	points float64
	reason string
}{
	{0, 20, "Zero annual fee - exceptional value"},
	{500, 17, "Low ₹%d annual fee with great benefits"},
	{2000, 12, "Reasonable ₹%d fee for premium benefits"},
	{5000, 8, "Premium card with ₹%d fee but high-value perks"},
}

const maxReasons = 4

// Scorer ranks a card pool against a profile with weighted additive scoring.
// Pure arithmetic over the in-memory pool; no I/O.
type Scorer struct {
	debug bool
}

// NewScorer creates a scorer.
func NewScorer(debug bool) *Scorer {
	return &Scorer{debug: debug}
}

// Recommend is the conversational scoring pass: filter by income
// eligibility, score each eligible card, return the top 3 (padded from the
// raw pool when the eligible set is smaller). Returns ErrNoEligibleCards
// when income filtering leaves nothing; the caller renders that as a
// user-visible message rather than scoring ineligible cards.
func (s *Scorer) Recommend(profile domain.Profile, pool []domain.Card) ([]domain.Recommendation, error) {
	if len(pool) == 0 {
		return nil, domain.ErrCardNotFound
	}

	var eligible []domain.Card
	for _, card := range pool {
		if card.MinIncome <= profile.Income {
			eligible = append(eligible, card)
		}
	}
	if len(eligible) == 0 {
		return nil, domain.ErrNoEligibleCards
	}

	scored := make([]domain.Recommendation, 0, len(eligible))
	for _, card := range eligible {
		score, reasons := s.scoreCard(profile, card)
		if s.debug {
			log.Printf("[SCORE] %s: %d points", card.Name, score)
		}
		scored = append(scored, domain.Recommendation{Card: card, Score: score, Reasons: reasons})
	}

	// Descending score, original pool order as tiebreak
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > 3 {
		scored = scored[:3]
	}

	return padRecommendations(scored, pool), nil
}

// scoreCard applies the weighted steps in fixed order; each contributing
// step appends a display justification. Reasons keep step order, truncated,
// never re-sorted by contribution size.
func (s *Scorer) scoreCard(profile domain.Profile, card domain.Card) (int, []string) {
	var total float64
	var reasons []string

	// 1. Benefit type match (35 max), substring containment against
	// reward_type and best_for
	if profile.Benefits != "" {
		benefit := strings.ToLower(profile.Benefits)
		rewardType := strings.ToLower(card.RewardType)

		switch {
		case strings.Contains(benefit, "cashback") && (strings.Contains(rewardType, "cashback") || strings.Contains(rewardType, "cash")):
			total += benefitExactPoints
			reasons = append(reasons, fmt.Sprintf("Perfect %s match for your cashback preference", card.RewardType))
		case strings.Contains(benefit, "travel") && (strings.Contains(rewardType, "miles") || bestForContains(card, "travel")):
			total += benefitExactPoints
			reasons = append(reasons, "Excellent travel rewards and miles accumulation")
		case strings.Contains(benefit, "reward") && (strings.Contains(rewardType, "points") || strings.Contains(rewardType, "reward")):
			total += benefitSoftPoints
			reasons = append(reasons, "Strong rewards program matching your preference")
		default:
			total += benefitGenericPoints
			reasons = append(reasons, "Good rewards program suitable for your needs")
		}
	}

	// 2. Reward rate (25 max)
	total += math.Min(card.RewardRate*rewardRateFactor, rewardRateCapPoints)
	switch {
	case card.RewardRate >= 5:
		reasons = append(reasons, fmt.Sprintf("Exceptional %s%% reward rate - top tier", formatRate(card.RewardRate)))
	case card.RewardRate >= 2:
		reasons = append(reasons, fmt.Sprintf("Competitive %s%% reward rate", formatRate(card.RewardRate)))
	case card.RewardRate > 0:
		reasons = append(reasons, fmt.Sprintf("Standard %s%% reward rate", formatRate(card.RewardRate)))
	}

	// 3. Fee value (20 max), stepped thresholds
	feePoints, feeReason := scoreFee(card.AnnualFee)
	total += feePoints
	reasons = append(reasons, feeReason)

	// 4. Income headroom (15 max)
	minIncome := card.MinIncome
	if minIncome == 0 {
		minIncome = 1
	}
	ratio := float64(profile.Income) / float64(minIncome)
	switch {
	case ratio >= 4:
		total += 15
		reasons = append(reasons, "Well above minimum income - guaranteed approval")
	case ratio >= 2:
		total += 12
		reasons = append(reasons, "Comfortably meets income requirement")
	case ratio >= 1.2:
		total += 8
		reasons = append(reasons, "Meets income requirement with good margin")
	default:
		total += 3
		reasons = append(reasons, "Meets minimum income requirement")
	}

	// 5. Tier fit (5 max), small bonus when card tier aligns with income
	tier := strings.ToLower(card.Tier)
	switch {
	case profile.Income > 300_000 && (strings.Contains(tier, "premium") || strings.Contains(tier, "super")):
		total += tierFitPoints
		reasons = append(reasons, "Premium card perfectly suited for your income level")
	case profile.Income > 0 && profile.Income <= 50_000 && strings.Contains(tier, "entry"):
		total += tierFitPoints
		reasons = append(reasons, "Entry-level card ideal for building credit history")
	case profile.Income > 0 && profile.Income <= 100_000 && strings.Contains(tier, "mid"):
		total += 4
		reasons = append(reasons, "Mid-tier card balanced for your income range")
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return int(math.Round(total)), reasons
}

func scoreFee(annualFee int) (float64, string) {
	for _, step := range feeSteps {
		if annualFee <= step.limit {
			if step.limit == 0 {
				return step.points, step.reason
			}
			return step.points, fmt.Sprintf(step.reason, annualFee)
		}
	}
	return 3, "Super premium card with comprehensive benefits"
}

// padRecommendations recycles raw-pool cards with a flat default score and
// generic reasons so the caller gets 3 results whenever the gross pool has
// at least 3 entries.
func padRecommendations(ranked []domain.Recommendation, pool []domain.Card) []domain.Recommendation {
	if len(ranked) >= 3 || len(pool) < 3 {
		return ranked
	}
	picked := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		picked[r.Card.ID] = true
	}
	for _, card := range pool {
		if len(ranked) >= 3 {
			break
		}
		if picked[card.ID] {
			continue
		}
		rateReason := "Competitive reward rate"
		if card.RewardRate > 0 {
			rateReason = fmt.Sprintf("%s%% reward rate", formatRate(card.RewardRate))
		}
		ranked = append(ranked, domain.Recommendation{
			Card:  card,
			Score: paddedScore,
			Reasons: []string{
				"Additional option for your consideration",
				rateReason,
				"Good overall benefits",
			},
		})
		picked[card.ID] = true
	}
	return ranked
}

func bestForContains(card domain.Card, keyword string) bool {
	for _, b := range card.BestFor {
		if strings.Contains(strings.ToLower(b), keyword) {
			return true
		}
	}
	return false
}

// formatRate renders a reward rate without a trailing ".0"
func formatRate(rate float64) string {
	if rate == math.Trunc(rate) {
		return fmt.Sprintf("%.0f", rate)
	}
	return fmt.Sprintf("%.1f", rate)
}
