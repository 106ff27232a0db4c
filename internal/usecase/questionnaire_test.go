package usecase

import (
	"testing"

	"github.com/creditwise/backend/internal/domain"
)

func TestRecommendFromQuestionnaire(t *testing.T) {
	s := NewScorer(false)

	t.Run("cashback preference ranks cashback card first", func(t *testing.T) {
		resp := QuestionnaireResponses{
			Income:          80000,
			CardPreferences: []string{"cashback"},
		}
		recs := s.RecommendFromQuestionnaire(resp, testPool())
		if len(recs) == 0 {
			t.Fatal("no recommendations returned")
		}
		if recs[0].Card.Name != "Alpha Cashback" {
			t.Errorf("top card = %q, want Alpha Cashback", recs[0].Card.Name)
		}
	})

	t.Run("missing answers are defaulted, not rejected", func(t *testing.T) {
		recs := s.RecommendFromQuestionnaire(QuestionnaireResponses{}, testPool())
		if len(recs) == 0 {
			t.Fatal("empty responses should still produce recommendations")
		}
		// Default income is 50000: the premium card stays filtered out
		for _, r := range recs {
			if r.Card.MinIncome > 50000 {
				t.Errorf("card %q above the defaulted income", r.Card.Name)
			}
		}
	})

	t.Run("fully ineligible pool scores an unfiltered slice", func(t *testing.T) {
		pool := []domain.Card{
			{ID: "x", Name: "Elite Zero", MinIncome: 500000, RewardType: "Cashback", RewardRate: 5.0, AnnualFee: 0},
			{ID: "y", Name: "Elite Costly", MinIncome: 400000, RewardType: "Points", RewardRate: 1.0, AnnualFee: 6000},
		}
		resp := QuestionnaireResponses{Income: 20000, CardPreferences: []string{"cashback"}}
		recs := s.RecommendFromQuestionnaire(resp, pool)
		if len(recs) != 2 {
			t.Fatalf("len = %d, want 2 unfiltered entries", len(recs))
		}
		// The fallback slice runs through the weighted pass like any
		// eligible card, so the cards separate on fee and reward type
		if recs[0].Card.Name != "Elite Zero" {
			t.Errorf("top fallback card = %q, want Elite Zero", recs[0].Card.Name)
		}
		if recs[0].Score != 67 {
			t.Errorf("Elite Zero score = %d, want 67", recs[0].Score)
		}
		if recs[1].Score != 32 {
			t.Errorf("Elite Costly score = %d, want 32", recs[1].Score)
		}
		if recs[0].Score == recs[1].Score {
			t.Error("fallback cards with different profiles should not tie")
		}
	})

	t.Run("results are the top three", func(t *testing.T) {
		resp := QuestionnaireResponses{Income: 300000}
		recs := s.RecommendFromQuestionnaire(resp, testPool())
		if len(recs) != 3 {
			t.Fatalf("len = %d, want 3", len(recs))
		}
		for i := 1; i < len(recs); i++ {
			if recs[i].Score > recs[i-1].Score {
				t.Errorf("recommendations not sorted: %d before %d", recs[i-1].Score, recs[i].Score)
			}
		}
	})

	t.Run("short eligible list is padded back to three", func(t *testing.T) {
		// Income 25000 leaves only Alpha Cashback eligible
		resp := QuestionnaireResponses{Income: 25000, Age: 30, CreditScore: 700}
		recs := s.RecommendFromQuestionnaire(resp, testPool())
		if len(recs) != 3 {
			t.Fatalf("len = %d, want 3 after padding", len(recs))
		}
		if recs[0].Card.Name != "Alpha Cashback" {
			t.Errorf("top card = %q, want Alpha Cashback", recs[0].Card.Name)
		}
		for _, r := range recs[1:] {
			if r.Score != 85 {
				t.Errorf("padded card %q score = %d, want 85", r.Card.Name, r.Score)
			}
			if len(r.Reasons) == 0 || r.Reasons[0] != "Additional option for your consideration" {
				t.Errorf("padded card %q reasons = %v", r.Card.Name, r.Reasons)
			}
		}
	})

	t.Run("high rewards preference wins over no annual fee", func(t *testing.T) {
		pool := []domain.Card{
			{ID: "z", Name: "Zeta Points", MinIncome: 20000, RewardType: "Points", RewardRate: 5.0, AnnualFee: 0},
		}
		resp := QuestionnaireResponses{
			Income:          60000,
			CardPreferences: []string{"high_rewards", "no_annual_fee"},
		}
		recs := s.RecommendFromQuestionnaire(resp, pool)
		if len(recs) != 1 {
			t.Fatalf("len = %d, want 1", len(recs))
		}
		if recs[0].Reasons[0] != "High 5% reward rate" {
			t.Errorf("first reason = %q, want the high-rewards branch", recs[0].Reasons[0])
		}
		if recs[0].Score != 67 {
			t.Errorf("score = %d, want 67", recs[0].Score)
		}
	})

	t.Run("reasons capped at three", func(t *testing.T) {
		resp := QuestionnaireResponses{
			Income:             200000,
			CardPreferences:    []string{"cashback", "no_annual_fee"},
			SpendingCategories: []string{"online shopping"},
		}
		recs := s.RecommendFromQuestionnaire(resp, testPool())
		for _, r := range recs {
			if len(r.Reasons) > 3 {
				t.Errorf("card %q has %d reasons, want <= 3", r.Card.Name, len(r.Reasons))
			}
		}
	})
}
