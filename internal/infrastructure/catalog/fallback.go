package catalog

import "github.com/creditwise/backend/internal/domain"

// FallbackCards is the static pool served when the database is unreachable
// or empty. Records carry both sides of each legacy synonym pair, same as
// database rows, and go through the same normalization.
func FallbackCards() []domain.Card {
	records := []domain.CardRecord{
		{
			ID:                 "1",
			Name:               "HDFC Millennia Credit Card",
			Issuer:             "HDFC Bank",
			JoiningFee:         0,
			AnnualFee:          1000,
			FeeCurrency:        "INR",
			FeeWaiverCondition: "Spend ₹1L in first year",
			RewardType:         "Cashback",
			BaseRewardRate:     5.0,
			RewardRate:         5.0,
			RewardDetails:      "5% cashback on online shopping",
			MinIncome:          35000,
			CreditScore:        650,
			AgeMin:             21,
			AgeMax:             65,
			SpecialPerks:       []string{"Online Shopping", "E-commerce"},
			Perks:              []string{"Cashback", "Low fees"},
			BestFor:            []string{"Online Shopping", "E-commerce", "Millennials"},
			CardCategory:       domain.TierEntryLevel,
			Category:           domain.TierEntryLevel,
			Network:            "Visa",
			ApplyLink:          "https://hdfc.bank/apply",
		},
		{
			ID:                 "2",
			Name:               "SBI Cashback Credit Card",
			Issuer:             "SBI Cards",
			JoiningFee:         0,
			AnnualFee:          999,
			FeeCurrency:        "INR",
			FeeWaiverCondition: "Spend ₹2L annually",
			RewardType:         "Cashback",
			BaseRewardRate:     5.0,
			RewardRate:         5.0,
			RewardDetails:      "5% cashback on online spends",
			MinIncome:          25000,
			CreditScore:        650,
			AgeMin:             21,
			AgeMax:             65,
			SpecialPerks:       []string{"Online Shopping", "Cashback"},
			Perks:              []string{"High cashback", "Low fees"},
			BestFor:            []string{"Online Shopping", "Cashback", "Entry Level"},
			CardCategory:       domain.TierEntryLevel,
			Category:           domain.TierEntryLevel,
			Network:            "Visa",
			ApplyLink:          "https://sbicard.com/apply",
		},
		{
			ID:                 "3",
			Name:               "HDFC MoneyBack+ Credit Card",
			Issuer:             "HDFC Bank",
			JoiningFee:         0,
			AnnualFee:          500,
			FeeCurrency:        "INR",
			FeeWaiverCondition: "Spend ₹50K annually",
			RewardType:         "CashPoints",
			BaseRewardRate:     2.0,
			RewardRate:         2.0,
			RewardDetails:      "2% cashback on dining & groceries",
			MinIncome:          25000,
			CreditScore:        650,
			AgeMin:             21,
			AgeMax:             65,
			SpecialPerks:       []string{"Dining", "Groceries"},
			Perks:              []string{"CashPoints", "Budget friendly"},
			BestFor:            []string{"Online Shopping", "E-commerce", "Budget Category"},
			CardCategory:       domain.TierEntryLevel,
			Category:           domain.TierEntryLevel,
			Network:            "Visa",
			ApplyLink:          "https://hdfc.bank/apply-moneyback",
		},
		{
			ID:                 "4",
			Name:               "Axis Bank SELECT Credit Card",
			Issuer:             "Axis Bank",
			JoiningFee:         500,
			AnnualFee:          3000,
			FeeCurrency:        "INR",
			FeeWaiverCondition: "Spend ₹3L annually",
			RewardType:         "Points",
			BaseRewardRate:     1.2,
			RewardRate:         2.0,
			RewardDetails:      "2x points on dining, fuel, groceries",
			MinIncome:          50000,
			CreditScore:        700,
			AgeMin:             21,
			AgeMax:             65,
			SpecialPerks:       []string{"Dining rewards", "Fuel benefits"},
			Perks:              []string{"EDGE rewards", "Fuel surcharge waiver"},
			BestFor:            []string{"Dining", "Groceries", "Fuel"},
			CardCategory:       domain.TierMidLevel,
			Category:           domain.TierMidLevel,
			Network:            "Visa",
			ApplyLink:          "https://axisbank.com/apply",
		},
		{
			ID:                 "5",
			Name:               "ICICI Coral Credit Card",
			Issuer:             "ICICI Bank",
			JoiningFee:         0,
			AnnualFee:          500,
			FeeCurrency:        "INR",
			FeeWaiverCondition: "Spend ₹30K annually",
			RewardType:         "Points",
			BaseRewardRate:     1.0,
			RewardRate:         2.0,
			RewardDetails:      "2x points on dining & entertainment",
			MinIncome:          30000,
			CreditScore:        650,
			AgeMin:             21,
			AgeMax:             65,
			SpecialPerks:       []string{"Entertainment", "Movies"},
			Perks:              []string{"Reward points", "Entertainment offers"},
			BestFor:            []string{"General Spending", "Movies", "Entry Level Users"},
			CardCategory:       domain.TierEntryLevel,
			Category:           domain.TierEntryLevel,
			Network:            "Visa",
			ApplyLink:          "https://icicibank.com/apply",
		},
	}

	cards := make([]domain.Card, len(records))
	for i, rec := range records {
		cards[i] = rec.Normalize()
	}
	return cards
}
