package domain

// Card tiers as stored in the catalog
const (
	TierEntryLevel   = "Entry Level"
	TierMidLevel     = "Mid-Level"
	TierMidPremium   = "Mid-Premium"
	TierPremium      = "Premium"
	TierSuperPremium = "Super Premium"
)

// Card is the canonical in-memory card representation. The catalog stores
// redundant synonym fields (reward_rate/base_reward_rate, perks/special_perks,
// category/card_category); those are collapsed into one field each at the
// data-access boundary via CardRecord.
type Card struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Issuer             string   `json:"issuer"`
	Network            string   `json:"network"`
	JoiningFee         int      `json:"joiningFee"`
	AnnualFee          int      `json:"annualFee"` // INR
	FeeCurrency        string   `json:"feeCurrency,omitempty"`
	FeeWaiverCondition string   `json:"feeWaiverCondition,omitempty"`
	RewardType         string   `json:"rewardType"`
	RewardRate         float64  `json:"rewardRate"` // percent
	RewardDetails      string   `json:"rewardDetails,omitempty"`
	Perks              []string `json:"perks,omitempty"`
	BestFor            []string `json:"bestFor,omitempty"`
	Tier               string   `json:"tier"`
	MinIncome          int      `json:"minIncome"` // INR/month
	CreditScore        int      `json:"creditScore"`
	AgeMin             int      `json:"ageMin"`
	AgeMax             int      `json:"ageMax"`
	InviteOnly         bool     `json:"inviteOnly"`
	ApplyLink          string   `json:"applyLink,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
}

// CardRecord is the external wire/storage shape of a card. It carries both
// the enhanced fields and their legacy synonyms for compatibility with
// existing consumers of the catalog.
type CardRecord struct {
	ID                 string   `json:"id,omitempty"`
	Name               string   `json:"name"`
	Issuer             string   `json:"issuer"`
	JoiningFee         int      `json:"joining_fee"`
	AnnualFee          int      `json:"annual_fee"`
	FeeCurrency        string   `json:"fee_currency,omitempty"`
	FeeWaiverCondition string   `json:"fee_waiver_condition,omitempty"`
	RewardType         string   `json:"reward_type"`
	BaseRewardRate     float64  `json:"base_reward_rate,omitempty"`
	RewardRate         float64  `json:"reward_rate,omitempty"`
	RewardDetails      string   `json:"reward_details,omitempty"`
	MinIncome          int      `json:"min_income"`
	CreditScore        int      `json:"credit_score"`
	AgeMin             int      `json:"age_min"`
	AgeMax             int      `json:"age_max"`
	InviteOnly         bool     `json:"invite_only"`
	SpecialPerks       []string `json:"special_perks,omitempty"`
	Perks              []string `json:"perks,omitempty"`
	BestFor            []string `json:"best_for,omitempty"`
	CardCategory       string   `json:"card_category,omitempty"`
	Category           string   `json:"category,omitempty"`
	Network            string   `json:"network"`
	ImageURL           string   `json:"image_url,omitempty"`
	ApplyLink          string   `json:"apply_link,omitempty"`
}

// Normalize collapses the synonym pairs into a canonical Card. The enhanced
// field wins when both are present; the legacy field is the fallback.
func (r CardRecord) Normalize() Card {
	rate := r.BaseRewardRate
	if rate == 0 {
		rate = r.RewardRate
	}

	perks := r.SpecialPerks
	if len(perks) == 0 {
		perks = r.Perks
	}

	tier := r.CardCategory
	if tier == "" {
		tier = r.Category
	}

	return Card{
		ID:                 r.ID,
		Name:               r.Name,
		Issuer:             r.Issuer,
		Network:            r.Network,
		JoiningFee:         r.JoiningFee,
		AnnualFee:          r.AnnualFee,
		FeeCurrency:        r.FeeCurrency,
		FeeWaiverCondition: r.FeeWaiverCondition,
		RewardType:         r.RewardType,
		RewardRate:         rate,
		RewardDetails:      r.RewardDetails,
		Perks:              perks,
		BestFor:            r.BestFor,
		Tier:               tier,
		MinIncome:          r.MinIncome,
		CreditScore:        r.CreditScore,
		AgeMin:             r.AgeMin,
		AgeMax:             r.AgeMax,
		InviteOnly:         r.InviteOnly,
		ApplyLink:          r.ApplyLink,
		ImageURL:           r.ImageURL,
	}
}

// Record expands a canonical Card back into the wire shape. Writers must
// populate every synonym pair so legacy consumers stay consistent.
func (c Card) Record() CardRecord {
	return CardRecord{
		ID:                 c.ID,
		Name:               c.Name,
		Issuer:             c.Issuer,
		JoiningFee:         c.JoiningFee,
		AnnualFee:          c.AnnualFee,
		FeeCurrency:        c.FeeCurrency,
		FeeWaiverCondition: c.FeeWaiverCondition,
		RewardType:         c.RewardType,
		BaseRewardRate:     c.RewardRate,
		RewardRate:         c.RewardRate,
		RewardDetails:      c.RewardDetails,
		MinIncome:          c.MinIncome,
		CreditScore:        c.CreditScore,
		AgeMin:             c.AgeMin,
		AgeMax:             c.AgeMax,
		InviteOnly:         c.InviteOnly,
		SpecialPerks:       c.Perks,
		Perks:              c.Perks,
		BestFor:            c.BestFor,
		CardCategory:       c.Tier,
		Category:           c.Tier,
		Network:            c.Network,
		ImageURL:           c.ImageURL,
		ApplyLink:          c.ApplyLink,
	}
}

// CardFilter holds the optional predicates of a catalog search.
type CardFilter struct {
	Term      string `json:"term,omitempty"`       // matches name or issuer
	Tier      string `json:"tier,omitempty"`       // matches either category column
	Network   string `json:"network,omitempty"`
	MinIncome int    `json:"minIncome,omitempty"` // min_income >= this
	MaxIncome int    `json:"maxIncome,omitempty"` // min_income <= this
}

// CardStatistics summarises the catalog for the admin dashboard.
type CardStatistics struct {
	TotalCards  int            `json:"totalCards"`
	ByTier      map[string]int `json:"byTier"`
	ByNetwork   map[string]int `json:"byNetwork"`
	ByIssuer    map[string]int `json:"byIssuer"`
	RewardTypes map[string]int `json:"rewardTypes"`
	AvgJoining  float64        `json:"averageJoiningFee"`
	AvgAnnual   float64        `json:"averageAnnualFee"`
}
