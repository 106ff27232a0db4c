package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/creditwise/backend/internal/domain"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// String is not empty and not only whitespace
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(regexp.MustCompile(`\S`).FindString(s)) > 0
	})

	// Card tier must be one of the known catalog tiers (empty allowed,
	// pair with required to forbid it)
	_ = Validate.RegisterValidation("cardtier", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", domain.TierEntryLevel, domain.TierMidLevel, domain.TierMidPremium,
			domain.TierPremium, domain.TierSuperPremium:
			return true
		}
		return false
	})
}
