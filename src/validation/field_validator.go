// backend/src/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/username/nestegg/backend/src/models"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxTickerLength      = 12
	MaxLabelLength       = 100
	MaxDisplayNameLength = 100
	MaxLadderRounds      = 20
	MaxHoldingsPerPerson = 10
)

// Ticker symbols as Yahoo accepts them, including FX pairs ("KRW=X") and
// class shares ("BRK.B").
var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-=]{0,11}$`)

// ValidateTicker checks a single (already upper-cased) ticker symbol.
func ValidateTicker(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: ticker cannot be empty", ErrValidationFailed)
	}
	if !tickerPattern.MatchString(s) {
		return fmt.Errorf("%w: ticker '%s' is not a valid symbol", ErrValidationFailed, s)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateNonNegative checks a money or quantity figure.
func ValidateNonNegative(v float64, fieldName string) error {
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateRounds checks the ladder round count against the form bounds.
func ValidateRounds(rounds int) error {
	if rounds < 1 || rounds > MaxLadderRounds {
		return fmt.Errorf("%w: rounds must be between 1 and %d", ErrValidationFailed, MaxLadderRounds)
	}
	return nil
}

// ValidatePerson checks one person portfolio's form fields. Holdings with
// an empty ticker are allowed (blank form rows); filled tickers must be
// valid symbols and quantities/cost bases non-negative.
func ValidatePerson(p models.PersonPortfolio) error {
	if err := ValidateStringMaxLength(p.DisplayName, MaxDisplayNameLength, "display_name"); err != nil {
		return err
	}
	if len(p.Holdings) > MaxHoldingsPerPerson {
		return fmt.Errorf("%w: at most %d holdings per person", ErrValidationFailed, MaxHoldingsPerPerson)
	}
	for _, h := range p.Holdings {
		if strings.TrimSpace(h.Ticker) != "" {
			if err := ValidateTicker(strings.ToUpper(strings.TrimSpace(h.Ticker))); err != nil {
				return err
			}
		}
		if h.Quantity < 0 {
			return fmt.Errorf("%w: quantity for '%s' cannot be negative", ErrValidationFailed, h.Ticker)
		}
		if err := ValidateNonNegative(h.CostBasis, "cost_basis"); err != nil {
			return err
		}
	}
	return nil
}

// ValidateState checks a full submitted session state.
func ValidateState(state models.DashboardState) error {
	for _, p := range state.Family {
		if err := ValidatePerson(p); err != nil {
			return err
		}
	}
	for _, p := range state.Dependents {
		if err := ValidatePerson(p); err != nil {
			return err
		}
	}
	for _, re := range state.RealEstate {
		if err := ValidateStringMaxLength(re.Label, MaxLabelLength, "real estate label"); err != nil {
			return err
		}
		if err := ValidateNonNegative(re.CurrentValue, "real estate current_value"); err != nil {
			return err
		}
	}
	for _, loan := range state.Loans {
		if err := ValidateStringMaxLength(loan.Label, MaxLabelLength, "loan label"); err != nil {
			return err
		}
		if err := ValidateNonNegative(loan.Balance, "loan balance"); err != nil {
			return err
		}
	}
	return nil
}
