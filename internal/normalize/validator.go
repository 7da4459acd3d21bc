package normalize

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultPhoneRegion is used to interpret phone numbers written without a country code
const DefaultPhoneRegion = "US"

const (
	minYear = 1900
	maxYear = 2100
)

var strictEmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)

// Validator checks the shape of individual field values
type Validator struct {
	validate *validator.Validate
	region   string
}

// NewValidator creates a Validator. An empty region selects DefaultPhoneRegion.
func NewValidator(region string) *Validator {
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &Validator{
		validate: validator.New(),
		region:   strings.ToUpper(region),
	}
}

// Region returns the default phone region
func (v *Validator) Region() string {
	return v.region
}

// Email reports whether s is a well-formed address
func (v *Validator) Email(s string) bool {
	if !strictEmailPattern.MatchString(s) {
		return false
	}
	return v.validate.Var(s, "required,email") == nil
}

// Phone reports whether s is a possible phone number in the default region
func (v *Validator) Phone(s string) bool {
	num, err := phonenumbers.Parse(s, v.region)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

// Year reports whether y is a plausible calendar year
func (v *Validator) Year(y *int) bool {
	return y != nil && *y >= minYear && *y <= maxYear
}

// DateRange reports whether d has a parseable start year and does not end before it starts
func (v *Validator) DateRange(d *types.DateRange) bool {
	if d == nil || !v.Year(d.StartYear) {
		return false
	}
	if d.EndYear == nil {
		return true
	}
	return v.Year(d.EndYear) && *d.EndYear >= *d.StartYear
}

// GPA reports whether g is a value/scale pair with 0 <= value <= scale
func (v *Validator) GPA(g *types.GPA) bool {
	return g != nil && g.Scale > 0 && g.Value >= 0 && g.Value <= g.Scale
}
