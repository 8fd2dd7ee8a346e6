package contract

import (
	"fmt"
	"math"

	"github.com/rpggio/fcea/internal/domain/vesting"
)

// MaxCliffDays is the largest cliff a contributor can hold. Share links use
// the same bound.
const MaxCliffDays = math.MaxInt32

// Field names a party attribute for modification tracking.
type Field string

const (
	FieldName               Field = "name"
	FieldEmail              Field = "email"
	FieldPhone              Field = "phone"
	FieldAddress            Field = "address"
	FieldCompanyName        Field = "companyName"
	FieldCustomIPDefinition Field = "customIPDefinition"
	FieldDeferredWageRate   Field = "deferredWageRate"
	FieldTotalEquityGranted Field = "totalEquityGranted"
	FieldVestingPeriod      Field = "vestingPeriod"
	FieldCliffDays          Field = "cliffDays"
	FieldVestingExponent    Field = "vestingExponent"
)

// FounderFields lists every tracked founder field.
var FounderFields = []Field{
	FieldName, FieldEmail, FieldPhone, FieldAddress,
	FieldCompanyName, FieldCustomIPDefinition, FieldDeferredWageRate,
}

// ContributorFields lists every tracked contributor field.
var ContributorFields = []Field{
	FieldName, FieldEmail, FieldPhone, FieldAddress,
	FieldTotalEquityGranted, FieldVestingPeriod, FieldCliffDays,
	FieldVestingExponent, FieldDeferredWageRate,
}

// FounderPatch is a partial founder update. Nil fields are left untouched.
type FounderPatch struct {
	Name               *string  `json:"name,omitempty"`
	Email              *string  `json:"email,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	Address            *string  `json:"address,omitempty"`
	CompanyName        *string  `json:"company_name,omitempty"`
	CustomIPDefinition *string  `json:"custom_ip_definition,omitempty"`
	DeferredWageRate   *float64 `json:"deferred_wage_rate,omitempty"`
}

// Validate rejects values the founder cannot hold.
func (p FounderPatch) Validate() error {
	if p.DeferredWageRate != nil && !nonNegativeFinite(*p.DeferredWageRate) {
		return fmt.Errorf("%w: deferred wage rate must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// apply writes the patch onto f and returns the touched fields.
func (p FounderPatch) apply(f *FounderParty) []Field {
	var touched []Field
	setString(&touched, FieldName, p.Name, &f.Name)
	setString(&touched, FieldEmail, p.Email, &f.Email)
	setString(&touched, FieldPhone, p.Phone, &f.Phone)
	setString(&touched, FieldAddress, p.Address, &f.Address)
	setString(&touched, FieldCompanyName, p.CompanyName, &f.CompanyName)
	setString(&touched, FieldCustomIPDefinition, p.CustomIPDefinition, &f.CustomIPDefinition)
	if p.DeferredWageRate != nil {
		f.DeferredWageRate = *p.DeferredWageRate
		touched = append(touched, FieldDeferredWageRate)
	}
	return touched
}

// ContributorPatch is a partial contributor update. Nil fields are left
// untouched.
type ContributorPatch struct {
	Name               *string  `json:"name,omitempty"`
	Email              *string  `json:"email,omitempty"`
	Phone              *string  `json:"phone,omitempty"`
	Address            *string  `json:"address,omitempty"`
	TotalEquityGranted *float64 `json:"total_equity_granted,omitempty"`
	VestingPeriod      *float64 `json:"vesting_period,omitempty"`
	CliffDays          *int     `json:"cliff_days,omitempty"`
	VestingExponent    *float64 `json:"vesting_exponent,omitempty"`
	DeferredWageRate   *float64 `json:"deferred_wage_rate,omitempty"`
}

// Validate rejects values the contributor cannot hold. The cliff is not
// checked against the vesting period here; see vesting.Schedule.Validate.
func (p ContributorPatch) Validate() error {
	switch {
	case p.TotalEquityGranted != nil && !(*p.TotalEquityGranted > 0 && *p.TotalEquityGranted <= 100):
		return fmt.Errorf("%w: total equity granted must be in (0,100]", ErrInvalidInput)
	case p.VestingPeriod != nil && !ValidVestingPeriod(*p.VestingPeriod):
		return fmt.Errorf("%w: vesting period must be in (0,%d] years", ErrInvalidInput, vesting.MaxVestingPeriodYears)
	case p.CliffDays != nil && (*p.CliffDays < 0 || *p.CliffDays > MaxCliffDays):
		return fmt.Errorf("%w: cliff days must be in [0,%d]", ErrInvalidInput, MaxCliffDays)
	case p.VestingExponent != nil && !(positiveFinite(*p.VestingExponent)):
		return fmt.Errorf("%w: vesting exponent must be positive", ErrInvalidInput)
	case p.DeferredWageRate != nil && !nonNegativeFinite(*p.DeferredWageRate):
		return fmt.Errorf("%w: deferred wage rate must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

func (p ContributorPatch) apply(c *ContributorParty) []Field {
	var touched []Field
	setString(&touched, FieldName, p.Name, &c.Name)
	setString(&touched, FieldEmail, p.Email, &c.Email)
	setString(&touched, FieldPhone, p.Phone, &c.Phone)
	setString(&touched, FieldAddress, p.Address, &c.Address)
	setFloat(&touched, FieldTotalEquityGranted, p.TotalEquityGranted, &c.TotalEquityGranted)
	setFloat(&touched, FieldVestingPeriod, p.VestingPeriod, &c.VestingPeriod)
	if p.CliffDays != nil {
		c.CliffDays = *p.CliffDays
		touched = append(touched, FieldCliffDays)
	}
	setFloat(&touched, FieldVestingExponent, p.VestingExponent, &c.VestingExponent)
	setFloat(&touched, FieldDeferredWageRate, p.DeferredWageRate, &c.DeferredWageRate)
	return touched
}

func setString(touched *[]Field, field Field, src *string, dst *string) {
	if src == nil {
		return
	}
	*dst = *src
	*touched = append(*touched, field)
}

func setFloat(touched *[]Field, field Field, src *float64, dst *float64) {
	if src == nil {
		return
	}
	*dst = *src
	*touched = append(*touched, field)
}

func nonNegativeFinite(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// ValidVestingPeriod reports whether years is a vesting period a contributor
// can hold.
func ValidVestingPeriod(years float64) bool {
	return years > 0 && years <= vesting.MaxVestingPeriodYears
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
