// Package validation is the single validation module shared by sign-up, the
// admin tax flows and the eligibility predicate. Earlier client revisions
// duplicated these checks per screen with drifting heuristics; everything
// funnels through here now.
package validation

import (
	"regexp"
	"strings"

	"backend/internal/model"
)

var (
	phoneRx  = regexp.MustCompile(`^\d{10}$`)
	aadharRx = regexp.MustCompile(`^\d{12}$`)
)

// PhoneOK reports whether s is exactly 10 digits.
func PhoneOK(s string) bool { return phoneRx.MatchString(s) }

// AadharOK reports whether s is exactly 12 digits.
func AadharOK(s string) bool { return aadharRx.MatchString(s) }

// EligibleProfile is the canonical completeness predicate: a user may be
// assigned tax records only when every profile field collected at sign-up
// is present and well-formed.
func EligibleProfile(u *model.User) bool {
	return strings.TrimSpace(u.FullName) != "" &&
		PhoneOK(u.Phone) &&
		AadharOK(u.AadharNumber) &&
		strings.TrimSpace(u.Address) != ""
}

var taxTypes = map[string]bool{
	model.TaxTypeProperty:       true,
	model.TaxTypeTradeLicense:   true,
	model.TaxTypeAdvertisement:  true,
	model.TaxTypeWater:          true,
	model.TaxTypeSewerage:       true,
	model.TaxTypeMobileTowerFee: true,
}

// TaxTypeOK reports whether t is one of the municipal tax types.
func TaxTypeOK(t string) bool { return taxTypes[t] }

var complaintTypes = map[string]bool{
	model.ComplaintTypeStreetLight: true,
	model.ComplaintTypeWaterSupply: true,
	model.ComplaintTypeGarbage:     true,
	model.ComplaintTypeRoad:        true,
	model.ComplaintTypeDrainage:    true,
	model.ComplaintTypeTax:         true,
	model.ComplaintTypeOther:       true,
}

// ComplaintTypeOK reports whether t is a selectable complaint type.
func ComplaintTypeOK(t string) bool { return complaintTypes[t] }
