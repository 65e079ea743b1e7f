package validation

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPhoneOK(t *testing.T) {
	assert.True(t, PhoneOK("9876543210"))
	assert.False(t, PhoneOK("987654321"))
	assert.False(t, PhoneOK("98765432101"))
	assert.False(t, PhoneOK("987654321x"))
	assert.False(t, PhoneOK(""))
	assert.False(t, PhoneOK("98765 4321"))
}

func TestAadharOK(t *testing.T) {
	assert.True(t, AadharOK("123456789012"))
	assert.False(t, AadharOK("12345678901"))
	assert.False(t, AadharOK("1234567890123"))
	assert.False(t, AadharOK("12345678901x"))
	assert.False(t, AadharOK(""))
}

func TestEligibleProfile(t *testing.T) {
	complete := model.User{
		FullName:     "Ramesh Kumar",
		Phone:        "9876543210",
		AadharNumber: "123456789012",
		Address:      "Ward 12, Muzaffarpur",
	}

	cases := []struct {
		name   string
		mutate func(*model.User)
		want   bool
	}{
		{"complete profile", func(u *model.User) {}, true},
		{"blank name", func(u *model.User) { u.FullName = "  " }, false},
		{"short phone", func(u *model.User) { u.Phone = "98765" }, false},
		{"short aadhar", func(u *model.User) { u.AadharNumber = "1234" }, false},
		{"blank address", func(u *model.User) { u.Address = "" }, false},
		{"whitespace address", func(u *model.User) { u.Address = "   " }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := complete
			tc.mutate(&u)
			assert.Equal(t, tc.want, EligibleProfile(&u))
		})
	}
}

func TestTaxTypeOK(t *testing.T) {
	assert.True(t, TaxTypeOK(model.TaxTypeProperty))
	assert.True(t, TaxTypeOK(model.TaxTypeMobileTowerFee))
	assert.False(t, TaxTypeOK("Income Tax"))
	assert.False(t, TaxTypeOK("property tax")) // case sensitive
	assert.False(t, TaxTypeOK(""))
}

func TestComplaintTypeOK(t *testing.T) {
	assert.True(t, ComplaintTypeOK(model.ComplaintTypeGarbage))
	assert.True(t, ComplaintTypeOK(model.ComplaintTypeOther))
	assert.False(t, ComplaintTypeOK("Aliens"))
	assert.False(t, ComplaintTypeOK(""))
}
