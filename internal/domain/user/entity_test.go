package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		village string
		want    bool
	}{
		{name: "phone and address present", phone: "9999999999", village: "Mellor", want: true},
		{name: "missing phone", phone: "", village: "Mellor", want: false},
		{name: "missing address line", phone: "9999999999", village: "", want: false},
		{name: "both missing", phone: "", village: "", want: false},
		{name: "whitespace only phone", phone: "   ", village: "Mellor", want: false},
		{name: "whitespace only address", phone: "9999999999", village: "  ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{
				Phone:   tt.phone,
				Address: ShippingAddress{Village: tt.village},
			}
			assert.Equal(t, tt.want, u.IsComplete())
		})
	}
}

func TestProfileViewState(t *testing.T) {
	complete := &User{
		Phone:   "9999999999",
		Address: ShippingAddress{Village: "Mellor", District: "Kamrup"},
	}
	incomplete := &User{Name: "New User"}

	assert.Equal(t, ViewStateViewing, ProfileViewState(complete))
	assert.Equal(t, ViewStateEditing, ProfileViewState(incomplete))
}

func TestProfileViewStateIgnoresOptionalFields(t *testing.T) {
	// Optional address fields do not affect completeness.
	u := &User{
		Phone: "9999999999",
		Address: ShippingAddress{
			Village:    "Mellor",
			PostOffice: "",
			District:   "",
			Pincode:    "",
		},
	}
	assert.True(t, u.IsComplete())
	assert.Equal(t, ViewStateViewing, ProfileViewState(u))
}
