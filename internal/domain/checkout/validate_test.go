package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"user.name+tag@sub.example.com", true},
		{"jane@example.com", true},
		{"no-at-sign", false},
		{"a@", false},
		{"a@b", false},
		{"a@.com", false},
		{"a@b.", false},
		{"@example.com", false},
		{"a@@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validEmail(tt.email))
		})
	}
}

func TestValidateCustomerInfo(t *testing.T) {
	tests := []struct {
		name    string
		info    CustomerInfo
		valid   bool
		wantErr string
	}{
		{
			name:  "complete info passes",
			info:  CustomerInfo{Email: "jane@example.com", Name: "Jane", Phone: "555-0101"},
			valid: true,
		},
		{
			name:    "missing name",
			info:    CustomerInfo{Email: "jane@example.com", Phone: "555-0101"},
			wantErr: "name is required",
		},
		{
			name:    "missing phone",
			info:    CustomerInfo{Email: "jane@example.com", Name: "Jane"},
			wantErr: "phone number is required",
		},
		{
			name:    "missing email",
			info:    CustomerInfo{Name: "Jane", Phone: "555-0101"},
			wantErr: "email is required",
		},
		{
			name:    "malformed email",
			info:    CustomerInfo{Email: "not-an-email", Name: "Jane", Phone: "555-0101"},
			wantErr: "email address is not valid",
		},
		{
			name:    "whitespace-only fields rejected",
			info:    CustomerInfo{Email: "jane@example.com", Name: "   ", Phone: "555-0101"},
			wantErr: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateCustomerInfo(tt.info)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.wantErr != "" {
				assert.Contains(t, result.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateAddresses(t *testing.T) {
	full := Address{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"}

	t.Run("same as shipping skips billing fields", func(t *testing.T) {
		result := validateAddresses(AddressInfo{Shipping: full, SameAsShipping: true})
		assert.True(t, result.Valid)
	})

	t.Run("billing required when not same as shipping", func(t *testing.T) {
		result := validateAddresses(AddressInfo{Shipping: full})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "billing street is required")
		assert.Contains(t, result.Errors, "billing zip is required")
	})

	t.Run("missing shipping field reported", func(t *testing.T) {
		addr := full
		addr.City = ""
		result := validateAddresses(AddressInfo{Shipping: addr, SameAsShipping: true})
		assert.False(t, result.Valid)
		assert.Equal(t, []string{"shipping city is required"}, result.Errors)
	})
}

func TestValidateMethod(t *testing.T) {
	assert.True(t, validateMethod(MethodCard).Valid)
	assert.True(t, validateMethod(MethodWallet).Valid)
	assert.False(t, validateMethod("").Valid)
	assert.False(t, validateMethod("cheque").Valid)
}

func TestEffectiveBilling(t *testing.T) {
	shipping := Address{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"}
	billing := Address{Street: "2 Oak Ave", City: "Shelbyville", State: "IL", Zip: "62565"}

	info := AddressInfo{Shipping: shipping, Billing: billing}
	assert.Equal(t, billing, info.EffectiveBilling())

	info.SameAsShipping = true
	assert.Equal(t, shipping, info.EffectiveBilling())
}
