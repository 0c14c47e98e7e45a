// internal/domain/checkout/validate.go
package checkout

import "strings"

// ValidationResult represents the outcome of one step's validator
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (r *ValidationResult) addError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// validateCustomerInfo gates step 1: email, name and phone are required and
// the email must pass the permissive syntax check.
func validateCustomerInfo(info CustomerInfo) ValidationResult {
	result := ValidationResult{Valid: true}

	if strings.TrimSpace(info.Name) == "" {
		result.addError("name is required")
	}
	if strings.TrimSpace(info.Phone) == "" {
		result.addError("phone number is required")
	}
	if strings.TrimSpace(info.Email) == "" {
		result.addError("email is required")
	} else if !validEmail(info.Email) {
		result.addError("email address is not valid")
	}

	return result
}

// validEmail is a deliberately permissive check: exactly one @, a non-empty
// local part and domain, and a dot inside the domain that is neither its
// first nor last character. Strict RFC patterns reject too many real
// addresses.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	if domain == "" {
		return false
	}

	dot := strings.Index(domain, ".")
	if dot <= 0 || strings.HasSuffix(domain, ".") {
		return false
	}

	return true
}

// validateAddresses gates step 2: the four shipping fields are required, and
// the same four billing fields unless billing is flagged same-as-shipping.
func validateAddresses(info AddressInfo) ValidationResult {
	result := ValidationResult{Valid: true}

	checkAddress(&result, info.Shipping, "shipping")
	if !info.SameAsShipping {
		checkAddress(&result, info.Billing, "billing")
	}

	return result
}

func checkAddress(result *ValidationResult, addr Address, label string) {
	if strings.TrimSpace(addr.Street) == "" {
		result.addError(label + " street is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		result.addError(label + " city is required")
	}
	if strings.TrimSpace(addr.State) == "" {
		result.addError(label + " state is required")
	}
	if strings.TrimSpace(addr.Zip) == "" {
		result.addError(label + " zip is required")
	}
}

// validateMethod gates step 3: a payment method must be chosen. Card-field
// validation belongs to the payment adapter, not this gate.
func validateMethod(method Method) ValidationResult {
	result := ValidationResult{Valid: true}

	switch method {
	case MethodCard, MethodWallet:
	case "":
		result.addError("a payment method is required")
	default:
		result.addError("unknown payment method")
	}

	return result
}
