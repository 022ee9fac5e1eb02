package checkout

import "strings"

// Form carries the customer-supplied checkout fields. Message is optional;
// everything else is required.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Message string `json:"message"`
}

// ValidationError is a user-correctable rejection of a checkout submission.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// NormalizePhone keeps the ASCII digits 0-9 and strips everything else,
// including digits from other scripts.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate trims the fields, normalizes the phone number, and returns the
// cleaned form. The phone must normalize to exactly 10 digits; formatting
// like "555-123-4567" is accepted.
func (f Form) Validate() (Form, *ValidationError) {
	cleaned := Form{
		Name:    strings.TrimSpace(f.Name),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
		Message: strings.TrimSpace(f.Message),
	}

	if cleaned.Name == "" {
		return cleaned, &ValidationError{Field: "name", Reason: "name is required"}
	}
	if cleaned.Phone == "" {
		return cleaned, &ValidationError{Field: "phone", Reason: "phone is required"}
	}
	if cleaned.Address == "" {
		return cleaned, &ValidationError{Field: "address", Reason: "address is required"}
	}

	cleaned.Phone = NormalizePhone(cleaned.Phone)
	if len(cleaned.Phone) != 10 {
		return cleaned, &ValidationError{Field: "phone", Reason: "phone must have exactly 10 digits"}
	}

	return cleaned, nil
}
