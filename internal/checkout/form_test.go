package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"555-123-4567", "5551234567"},
		{"(555) 123 4567", "5551234567"},
		{"+52 555 123 4567", "525551234567"},
		{"5551234567", "5551234567"},
		{"abc", ""},
		{"٥٥٥١٢٣٤٥٦٧", ""}, // non-ASCII digits are stripped, not kept
		{"۵۵۵-123-4567", "1234567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestForm_Validate(t *testing.T) {
	valid := Form{
		Name:    "Maria Lopez",
		Phone:   "555-123-4567",
		Address: "Av. Reforma 123",
		Message: "leave at the door",
	}

	t.Run("valid_form_normalizes_phone", func(t *testing.T) {
		cleaned, verr := valid.Validate()
		require.Nil(t, verr)
		assert.Equal(t, "5551234567", cleaned.Phone)
		assert.Equal(t, "Maria Lopez", cleaned.Name)
	})

	t.Run("trims_whitespace", func(t *testing.T) {
		form := valid
		form.Name = "  Maria Lopez  "
		form.Message = " ok "
		cleaned, verr := form.Validate()
		require.Nil(t, verr)
		assert.Equal(t, "Maria Lopez", cleaned.Name)
		assert.Equal(t, "ok", cleaned.Message)
	})

	t.Run("message_is_optional", func(t *testing.T) {
		form := valid
		form.Message = ""
		_, verr := form.Validate()
		assert.Nil(t, verr)
	})

	tests := []struct {
		name       string
		mutate     func(*Form)
		wantField  string
		wantReason string
	}{
		{
			name:       "missing_name",
			mutate:     func(f *Form) { f.Name = "   " },
			wantField:  "name",
			wantReason: "name is required",
		},
		{
			name:       "missing_phone",
			mutate:     func(f *Form) { f.Phone = "" },
			wantField:  "phone",
			wantReason: "phone is required",
		},
		{
			name:       "missing_address",
			mutate:     func(f *Form) { f.Address = "\t" },
			wantField:  "address",
			wantReason: "address is required",
		},
		{
			name:       "phone_too_short",
			mutate:     func(f *Form) { f.Phone = "123" },
			wantField:  "phone",
			wantReason: "phone must have exactly 10 digits",
		},
		{
			name:       "phone_too_long",
			mutate:     func(f *Form) { f.Phone = "+52 555 123 4567" },
			wantField:  "phone",
			wantReason: "phone must have exactly 10 digits",
		},
		{
			name:       "phone_all_letters",
			mutate:     func(f *Form) { f.Phone = "call me maybe" },
			wantField:  "phone",
			wantReason: "phone must have exactly 10 digits",
		},
		{
			name:       "phone_in_non_ascii_digits",
			mutate:     func(f *Form) { f.Phone = "٥٥٥١٢٣٤٥٦٧" },
			wantField:  "phone",
			wantReason: "phone must have exactly 10 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			_, verr := form.Validate()
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantReason, verr.Reason)
		})
	}
}
