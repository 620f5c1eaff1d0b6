package signup

import (
	"strings"

	"devhub/internal/models"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindURL      FieldKind = "url"
	KindTel      FieldKind = "tel"
	KindSelect   FieldKind = "select"
)

// Field is one input of a wizard step. Key is what ends up in the
// registration payload; Label is what the form shows.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

var AccountFields = []Field{
	{Key: "fullName", Label: "Full Name", Kind: KindText, Required: true},
	{Key: "email", Label: "Email Address", Kind: KindEmail, Required: true},
	{Key: "password", Label: "Password", Kind: KindPassword, Required: true},
	{Key: "confirmPassword", Label: "Confirm Password", Kind: KindPassword, Required: true},
	{Key: "userType", Label: "I am a", Kind: KindSelect, Required: true, Options: []string{models.UserTypeDeveloper, models.UserTypeClient}},
}

var DeveloperFields = []Field{
	{Key: "username", Label: "Username", Kind: KindText, Required: true},
	{Key: "bio", Label: "Short Bio", Kind: KindTextarea},
	{Key: "skills", Label: "Skills (comma separated)", Kind: KindText, Required: true},
	{Key: "experienceLevel", Label: "Experience Level", Kind: KindSelect, Options: []string{"Junior", "Mid-Level", "Senior", "Expert"}},
	{Key: "yearsExperience", Label: "Years of Experience", Kind: KindNumber},
	{Key: "portfolioUrl", Label: "Portfolio URL", Kind: KindURL},
	{Key: "location", Label: "Location", Kind: KindText},
	{Key: "hourlyRate", Label: "Hourly Rate ($)", Kind: KindNumber},
}

var ClientFields = []Field{
	{Key: "companyName", Label: "Company Name", Kind: KindText, Required: true},
	{Key: "companyWebsite", Label: "Company Website", Kind: KindURL},
	{Key: "industry", Label: "Industry", Kind: KindText},
	{Key: "companySize", Label: "Company Size", Kind: KindText},
	{Key: "workEmail", Label: "Work Email", Kind: KindEmail},
	{Key: "budgetRange", Label: "Budget Range", Kind: KindText},
	{Key: "location", Label: "Location", Kind: KindText},
}

var ContactFields = []Field{
	{Key: "phone", Label: "Phone Number", Kind: KindTel, Required: true},
	{Key: "preferredComm", Label: "Preferred Communication", Kind: KindSelect, Options: []string{"Email", "Phone", "Chat"}},
}

// RoleFields returns the step 2 fields of a role, or nil for an unknown role.
func RoleFields(userType string) []Field {
	switch userType {
	case models.UserTypeDeveloper:
		return DeveloperFields
	case models.UserTypeClient:
		return ClientFields
	}
	return nil
}

// Schema is everything a form renderer needs for one role.
type Schema struct {
	Account []Field `json:"account"`
	Role    []Field `json:"role"`
	Contact []Field `json:"contact"`
}

func SchemaFor(userType string) Schema {
	return Schema{Account: AccountFields, Role: RoleFields(userType), Contact: ContactFields}
}

// normalize folds a key or label to lowercase letters and digits.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func match(fields []Field, inputKey string) (Field, bool) {
	for _, f := range fields {
		if f.Key == inputKey {
			return f, true
		}
	}
	n := normalize(inputKey)
	if n == "" {
		return Field{}, false
	}
	for _, f := range fields {
		if n == normalize(f.Key) || n == normalize(f.Label) {
			return f, true
		}
	}
	return Field{}, false
}

// collect maps raw form values onto the canonical keys of fields. Unknown
// keys and blank values are dropped.
func collect(fields []Field, values map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if f, ok := match(fields, k); ok {
			out[f.Key] = v
		}
	}
	return out
}

func missingRequired(fields []Field, payload map[string]string) error {
	for _, f := range fields {
		if f.Required && strings.TrimSpace(payload[f.Key]) == "" {
			return &ValidationError{Field: f.Key, Message: "Please fill in " + f.Label}
		}
	}
	return nil
}
