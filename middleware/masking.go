package middleware

import (
	"encoding/json"
	"strings"
)

// maskToken replaces every sensitive value in logged output.
const maskToken = "***"

// defaultMaskedFields are body and query field names whose values are never
// logged. Matching is done on the normalized name, so password, Password,
// client_secret, clientSecret and Client-Secret all hit the same entry.
var defaultMaskedFields = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"accesstoken",
	"refreshtoken",
	"clientsecret",
	"apikey",
	"cardnumber",
	"cvv",
	"pin",
}

// defaultMaskedHeaders are request headers whose values are never logged.
var defaultMaskedHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
}

// normalizeFieldName folds a field name to its canonical lookup form:
// lowercase with underscores and dashes removed. This makes masking robust
// across snake_case, camelCase, and header-style spellings.
func normalizeFieldName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, "-", "")
	return name
}

// fieldSet builds a normalized lookup set from field names.
func fieldSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[normalizeFieldName(name)] = struct{}{}
	}
	return set
}

// maskJSON parses data as JSON, replaces the values of all masked fields at
// any nesting depth with [maskToken], and returns the re-serialized result.
// The second return value is false when data is not valid JSON.
//
// The original byte slice is never modified; masking operates on the parsed
// copy only.
func maskJSON(data []byte, masked map[string]struct{}) ([]byte, bool) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}

	out, err := json.Marshal(maskValue(payload, masked))
	if err != nil {
		return nil, false
	}

	return out, true
}

func maskValue(v any, masked map[string]struct{}) any {
	switch value := v.(type) {
	case map[string]any:
		for key, inner := range value {
			if _, sensitive := masked[normalizeFieldName(key)]; sensitive {
				value[key] = maskToken
				continue
			}
			value[key] = maskValue(inner, masked)
		}
		return value
	case []any:
		for i, inner := range value {
			value[i] = maskValue(inner, masked)
		}
		return value
	default:
		return v
	}
}
