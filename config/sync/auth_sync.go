package sync

import (
	"errors"
	"fmt"
	"strings"

	"codexmgr/internal/errs"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// AuthKey is the auth.json key holding the bearer credential.
const AuthKey = "OPENAI_API_KEY"

// parseAuth checks that content is a JSON object. Empty content is "{}".
func parseAuth(content []byte) (string, error) {
	s := string(content)
	if strings.TrimSpace(s) == "" {
		return "{}", nil
	}
	if !gjson.Valid(s) {
		return "", errs.Parse("auth.json", errors.New("invalid JSON"))
	}
	if !gjson.Parse(s).IsObject() {
		return "", errs.InvalidArgument("auth.json: expected a JSON object")
	}
	return s, nil
}

// UpdateAuth sets AuthKey to apiKey, or removes it when apiKey is nil or
// empty. Only that key changes; other keys and formatting are kept.
func UpdateAuth(original []byte, apiKey *string) ([]byte, error) {
	content, err := parseAuth(original)
	if err != nil {
		return nil, err
	}

	var updated string
	if apiKey != nil && *apiKey != "" {
		updated, err = sjson.Set(content, AuthKey, *apiKey)
	} else {
		updated, err = sjson.Delete(content, AuthKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", AuthKey, err)
	}

	if err := validateAuthUpdate(content, updated); err != nil {
		return nil, fmt.Errorf("update validation failed: %w", err)
	}

	if strings.TrimSpace(string(original)) == "" {
		return pretty.Pretty([]byte(updated)), nil
	}
	return []byte(updated), nil
}

// ReadAuthKey returns the credential stored in auth.json, or nil when unset.
func ReadAuthKey(content []byte) (*string, error) {
	s, err := parseAuth(content)
	if err != nil {
		return nil, err
	}
	result := gjson.Get(s, AuthKey)
	if result.Type != gjson.String {
		return nil, nil
	}
	key := result.Str
	return &key, nil
}

// validateAuthUpdate checks that every key other than AuthKey kept its raw value
// and that no key was added besides AuthKey.
func validateAuthUpdate(original, updated string) error {
	if !gjson.Valid(updated) {
		return fmt.Errorf("updated JSON is invalid")
	}

	before := collectRaw(original)
	after := collectRaw(updated)

	var differences []string
	for key, raw := range before {
		if key == AuthKey {
			continue
		}
		if got, ok := after[key]; !ok {
			differences = append(differences, key+" (missing)")
		} else if got != raw {
			differences = append(differences, key)
		}
	}
	for key := range after {
		if _, ok := before[key]; !ok && key != AuthKey {
			differences = append(differences, key+" (new)")
		}
	}

	if len(differences) > 0 {
		return fmt.Errorf("unexpected changes to auth.json keys: %s", strings.Join(differences, ", "))
	}
	return nil
}

func collectRaw(content string) map[string]string {
	out := map[string]string{}
	gjson.Parse(content).ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.Raw
		return true
	})
	return out
}
