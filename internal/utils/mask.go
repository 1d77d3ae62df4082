package utils

// MaskAPIKey masks the API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// MaskOptional masks an optional key, rendering an unset key as "-"
func MaskOptional(key *string) string {
	if key == nil || *key == "" {
		return "-"
	}
	return MaskAPIKey(*key)
}
