package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// apiKeyPrefix marks generated keys so they are recognizable in config
// files and logs without revealing the secret part.
const apiKeyPrefix = "fm_"

// GenerateAPIKey returns a new random API key for the API_KEY setting.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return apiKeyPrefix + hex.EncodeToString(buf), nil
}
