package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// BrokerCodePrefix is the prefix of every broker referral code.
// Format: BRK-{RANDOM} where RANDOM is 6 alphanumeric characters,
// e.g. BRK-ABC123.
const BrokerCodePrefix = "BRK"

// GenerateBrokerReferralCode generates a referral code for a broker
func GenerateBrokerReferralCode() (string, error) {
	// Generate 4 random bytes (will give us 6 characters in base32)
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	// Convert to base32 and take first 6 characters
	randomStr := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	randomStr = randomStr[:6]

	// Convert to uppercase and remove any non-alphanumeric characters
	randomStr = strings.ToUpper(randomStr)
	randomStr = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, randomStr)

	// Ensure we have exactly 6 characters
	if len(randomStr) < 6 {
		randomStr = randomStr + strings.Repeat("0", 6-len(randomStr))
	}

	return BrokerCodePrefix + "-" + randomStr, nil
}
