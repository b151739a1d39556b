package utils

import "strings"

// base58 alphabet used by XRPL classic addresses (no 0, O, I or l)
const xrplAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

// IsValidWalletAddress performs a minimal format check on an XRPL classic
// address: leading 'r', 25-35 characters, base58 alphabet. Full checksum
// verification is left to the wallet service.
func IsValidWalletAddress(address string) bool {
	if len(address) < 25 || len(address) > 35 {
		return false
	}
	if address[0] != 'r' {
		return false
	}
	for _, ch := range address {
		if !strings.ContainsRune(xrplAlphabet, ch) {
			return false
		}
	}
	return true
}
