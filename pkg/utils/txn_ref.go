package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const txnRefAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTxnRef generates a provisional transaction reference shown to the
// payer before settlement, e.g. "TXN1724999999999X7K2Q". Uniqueness comes
// from the millisecond timestamp plus a random suffix.
func GenerateTxnRef() string {
	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		// Degrade to timestamp-only; still displayable.
		return fmt.Sprintf("TXN%d", time.Now().UnixMilli())
	}
	for i, b := range suffix {
		suffix[i] = txnRefAlphabet[int(b)%len(txnRefAlphabet)]
	}
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), suffix)
}
