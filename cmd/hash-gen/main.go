package main

import (
	"fmt"
	"log"
	"os"

	"smart-upi.backend/pkg/crypto"
)

func resolveSecret(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "merchant-dev-secret"
}

// Prints the bcrypt hash to configure as MERCHANT_SECRET_HASH.
func main() {
	secret := resolveSecret(os.Args[1:])

	hash, err := crypto.HashSecret(secret)
	if err != nil {
		log.Fatalf("Failed to hash secret: %v", err)
	}

	fmt.Printf("Bcrypt Hash: %s\n", hash)
}
