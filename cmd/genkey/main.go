package main

import (
	"fmt"
	"os"

	"github.com/kyc-labs/facematch/internal/domain"
)

func main() {
	key, err := domain.GenerateAPIKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("API_KEY=%s\n", key)
}
