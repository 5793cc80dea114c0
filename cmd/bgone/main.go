package main

import (
	"fmt"
	"os"

	bgone "github.com/liek944/Bgone"
)

func main() {
	if err := bgone.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
