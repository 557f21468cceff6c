package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// FLOW_CONFIG and FLOW_DEBUG may come from .env, so load it before flags.
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		exit(1)
	}
}
