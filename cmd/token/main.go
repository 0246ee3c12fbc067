// Выпуск токена оператора для POST /reel/spin
package main

import (
	"flag"
	"fmt"
	"os"

	"reel_engine/internal/config"
	"reel_engine/internal/config/env"
	"reel_engine/pkg/token"
)

func main() {
	var (
		envPath string
		subject string
	)
	flag.StringVar(&envPath, "env", ".env", "path to .env file")
	flag.StringVar(&subject, "subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ACCESS_TOKEN_DURATION)")
	flag.Parse()

	if err := config.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := env.NewJWTConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Enabled() {
		fmt.Fprintln(os.Stderr, "Error: ACCESS_TOKEN is not set")
		os.Exit(1)
	}

	lifetime := cfg.AccessTokenDuration()
	if *ttl > 0 {
		lifetime = *ttl
	}

	tok, err := token.GenerateAccessToken(subject, cfg.AccessTokenSecretKey(), lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
