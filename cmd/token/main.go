package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/frontandrew/matricula/internal/pkg/config"
	"github.com/frontandrew/matricula/internal/tools/operatortoken"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	tokenCfg, err := operatortoken.ParseConfig(flag.CommandLine, os.Args[1:], cfg.JWT.AccessExpiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	if err := operatortoken.Run(tokenCfg, cfg.JWT.SecretKey, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
}
