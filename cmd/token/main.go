package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"autoglm-helper/app"
	"autoglm-helper/app/services"
	"autoglm-helper/storage/prefs"
)

func main() {
	rotate := flag.Bool("rotate", false, "replace the current token with a new one")
	prefsPath := flag.String("prefs", "", "preference file (defaults to PREFS_PATH or <data dir>/prefs.yaml)")
	flag.Parse()

	path := *prefsPath
	if path == "" {
		cfg, err := app.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		path = cfg.PrefsPath
	}

	store, err := prefs.NewStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		os.Exit(1)
	}
	auth := services.NewAuthService(store)

	var token string
	if *rotate {
		token, err = auth.RotateToken()
	} else {
		token, err = auth.GetOrCreateToken()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *rotate {
		fmt.Fprintf(os.Stderr, "Token rotated; clients using the old token must be updated.\n")
	}
	if issuedAt, err := auth.TokenIssuedAt(); err == nil && !issuedAt.IsZero() {
		fmt.Fprintf(os.Stderr, "Issued at %s\n", issuedAt.Format(time.RFC3339))
	}
	fmt.Println(token)
}
