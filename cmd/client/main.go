package main

import (
	"context"
	"os"

	"github.com/erprakash26/karyamate/internal/client/cli"
)

func main() {
	baseURL := os.Getenv("KARYAMATE_API_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	app := cli.NewApp(baseURL)
	app.Run(context.Background())
}
