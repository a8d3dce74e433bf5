package main

import (
	"log"

	"github.com/joho/godotenv"

	appconfig "lyricbot/config"
	corecmd "lyricbot/core/cmd"
	"lyricbot/internal/app"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return appconfig.Load(path)
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("lyricbot: %v", err)
	}
}
