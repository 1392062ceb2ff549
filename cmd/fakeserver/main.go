package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/mrfortune94/casinodog/config"
	"github.com/mrfortune94/casinodog/fakeserver"
	"github.com/mrfortune94/casinodog/logging"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env from the working directory or its parent; both are optional.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.ConfigureLogOutput(cfg); err != nil {
		log.Fatal(err)
	}
	srv, err := fakeserver.New(fakeserver.Config{
		AccessKey: cfg.FakeServerAccessKey,
		Port:      cfg.FakeServerPort,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
