package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if os.Getenv("DEBUG") == "" {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
