package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/craftquote/quote-engine/cmd/commands"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if err := commands.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
