package main

import (
	"github.com/matchd-cloud/matchd/cmd"
	"github.com/matchd-cloud/matchd/pkg/env"
	"github.com/matchd-cloud/matchd/pkg/log"
)

func main() {
	if err := env.Process(); err != nil {
		log.Fatal("environment failure", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal("matchd failure", "error", err)
	}
}
