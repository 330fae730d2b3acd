package main

import (
	"log"

	"github.com/saori-ai/trs-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
