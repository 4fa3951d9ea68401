// Package main is the collab-service entry point (HTTP + WebSocket).
package main

import (
	"log"

	"github.com/Tusshar172004/Code-Pod/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
