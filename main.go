package main

import (
	"log"
	"os"

	"github.com/TFMV/prowl/cmd"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// A traversal started without a completion handler escalates errors by
	// panicking; surface those instead of a raw stack trace.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v", r)
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
