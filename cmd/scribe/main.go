package main

import (
	"scribe/cmd/handlers"
	"scribe/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
