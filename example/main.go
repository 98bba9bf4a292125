package main

import (
	"fmt"
	"log"

	"github.com/nexuslog/nexuslog"
)

func main() {
	handle, err := nexuslog.Init("app", nexuslog.FileSink("/var/log/app/app"), nexuslog.Info,
		nexuslog.WithErrorHandler(func(err error) {
			log.Printf("nexuslog worker error: %v", err)
		}),
	)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer handle.Shutdown()

	handle.Info("server starting")
	handle.Debug("this is below the configured level and is dropped")
	handle.Warnf("cache hit ratio dropped to %d%%", 42)

	if err := connectDatabase(); err != nil {
		handle.Errorf("database connection failed: %v", err)
	}

	// A second Handle routed to the same sink prefix shares the first
	// backend and worker goroutine; no extra file descriptor is opened.
	dbHandle, err := nexuslog.Init("db", nexuslog.FileSink("/var/log/app/app"), nexuslog.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer dbHandle.Shutdown()

	dbHandle.Debug("connection pool warmed up")
	handle.Flush()
}

func connectDatabase() error {
	return fmt.Errorf("connection refused")
}
