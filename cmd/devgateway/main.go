// Command devgateway runs the in-memory gateway emulator so the client can
// be exercised without the hosted services.
package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/kpfoody/foody/internal/devgateway"
	"github.com/kpfoody/foody/internal/logging"
)

func main() {
	addr := flag.String("a", "127.0.0.1:8790", "address and port to listen on")
	bio := flag.Bool("bio", false, "accept the optional bio profile attribute")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	opts := []devgateway.Option{devgateway.WithLogger(logger)}
	if *bio {
		opts = append(opts, devgateway.WithBioField())
	}

	log.Printf("dev gateway listening on %s", *addr)
	if err := http.ListenAndServe(*addr, devgateway.New(opts...).Handler()); err != nil {
		log.Fatalf("%v", err)
	}
}
