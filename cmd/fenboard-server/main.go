package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hailam/fenboard/internal/server"
)

func main() {
	var port uint
	flag.UintVar(&port, "port", server.DefaultPort, "Port to listen on")
	flag.Parse()
	if port == 0 || port > 65535 {
		log.Fatalf("Invalid port number %d", port)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.NewApplication(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting server on %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}
