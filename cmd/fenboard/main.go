package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/console"
)

var fenFlag = flag.String("fen", "", "position to start from (default: starting position)")

func main() {
	flag.Parse()

	session := console.New()
	if *fenFlag != "" {
		pos, err := board.ParseFEN(*fenFlag)
		if err != nil {
			log.Fatalf("invalid -fen: %v", err)
		}
		session.SetPosition(pos)
	}

	if err := session.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
