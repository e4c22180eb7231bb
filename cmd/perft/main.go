package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/kechprog/chess-engine/pkg/chess"
)

type config struct {
	fen    string
	depth  int
	divide bool
}

var cfg config

func main() {
	log.SetFlags(0)
	flag.StringVar(&cfg.fen, "fen", "", "FEN to search from (defaults to the start position)")
	flag.IntVar(&cfg.depth, "depth", 5, "perft depth")
	flag.BoolVar(&cfg.divide, "divide", false, "print the per-root-move node count breakdown")
	flag.Parse()

	var p *chess.Position
	if cfg.fen == "" {
		p = chess.NewStartPosition()
	} else {
		var parsed, err = chess.NewPositionFromFEN(cfg.fen)
		if err != nil {
			log.Fatalf("invalid FEN: %v", err)
		}
		p = parsed
	}

	if cfg.divide {
		var perMove, total = chess.Divide(p, cfg.depth)
		for move, nodes := range perMove {
			fmt.Printf("%s: %d\n", move, nodes)
		}
		fmt.Printf("\nTotal: %d\n", total)
		return
	}

	fmt.Println(chess.Perft(p, cfg.depth))
}
