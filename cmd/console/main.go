package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kechprog/chess-engine/pkg/chess"
	"github.com/kechprog/chess-engine/pkg/player"
)

type config struct {
	fen        string
	difficulty string
	mcts       bool
	humanSide  string
}

var cfg config

func main() {
	log.SetFlags(0)
	flag.StringVar(&cfg.fen, "fen", "", "starting FEN (defaults to the start position)")
	flag.StringVar(&cfg.difficulty, "difficulty", "medium", "easy|medium|hard|expert")
	flag.BoolVar(&cfg.mcts, "mcts", false, "use the MCTS engine instead of Negamax")
	flag.StringVar(&cfg.humanSide, "side", "white", "white|black")
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

	var engineSide = chess.Black
	if strings.EqualFold(cfg.humanSide, "black") {
		engineSide = chess.White
	}

	var opponent = newEnginePlayer()
	fmt.Printf("Playing against %s. Enter moves in coordinate notation (e.g. e2e4, e7e8q).\n", opponent.Name())

	var scanner = bufio.NewScanner(os.Stdin)
	for {
		printBoard(p)

		if chess.IsCheckmate(p) {
			fmt.Println("Checkmate.")
			return
		}
		if chess.IsStalemate(p) {
			fmt.Println("Stalemate.")
			return
		}
		if chess.IsInsufficientMaterial(p) {
			fmt.Println("Draw by insufficient material.")
			return
		}

		if p.SideToMove == engineSide {
			var move = opponent.RequestMove(p)
			if move == chess.MoveNone {
				fmt.Println("Engine has no legal move.")
				return
			}
			fmt.Printf("%s plays %s\n", opponent.Name(), move)
			p.MakeMove(move)
			continue
		}

		fmt.Print("your move> ")
		if !scanner.Scan() {
			return
		}
		var text = strings.TrimSpace(scanner.Text())
		if text == "quit" || text == "exit" {
			return
		}
		var move, ok = parseMove(p, text)
		if !ok {
			fmt.Println("not a legal move")
			continue
		}
		p.MakeMove(move)
	}
}

func newEnginePlayer() player.Player {
	if cfg.mcts {
		return player.NewDefaultMCTSPlayer()
	}
	switch strings.ToLower(cfg.difficulty) {
	case "easy":
		return player.NewNegamaxPlayer(player.Easy)
	case "hard":
		return player.NewNegamaxPlayer(player.Hard)
	case "expert":
		return player.NewNegamaxPlayer(player.Expert)
	default:
		return player.NewNegamaxPlayer(player.Medium)
	}
}

func parseMove(p *chess.Position, text string) (chess.Move, bool) {
	var buf [chess.MaxMoves]chess.Move
	for _, m := range chess.GenerateLegalMoves(p, buf[:0]) {
		if strings.EqualFold(m.String(), text) {
			return m, true
		}
	}
	return chess.MoveNone, false
}

var pieceGlyphs = map[chess.PieceType][2]rune{
	chess.Pawn:   {'P', 'p'},
	chess.Knight: {'N', 'n'},
	chess.Bishop: {'B', 'b'},
	chess.Rook:   {'R', 'r'},
	chess.Queen:  {'Q', 'q'},
	chess.King:   {'K', 'k'},
}

func printBoard(p *chess.Position) {
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			var sq = chess.MakeSquare(file, rank)
			var glyph = '.'
			for pt, glyphs := range pieceGlyphs {
				if chess.Test(p.PieceBB(chess.White, pt), sq) {
					glyph = glyphs[0]
				} else if chess.Test(p.PieceBB(chess.Black, pt), sq) {
					glyph = glyphs[1]
				}
			}
			fmt.Printf("%c ", glyph)
		}
		fmt.Println()
	}
	fmt.Println("  a b c d e f g h")
	fmt.Println(p.FEN())
}
