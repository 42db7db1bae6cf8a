package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"tabletop/internal/config"
	"tabletop/internal/game"
)

const (
	human = game.Seat1
	bot   = game.Seat2
)

func main() {
	kind := game.Connect4Kind
	if len(os.Args) > 1 {
		k, err := game.ParseKind(os.Args[1])
		if err != nil {
			fmt.Println("usage: tabletop [connect-4|checkers]")
			os.Exit(2)
		}
		kind = k
	}
	eng, err := game.New(kind)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	w := config.DefaultWeights()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	reader := bufio.NewReader(os.Stdin)
	turn := human
	var last game.Outcome

	for !eng.Over() {
		fmt.Printf("\nTurn: %s\n", name(turn))
		printBoard(eng)

		var mv game.Move
		if turn == bot {
			var ok bool
			mv, ok = game.ChooseMove(eng, bot, w, rng)
			if !ok {
				fmt.Println("Bot has no move.")
				return
			}
			fmt.Printf("Bot plays: %s\n", describe(kind, mv))
		} else {
			mv = readMove(reader, kind)
		}

		out, err := eng.Apply(turn, mv)
		if err != nil {
			fmt.Println("Invalid move:", err)
			continue
		}
		last = out
		if out.Continue {
			fmt.Println("Keep capturing with the same piece.")
			continue
		}
		turn = turn.Other()
	}

	printBoard(eng)
	switch last.Winner {
	case game.Draw:
		fmt.Println("\nDraw.")
	default:
		fmt.Printf("\n%s won!\n", name(last.Winner))
	}
}

func name(s game.Seat) string {
	if s == bot {
		return "CPU (O)"
	}
	return "You (X)"
}

func readMove(r *bufio.Reader, kind game.Kind) game.Move {
	if kind == game.Connect4Kind {
		fmt.Println("Enter a column (1-7)")
	} else {
		fmt.Println("Enter a move: from-col from-row to-col to-row (e.g. 3 3 4 4)")
	}
	for {
		fmt.Print("> ")
		line, err := r.ReadString('\n')
		if err != nil {
			fmt.Println()
			os.Exit(0)
		}
		var nums []int
		for _, f := range strings.Fields(line) {
			n, err := strconv.Atoi(f)
			if err != nil {
				nums = nil
				break
			}
			nums = append(nums, n-1)
		}
		switch {
		case kind == game.Connect4Kind && len(nums) == 1:
			return game.Move{Column: nums[0]}
		case kind == game.CheckersKind && len(nums) == 4:
			return game.Move{From: game.Pos{Col: nums[0], Row: nums[1]}, To: game.Pos{Col: nums[2], Row: nums[3]}}
		}
		fmt.Println("Wrong format. Try again.")
	}
}

func describe(kind game.Kind, mv game.Move) string {
	if kind == game.Connect4Kind {
		return fmt.Sprintf("column %d", mv.Column+1)
	}
	return fmt.Sprintf("(%d,%d) -> (%d,%d)", mv.From.Col+1, mv.From.Row+1, mv.To.Col+1, mv.To.Row+1)
}

func printBoard(e game.Engine) {
	switch g := e.(type) {
	case *game.Connect4:
		b := g.Board()
		for row := 0; row < b.Rows; row++ {
			for col := 0; col < b.Cols; col++ {
				fmt.Print(mark(b.Cells[col][row], false), " ")
			}
			fmt.Println()
		}
		fmt.Println("1 2 3 4 5 6 7")
	case *game.Checkers:
		b := g.Board()
		fmt.Println("  1 2 3 4 5 6 7 8")
		for row := 0; row < b.Rows; row++ {
			fmt.Print(row+1, " ")
			for col := 0; col < b.Cols; col++ {
				pc := b.Cells[col][row]
				fmt.Print(mark(pc.Owner, pc.King), " ")
			}
			fmt.Println()
		}
	}
}

func mark(s game.Seat, king bool) string {
	switch {
	case s == human && king:
		return "X"
	case s == human:
		return "x"
	case s == bot && king:
		return "O"
	case s == bot:
		return "o"
	}
	return "."
}
