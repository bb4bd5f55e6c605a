// Package minimax implements depth-limited minimax search with alpha-beta pruning.
package minimax

import "math"

// Rules describes a two-player zero-sum game to the search. Scores are always
// from the maximizing player's point of view.
type Rules[S any, M any] interface {
	Moves(state S, maximizing bool) []M
	Play(state S, move M, maximizing bool) S
	// Evaluate returns the score of state and whether it is terminal. depth is
	// the number of plies played since the root.
	Evaluate(state S, depth int) (score int, terminal bool)
}

type Result[M any] struct {
	Score int
	Move  M
	Found bool
}

// Search - explores up to maxDepth plies. Among equal scores the first move in
// Moves order wins.
func Search[S any, M any](rules Rules[S, M], state S, maxDepth int, maximizing bool) Result[M] {
	return search(rules, state, 0, maxDepth, maximizing, math.MinInt, math.MaxInt)
}

func search[S any, M any](rules Rules[S, M], state S, depth, maxDepth int, maximizing bool, alpha, beta int) Result[M] {
	score, terminal := rules.Evaluate(state, depth)
	if terminal || depth >= maxDepth {
		return Result[M]{Score: score}
	}

	moves := rules.Moves(state, maximizing)
	if len(moves) == 0 {
		return Result[M]{Score: score}
	}

	best := Result[M]{Score: math.MaxInt}
	if maximizing {
		best.Score = math.MinInt
	}

	for _, move := range moves {
		child := rules.Play(state, move, maximizing)
		result := search(rules, child, depth+1, maxDepth, !maximizing, alpha, beta)

		if maximizing {
			if !best.Found || result.Score > best.Score {
				best = Result[M]{Score: result.Score, Move: move, Found: true}
			}
			alpha = max(alpha, best.Score)
		} else {
			if !best.Found || result.Score < best.Score {
				best = Result[M]{Score: result.Score, Move: move, Found: true}
			}
			beta = min(beta, best.Score)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}
