package flappybird

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

// view cells are square blocks of the world
const cellSize = 20

type Snapshot struct {
	Bird       Bird              `json:"bird"`
	Pipes      []Pipe            `json:"pipes"`
	Score      int               `json:"score"`
	HighScore  int               `json:"highScore"`
	Frame      int               `json:"frame"`
	Status     arcade.Status     `json:"status"`
	Difficulty arcade.Difficulty `json:"difficulty"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
}

func (that *Game) Snapshot() any {
	return Snapshot{
		Bird:       that.bird,
		Pipes:      append([]Pipe(nil), that.pipes...),
		Score:      that.score,
		HighScore:  that.highScore,
		Frame:      that.frame,
		Status:     that.status,
		Difficulty: that.difficulty,
		Width:      Width,
		Height:     Height,
	}
}

func (that *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Snapshot())
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var saved Snapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal flappybird: %w", err)
	}

	if settings, ok := difficulties[saved.Difficulty]; ok {
		that.difficulty, that.settings = saved.Difficulty, settings
	}
	that.bird = saved.Bird
	that.pipes = saved.Pipes
	that.score = saved.Score
	that.highScore = saved.HighScore
	that.frame = saved.Frame
	that.status = saved.Status

	return nil
}

func (that *Game) View() arcade.Frame {
	rows, cols := Height/cellSize, Width/cellSize
	frame := arcade.NewFrame("Flappy Bird", rows, cols)

	for row := range rows {
		for col := range cols {
			frame.Set(row, col, ' ', arcade.ToneBlank)
		}
	}

	for _, pipe := range that.pipes {
		for col := int(pipe.X) / cellSize; col <= int(pipe.X+pipe.Width-1)/cellSize; col++ {
			for row := range rows {
				y := float64(row*cellSize + cellSize/2)
				if y < pipe.TopHeight || y > pipe.TopHeight+pipe.Gap {
					frame.Set(row, col, '█', arcade.TonePrimary)
				}
			}
		}
	}

	frame.Set(int(that.bird.Y)/cellSize, int(that.bird.X)/cellSize, '◉', arcade.ToneHighlight)

	frame.Status = []string{fmt.Sprintf("Score: %d  Best: %d", that.score, that.highScore)}
	switch that.status {
	case arcade.StatusWaiting:
		frame.Status = append(frame.Status, "Flap to start")
	case arcade.StatusFinished:
		frame.Status = append(frame.Status, "Game Over! Flap to play again")
	}

	return frame
}
