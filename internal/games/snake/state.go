package snake

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

type Snapshot struct {
	Snake     []arcade.Position `json:"snake"`
	Food      arcade.Position   `json:"food"`
	Direction Direction         `json:"direction"`
	Score     int               `json:"score"`
	Status    arcade.Status     `json:"status"`
	Won       bool              `json:"won,omitempty"`
	Size      int               `json:"size"`
}

type state struct {
	Snapshot
	Moved Direction `json:"moved"`
}

func (that *Game) Snapshot() any {
	return Snapshot{
		Snake:     that.segments(),
		Food:      that.food,
		Direction: that.direction,
		Score:     that.score,
		Status:    that.status,
		Won:       that.won,
		Size:      Size,
	}
}

func (that *Game) MarshalJSON() ([]byte, error) {
	snapshot, _ := that.Snapshot().(Snapshot)
	return json.Marshal(state{Snapshot: snapshot, Moved: that.moved})
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var saved state
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal snake: %w", err)
	}

	if len(saved.Snake) == 0 {
		return fmt.Errorf("failed to unmarshal snake: empty body")
	}

	that.body.Clear()
	for _, segment := range saved.Snake {
		that.body.PushBack(segment)
	}
	that.food = saved.Food
	that.direction = saved.Direction
	that.moved = saved.Moved
	that.score = saved.Score
	that.status = saved.Status
	that.won = saved.Won

	return nil
}

func (that *Game) View() arcade.Frame {
	frame := arcade.NewFrame("Snake", Size, Size)

	frame.Set(that.food.Row, that.food.Col, '●', arcade.ToneSecondary)
	for i, segment := range that.segments() {
		r := '■'
		if i == 0 {
			r = '◆'
		}
		frame.Set(segment.Row, segment.Col, r, arcade.TonePrimary)
	}

	frame.Status = []string{fmt.Sprintf("Score: %d", that.score)}
	if that.status == arcade.StatusFinished {
		if that.won {
			frame.Status = append(frame.Status, "You filled the board!")
		} else {
			frame.Status = append(frame.Status, "Game Over!")
		}
	}

	return frame
}
