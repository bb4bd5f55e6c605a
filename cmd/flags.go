package cmd

import (
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
)

type difficultyValue arcade.Difficulty

func newDifficultyValue(val arcade.Difficulty, p *arcade.Difficulty) *difficultyValue {
	*p = val
	return (*difficultyValue)(p)
}

func (that *difficultyValue) String() string {
	return string(*that)
}

func (that *difficultyValue) Set(value string) error {
	difficulty, err := arcade.ParseDifficulty(value)
	if err != nil {
		return err
	}
	*that = difficultyValue(difficulty)
	return nil
}

func (that *difficultyValue) Type() string {
	return "difficulty"
}

type modeValue arcade.Mode

func newModeValue(val arcade.Mode, p *arcade.Mode) *modeValue {
	*p = val
	return (*modeValue)(p)
}

var modes = map[string]arcade.Mode{
	"ai":  arcade.ModeAI,
	"pvp": arcade.ModePvP,
}

func (that *modeValue) String() string {
	return string(*that)
}

func (that *modeValue) Set(value string) error {
	mode, ok := modes[value]
	if !ok {
		return fmt.Errorf("invalid mode %q, want ai or pvp", value)
	}
	*that = modeValue(mode)
	return nil
}

func (that *modeValue) Type() string {
	return "mode"
}
