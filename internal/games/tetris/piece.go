package tetris

import "fmt"

// Type is a tetromino letter.
type Type byte

func (that Type) MarshalText() ([]byte, error) {
	return []byte{byte(that)}, nil
}

func (that *Type) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid piece type %q", text)
	}
	*that = Type(text[0])
	return nil
}

// Shapes are square matrices so that rotation keeps the bounding box.
var shapes = map[Type][][]int{
	'I': {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	'J': {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	'L': {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
	'O': {
		{1, 1},
		{1, 1},
	},
	'S': {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	'T': {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	'Z': {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
}

// Types in the order they are drawn from.
var Types = []Type{'I', 'J', 'L', 'O', 'S', 'T', 'Z'}

// wall kicks tried after a rotation, in order
var kicks = [][2]int{
	{0, 0},
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

type Piece struct {
	Type  Type    `json:"type"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Shape [][]int `json:"shape"`
}

// NewPiece - spawns a piece at the top, I starts one column further left.
func NewPiece(kind Type) Piece {
	x := 4
	if kind == 'I' {
		x = 3
	}

	return Piece{Type: kind, X: x, Y: 0, Shape: copyShape(shapes[kind])}
}

func copyShape(shape [][]int) [][]int {
	out := make([][]int, len(shape))
	for i, row := range shape {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Rotate - returns the shape turned 90 degrees clockwise.
func Rotate(shape [][]int) [][]int {
	n := len(shape)
	rotated := make([][]int, n)
	for i := range rotated {
		rotated[i] = make([]int, n)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			rotated[x][n-1-y] = shape[y][x]
		}
	}

	return rotated
}

// cells calls visit with the board coordinates of every filled block.
func (that Piece) cells(visit func(x, y int)) {
	for y, row := range that.Shape {
		for x, filled := range row {
			if filled != 0 {
				visit(that.X+x, that.Y+y)
			}
		}
	}
}

// rotationOf - whether the shape is one of the four rotations of the tetromino.
func (that Piece) rotationOf(kind Type) bool {
	shape, ok := shapes[kind]
	if !ok {
		return false
	}

	for range 4 {
		if sameShape(shape, that.Shape) {
			return true
		}
		shape = Rotate(shape)
	}

	return false
}

func sameShape(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}

	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}

	return true
}
