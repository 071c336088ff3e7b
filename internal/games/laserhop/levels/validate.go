package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// BuildBoard converts level rows into a board and validates it.
// Checks:
//   - exactly engine.Rows rows of engine.Cols cells
//   - every cell is a known colour
//   - at least one green cell
func BuildBoard(rows []string) (engine.Board, error) {
	var b engine.Board

	if len(rows) != engine.Rows {
		return b, ValidationError{
			Code:    "ROW_COUNT",
			Message: fmt.Sprintf("expected %d rows, got %d", engine.Rows, len(rows)),
		}
	}

	for row, line := range rows {
		cells, err := parseRow(line)
		if err != nil {
			return b, ValidationError{
				Code:    "UNKNOWN_COLOR",
				Message: fmt.Sprintf("row %d: %v", row+1, err),
			}
		}
		if len(cells) != engine.Cols {
			return b, ValidationError{
				Code:    "ROW_WIDTH",
				Message: fmt.Sprintf("row %d has %d cells, expected %d", row+1, len(cells), engine.Cols),
			}
		}
		for col, c := range cells {
			b[engine.Index(row, col)] = c
		}
	}

	if b.Targets() == 0 {
		return b, ValidationError{
			Code:    "NO_TARGETS",
			Message: "level has no green cells",
		}
	}

	return b, nil
}

// parseRow accepts either whitespace-separated colour names or a compact
// string of cell characters.
func parseRow(line string) ([]engine.Cell, error) {
	fields := strings.Fields(line)
	if len(fields) > 1 {
		cells := make([]engine.Cell, 0, len(fields))
		for _, f := range fields {
			c, ok := engine.ParseCell(f)
			if !ok {
				return nil, fmt.Errorf("unknown colour %q", f)
			}
			cells = append(cells, c)
		}
		return cells, nil
	}

	var cells []engine.Cell
	for _, r := range strings.TrimSpace(line) {
		c, ok := engine.ParseCellChar(r)
		if !ok {
			return nil, fmt.Errorf("unknown cell %q", r)
		}
		cells = append(cells, c)
	}
	return cells, nil
}
