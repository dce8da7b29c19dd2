package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// EmptyCell marks a layout position without a tile.
const EmptyCell = "."

// ParseLayout reads a text grid, one row per line, tile ids separated by
// whitespace. Blank lines are skipped and do not count as rows. Lines starting
// with '#' are comments.
func ParseLayout(reader io.Reader) (map[TileID]Position, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	positions := make(map[TileID]Position)
	row := 0
	line := 0

	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		for col, token := range strings.Fields(s) {
			if token == EmptyCell {
				continue
			}
			id, err := ParseTileID(token)
			if err != nil {
				return nil, fmt.Errorf("layout line %d: %w", line, err)
			}
			if prev, found := positions[id]; found {
				return nil, fmt.Errorf("layout line %d: tile %s already placed at %v", line, id, prev)
			}
			positions[id] = Position{Row: row, Col: col}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return positions, nil
}
