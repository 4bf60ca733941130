// visualize.go - Console rendering of a game snapshot.

package play

import (
	"fmt"
	"strings"

	"github.com/brensch/snekplan/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	wallGlyph   = '#'
	bodyGlyph   = '+'
	targetGlyph = '*'
	emptyGlyph  = ' '
)

func headGlyph(h game.Heading) rune {
	switch h {
	case game.North:
		return '^'
	case game.South:
		return 'v'
	case game.East:
		return '>'
	default:
		return '<'
	}
}

// Board draws snap as plain text: a score/moves line followed by the walled
// board.
func Board(snap game.Snapshot) string {
	return drawBoard(snap, func(_ game.Occupant, r rune) string { return string(r) })
}

var (
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// StyledBoard is Board with terminal colors.
func StyledBoard(snap game.Snapshot) string {
	return drawBoard(snap, func(o game.Occupant, r rune) string {
		switch {
		case r == wallGlyph:
			return wallStyle.Render(string(r))
		case o == game.Body && r != bodyGlyph:
			return headStyle.Render(string(r))
		case o == game.Body:
			return bodyStyle.Render(string(r))
		case o == game.Target:
			return targetStyle.Render(string(r))
		default:
			return string(r)
		}
	})
}

func drawBoard(snap game.Snapshot, paint func(game.Occupant, rune) string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d\n", snap.Score, snap.Moves)

	wall := strings.Repeat(paint(game.Empty, wallGlyph), snap.Width+2)
	sb.WriteString(wall)
	sb.WriteByte('\n')

	for y := 0; y < snap.Height; y++ {
		sb.WriteString(paint(game.Empty, wallGlyph))
		for x := 0; x < snap.Width; x++ {
			c := game.Cell{X: x, Y: y}
			o := snap.Occupant(c)
			var r rune
			switch {
			case o == game.Body && c == snap.Head:
				r = headGlyph(snap.Heading)
			case o == game.Body:
				r = bodyGlyph
			case o == game.Target:
				r = targetGlyph
			default:
				r = emptyGlyph
			}
			sb.WriteString(paint(o, r))
		}
		sb.WriteString(paint(game.Empty, wallGlyph))
		sb.WriteByte('\n')
	}

	sb.WriteString(wall)
	return sb.String()
}
