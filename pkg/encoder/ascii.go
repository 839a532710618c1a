package encoder

import (
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// ASCII renders frame as a bordered text grid: '*' for any lit pixel,
// a space for black. Meant for eyeballing small renders in a terminal.
func ASCII(frame *core.Frame) (string, error) {
	if err := frame.Validate(); err != nil {
		return "", err
	}

	border := "*" + strings.Repeat("-", frame.Width) + "*"

	var sb strings.Builder
	sb.WriteString(border)
	sb.WriteByte('\n')
	for _, row := range frame.Pixels {
		sb.WriteByte('|')
		for _, c := range row {
			if c.IsBlack() {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('*')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String(), nil
}
