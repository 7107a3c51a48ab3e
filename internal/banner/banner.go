package banner

import (
	"io"

	"github.com/fatih/color"
)

const art = `
              __           ___  __        __  ___
        |  | |__) |    \_/  |  |__)  /\  /  ` + "`" + `  |
        \__/ |  \ |___ / \  |  |  \ /~~\ \__,  |
`

// Print writes the banner to w. Colour follows fatih/color's terminal
// detection, so redirected output stays plain.
func Print(w io.Writer) {
	color.New(color.FgHiCyan, color.Bold).Fprintln(w, art)
}
