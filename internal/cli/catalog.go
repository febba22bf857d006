package cli

import (
	"fmt"
	"io"

	"github.com/abrunet/asynclab/internal/sequencer"
	"github.com/abrunet/asynclab/internal/ui"
)

// DisplayCatalog lists every available unit with its title and
// explanation, for the list mode.
func DisplayCatalog(units []sequencer.Unit, out io.Writer) {
	fmt.Fprintf(out, "Available units:\n")
	for _, u := range units {
		fmt.Fprintf(out, "  %s%s%s  %s\n", ui.ColorBlue(), u.ID(), ui.ColorReset(), u.Title)
		fmt.Fprintf(out, "      %s\n", u.Explanation)
	}
}
