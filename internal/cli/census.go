package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	reveal "github.com/mpalenque/brush-sub000"
)

// CensusOptions holds flags for the census command.
type CensusOptions struct {
	*RootOptions
	SessionFlags
}

// CensusResult is the census of one generated session.
type CensusResult struct {
	Viewport string             `json:"viewport"`
	Mask     string             `json:"mask"`
	Rows     []reveal.CensusRow `json:"rows"`
}

func (c CensusResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "viewport %s, mask %s\n", c.Viewport, c.Mask)
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "KIND\tCOUNT\tSTEPS\tUNITS\t")
	var total reveal.CensusRow
	for _, r := range c.Rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t\n", r.Kind, r.Count, r.Steps, r.Units)
		total.Steps += r.Steps
		total.Units += r.Units
	}
	fmt.Fprintf(w, "total\t\t%d\t%d\t\n", total.Steps, total.Units)
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// NewCensusCommand creates the census command.
func NewCensusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CensusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "census",
		Short: "Print the generated entities per kind",
		Long: `Generate the entity collections for a viewport and print, per kind,
the population, the total number of steps and the nominal work units.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCensus(opts, cmd)
		},
	}

	opts.register(cmd)

	return cmd
}

func runCensus(opts *CensusOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}

	// The census needs no background.
	opts.Background = backgroundNone
	s, err := opts.session(cmd)
	if err != nil {
		return formatter.Error(err)
	}
	l := s.Layout()
	return formatter.Success(CensusResult{
		Viewport: fmt.Sprintf("%dx%d", l.Viewport.W, l.Viewport.H),
		Mask:     fmt.Sprintf("%dx%d", l.W, l.H),
		Rows:     reveal.Census(s.Collections()),
	})
}
