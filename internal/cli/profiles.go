package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	reveal "github.com/mpalenque/brush-sub000"
)

// ProfilesOptions holds flags for the profiles command.
type ProfilesOptions struct {
	*RootOptions
	Dump string
}

// ProfileSummary is one row of the profile listing.
type ProfileSummary struct {
	Name             string  `json:"name"`
	Duration         string  `json:"duration"`
	MaxUnitsPerFrame int     `json:"max_units_per_frame"`
	MaskScale        float64 `json:"mask_scale"`
	CornerSeals      bool    `json:"corner_seals"`
}

// ProfileList is the text-printable profile listing.
type ProfileList []ProfileSummary

func (l ProfileList) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDURATION\tUNITS/FRAME\tMASK SCALE\tCORNER SEALS")
	for _, p := range l {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%t\n", p.Name, p.Duration, p.MaxUnitsPerFrame, p.MaskScale, p.CornerSeals)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// NewProfilesCommand creates the profiles command.
func NewProfilesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProfilesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in profiles",
		Long: `List the built-in animation profiles.

With --dump, print one profile as YAML. The output is a valid profile file
and can be edited and passed back with --profile.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dump, "dump", "", "print the named profile as YAML")

	return cmd
}

func runProfiles(opts *ProfilesOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}

	if opts.Dump != "" {
		p, err := reveal.NamedProfile(opts.Dump)
		if err != nil {
			return formatter.Error(WrapExitError(ExitCommandError, "failed to dump profile", err))
		}
		if opts.Format == "json" {
			return formatter.Success(p)
		}
		data, err := p.YAML()
		if err != nil {
			return WrapExitError(ExitFailure, "failed to encode profile", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	var list ProfileList
	for _, name := range reveal.ProfileNames() {
		p, _ := reveal.NamedProfile(name)
		list = append(list, ProfileSummary{
			Name:             p.Name,
			Duration:         p.Duration.String(),
			MaxUnitsPerFrame: p.MaxUnitsPerFrame,
			MaskScale:        p.MaskScale,
			CornerSeals:      p.CornerSeals,
		})
	}
	return formatter.Success(list)
}
