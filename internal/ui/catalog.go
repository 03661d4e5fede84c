package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) catalogCmd() *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the movies and auditoriums",
		Long: `Show the catalog the timeline is built from.

The catalog is the built-in one unless [cinema] catalog_path points to a
TOML file. --export writes the current catalog to a file that can be
edited and referenced from the config.`,
		Example: `  cinesched catalog
  cinesched catalog --export=catalog.toml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			if export != "" {
				if err := cat.WriteFile(export); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(a.out, "Catalog written to %s\n", export)
				return nil
			}

			var b strings.Builder
			b.WriteString(formatHeader("Movies"))
			b.WriteString("\n")
			for _, m := range cat.Movies {
				fmt.Fprintf(&b, "  %-4s %-30s %3d min  %s\n",
					m.ID,
					truncate(m.Title, 30),
					m.DurationMinutes,
					formatFormat(strings.Join(m.Formats, " ")),
				)
			}
			b.WriteString("\n")
			b.WriteString(formatHeader("Auditoriums"))
			b.WriteString("\n")
			for _, au := range cat.Auditoriums {
				fmt.Fprintf(&b, "  %-4s %-30s %s\n",
					au.ID,
					truncate(au.Name, 30),
					formatFormat(strings.Join(au.SupportedFormats, " ")),
				)
			}
			_, err = fmt.Fprint(a.out, b.String())
			return err
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "Write the catalog to a TOML file")

	return cmd
}
