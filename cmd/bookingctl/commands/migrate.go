package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"booking-platform/internal/core/database"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the booking tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, done, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			if a.DB == nil {
				return errors.New("migrate needs a sql driver; db.driver is memory")
			}
			if err := database.Migrate(cmd.Context(), a.DB); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", a.Cfg.DB.Driver)
			return err
		},
	}
}
