// Reset command for the canvas CLI.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every piece and gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError(errors.New("reset deletes the whole catalogue; pass --yes to confirm"))
			}
			return a.withSession(func(s *session) error {
				if err := s.ResetAllData(); err != nil {
					return err
				}
				warnColor.Fprintln(cmd.OutOrStdout(), "Catalogue reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
