// Watch command for the canvas CLI.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/canvas/internal/capture"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

func newWatchCmd(a *app) *cobra.Command {
	var galleryID string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Catalogue every image dropped into a directory",
		Long: "Watch <dir> and add each new image file as a piece titled after the\n" +
			"file name. Runs until interrupted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return classify(err)
			}
			if !info.IsDir() {
				return userError(fmt.Errorf("%s is not a directory", args[0]))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.withSession(func(s *session) error {
				if galleryID != "" {
					if _, err := s.Gallery(galleryID); err != nil {
						return fmt.Errorf("gallery %q: %w", galleryID, err)
					}
				}
				inbox := &capture.Inbox{
					Dir:     args[0],
					Encode:  a.settings.Encode,
					Logger:  a.log,
					Handler: publishHandler(s, types.OptionalString(galleryID), a.log),
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl-C to stop)\n", args[0])
				return inbox.Run(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&galleryID, "gallery", "", "add captured pieces to this gallery")
	return cmd
}

// publishHandler adds each captured item to the catalogue as a new piece.
func publishHandler(s *session, galleryID types.Optional[string], log logrus.FieldLogger) capture.Handler {
	return func(_ context.Context, item capture.Item) error {
		piece := types.NewArtPiece(item.Title, item.JPEG)
		if err := s.PublishPiece(piece, galleryID); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"piece_id": piece.ID, "path": item.Path}).Info("piece published")
		return nil
	}
}
