// Gallery commands for the canvas CLI.
package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/canvas/internal/forms"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

func newGalleryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage galleries",
	}
	cmd.AddCommand(newGalleryCreateCmd(a))
	cmd.AddCommand(newGalleryListCmd(a))
	cmd.AddCommand(newGalleryShowCmd(a))
	cmd.AddCommand(newGalleryRenameCmd(a))
	cmd.AddCommand(newGalleryRemoveCmd(a))
	cmd.AddCommand(newGalleryAddPieceCmd(a))
	cmd.AddCommand(newGalleryRemovePieceCmd(a))
	cmd.AddCommand(newGalleryMoveCmd(a))
	return cmd
}

// galleryView is the JSON shape of a gallery with its resolved pieces.
type galleryView struct {
	types.Gallery
	Pieces   []pieceView `json:"pieces,omitempty"`
	Dangling []string    `json:"danglingPieceIDs,omitempty"`
}

func newGalleryCreateCmd(a *app) *cobra.Command {
	var pieceID string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := forms.GalleryForm{Name: args[0]}.Build()
			if err != nil {
				return userError(err)
			}

			return a.withSession(func(s *session) error {
				if pieceID != "" {
					p, err := s.Piece(pieceID)
					if err != nil {
						return fmt.Errorf("piece %q: %w", pieceID, err)
					}
					if g, err = s.CreateGalleryWithPiece(g.Name, p); err != nil {
						return err
					}
				} else if err := s.AddGallery(g); err != nil {
					return err
				}

				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), g)
				}
				okColor.Fprintf(cmd.OutOrStdout(), "Created gallery %s\n", g.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pieceID, "piece", "", "start the gallery with this piece")
	return cmd
}

func newGalleryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List galleries in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				galleries := s.Galleries()
				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					if galleries == nil {
						galleries = []types.Gallery{}
					}
					return writeJSON(out, galleries)
				}
				if len(galleries) == 0 {
					fmt.Fprintln(out, "No galleries")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "#\tID\tNAME\tPIECES\tCREATED")
				for i, g := range galleries {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", i, g.ID, g.Name, g.PieceIDs.Len(), g.CreationDate.Format(time.DateOnly))
				}
				return w.Flush()
			})
		},
	}
}

func newGalleryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a gallery and its pieces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				g, err := s.Gallery(args[0])
				if err != nil {
					return fmt.Errorf("gallery %q: %w", args[0], err)
				}
				pieces, err := s.PiecesInGallery(g.ID)
				if err != nil {
					return err
				}
				dangling := s.DanglingPieceIDs()[g.ID]

				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					v := galleryView{Gallery: g, Dangling: dangling}
					for _, p := range pieces {
						v.Pieces = append(v.Pieces, newPieceView(p, nil))
					}
					return writeJSON(out, v)
				}
				label(out, "ID", g.ID)
				label(out, "Name", g.Name)
				label(out, "Created", g.CreationDate.Format(time.RFC3339))
				label(out, "Pieces", len(pieces))
				for _, p := range pieces {
					fmt.Fprintf(out, "  %s  %s\n", p.ID, p.Title)
				}
				if len(dangling) > 0 {
					warnColor.Fprintf(out, "%d piece ID(s) no longer in the catalogue\n", len(dangling))
				}
				return nil
			})
		},
	}
}

func newGalleryRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a gallery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := forms.GalleryForm{Name: args[1]}
			if err := form.Validate(); err != nil {
				return userError(err)
			}
			return a.withSession(func(s *session) error {
				if err := s.RenameGallery(args[0], form.Name); err != nil {
					return fmt.Errorf("gallery %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed gallery %s\n", args[0])
				return nil
			})
		},
	}
}

func newGalleryRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a gallery; its pieces stay in the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if _, err := s.Gallery(args[0]); err != nil {
					return fmt.Errorf("gallery %q: %w", args[0], err)
				}
				if err := s.RemoveGallery(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed gallery %s\n", args[0])
				return nil
			})
		},
	}
}

func newGalleryAddPieceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-piece <gallery> <piece>",
		Short: "Add a piece to a gallery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if err := s.AddPieceToGallery(args[1], args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added piece %s to gallery %s\n", args[1], args[0])
				return nil
			})
		},
	}
}

func newGalleryRemovePieceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-piece <gallery> <piece>",
		Short: "Remove a piece from a gallery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if err := s.RemovePieceFromGallery(args[1], args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed piece %s from gallery %s\n", args[1], args[0])
				return nil
			})
		},
	}
}

func newGalleryMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <to> <from>...",
		Short: "Reorder galleries",
		Long: "Move the galleries at positions <from> so they sit before the gallery\n" +
			"currently at position <to>. Positions are 0-based as shown by\n" +
			"'gallery list'; <to> may equal the gallery count to move to the end.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offsets, err := parseOffsets(args)
			if err != nil {
				return userError(err)
			}
			return a.withSession(func(s *session) error {
				if err := s.ReorderGalleries(offsets[1:], offsets[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Galleries reordered")
				return nil
			})
		},
	}
}

func parseOffsets(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("position %q: %w", arg, types.ErrInvalidIndex)
		}
		out[i] = n
	}
	return out, nil
}
