// Piece commands for the canvas CLI.
package cli

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/canvas/internal/capture"
	"github.com/mesh-intelligence/canvas/internal/forms"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

func newPieceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "piece",
		Short: "Manage art pieces",
	}
	cmd.AddCommand(newPieceAddCmd(a))
	cmd.AddCommand(newPieceListCmd(a))
	cmd.AddCommand(newPieceShowCmd(a))
	cmd.AddCommand(newPieceRemoveCmd(a))
	cmd.AddCommand(newPieceExportCmd(a))
	return cmd
}

// pieceView is the JSON shape of a piece. Image bytes are summarised.
type pieceView struct {
	ID            string                     `json:"id"`
	Title         string                     `json:"title"`
	DateStarted   types.Optional[types.Date] `json:"dateStarted"`
	DateCompleted types.Optional[types.Date] `json:"dateCompleted"`
	Medium        types.Optional[string]     `json:"medium"`
	Dimensions    types.Optional[string]     `json:"dimensions"`
	Inspiration   types.Optional[string]     `json:"inspiration"`
	Notes         types.Optional[string]     `json:"notes"`
	ImageBytes    int                        `json:"imageBytes"`
	UploadDate    time.Time                  `json:"uploadDate"`
	GalleryIDs    []string                   `json:"galleryIDs,omitempty"`
}

func newPieceView(p types.ArtPiece, galleries []types.Gallery) pieceView {
	v := pieceView{
		ID:            p.ID,
		Title:         p.Title,
		DateStarted:   p.DateStarted,
		DateCompleted: p.DateCompleted,
		Medium:        p.Medium,
		Dimensions:    p.Dimensions,
		Inspiration:   p.Inspiration,
		Notes:         p.Notes,
		ImageBytes:    len(p.ImageData),
		UploadDate:    p.UploadDate,
	}
	for _, g := range galleries {
		v.GalleryIDs = append(v.GalleryIDs, g.ID)
	}
	return v
}

func newPieceAddCmd(a *app) *cobra.Command {
	form := forms.NewPieceForm()
	var galleryID, crop string

	cmd := &cobra.Command{
		Use:   "add <image>",
		Short: "Catalogue a new piece from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return userError(err)
			}
			opts := a.settings.Encode
			if crop != "" {
				rect, err := parseCrop(crop)
				if err != nil {
					return userError(err)
				}
				opts.Crop = rect
			}

			img, err := capture.FileProvider{Path: args[0]}.Capture(cmd.Context())
			if err != nil {
				return classify(err)
			}
			data, err := capture.Encode(img, opts)
			if err != nil {
				return classify(err)
			}
			piece, err := form.Build(data)
			if err != nil {
				return userError(err)
			}

			return a.withSession(func(s *session) error {
				if err := s.PublishPiece(piece, types.OptionalString(galleryID)); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), newPieceView(piece, s.GalleriesForPiece(piece.ID)))
				}
				okColor.Fprintf(cmd.OutOrStdout(), "Added piece %s\n", piece.ID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Title, "title", form.Title, "title of the piece")
	f.StringVar(&form.Medium, "medium", "", "medium, e.g. oil on canvas")
	f.StringVar(&form.Height, "height", "", "height")
	f.StringVar(&form.Width, "width", "", "width")
	f.StringVar(&form.Depth, "depth", "", "depth")
	f.StringVar(&form.Unit, "unit", form.Unit, "dimension unit: cm or in")
	f.StringVar(&form.Inspiration, "inspiration", "", "what inspired the piece")
	f.StringVar(&form.Notes, "notes", "", "additional notes")
	f.StringVar(&form.DateStarted, "started", "", "date started (YYYY-MM-DD)")
	f.StringVar(&form.DateCompleted, "completed", "", "date completed (YYYY-MM-DD)")
	f.StringVar(&galleryID, "gallery", "", "also add the piece to this gallery")
	f.StringVar(&crop, "crop", "", "crop rectangle x0,y0,x1,y1 in source pixels")
	return cmd
}

// parseCrop parses "x0,y0,x1,y1".
func parseCrop(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("crop %q: want x0,y0,x1,y1", s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("crop %q: %w", s, err)
		}
		n[i] = v
	}
	r := image.Rect(n[0], n[1], n[2], n[3])
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("crop %q: %w", s, capture.ErrEmptyImage)
	}
	return r, nil
}

func newPieceListCmd(a *app) *cobra.Command {
	var galleryID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pieces in catalogue order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				pieces := s.Pieces()
				if galleryID != "" {
					var err error
					if pieces, err = s.PiecesInGallery(galleryID); err != nil {
						return fmt.Errorf("gallery %q: %w", galleryID, err)
					}
				}

				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					views := make([]pieceView, 0, len(pieces))
					for _, p := range pieces {
						views = append(views, newPieceView(p, nil))
					}
					return writeJSON(out, views)
				}
				if len(pieces) == 0 {
					fmt.Fprintln(out, "No pieces")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tMEDIUM\tUPLOADED")
				for _, p := range pieces {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Medium.OrElse("-"), p.UploadDate.Format(time.DateOnly))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&galleryID, "gallery", "", "only pieces in this gallery")
	return cmd
}

func newPieceShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a piece with full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				p, err := s.Piece(args[0])
				if err != nil {
					return fmt.Errorf("piece %q: %w", args[0], err)
				}
				galleries := s.GalleriesForPiece(p.ID)

				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					return writeJSON(out, newPieceView(p, galleries))
				}
				label(out, "ID", p.ID)
				label(out, "Title", p.Title)
				label(out, "Medium", p.Medium.OrElse("-"))
				label(out, "Dimensions", p.Dimensions.OrElse("-"))
				label(out, "Started", optionalDate(p.DateStarted))
				label(out, "Completed", optionalDate(p.DateCompleted))
				label(out, "Inspiration", p.Inspiration.OrElse("-"))
				label(out, "Notes", p.Notes.OrElse("-"))
				label(out, "Image", fmt.Sprintf("%d bytes", len(p.ImageData)))
				label(out, "Uploaded", p.UploadDate.Format(time.RFC3339))
				names := make([]string, 0, len(galleries))
				for _, g := range galleries {
					names = append(names, g.Name)
				}
				label(out, "Galleries", strings.Join(names, ", "))
				return nil
			})
		},
	}
}

func optionalDate(d types.Optional[types.Date]) string {
	if v, ok := d.Get(); ok {
		return v.String()
	}
	return "-"
}

func newPieceRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a piece from the catalogue",
		Long: "Remove a piece. Galleries keep its ID unless cascade_piece_removal\n" +
			"is enabled in config.yaml.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if _, err := s.Piece(args[0]); err != nil {
					return fmt.Errorf("piece %q: %w", args[0], err)
				}
				if err := s.RemovePiece(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed piece %s\n", args[0])
				return nil
			})
		},
	}
}

func newPieceExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <out.jpg>",
		Short: "Write a piece's stored image to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				p, err := s.Piece(args[0])
				if err != nil {
					return fmt.Errorf("piece %q: %w", args[0], err)
				}
				if len(p.ImageData) == 0 {
					return userError(errors.New("piece has no image data"))
				}
				if err := os.WriteFile(args[1], p.ImageData, 0o644); err != nil {
					return sysError(fmt.Errorf("write %s: %w", args[1], err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(p.ImageData), args[1])
				return nil
			})
		},
	}
}
