// Status command for the canvas CLI.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/canvas/pkg/kv"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

// statusView is the JSON shape of the status report.
type statusView struct {
	ConfigDir string         `json:"configDir"`
	Backend   string         `json:"backend"`
	Location  string         `json:"location"`
	Pieces    int            `json:"pieces"`
	Galleries int            `json:"galleries"`
	Dangling  int            `json:"danglingPieceIDs"`
	KeyBytes  map[string]int `json:"keyBytes"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the catalogue lives and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				v := statusView{
					ConfigDir: a.configDir,
					Backend:   a.settings.Store.Backend,
					Location:  kv.Location(s.kv),
					Pieces:    len(s.Pieces()),
					Galleries: len(s.Galleries()),
					KeyBytes:  make(map[string]int),
				}
				for _, ids := range s.DanglingPieceIDs() {
					v.Dangling += len(ids)
				}
				for _, key := range types.StorageKeys {
					data, err := s.kv.Get(key)
					if errors.Is(err, types.ErrKeyNotFound) {
						continue
					}
					if err != nil {
						return sysError(fmt.Errorf("read %s: %w", key, err))
					}
					v.KeyBytes[key] = len(data)
				}

				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					return writeJSON(out, v)
				}
				label(out, "Config", v.ConfigDir)
				label(out, "Backend", v.Backend)
				label(out, "Location", v.Location)
				label(out, "Pieces", v.Pieces)
				label(out, "Galleries", v.Galleries)
				for _, key := range types.StorageKeys {
					if n, ok := v.KeyBytes[key]; ok {
						label(out, key, fmt.Sprintf("%d bytes", n))
					} else {
						label(out, key, "(not stored)")
					}
				}
				if v.Dangling > 0 {
					warnColor.Fprintf(out, "%d gallery reference(s) point at removed pieces\n", v.Dangling)
				}
				return nil
			})
		},
	}
}
