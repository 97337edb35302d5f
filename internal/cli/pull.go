package cli

import (
	"errors"

	"crosslocale/internal/config"
	"crosslocale/internal/store"
	"crosslocale/internal/trpack"

	"github.com/spf13/cobra"
)

func pullCmd(cfg *config.Config) *cobra.Command {
	var packsDir, mappingFile, indent string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Write the packs saved in PostgreSQL back to disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}
			ctx, cancel := setupContext()
			defer cancel()

			pool, err := store.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			packs, err := store.NewPackStore(pool).LoadPacks(ctx)
			if err != nil {
				return err
			}
			return writePacks(packsDir, mappingFile, indent, packs, mappingFor(packs))
		},
	}

	cmd.Flags().StringVar(&packsDir, "packs-dir", cfg.PacksDir, "Directory the packs are written to")
	cmd.Flags().StringVar(&mappingFile, "mapping-file", cfg.MappingFile, "Path of the packs mapping file")
	cmd.Flags().StringVar(&indent, "indent", cfg.PackIndent, "Indentation of the written JSON files")
	return cmd
}

// mappingFor rebuilds the identity mapping the compiler would have produced.
func mappingFor(packs map[string]trpack.Pack) map[string]string {
	mapping := make(map[string]string, len(packs))
	for path := range packs {
		mapping[path] = path
	}
	return mapping
}
