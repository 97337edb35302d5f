package cli

import (
	"context"
	"errors"
	"fmt"

	"crosslocale/internal/config"
	"crosslocale/internal/filewalker"
	"crosslocale/internal/gettextpo"
	"crosslocale/internal/store"
	"crosslocale/internal/trpack"
	"crosslocale/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type compileOptions struct {
	componentsDir string
	packsDir      string
	mappingFile   string
	workers       int
	skipBad       bool
	indent        string
	databaseURL   string
	saveToStore   bool
}

func compileCmd(cfg *config.Config) *cobra.Command {
	opts := compileOptions{
		componentsDir: cfg.ComponentsDir,
		databaseURL:   cfg.DatabaseURL,
	}

	cmd := &cobra.Command{
		Use:   "compile [components-dir]",
		Short: "Parse every catalog in a directory and write translation packs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.componentsDir = args[0]
			}
			ctx, cancel := setupContext()
			defer cancel()
			return runCompile(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.packsDir, "packs-dir", cfg.PacksDir, "Directory the compiled packs are written to")
	cmd.Flags().StringVar(&opts.mappingFile, "mapping-file", cfg.MappingFile, "Path of the packs mapping file")
	cmd.Flags().IntVar(&opts.workers, "workers", cfg.WorkerCount, "Number of catalogs parsed in parallel")
	cmd.Flags().BoolVar(&opts.skipBad, "skip-bad", cfg.SkipBadCatalogs, "Log and skip malformed catalogs instead of aborting")
	cmd.Flags().StringVar(&opts.indent, "indent", cfg.PackIndent, "Indentation of the written JSON files")
	cmd.Flags().BoolVar(&opts.saveToStore, "store", false, "Also save the compiled packs to PostgreSQL (DATABASE_URL)")

	return cmd
}

// catalogError ties a parse error to the catalog it came from.
type catalogError struct {
	path string
	src  string
	err  *gettextpo.ParseError
}

func (e *catalogError) Error() string {
	return fmt.Sprintf("%s:%s", e.path, e.err.Error())
}

func (e *catalogError) Unwrap() error { return e.err }

// Pretty renders the multi-line diagnostic with the offending source line.
func (e *catalogError) Pretty() string {
	return e.err.Format(e.path, e.src)
}

func parseCatalog(path, src string) ([]*gettextpo.Message, error) {
	messages, err := gettextpo.ParseAll(src)
	if err != nil {
		var perr *gettextpo.ParseError
		if errors.As(err, &perr) {
			return messages, &catalogError{path: path, src: src, err: perr}
		}
		return messages, err
	}
	return messages, nil
}

func logCatalogError(err error) {
	var cerr *catalogError
	if errors.As(err, &cerr) {
		log.Error().Msg(cerr.Pretty())
		return
	}
	log.Error().Err(err).Msg("Failed to parse catalog")
}

// compileCatalogs parses every component of opts.componentsDir and folds the
// messages into one compiler. Documents are folded in component ID order so
// the result doesn't depend on which worker finished first.
func compileCatalogs(ctx context.Context, opts compileOptions) (*trpack.Compiler, error) {
	walker := filewalker.NewWalker()
	components, err := walker.Walk(opts.componentsDir)
	if err != nil {
		return nil, fmt.Errorf("walk components directory: %w", err)
	}

	pool := worker.NewPool[filewalker.Component, []*gettextpo.Message](opts.workers,
		func(ctx context.Context, c filewalker.Component) ([]*gettextpo.Message, error) {
			src, err := walker.ReadComponent(c)
			if err != nil {
				return nil, err
			}
			return parseCatalog(c.Path, src)
		},
	)

	log.Info().
		Int("components", len(components)).
		Int("workers", pool.Workers()).
		Msg("Parsing and compiling components")

	documents := make([][]*gettextpo.Message, len(components))
	skipped := 0
	err = pool.Run(ctx, components, func(res worker.Result[filewalker.Component, []*gettextpo.Message]) error {
		if res.Err != nil {
			logCatalogError(res.Err)
			if !opts.skipBad {
				return fmt.Errorf("parse component %s: %w", res.Input.ID, res.Err)
			}
			log.Warn().Str("component", res.Input.ID).Msg("Skipping malformed component")
			skipped++
			return nil
		}
		documents[res.Index] = res.Value
		log.Debug().Str("component", res.Input.ID).Int("messages", len(res.Value)).Msg("Parsed component")
		return nil
	})
	if err != nil {
		return nil, err
	}

	compiler := trpack.NewCompiler()
	for _, messages := range documents {
		for _, msg := range messages {
			compiler.AddFragment(msg)
		}
	}

	log.Info().
		Int("components", len(components)).
		Int("skipped", skipped).
		Int("packs", compiler.Len()).
		Msg("Compilation complete")

	return compiler, nil
}

func runCompile(ctx context.Context, opts compileOptions) error {
	compiler, err := compileCatalogs(ctx, opts)
	if err != nil {
		return err
	}

	if err := writePacks(opts.packsDir, opts.mappingFile, opts.indent, compiler.Packs(), compiler.Mapping()); err != nil {
		return err
	}

	if !opts.saveToStore {
		return nil
	}
	if opts.databaseURL == "" {
		return errors.New("--store requires DATABASE_URL to be set")
	}

	pool, err := store.Connect(ctx, opts.databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	packStore := store.NewPackStore(pool)
	if err := packStore.EnsureSchema(ctx); err != nil {
		return err
	}
	if _, err := packStore.SavePacks(ctx, compiler.Packs()); err != nil {
		return fmt.Errorf("save packs: %w", err)
	}
	return nil
}

func writePacks(packsDir, mappingFile, indent string, packs map[string]trpack.Pack, mapping map[string]string) error {
	w := &trpack.Writer{Indent: indent}

	log.Info().Int("packs", len(packs)).Str("dir", packsDir).Msg("Writing compiled translation packs")
	written, err := w.WritePacks(packsDir, packs)
	if err != nil {
		return fmt.Errorf("write packs: %w", err)
	}
	for _, path := range written {
		log.Debug().Str("path", path).Msg("Pack written")
	}

	log.Info().Str("path", mappingFile).Msg("Writing the mapping file")
	if err := w.WriteMapping(mappingFile, mapping); err != nil {
		return err
	}
	return nil
}
