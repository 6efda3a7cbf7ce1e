package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"coordinate-extractor/internal/config"
	"coordinate-extractor/internal/repository"
	"coordinate-extractor/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	file      string
	configDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Import extracted polygon coordinates into PostGIS",
		Long: `importer reads the coordinate CSV written by the api process and replaces
the contents of the polygons table with one polygon per row.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&file, "file", "f", "", "Path to the coordinate CSV (default: OUTPUT_PATH from config)")
	rootCmd.Flags().StringVar(&configDir, "config-dir", "configs", "Directory containing app.env")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg.DBSource == "" {
		return fmt.Errorf("DB_SOURCE is not configured")
	}
	if file == "" {
		file = cfg.OutputPath
	}

	log.Info().Str("file", file).Msg("starting import")

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer conn.Close(context.Background())

	importService := service.NewImportService(
		repository.NewCSVRepository(afero.NewOsFs()),
		repository.NewPolygonRepository(conn),
	)

	result, err := importService.Import(ctx, file)
	if err != nil {
		return err
	}

	log.Info().
		Int("rows", result.Rows).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("import finished")
	return nil
}
