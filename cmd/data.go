package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"landscape/internal/catalog"
	"landscape/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the stored dataset with competitors from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		n, err := importDataset(cfg.DBPath, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d competitors into %s\n", n, cfg.DBPath)
		return nil
	},
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored dataset as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		database, err := openStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		list, err := db.ListCompetitors(database)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}
		return catalog.Encode(w, list)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
}

// importDataset validates the file before touching the store, so a bad
// file leaves the previous dataset in place.
func importDataset(dbPath, file string) (int, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	list, err := catalog.Decode(f)
	if err != nil {
		return 0, err
	}
	if err := catalog.Validate(catalog.Default, list); err != nil {
		return 0, fmt.Errorf("invalid dataset: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer database.Close()

	if err := db.ReplaceCompetitors(database, list); err != nil {
		return 0, err
	}
	return len(list), nil
}
