package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"landscape/internal/catalog"
	"landscape/internal/db"
	"landscape/internal/search"
	"landscape/internal/ui"
)

// overpassRadiusMiles covers the outermost distance ring.
const overpassRadiusMiles = 3

var cfgFile string

// Config holds the resolved CLI configuration.
type Config struct {
	ConfigDir        string
	DBPath           string
	OverpassEnabled  bool
	OverpassEndpoint string
	OverpassTimeout  time.Duration
	DebugLog         string
}

var rootCmd = &cobra.Command{
	Use:   "landscape",
	Short: "Explore the competitive landscape around a hotel",
	Long: `landscape maps the restaurants, bars, gyms, spas, coworking spots and hotels
around a reference property. Filter by category, price, cuisine and distance,
check who is open during a time window, and overlay neighborhoods and census data.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.landscape/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (default: ~/.landscape/landscape.db)")

	rootCmd.Flags().Bool("osm", false, "Enable OpenStreetMap enrichment")
	rootCmd.Flags().String("overpass-endpoint", search.DefaultOverpassEndpoint, "Overpass API endpoint")
	rootCmd.Flags().Duration("overpass-timeout", 20*time.Second, "Timeout for Overpass requests")
	rootCmd.Flags().String("debug-log", "", "Write debug logs to this file")

	viper.SetDefault("overpass_endpoint", search.DefaultOverpassEndpoint)
	viper.SetDefault("overpass_timeout", 20*time.Second)
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("overpass_enabled", rootCmd.Flags().Lookup("osm"))
	_ = viper.BindPFlag("overpass_endpoint", rootCmd.Flags().Lookup("overpass-endpoint"))
	_ = viper.BindPFlag("overpass_timeout", rootCmd.Flags().Lookup("overpass-timeout"))
	_ = viper.BindPFlag("debug_log", rootCmd.Flags().Lookup("debug-log"))

	rootCmd.AddCommand(listCmd, importCmd, exportCmd)
}

func initConfig() {
	// .env.local takes precedence; neither overrides the real environment.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("landscape")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".landscape"), nil
}

// loadConfig resolves paths and settings. The onboarding prompt only runs
// for the interactive command.
func loadConfig(interactive bool) (*Config, error) {
	cfg := &Config{
		DBPath:           viper.GetString("db_path"),
		OverpassEnabled:  viper.GetBool("overpass_enabled"),
		OverpassEndpoint: viper.GetString("overpass_endpoint"),
		OverpassTimeout:  viper.GetDuration("overpass_timeout"),
		DebugLog:         viper.GetString("debug_log"),
	}

	if cfg.DBPath == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		cfg.ConfigDir = dir
		cfg.DBPath = filepath.Join(dir, "landscape.db")
	} else {
		cfg.ConfigDir = filepath.Dir(cfg.DBPath)
	}

	if !interactive {
		return cfg, nil
	}

	settings, err := loadOnboardingSettings(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}
	if shouldRunOnboarding(settings) {
		settings, err = runOnboarding(cfg.ConfigDir, cfg.OverpassEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}
	applyOnboarding(cfg, settings)
	return cfg, nil
}

// applyOnboarding merges the saved answers. Explicit flags, environment and
// config file values win.
func applyOnboarding(cfg *Config, settings OnboardingSettings) {
	if !viper.IsSet("overpass_enabled") && settings.OSMEnabled {
		cfg.OverpassEnabled = true
	}
	if settings.OverpassEndpoint != "" && cfg.OverpassEndpoint == search.DefaultOverpassEndpoint {
		cfg.OverpassEndpoint = settings.OverpassEndpoint
	}
}

// openStore opens the database and seeds it with the bundled dataset on
// first use.
func openStore(path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	list, err := catalog.Load()
	if err != nil {
		database.Close()
		return nil, err
	}
	seeded, err := db.SeedCompetitors(database, list)
	if err != nil {
		database.Close()
		return nil, err
	}
	if seeded {
		fmt.Fprintf(os.Stderr, "Seeded %d competitors into %s\n", len(list), path)
	}
	return database, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	database, err := openStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "landscape")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var source search.POISource
	if cfg.OverpassEnabled {
		source = search.NewOverpassClient(cfg.OverpassEndpoint, catalog.Reference.Point, overpassRadiusMiles, cfg.OverpassTimeout)
	} else {
		fmt.Fprintln(os.Stderr, "ℹ  OpenStreetMap enrichment disabled")
	}

	p := tea.NewProgram(ui.New(database, source, ui.DetectTerminalCapabilities()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
