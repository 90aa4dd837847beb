package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/cprcoach/internal/config"
	"github.com/abhisek/cprcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cprcoach",
	Short: "Interactive CPR training in the terminal",
	Long: "CPR Coach walks through the six CPR steps, drills compression rhythm " +
		"with a tap-along metronome and checks knowledge with a short quiz.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(f *pflag.FlagSet) {
	f.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/cprcoach/config.toml)")
	f.String("db", "", "Path to SQLite journal (overrides CPRCOACH_DB); enables persistence")
	f.Bool("persist", false, "Keep progress in the default journal location")
	f.String("log", "", "Write JSON logs to this file (overrides CPRCOACH_LOG)")
	f.String("lang", "", "Display language: en, es, fr, de or zh")
	f.String("age", "", "Age group: children, teens or adults")
}

// loadConfig resolves the configuration, passing only flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	var o config.Overrides
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	o.Language = str("lang")
	o.AgeGroup = str("age")
	o.DBPath = str("db")
	o.LogFile = str("log")
	if flags.Changed("persist") {
		v, _ := flags.GetBool("persist")
		o.Persist = &v
	}

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, o)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the journal path for the inspection commands: the
// configured one, or the default location when persistence is off.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	p := cfg.DBPath
	if p == "" {
		p = config.DefaultDBPath()
	}
	return p, store.EnsureDir(p)
}

// openStore opens the journal database for the inspection commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
