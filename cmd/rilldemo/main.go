// Command rilldemo runs small demonstrations of demand-driven streams:
// a throttled timer, a pausable consumer, and a share-replay hub.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config holds the settings shared by every demo command.
type config struct {
	LogLevel string `mapstructure:"log_level"`

	// Timer interval for the timer demo,
	// and the resume interval for the pausable demo.
	Interval time.Duration `mapstructure:"interval"`

	// Number of timer ticks; negative means unbounded.
	Times int64 `mapstructure:"times"`

	// How long the timer demo runs before canceling; zero waits for completion.
	CancelAfter time.Duration `mapstructure:"cancel_after"`

	// Replay capacity for the share-replay demo; negative means unbounded.
	Capacity int `mapstructure:"capacity"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "rilldemo",
		Short:        "Demonstrate demand-driven streams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if f := v.GetString("config"); f != "" {
				v.SetConfigFile(f)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file: %w", err)
				}
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "optional config file")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Duration("interval", time.Second, "timer interval")
	flags.Int64("times", 6, "number of timer ticks (negative for unbounded)")
	flags.Duration("cancel-after", 3500*time.Millisecond, "cancel the timer demo after this long (0 to wait for completion)")
	flags.Int("capacity", 2, "share-replay capacity (negative for unbounded)")

	for _, name := range []string{"config", "log-level", "interval", "times", "cancel-after", "capacity"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)); err != nil {
			panic(fmt.Errorf("BUG: failed to bind flag %q: %w", name, err))
		}
	}

	v.SetEnvPrefix("RILL")
	v.AutomaticEnv()

	load := func() (config, *slog.Logger, error) {
		var cfg config
		if err := v.Unmarshal(&cfg); err != nil {
			return cfg, nil, fmt.Errorf("failed to decode config: %w", err)
		}

		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return cfg, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return cfg, log, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "timer",
			Short: "Run a demand-throttled timer and cancel it partway",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := load()
				if err != nil {
					return err
				}
				_, err = runTimer(cmd.Context(), log, cfg)
				return err
			},
		},
		&cobra.Command{
			Use:   "pausable",
			Short: "Consume 1 through 6, pausing on odd values and resuming on a timer",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := load()
				if err != nil {
					return err
				}
				_, err = runPausable(cmd.Context(), log, cfg)
				return err
			},
		},
		&cobra.Command{
			Use:   "replay",
			Short: "Share one subject among subscribers that join at different times",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, log, err := load()
				if err != nil {
					return err
				}
				_, err = runReplay(cmd.Context(), log, cfg)
				return err
			},
		},
	)

	return root
}
