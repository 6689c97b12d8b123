package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/EgorLis/Champbot/internal/bot"
	"github.com/EgorLis/Champbot/internal/procwatch"
)

var version = "dev"

var (
	flagConfig  string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "champbot",
		Short:         "Компаньон клиента лиги: руны и сборки из внешних источников",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.TimeOnly,
			})))
		},
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "conf/champbot.json", "путь к конфигу")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug-лог (в т.ч. каждый фрейм LCU)")

	root.AddCommand(runCmd(), sourcesCmd(), applyCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		slog.Error("champbot", "err", err)
		os.Exit(1)
	}
}

func newBot() (*bot.Champbot, error) {
	b := bot.New()
	if err := b.UseConfig(flagConfig); err != nil {
		return nil, err
	}
	return b, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Следить за клиентом лиги и держать сессию к LCU",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBot()
			if err != nil {
				return err
			}
			if err := b.Start(); err != nil {
				return err
			}
			defer b.Stop()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("running… press Ctrl+C to stop")
			<-ctx.Done()
			return nil
		},
	}
}

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Показать доступные источники сборок",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBot()
			if err != nil {
				return err
			}
			sources, err := b.Web().FetchSources(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range sources {
				mode := ""
				if s.IsAram {
					mode = " [aram]"
				}
				if s.IsURF {
					mode = " [urf]"
				}
				fmt.Printf("%-20s %s%s\n", s.Value, s.Label, mode)
			}
			return nil
		},
	}
}

func applyCmd() *cobra.Command {
	var gameDir string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Разово записать item-сборки выбранных источников в каталог игры",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBot()
			if err != nil {
				return err
			}
			if gameDir == "" {
				gameDir, _ = procwatch.FindInstallInfo()
			}

			results, err := b.ApplyBuilds(cmd.Context(), gameDir)
			if err != nil {
				return err
			}
			files, failed := 0, 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					continue
				}
				files += r.Files
			}
			slog.Info("apply done", "files", files, "failed", failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&gameDir, "game-dir", "", "каталог игры (по умолчанию — из командной строки клиента)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия champbot",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("champbot", version)
		},
	}
}
