package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"drnote/internal/infrastructure/database/sqlite"
	"drnote/internal/pkg/config"
	appLogger "drnote/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func openStore() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := sqlite.Open(cfg.DBURL, appLogger.New("warn"))
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List reminders waiting to fire",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer sqlite.Close(db)

			reminders, err := sqlite.NewPendingReminderRepository(db).FindAll(context.Background())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FIRE AT\tNOTIFICATION ID\tBODY")
			for _, r := range reminders {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.FireAt.In(cfg.Location).Format(time.DateTime), r.NotificationID, r.Body)
			}
			return w.Flush()
		},
	}
}

func deliveredCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "delivered",
		Short: "List the most recently delivered reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer sqlite.Close(db)

			delivered, err := sqlite.NewDeliveredReminderRepository(db).FindRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DELIVERED AT\tBANNER\tSOUND\tBODY")
			for _, d := range delivered {
				fmt.Fprintf(w, "%s\t%t\t%t\t%s\n", d.DeliveredAt.In(cfg.Location).Format(time.DateTime), d.Banner, d.Sound, d.Body)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
