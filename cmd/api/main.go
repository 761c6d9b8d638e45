package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drnote",
		Short: "DrNote patient records with appointment reminders",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(pendingCmd())
	rootCmd.AddCommand(deliveredCmd())
	return rootCmd
}
