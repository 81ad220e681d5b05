package main

import (
	"fmt"
	"newswire/db"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsctl",
	Short: "newsctl administers the newswire platform",
	Long: `newsctl is the operator CLI for the newswire platform. It manages the
source catalog, organizations, API keys, and journalist contact data
directly against the database.`,
	PersistentPreRunE:  connectDB,
	PersistentPostRunE: closeDB,
	SilenceUsage:       true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(orgCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(journalistCmd)
}

func connectDB(cmd *cobra.Command, args []string) error {
	godotenv.Load()
	if err := db.Connect(); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	return nil
}

func closeDB(cmd *cobra.Command, args []string) error {
	db.Close()
	return nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Migrate(); err != nil {
			return err
		}
		fmt.Println("Schema applied")
		return nil
	},
}
