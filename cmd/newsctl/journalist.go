package main

import (
	"fmt"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	contactType  string
	contactValue string
)

var journalistCmd = &cobra.Command{
	Use:   "journalist",
	Short: "Manage journalist profiles and contact points",
}

var journalistShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a journalist profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalistShow,
}

var journalistContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage journalist contact points",
}

var contactAddCmd = &cobra.Command{
	Use:   "add <journalist-name>",
	Short: "Add a contact point for a journalist",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactAdd,
}

var contactStatusCmd = &cobra.Command{
	Use:   "status <contact-id> <status>",
	Short: "Set a contact point's verification status",
	Args:  cobra.ExactArgs(2),
	RunE:  runContactStatus,
}

var journalistRefreshStatsCmd = &cobra.Command{
	Use:   "refresh-stats",
	Short: "Recompute posting volume and top topics for all journalists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewJournalistRepository(db.DB)
		if err := repo.RefreshStats(); err != nil {
			return fmt.Errorf("refresh stats: %w", err)
		}
		fmt.Println("Journalist stats refreshed")
		return nil
	},
}

func init() {
	contactAddCmd.Flags().StringVar(&contactType, "type", "", "contact type: email, phone, twitter, linkedin, or webform (required)")
	contactAddCmd.Flags().StringVar(&contactValue, "value", "", "contact value (required)")
	_ = contactAddCmd.MarkFlagRequired("type")
	_ = contactAddCmd.MarkFlagRequired("value")

	journalistContactCmd.AddCommand(contactAddCmd)
	journalistContactCmd.AddCommand(contactStatusCmd)

	journalistCmd.AddCommand(journalistShowCmd)
	journalistCmd.AddCommand(journalistContactCmd)
	journalistCmd.AddCommand(journalistRefreshStatsCmd)
}

func runJournalistShow(cmd *cobra.Command, args []string) error {
	repo := repository.NewJournalistRepository(db.DB)

	journalist, err := repo.GetByName(args[0])
	if err != nil {
		return fmt.Errorf("get journalist: %w", err)
	}
	if journalist == nil {
		return fmt.Errorf("journalist %q not found", args[0])
	}

	fmt.Printf("ID:            %s\n", journalist.ID)
	fmt.Printf("Name:          %s\n", journalist.Name)
	if journalist.Title != "" {
		fmt.Printf("Title:         %s\n", journalist.Title)
	}
	if journalist.TwitterHandle != "" {
		fmt.Printf("Twitter:       @%s\n", journalist.TwitterHandle)
	}
	if len(journalist.Locations) > 0 {
		fmt.Printf("Locations:     %s\n", strings.Join(journalist.Locations, ", "))
	}
	if len(journalist.TopTopics) > 0 {
		fmt.Printf("Top topics:    %s\n", strings.Join(journalist.TopTopics, ", "))
	}
	fmt.Printf("Posts/month:   %d\n", journalist.AvgMonthlyPosts)

	if len(journalist.ContactPoints) > 0 {
		fmt.Println("Contact points:")
		for _, cp := range journalist.ContactPoints {
			fmt.Printf("  [%d] %s: %s (%s)\n", cp.ID, cp.Type, cp.Value, cp.Status)
		}
	}

	return nil
}

func runContactAdd(cmd *cobra.Command, args []string) error {
	repo := repository.NewJournalistRepository(db.DB)

	journalist, err := repo.GetByName(args[0])
	if err != nil {
		return fmt.Errorf("get journalist: %w", err)
	}
	if journalist == nil {
		return fmt.Errorf("journalist %q not found", args[0])
	}

	cp := &model.ContactPoint{
		JournalistID: journalist.ID,
		Type:         model.ContactPointType(contactType),
		Value:        contactValue,
	}
	if err := cp.Validate(); err != nil {
		return err
	}

	if err := repo.AddContactPoint(cp); err != nil {
		return fmt.Errorf("add contact point: %w", err)
	}

	fmt.Printf("Contact point %d added (%s)\n", cp.ID, cp.Status)
	return nil
}

func runContactStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact point id %q", args[0])
	}

	status := model.ContactPointStatus(args[1])
	if !status.Valid() {
		return model.ErrInvalidContactStatus
	}

	repo := repository.NewJournalistRepository(db.DB)
	ok, err := repo.SetContactPointStatus(id, status)
	if err != nil {
		return fmt.Errorf("update contact point: %w", err)
	}
	if !ok {
		return fmt.Errorf("contact point %d not found", id)
	}

	fmt.Printf("Contact point %d marked %s\n", id, status)
	return nil
}
