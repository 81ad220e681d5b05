package main

import (
	"fmt"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	keyOrg  string
	keyName string
	keyMode string
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage API keys",
}

var keyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue an API key for an organization",
	Args:  cobra.NoArgs,
	RunE:  runKeyCreate,
}

var keyRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyRevoke,
}

func init() {
	keyCreateCmd.Flags().StringVar(&keyOrg, "org", "", "organization slug (required)")
	keyCreateCmd.Flags().StringVar(&keyName, "name", "", "key name (required)")
	keyCreateCmd.Flags().StringVar(&keyMode, "mode", "", "access mode (defaults to the plan's maximum)")
	_ = keyCreateCmd.MarkFlagRequired("org")
	_ = keyCreateCmd.MarkFlagRequired("name")

	keyRevokeCmd.Flags().StringVar(&keyOrg, "org", "", "organization slug (required)")
	_ = keyRevokeCmd.MarkFlagRequired("org")

	keyCmd.AddCommand(keyCreateCmd)
	keyCmd.AddCommand(keyRevokeCmd)
}

func runKeyCreate(cmd *cobra.Command, args []string) error {
	accountRepo := repository.NewAccountRepository(db.DB)
	keyRepo := repository.NewKeyRepository(db.DB)

	org, err := accountRepo.GetOrgBySlug(keyOrg)
	if err != nil {
		return fmt.Errorf("get organization: %w", err)
	}
	if org == nil {
		return fmt.Errorf("unknown organization %q", keyOrg)
	}

	plan, err := accountRepo.GetPlanByID(org.PlanID)
	if err != nil {
		return fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("organization %q has no plan", keyOrg)
	}

	mode := plan.MaxAccessMode
	if keyMode != "" {
		mode = model.AccessMode(keyMode)
		if !mode.Valid() {
			return fmt.Errorf("unknown access mode %q", keyMode)
		}
		if mode.Exceeds(plan.MaxAccessMode) {
			return fmt.Errorf("access mode %s exceeds plan limit %s", mode, plan.MaxAccessMode)
		}
	}

	key := &model.APIKey{
		OrgID:      org.ID,
		Name:       keyName,
		Token:      model.NewKeyToken(),
		AccessMode: mode,
	}

	if err := keyRepo.Create(key); err != nil {
		return fmt.Errorf("create key: %w", err)
	}

	fmt.Printf("Created key %d (%s, %s)\n", key.ID, key.Name, key.AccessMode)
	fmt.Printf("Token (shown once): %s\n", key.Token)
	return nil
}

func runKeyRevoke(cmd *cobra.Command, args []string) error {
	keyID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid key id %q", args[0])
	}

	accountRepo := repository.NewAccountRepository(db.DB)
	keyRepo := repository.NewKeyRepository(db.DB)

	org, err := accountRepo.GetOrgBySlug(keyOrg)
	if err != nil {
		return fmt.Errorf("get organization: %w", err)
	}
	if org == nil {
		return fmt.Errorf("unknown organization %q", keyOrg)
	}

	ok, err := keyRepo.Revoke(keyID, org.ID)
	if err != nil {
		return fmt.Errorf("revoke key: %w", err)
	}
	if !ok {
		return fmt.Errorf("key %d not found in %s", keyID, org.Slug)
	}

	fmt.Printf("Revoked key %d\n", keyID)
	return nil
}
