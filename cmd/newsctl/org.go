package main

import (
	"fmt"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	orgName string
	orgPlan string

	userOrg   string
	userEmail string
	userName  string
	userRole  string
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
}

var orgCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an organization",
	Args:  cobra.NoArgs,
	RunE:  runOrgCreate,
}

var orgSetPlanCmd = &cobra.Command{
	Use:   "set-plan <org-slug>",
	Short: "Move an organization to a different billing plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgSetPlan,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage portal users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a portal user in an organization",
	Args:  cobra.NoArgs,
	RunE:  runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the users of an organization",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

func init() {
	orgCreateCmd.Flags().StringVar(&orgName, "name", "", "organization name (required)")
	orgCreateCmd.Flags().StringVar(&orgPlan, "plan", "free", "billing plan slug")
	_ = orgCreateCmd.MarkFlagRequired("name")
	orgCmd.AddCommand(orgCreateCmd)

	orgSetPlanCmd.Flags().StringVar(&orgPlan, "plan", "", "billing plan slug (required)")
	_ = orgSetPlanCmd.MarkFlagRequired("plan")
	orgCmd.AddCommand(orgSetPlanCmd)

	userCreateCmd.Flags().StringVar(&userOrg, "org", "", "organization slug (required)")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "user email (required)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(model.RoleMember), "role: owner, admin, or member")
	_ = userCreateCmd.MarkFlagRequired("org")
	_ = userCreateCmd.MarkFlagRequired("email")
	userCmd.AddCommand(userCreateCmd)

	userListCmd.Flags().StringVar(&userOrg, "org", "", "organization slug (required)")
	_ = userListCmd.MarkFlagRequired("org")
	userCmd.AddCommand(userListCmd)
}

func runOrgCreate(cmd *cobra.Command, args []string) error {
	repo := repository.NewAccountRepository(db.DB)

	plan, err := repo.GetPlanBySlug(orgPlan)
	if err != nil {
		return fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("unknown plan %q", orgPlan)
	}

	org := &model.Organization{
		Name:   orgName,
		Slug:   model.Slugify(orgName),
		PlanID: plan.ID,
	}
	if err := org.Validate(); err != nil {
		return err
	}

	if err := repo.CreateOrg(org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}

	fmt.Printf("Created organization %s (id %d, plan %s)\n", org.Slug, org.ID, plan.Slug)
	return nil
}

func runOrgSetPlan(cmd *cobra.Command, args []string) error {
	repo := repository.NewAccountRepository(db.DB)

	org, err := repo.GetOrgBySlug(args[0])
	if err != nil {
		return fmt.Errorf("get organization: %w", err)
	}
	if org == nil {
		return fmt.Errorf("unknown organization %q", args[0])
	}

	plan, err := repo.GetPlanBySlug(orgPlan)
	if err != nil {
		return fmt.Errorf("get plan: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("unknown plan %q", orgPlan)
	}

	ok, err := repo.SetOrgPlan(org.ID, plan.ID)
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	if !ok {
		return fmt.Errorf("organization %q not found", args[0])
	}

	fmt.Printf("Moved %s to the %s plan\n", org.Slug, plan.Slug)
	return nil
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	repo := repository.NewAccountRepository(db.DB)

	org, err := repo.GetOrgBySlug(userOrg)
	if err != nil {
		return fmt.Errorf("get organization: %w", err)
	}
	if org == nil {
		return fmt.Errorf("unknown organization %q", userOrg)
	}

	user := &model.User{
		OrgID: org.ID,
		Email: userEmail,
		Name:  userName,
		Role:  model.UserRole(userRole),
	}
	if err := user.Validate(); err != nil {
		return err
	}

	if err := repo.CreateUser(user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created user %s in %s (id %d, role %s)\n", user.Email, org.Slug, user.ID, user.Role)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	repo := repository.NewAccountRepository(db.DB)

	org, err := repo.GetOrgBySlug(userOrg)
	if err != nil {
		return fmt.Errorf("get organization: %w", err)
	}
	if org == nil {
		return fmt.Errorf("unknown organization %q", userOrg)
	}

	users, err := repo.GetUsersByOrg(org.ID)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role)
	}
	return w.Flush()
}
