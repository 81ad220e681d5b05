package main

import (
	"fmt"
	"newswire/db"
	"newswire/internal/repository"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect billing plans",
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List billing plans",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

func init() {
	planCmd.AddCommand(planListCmd)
}

func runPlanList(cmd *cobra.Command, args []string) error {
	repo := repository.NewAccountRepository(db.DB)

	plans, err := repo.GetPlans()
	if err != nil {
		return fmt.Errorf("list plans: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tPRICE/MO\tREQ/DAY\tRATE\tBURST\tMAX ACCESS")
	for _, p := range plans {
		limit := fmt.Sprintf("%d", p.RequestLimit)
		if p.Unlimited() {
			limit = "unlimited"
		}
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\t%.0f/s\t%d\t%s\n",
			p.Slug, p.Name, float64(p.MonthlyPriceCents)/100, limit, p.RateLimit, p.Burst, p.MaxAccessMode)
	}
	return w.Flush()
}
