package main

import (
	"fmt"
	"newswire/db"
	"newswire/internal/model"
	"newswire/internal/repository"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	sourceName     string
	sourceKind     string
	sourceFeedURL  string
	sourceCountry  string
	sourceLanguage string
	sourceCategory string
	sourceRank     int
	sourcePaywall  bool

	importFile string
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage the source catalog",
}

var sourceAddCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Add or update a catalog source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog sources",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceEnableCmd = &cobra.Command{
	Use:   "enable <domain>",
	Short: "Enable fetching for a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceEnabled(args[0], true)
	},
}

var sourceDisableCmd = &cobra.Command{
	Use:   "disable <domain>",
	Short: "Disable fetching for a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceEnabled(args[0], false)
	},
}

var sourceImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import sources from a YAML catalog file",
	Args:  cobra.NoArgs,
	RunE:  runSourceImport,
}

func init() {
	sourceAddCmd.Flags().StringVar(&sourceName, "name", "", "display name (required)")
	sourceAddCmd.Flags().StringVar(&sourceKind, "kind", string(model.SourceKindRSS), "connector kind: rss, finnhub, or newsdata")
	sourceAddCmd.Flags().StringVar(&sourceFeedURL, "feed", "", "feed URL (required for rss)")
	sourceAddCmd.Flags().StringVar(&sourceCountry, "country", "", "ISO country code")
	sourceAddCmd.Flags().StringVar(&sourceLanguage, "language", "", "ISO language code")
	sourceAddCmd.Flags().StringVar(&sourceCategory, "category", "", "editorial category")
	sourceAddCmd.Flags().IntVar(&sourceRank, "rank", 0, "authority rank, higher sorts first")
	sourceAddCmd.Flags().BoolVar(&sourcePaywall, "paywall", false, "source sits behind a paywall")
	_ = sourceAddCmd.MarkFlagRequired("name")

	sourceImportCmd.Flags().StringVar(&importFile, "file", "sources.yaml", "catalog file to import")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceEnableCmd)
	sourceCmd.AddCommand(sourceDisableCmd)
	sourceCmd.AddCommand(sourceImportCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	source := &model.Source{
		Domain:   args[0],
		Name:     sourceName,
		Kind:     model.SourceKind(sourceKind),
		FeedURL:  sourceFeedURL,
		Country:  sourceCountry,
		Language: sourceLanguage,
		Category: sourceCategory,
		Rank:     sourceRank,
		Paywall:  sourcePaywall,
		Enabled:  true,
	}
	if err := source.Validate(); err != nil {
		return err
	}

	repo := repository.NewSourceRepository(db.DB)
	if err := repo.Upsert(source); err != nil {
		return fmt.Errorf("upsert source: %w", err)
	}

	fmt.Printf("Saved source %s (%s)\n", source.Domain, source.Kind)
	return nil
}

func runSourceList(cmd *cobra.Command, args []string) error {
	repo := repository.NewSourceRepository(db.DB)

	sources, err := repo.List(model.SourceFilter{Limit: 1000})
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tNAME\tKIND\tCOUNTRY\tLANG\tRANK\tENABLED")
	for _, s := range sources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%t\n",
			s.Domain, s.Name, s.Kind, s.Country, s.Language, s.Rank, s.Enabled)
	}
	return w.Flush()
}

func setSourceEnabled(domain string, enabled bool) error {
	repo := repository.NewSourceRepository(db.DB)

	ok, err := repo.SetEnabled(domain, enabled)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	if !ok {
		return fmt.Errorf("source %q not found", domain)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Source %s %s\n", domain, state)
	return nil
}

func runSourceImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	catalog, err := parseCatalog(data)
	if err != nil {
		return err
	}

	repo := repository.NewSourceRepository(db.DB)
	for i := range catalog {
		if err := repo.Upsert(&catalog[i]); err != nil {
			return fmt.Errorf("upsert %s: %w", catalog[i].Domain, err)
		}
	}

	fmt.Printf("Imported %d sources from %s\n", len(catalog), importFile)
	return nil
}

type sourceCatalog struct {
	Sources []catalogEntry `yaml:"sources"`
}

type catalogEntry struct {
	Domain      string `yaml:"domain"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	HomepageURL string `yaml:"homepage_url"`
	Kind        string `yaml:"kind"`
	FeedURL     string `yaml:"feed_url"`
	Country     string `yaml:"country"`
	Language    string `yaml:"language"`
	Category    string `yaml:"category"`
	Paywall     bool   `yaml:"paywall"`
	Rank        int    `yaml:"rank"`
	Enabled     *bool  `yaml:"enabled"`
}

// parseCatalog decodes and validates a YAML source catalog. Entries are
// enabled unless the file says otherwise.
func parseCatalog(data []byte) ([]model.Source, error) {
	var catalog sourceCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	sources := make([]model.Source, 0, len(catalog.Sources))
	for i, e := range catalog.Sources {
		s := model.Source{
			Domain:      e.Domain,
			Name:        e.Name,
			Description: e.Description,
			HomepageURL: e.HomepageURL,
			Kind:        model.SourceKind(e.Kind),
			FeedURL:     e.FeedURL,
			Country:     e.Country,
			Language:    e.Language,
			Category:    e.Category,
			Paywall:     e.Paywall,
			Rank:        e.Rank,
			Enabled:     true,
		}
		if e.Enabled != nil {
			s.Enabled = *e.Enabled
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, e.Domain, err)
		}
		sources = append(sources, s)
	}

	return sources, nil
}
