package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octobees/lead-discovery/internal/discovery"
	"github.com/octobees/lead-discovery/internal/dto"
	"github.com/octobees/lead-discovery/internal/entity"
	"github.com/octobees/lead-discovery/internal/service"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for actionable leads",
	Long:  "Discover operational businesses without a website for one category in one location.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		categoryFlag, _ := cmd.Flags().GetString("category")
		location, _ := cmd.Flags().GetString("location")
		format, _ := cmd.Flags().GetString("format")

		category, ok := entity.ParseCategory(categoryFlag)
		if !ok {
			return eris.Errorf("search: unknown category %q", categoryFlag)
		}
		if format != "table" && format != "json" {
			return eris.Errorf("search: unsupported format %q", format)
		}

		socialCheck := cfg.Discovery.SocialWebsiteCheck
		if cmd.Flags().Changed("social-check") {
			socialCheck, _ = cmd.Flags().GetBool("social-check")
		}

		client, err := discovery.NewGeminiClient(ctx, cfg.Discovery.APIKey,
			discovery.WithModel(cfg.Discovery.Model),
			discovery.WithGrounding(cfg.Discovery.Grounding),
			discovery.WithTimeout(cfg.Discovery.Timeout),
		)
		if err != nil {
			return eris.Wrap(err, "search: create discovery client")
		}

		svc := service.NewLeadsService(client,
			service.WithDefaultLocation(cfg.Discovery.DefaultLocation),
			service.WithPhoneRegion(cfg.Discovery.PhoneRegion),
			service.WithSocialWebsiteCheck(socialCheck),
		)

		result := svc.Search(ctx, string(category), location)
		resp := dto.NewSearchResponse(result.Sequence, result.Category, result.Location, result.Leads)

		out := cmd.OutOrStdout()
		if format == "json" {
			return writeJSON(out, resp)
		}

		if resp.Count == 0 {
			zap.L().Info("no leads found", zap.String("category", resp.Category), zap.String("location", resp.Location))
			return nil
		}
		formatLeads(out, resp.Leads)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("category", string(entity.CategoryAll), "business category ("+categoryNames()+")")
	searchCmd.Flags().String("location", "", "city or region to search (defaults to DEFAULT_LOCATION)")
	searchCmd.Flags().String("format", "table", "output format: table or json")
	searchCmd.Flags().Bool("social-check", false, "treat social media profiles as missing websites")
	rootCmd.AddCommand(searchCmd)
}

func writeJSON(out io.Writer, resp dto.SearchResponse) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return eris.Wrap(err, "search: encode json")
	}
	return nil
}

func formatLeads(out io.Writer, leads []dto.LeadResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCORE\tNAME\tRATING\tREVIEWS\tPHONE\tSOLUTION\tADDRESS")
	_, _ = fmt.Fprintln(w, "-----\t----\t------\t-------\t-----\t--------\t-------")

	for _, l := range leads {
		phone := l.Phone
		if phone == "" {
			phone = "-"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.1f\t%d\t%s\t%s\t%s\n",
			l.Score,
			truncate(l.Name, 32),
			l.Rating,
			l.UserRatingsTotal,
			phone,
			truncate(l.SuggestedSolution, 28),
			truncate(l.Address, 40),
		)
	}
	_ = w.Flush()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit-3]) + "..."
	}
	return s
}

func categoryNames() string {
	names := make([]string, 0, len(entity.Categories()))
	for _, c := range entity.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
