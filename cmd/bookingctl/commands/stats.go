package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"booking-platform/internal/service"
)

func newStatsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print ranking reports as JSON",
	}
	report := func(use, short string, run func(ctx context.Context, s *service.Services) (any, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				a, done, err := g.open(c.Context())
				if err != nil {
					return err
				}
				defer done()
				v, err := run(c.Context(), a.Services)
				if err != nil {
					return err
				}
				return printJSON(c.OutOrStdout(), v)
			},
		}
	}

	cmd.AddCommand(
		report("top-hosts", "Hosts by reservations in the trailing window", func(ctx context.Context, s *service.Services) (any, error) {
			return s.Hosts.TopHostsLastMonth(ctx)
		}),
		report("super-hosts", "Hosts at or over the all-time reservation threshold", func(ctx context.Context, s *service.Services) (any, error) {
			return s.Hosts.SuperHosts(ctx)
		}),
		report("popular", "Most reserved accommodation in the trailing window", func(ctx context.Context, s *service.Services) (any, error) {
			return s.Accommodations.FindMostPopularLastMonth(ctx)
		}),
		report("travelers", "Users by nights booked in the trailing window", func(ctx context.Context, s *service.Services) (any, error) {
			return s.Users.TopTravelersLastMonth(ctx)
		}),
		report("snapshot", "Every ranking at once", func(ctx context.Context, s *service.Services) (any, error) {
			return s.Stats.Snapshot(ctx)
		}),
		report("purge-cache", "Drop cached rankings", func(ctx context.Context, s *service.Services) (any, error) {
			n, err := s.Stats.Purge(ctx)
			if err != nil {
				return nil, fmt.Errorf("purge: %w", err)
			}
			return map[string]int64{"purged": n}, nil
		}),
	)
	return cmd
}
