package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grindzone/grindzone-api/client"
	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/services"
)

var (
	listGame     string
	listTier     string
	listCategory string
	listFull     bool
	registerTeam string
)

func init() {
	tournamentsListCmd.Flags().StringVar(&listGame, "game", "", "Filter by game")
	tournamentsListCmd.Flags().StringVar(&listTier, "tier", "", "Filter by tier")
	tournamentsListCmd.Flags().StringVar(&listCategory, "category", "", "upcoming, ongoing or past")
	tournamentsListCmd.Flags().BoolVar(&listFull, "full", false, "Only full tournaments")
	tournamentsRegisterCmd.Flags().StringVar(&registerTeam, "team", "", "Team name (server default when empty)")

	tournamentsCmd.AddCommand(tournamentsListCmd, tournamentsShowCmd, tournamentsRegisterCmd)
	paymentsCmd.AddCommand(paymentsListCmd)

	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(statsCmd)
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "Browse tournaments and register teams",
}

var tournamentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tournaments with derived status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		tournaments, err := newClient().ListTournaments(ctx, services.ListFilter{
			Filter:   services.Filter{Game: listGame, Tier: listTier, FullOnly: listFull},
			Category: listCategory,
		})
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), tournaments)
		}
		printTournaments(cmd.OutOrStdout(), tournaments)
		return nil
	},
}

var tournamentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		t, err := newClient().GetTournament(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), t)
	},
}

var tournamentsRegisterCmd = &cobra.Command{
	Use:   "register <id>",
	Short: "Register a team in a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().Register(ctx, args[0], services.RegisterInput{Team: registerTeam})
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Registered %s in %s (%s)\n", res.Payment.Team, res.Tournament.Name, res.Tournament.Participants)
		if !res.CapacityTracked {
			fmt.Fprintln(out, "Warning: participant count could not be tracked for this tournament")
		}
		if !res.PaymentRecorded {
			fmt.Fprintln(out, "Warning: payment was not recorded")
		}
		return nil
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Inspect the payment ledger",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		payments, err := newClient().ListPayments(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), payments)
		}
		printPayments(cmd.OutOrStdout(), payments)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		stats, err := newClient().Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

func newClient() *client.Client {
	return client.New(host, &http.Client{Timeout: timeout})
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTournaments(w io.Writer, tournaments []models.Tournament) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGAME\tDATE\tTEAMS\tSTATUS\tFULL")
	for _, t := range tournaments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n", t.ID, t.Name, t.Game, t.Date, t.Participants, t.Status, t.IsFull)
	}
	_ = tw.Flush()
}

func printPayments(w io.Writer, payments []models.Payment) {
	if len(payments) == 0 {
		fmt.Fprintln(os.Stderr, "No payments recorded")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEAM\tTOURNAMENT\tAMOUNT\tDATE")
	for _, p := range payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Team, p.Tournament, p.Amount, p.Date)
	}
	_ = tw.Flush()
}
