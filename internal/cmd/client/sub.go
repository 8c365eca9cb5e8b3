package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// NewSubCommand constructs the `sub` command group and subcommands.
func NewSubCommand(baseURL BaseURLFunc) *cobra.Command {
	subCmd := &cobra.Command{Use: "sub", Short: "Subscription operations"}
	subCmd.AddCommand(
		newSubCreateCommand(baseURL),
		newSubListCommand(baseURL),
		newSubDeleteCommand(baseURL),
	)
	return subCmd
}

// newSubCreateCommand constructs the `sub create` subcommand.
func newSubCreateCommand(baseURL BaseURLFunc) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a webhook subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledgerAddr, _ := cmd.Flags().GetString("ledger")
			types, _ := cmd.Flags().GetStringSlice("types")
			meta, _ := cmd.Flags().GetStringSlice("metadata")
			ownIss, _ := cmd.Flags().GetString("own-iss")
			endpoint, _ := cmd.Flags().GetString("endpoint")
			filter, _ := cmd.Flags().GetString("filter")

			var out struct {
				ID string `json:"id"`
			}
			err := doJSON(cmd.Context(), http.MethodPost, baseURL()+"/v1/subscriptions", map[string]any{
				"ledger":               ledgerAddr,
				"eventTypes":           types,
				"metadata":             meta,
				"ownIss":               ownIss,
				"notificationEndpoint": endpoint,
				"filter":               filter,
			}, &out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "id:", out.ID)
			return nil
		},
	}
	createCmd.Flags().String("ledger", "", "Event log address (default from server config)")
	createCmd.Flags().StringSlice("types", nil, "Event types to deliver")
	createCmd.Flags().StringSlice("metadata", nil, "Environment tags (empty = all)")
	createCmd.Flags().String("own-iss", "", "Subscriber identity; own events are skipped")
	createCmd.Flags().String("endpoint", "", "Notification endpoint URL")
	createCmd.Flags().String("filter", "", "CEL filter (server-side)")
	return createCmd
}

// newSubListCommand constructs the `sub list` subcommand.
func newSubListCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out struct {
				Subscriptions []json.RawMessage `json:"subscriptions"`
			}
			if err := doJSON(cmd.Context(), http.MethodGet, baseURL()+"/v1/subscriptions", nil, &out); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, sub := range out.Subscriptions {
				_ = enc.Encode(sub)
			}
			return nil
		},
	}
}

// newSubDeleteCommand constructs the `sub delete` subcommand.
func newSubDeleteCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancel and remove a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doJSON(cmd.Context(), http.MethodDelete, baseURL()+"/v1/subscriptions/"+args[0], nil, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
}
