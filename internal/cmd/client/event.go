// Package client contains Cobra CLI commands for the DOME relay.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewEventCommand constructs the `event` command group and subcommands.
func NewEventCommand(baseURL BaseURLFunc) *cobra.Command {
	eventCmd := &cobra.Command{Use: "event", Short: "Event operations"}
	eventCmd.AddCommand(
		newEventPublishCommand(baseURL),
		newEventActiveCommand(baseURL),
	)
	return eventCmd
}

// newEventPublishCommand constructs the `event publish` subcommand.
func newEventPublishCommand(baseURL BaseURLFunc) *cobra.Command {
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish an event to the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledgerAddr, _ := cmd.Flags().GetString("ledger")
			iss, _ := cmd.Flags().GetString("iss")
			entity, _ := cmd.Flags().GetString("entity-id")
			prev, _ := cmd.Flags().GetString("previous-hash")
			eventType, _ := cmd.Flags().GetString("type")
			dataLocation, _ := cmd.Flags().GetString("data-location")
			meta, _ := cmd.Flags().GetStringSlice("metadata")

			var out struct {
				Timestamp int64 `json:"timestamp"`
			}
			err := doJSON(cmd.Context(), http.MethodPost, baseURL()+"/v1/events/publish", map[string]any{
				"ledger":             ledgerAddr,
				"iss":                iss,
				"entityId":           entity,
				"previousEntityHash": prev,
				"eventType":          eventType,
				"dataLocation":       dataLocation,
				"relevantMetadata":   meta,
			}, &out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timestamp:", out.Timestamp)
			return nil
		},
	}
	publishCmd.Flags().String("ledger", "", "Event log address (default from server config)")
	publishCmd.Flags().String("iss", "", "Publisher identity (DID)")
	publishCmd.Flags().String("entity-id", "", "Entity id hash")
	publishCmd.Flags().String("previous-hash", "", "Previous entity hash")
	publishCmd.Flags().String("type", "", "Event type")
	publishCmd.Flags().String("data-location", "", "Off-chain data location URL")
	publishCmd.Flags().StringSlice("metadata", nil, "Relevant metadata tags")
	return publishCmd
}

// newEventActiveCommand constructs the `event active` subcommand.
func newEventActiveCommand(baseURL BaseURLFunc) *cobra.Command {
	activeCmd := &cobra.Command{
		Use:   "active",
		Short: "Resolve active events in a date window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledgerAddr, _ := cmd.Flags().GetString("ledger")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			envs, _ := cmd.Flags().GetStringSlice("env")

			q := url.Values{}
			q.Set("startDate", start)
			q.Set("endDate", end)
			if ledgerAddr != "" {
				q.Set("ledger", ledgerAddr)
			}
			if len(envs) > 0 {
				q.Set("env", strings.Join(envs, ","))
			}

			var out struct {
				Events []json.RawMessage `json:"events"`
			}
			if err := doJSON(cmd.Context(), http.MethodGet, baseURL()+"/v1/events/active?"+q.Encode(), nil, &out); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, ev := range out.Events {
				_ = enc.Encode(ev)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "count:", strconv.Itoa(len(out.Events)))
			return nil
		},
	}
	activeCmd.Flags().String("ledger", "", "Event log address (default from server config)")
	activeCmd.Flags().String("start", "", "Window start (ms or RFC3339)")
	activeCmd.Flags().String("end", "", "Window end (ms or RFC3339)")
	activeCmd.Flags().StringSlice("env", nil, "Environment tags")
	return activeCmd
}
