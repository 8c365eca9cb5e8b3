package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the relay client.
// It registers the event and subscription command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "domerelay",
		Short: "DOME relay client commands",
	}
	root.AddCommand(NewEventCommand(baseURL))
	root.AddCommand(NewSubCommand(baseURL))
	return root
}
