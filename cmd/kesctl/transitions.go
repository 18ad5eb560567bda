package main

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pendakwaan/internal/auth"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
)

func newTransitionsCommand() *cobra.Command {
	var role, from string

	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Print the workflow transition table",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := workflow.Transitions()

			if role != "" || from != "" {
				r, err := auth.ParseRole(role)
				if err != nil {
					return err
				}
				s, err := workflow.ParseStatus(from)
				if err != nil {
					return err
				}
				list = workflow.Available(r, s)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmtRow(w, "FROM", "TO", "ROLES", "LABEL")
			for _, t := range list {
				roles := make([]string, len(t.Roles))
				for i, r := range t.Roles {
					roles[i] = string(r)
				}
				fmtRow(w, string(t.From), string(t.To), strings.Join(roles, ","), t.Label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Only edges this role may take (requires --from)")
	cmd.Flags().StringVar(&from, "from", "", "Only edges leaving this status (requires --role)")
	cmd.MarkFlagsRequiredTogether("role", "from")
	return cmd
}
