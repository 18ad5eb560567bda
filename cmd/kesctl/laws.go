package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/pendakwaan/internal/laws"
)

func newLawsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "laws [act]",
		Short: "List acts, or the offenses and sections of one act",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, a := range laws.Acts() {
					printf(cmd, "%s\t%s\n", a.Key, a.Label)
				}
				return nil
			}

			act, err := laws.ParseAct(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmtRow(w, "OFFENSE", "CHARGE", "PENALTY", "COMPOUND")
			for _, o := range laws.Offenses(act) {
				s, _ := laws.Lookup(act, o.Key)
				fmtRow(w, o.Key, s.Charge, s.Penalty, s.Compound)
			}
			return w.Flush()
		},
	}
}

func fmtRow(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}
