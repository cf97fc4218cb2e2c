package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the database holds a complete, consistent fixture set",
		Long: `Reads every fixture collection back without modifying it and checks the
document counts, that every owner, box, sender and avatar reference resolves,
and that each avatar's chunks add up to its declared length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.Close()

			counts, err := sess.seeder.Counts(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.seeder.Verify(cmd.Context()); err != nil {
				return err
			}

			printCounts(cmd.OutOrStdout(), sess.labels, counts)
			fmt.Fprintln(cmd.OutOrStdout(), sess.labels.verified)
			return nil
		},
	}
}
