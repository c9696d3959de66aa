package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debbugs/go-debbugs/pkg/debbugs"
	"github.com/debbugs/go-debbugs/pkg/flags"
)

// get_status caps the number of bugs per call well above this, but
// keeping requests small avoids multi-megabyte responses.
const wnppChunkSize = 50

func init() {
	f := flags.NewDebbugsFlags()

	cmd := &cobra.Command{
		Use:   "wnpp",
		Short: "List work-needing and prospective packages",
		Long: `List the bugs filed against the pseudo-package wnpp: packaging
requests (RFP), intents to package (ITP), orphaned packages (O) and
packages looking for a new maintainer (RFA).`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			client := f.GetClient()
			ids, err := client.GetBugs(ctx, &debbugs.SearchQuery{Package: "wnpp"})
			if err != nil {
				log.WithError(err).Fatal("could not list wnpp bugs")
			}
			for len(ids) > 0 {
				chunk := ids
				if len(chunk) > wnppChunkSize {
					chunk = chunk[:wnppChunkSize]
				}
				ids = ids[len(chunk):]
				reports, err := client.GetStatus(ctx, chunk)
				if err != nil {
					log.WithError(err).Fatal("could not fetch wnpp bug status")
				}
				for i := range reports {
					fmt.Printf("#%d: %s\n", reports[i].Number, reports[i].Subject)
				}
			}
		},
	}
	f.BindFlags(cmd.Flags())
	rootCmd.AddCommand(cmd)
}
