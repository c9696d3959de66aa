package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debbugs/go-debbugs/pkg/debbugs"
	"github.com/debbugs/go-debbugs/pkg/flags"
	"github.com/debbugs/go-debbugs/pkg/soap"
)

func init() {
	f := flags.NewDebbugsFlags()
	query := &debbugs.SearchQuery{}
	var status, archive string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for bugs matching the given filters",
		Long: `Search for bugs matching the given filters and print their numbers.
With no filters at all, every bug in the tracker matches; expect a very
large answer.`,
		Run: func(cmd *cobra.Command, args []string) {
			if status != "" {
				s, err := soap.ParseBugStatus(status)
				if err != nil {
					log.WithError(err).Fatal("invalid --status")
				}
				query.Status = s
			}
			if archive != "" {
				a, err := soap.ParseArchived(archive)
				if err != nil {
					log.WithError(err).Fatal("invalid --archive")
				}
				query.Archive = a
			}
			ids, err := f.GetClient().GetBugs(context.Background(), query)
			if err != nil {
				log.WithError(err).Fatal("search failed")
			}
			log.Infof("%d bugs match", len(ids))
			for _, id := range ids {
				fmt.Printf("#%d\n", id)
			}
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&query.Package, "package", "", "Binary package name")
	cmd.Flags().StringVar(&query.Src, "src", "", "Source package name")
	cmd.Flags().StringVar(&query.Submitter, "submitter", "", "Submitter address")
	cmd.Flags().StringVar(&query.Maintainer, "maint", "", "Maintainer address")
	cmd.Flags().StringVar(&query.Owner, "owner", "", "Owner address")
	cmd.Flags().StringVar(&query.Correspondent, "correspondent", "", "Correspondent address")
	cmd.Flags().StringVar(&query.Severity, "severity", "", "Bug severity, e.g. serious")
	cmd.Flags().StringVar(&status, "status", "", "Bug status: open, forwarded or done")
	cmd.Flags().StringVar(&archive, "archive", "", "Archive selector: archived, unarchived or both")
	cmd.Flags().StringSliceVar(&query.Tags, "tag", nil, "Tag to match (repeatable)")
	rootCmd.AddCommand(cmd)
}
