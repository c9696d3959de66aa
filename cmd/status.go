package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debbugs/go-debbugs/pkg/debbugs"
	"github.com/debbugs/go-debbugs/pkg/flags"
)

func parseBugArgs(args []string) ([]debbugs.BugID, error) {
	ids := make([]debbugs.BugID, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid bug number %q", arg)
		}
		ids = append(ids, debbugs.BugID(n))
	}
	return ids, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func init() {
	f := flags.NewDebbugsFlags()

	cmd := &cobra.Command{
		Use:   "status BUG...",
		Short: "Show status records for the given bugs",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ids, err := parseBugArgs(args)
			if err != nil {
				log.WithError(err).Fatal("bad arguments")
			}
			reports, err := f.GetClient().GetStatus(context.Background(), ids)
			if err != nil {
				log.WithError(err).Fatal("could not fetch bug status")
			}

			table := tablewriter.NewTable(os.Stdout)
			table.Header([]string{"Bug", "Package", "Severity", "Pending", "Subject"})
			for i := range reports {
				r := &reports[i]
				pending := ""
				if r.Pending != nil {
					pending = string(*r.Pending)
				}
				table.Append([]string{
					fmt.Sprintf("#%d", r.Number),
					strOrEmpty(r.Package),
					strOrEmpty(r.Severity),
					pending,
					r.Subject,
				})
			}
			if err := table.Render(); err != nil {
				log.WithError(err).Fatal("could not render table")
			}
		},
	}
	f.BindFlags(cmd.Flags())
	rootCmd.AddCommand(cmd)
}
