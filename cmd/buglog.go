package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debbugs/go-debbugs/pkg/debbugs"
	"github.com/debbugs/go-debbugs/pkg/flags"
)

func init() {
	f := flags.NewDebbugsFlags()
	parseMail := false

	cmd := &cobra.Command{
		Use:   "log BUG",
		Short: "Print a bug's correspondence thread",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ids, err := parseBugArgs(args)
			if err != nil {
				log.WithError(err).Fatal("bad arguments")
			}
			client := f.GetClient()
			var entries []debbugs.BugLog
			if parseMail {
				entries, err = client.GetBugLogParsed(context.Background(), ids[0])
			} else {
				entries, err = client.GetBugLog(context.Background(), ids[0])
			}
			if err != nil {
				log.WithError(err).Fatal("could not fetch bug log")
			}
			for i := range entries {
				entry := &entries[i]
				fmt.Printf("--- message %d ---\n", entry.MsgNum)
				if entry.Headers != nil {
					fmt.Printf("From: %s\n", entry.Headers.Get("From"))
					fmt.Printf("Date: %s\n", entry.Headers.Get("Date"))
					fmt.Printf("Subject: %s\n", entry.Headers.Get("Subject"))
				} else {
					fmt.Println(entry.Header)
				}
				fmt.Printf("\n%s\n", entry.Body)
			}
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&parseMail, "parse-mail", parseMail,
		"Parse message headers and print a short summary per message")
	rootCmd.AddCommand(cmd)
}
