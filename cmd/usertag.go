package cmd

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debbugs/go-debbugs/pkg/flags"
)

func init() {
	f := flags.NewDebbugsFlags()

	cmd := &cobra.Command{
		Use:   "usertag EMAIL [TAG...]",
		Short: "Show a user's tags and the bugs carrying them",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tags, err := f.GetClient().GetUsertags(context.Background(), args[0], args[1:]...)
			if err != nil {
				log.WithError(err).Fatal("could not fetch usertags")
			}
			names := make([]string, 0, len(tags))
			for name := range tags {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s (%d bugs):\n", name, len(tags[name]))
				for _, id := range tags[name] {
					fmt.Printf("  #%d\n", id)
				}
			}
		},
	}
	f.BindFlags(cmd.Flags())
	rootCmd.AddCommand(cmd)
}
