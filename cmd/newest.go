package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/debbugs/go-debbugs/pkg/flags"
)

func init() {
	f := flags.NewDebbugsFlags()
	amount := 10

	cmd := &cobra.Command{
		Use:   "newest",
		Short: "List the most recently filed bugs, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			ids, err := f.GetClient().NewestBugs(context.Background(), amount)
			if err != nil {
				log.WithError(err).Fatal("could not fetch newest bugs")
			}
			for _, id := range ids {
				fmt.Printf("#%d\n", id)
			}
		},
	}
	f.BindFlags(cmd.Flags())
	cmd.Flags().IntVarP(&amount, "amount", "n", amount, "Number of bugs to fetch")
	rootCmd.AddCommand(cmd)
}
