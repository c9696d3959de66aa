package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "debbugs",
	Short: "Query the Debian bug tracking system over its SOAP interface",
	Long: `debbugs talks to a Debbugs instance (by default the Debian bug
tracking system at bugs.debian.org) and prints newest bugs, status
records, search results, correspondence logs and usertags.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			log.WithError(err).Fatal("cannot parse log-level")
		}
		log.SetLevel(level)
		log.Debug("debug logging enabled")

		formatter := new(log.TextFormatter)
		formatter.FullTimestamp = true
		log.SetFormatter(formatter)
	},
}

var logLevel string

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("could not execute root command")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (trace,debug,info,warn,error)")
}
