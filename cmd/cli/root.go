package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var gitToken string

var rootCmd = &cobra.Command{
	Use:   "review-cli",
	Short: "review-cli runs the review assistant's analyzer from the command line.",
	Long:  `A CLI for the AI Code Review Assistant: analyze local files, directories, or remote repositories with the same checks the web form runs.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&gitToken, "git-token", "t", "", "Access token for cloning private repositories")

	if err := viper.BindPFlag("GIT_TOKEN", rootCmd.PersistentFlags().Lookup("git-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("RA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
