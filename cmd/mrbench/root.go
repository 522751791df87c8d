package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mrbench/internal/config"
	"mrbench/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command. A bare positional run count is
// accepted as shorthand for the run subcommand.
var rootCmd = &cobra.Command{
	Use:   "mrbench [runs]",
	Short: "Benchmark measurement orchestration pipeline",
	Long: `mrbench builds a set of benchmark executables, runs each one N times
under cache-reset conditions, collects the JSON measurement records they
emit, computes descriptive statistics and renders comparison plots and a
textual report.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runPipeline(args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("project", ".", "Project root containing the build descriptor")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("project_root", rootCmd.PersistentFlags().Lookup("project"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)
	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
