package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clampline/tenantctl/internal/config"
	"github.com/clampline/tenantctl/internal/helpers"
	"github.com/clampline/tenantctl/internal/logs"
	"github.com/clampline/tenantctl/internal/message"
	"github.com/clampline/tenantctl/modules"
	o "github.com/clampline/tenantctl/modules/options"
	"github.com/clampline/tenantctl/pkg/types"
)

var (
	cfgFile string
	envFile string
	logFile string
	verbose bool
	quiet   bool
	silent  bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tenantctl",
	Short: "tenantctl is a CLI tool for administering Microsoft cloud services.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		message.SetQuiet(quiet)
		message.SetSilent(silent)
		message.SetNoColor(noColor)
		message.Banner()
		if logFile != "" {
			logger, closer, err := logs.FileLogger(logFile)
			if err != nil {
				message.Error("failed to open log file: %v", err)
				os.Exit(1)
			}
			slog.SetDefault(logger)
			cobra.OnFinalize(func() { _ = closer() })
			return
		}
		if verbose {
			logs.ConsoleLoggerAt(slog.LevelDebug)
		} else {
			logs.ConsoleLogger()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tenantctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file with tenant/client credentials")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write debug logs to a JSON file instead of the console")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress informational messages")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "suppress all messages except critical errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP(o.OutputOpt.Name, o.OutputOpt.Short, o.OutputOpt.Value, o.OutputOpt.Description)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tenantctl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tenantctl")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newSession builds the run's authenticated session from the env file
// (or the ambient environment) once; every module receives it
// explicitly.
func newSession() (*helpers.Session, error) {
	creds, err := config.LoadCredentials(envFile)
	if err != nil {
		return nil, err
	}
	return helpers.NewSession(creds)
}

func mustSession() *helpers.Session {
	session, err := newSession()
	if err != nil {
		message.Error("failed to authenticate: %v", err)
		os.Exit(1)
	}
	return session
}

func options2Flag(options []*types.Option, common []*types.Option, cmd *cobra.Command) {
	for _, option := range options {
		option2Flag(option, cmd)
	}

	for _, option := range common {
		option2Flag(option, cmd)
	}
}

func option2Flag(option *types.Option, cmd *cobra.Command) {
	switch option.Type {
	case types.String:
		cmd.Flags().StringP(option.Name, option.Short, option.Value, option.Description)
	case types.Bool:
		value, _ := strconv.ParseBool(option.Value)
		cmd.Flags().BoolP(option.Name, option.Short, value, option.Description)
	case types.Int:
		intValue, _ := strconv.Atoi(option.Value)
		cmd.Flags().IntP(option.Name, option.Short, intValue, option.Description)
	}

	if option.Required {
		cmd.MarkFlagRequired(option.Name)
	}
}

func getOpts(cmd *cobra.Command, declared []*types.Option) []*types.Option {
	opts := getGlobalOpts(cmd)

	opts = append(opts, getOptsFromCmd(cmd, o.CreateDeepCopyOfOptions(declared))...)
	err := o.ValidateOptions(opts, declared)
	if err != nil {
		message.Error("%v", err)
		os.Exit(1)
	}

	return opts
}

func getGlobalOpts(cmd *cobra.Command) []*types.Option {
	opts := []*types.Option{}
	output := o.OutputOpt
	output.Value, _ = cmd.Flags().GetString(output.Name)
	opts = append(opts, &output)

	return opts
}

func getOptsFromCmd(cmd *cobra.Command, declared []*types.Option) []*types.Option {
	opts := []*types.Option{}
	for _, opt := range declared {
		switch opt.Type {
		case types.String:
			opt.Value, _ = cmd.Flags().GetString(opt.Name)
		case types.Bool:
			value, _ := cmd.Flags().GetBool(opt.Name)
			opt.Value = strconv.FormatBool(value)
		case types.Int:
			value, _ := cmd.Flags().GetInt(opt.Name)
			opt.Value = strconv.Itoa(value)
		}
		opts = append(opts, opt)
	}
	return opts
}

// runModule drains the module's result channel to its output providers
// while Invoke runs, then reports the final outcome. A module error
// exits non-zero after a human-readable message.
func runModule(module modules.Module, run modules.Run) {
	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for result := range run.Data {
			for _, outputProvider := range module.GetOutputProviders() {
				if err := outputProvider.Write(result); err != nil {
					message.Warning("%v", err)
				}
			}
		}
	}()

	err := module.Invoke()
	wg.Wait()
	if err != nil {
		// surfaces even under --silent
		message.Critical("%v", err)
		os.Exit(1)
	}
}
