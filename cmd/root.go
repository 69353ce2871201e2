/*
Copyright © 2022 Joker
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "costsim",
	Short: "Simulate the landed cost of customs declarations",
	Long: `Computes the landed cost of an import shipment from its invoice lines:
goods value, freight, insurance, customs duty, financial fees, forwarding-agent fee,
statutory levies and incidental costs. For example:
1. costsim serve                       HTTP API and, when enabled, the AMQP consumer.
2. costsim compute --input req.json    one-shot computation printed as JSON.
3. costsim tariffs search 8471         tariff lookup for manual code correction.
`,
	// Without a subcommand the service starts, as it always did.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".costsim.yaml", "config file (default is .costsim.yaml)")

	rootCmd.AddCommand(serveCmd, computeCmd, tariffsCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".costsim" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".costsim")
	}

	// COSTSIM_MYSQL_URL overrides mysql.url
	viper.SetEnvPrefix("costsim")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
	// init logging
	initLogging()
}

func initLogging() {
	base := viper.GetString("log.log-base")
	if base == "" {
		logging.InitLog("", viper.GetString("log.level"))
		return
	}
	path, _ := os.Executable()
	_, exec := filepath.Split(path)
	logfile := filepath.Join(base, exec+".log")

	logging.InitLog(logfile, viper.GetString("log.level"))
}
