// Command tokenctl drives the token engine against a simulated
// in-memory host, for manual exploration and scripted demos.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tokenforge/spl-token-engine/cmd/tokenctl/internal/sim"
)

var (
	cfgFile string
	logger  *zap.SugaredLogger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tokenctl",
		Short: "Exercise the token engine against a simulated host",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.tokenctl.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() error {
	viper.SetEnvPrefix("TOKENCTL")
	viper.AutomaticEnv()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".tokenctl")
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return err
			}
		}
	}
	if viper.GetBool("no-color") {
		color.NoColor = true
	}

	zcfg := zap.NewProductionConfig()
	if viper.GetBool("verbose") {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.DisableStacktrace = true
	z, err := zcfg.Build()
	if err != nil {
		return err
	}
	logger = z.Sugar()
	sim.SetLogger(logger)
	return nil
}
