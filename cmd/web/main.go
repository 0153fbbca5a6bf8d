// @title           Dealflow API
// @version         1.0
// @description     Подбор стартапов и инвесторов: лента, свайпы, матчи и переписка.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"

	"dealflow_backend/internal/config"

	"github.com/spf13/cobra"
)

const appName = "dealflow"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          appName,
	Short:        "dealflow matches startups with investors",
	SilenceUsage: true,
	// без подкоманды запускаем сервер
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_PATH or config/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
