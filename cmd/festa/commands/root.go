package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "festa",
	Short: "Festa - 축제 정보 수집 및 예상 축제 생성 시스템",
	Long: `Festa Backend CLI

TourAPI 축제 데이터를 수집하고, 과거 개최 패턴을 분석해
다음 연도의 예상 축제를 생성합니다.

Usage:
  go run ./cmd/festa [command]

Examples:
  go run ./cmd/festa api
  go run ./cmd/festa sync --year 2025
  go run ./cmd/festa analyze
  go run ./cmd/festa generate --year 2026 --force`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
