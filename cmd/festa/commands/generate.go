package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "예상 축제 생성",
	Long: `패턴을 분석하고 예상 축제를 생성합니다.

--year 없이 실행하면 전체 생성 윈도우(실제 데이터 마지막 연도 + 2년까지)를
대상으로 생성합니다. --year를 주면 해당 연도만 생성하고, --force를 함께 주면
그 연도의 기존 예상 축제를 지우고 다시 만듭니다.

Example:
  go run ./cmd/festa generate
  go run ./cmd/festa generate --year 2026
  go run ./cmd/festa generate --year 2026 --force`,
	RunE: runGenerate,
}

var (
	generateYear  int
	generateForce bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	// Flags
	generateCmd.Flags().IntVar(&generateYear, "year", 0, "생성 대상 연도 (0이면 전체 윈도우)")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "기존 예상 축제를 지우고 재생성")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Festa Expected Festival Generation ===")

	app, err := initApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx := context.Background()

	if generateYear == 0 {
		if err := app.generator.GenerateExpected(ctx); err != nil {
			return fmt.Errorf("generate expected festivals: %w", err)
		}
		fmt.Println("\n✅ Generation finished")
		return nil
	}

	if err := app.generator.RegenerateYear(ctx, generateYear, generateForce); err != nil {
		return fmt.Errorf("regenerate year %d: %w", generateYear, err)
	}

	fmt.Printf("\n✅ Generation finished for %d (force=%v)\n", generateYear, generateForce)
	return nil
}
