package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [name]",
	Short: "패턴 분석",
	Long: `과거 개최 기록에서 반복 패턴을 분석합니다.

인자 없이 실행하면 전체 시리즈의 패턴을 분석해 저장합니다.
축제 이름을 인자로 주면 해당 축제의 다음 개최를 예측해 출력합니다
(저장하지 않음).

Example:
  go run ./cmd/festa analyze
  go run ./cmd/festa analyze 봄꽃축제`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := initApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx := context.Background()

	// 단건 예측 모드
	if len(args) == 1 {
		name := args[0]

		prediction, err := app.generator.PredictNextForName(ctx, name)
		if err != nil {
			return fmt.Errorf("predict for %q: %w", name, err)
		}
		if prediction == nil {
			fmt.Printf("'%s': 예측에 필요한 과거 개최 기록이 부족합니다 (3회 이상 필요)\n", name)
			return nil
		}

		fmt.Printf("축제: %s\n", prediction.BaseName)
		fmt.Printf("분석에 사용된 개최: %d회\n", prediction.SampleCount)
		fmt.Printf("예상 개최일: %s (%s)\n",
			prediction.ExpectedStart.Format("2006-01-02"), prediction.WeekdayKo)
		fmt.Printf("예상 시기: %s\n", prediction.ExpectedPeriod)
		fmt.Printf("신뢰도: %d%%\n", prediction.Confidence)
		return nil
	}

	// 전체 배치 분석 모드
	fmt.Println("=== Festa Pattern Analysis ===")

	updated, err := app.generator.AnalyzeAllPatterns(ctx)
	if err != nil {
		return fmt.Errorf("analyze patterns: %w", err)
	}

	fmt.Printf("\n✅ Analysis finished: %d개 시리즈 패턴 갱신\n", updated)
	return nil
}
