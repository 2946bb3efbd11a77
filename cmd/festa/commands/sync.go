package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "TourAPI 축제 데이터 동기화",
	Long: `TourAPI에서 축제 목록을 가져와 시리즈/개최 기록으로 반영합니다.

목록 동기화 후 상세 정보(overview)와 추가 이미지도 함께 적재합니다.
--year를 생략하면 올해를 대상으로 합니다.

Example:
  go run ./cmd/festa sync
  go run ./cmd/festa sync --year 2025
  go run ./cmd/festa sync --year 2025 --skip-details`,
	RunE: runSync,
}

var (
	syncYear        int
	syncSkipDetails bool
)

func init() {
	rootCmd.AddCommand(syncCmd)

	// Flags
	syncCmd.Flags().IntVar(&syncYear, "year", 0, "동기화 대상 연도 (0이면 올해)")
	syncCmd.Flags().BoolVar(&syncSkipDetails, "skip-details", false, "overview/이미지 적재 생략")
}

func runSync(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Festa TourAPI Sync ===")

	app, err := initApp()
	if err != nil {
		return err
	}
	defer app.close()

	year := syncYear
	if year == 0 {
		year = time.Now().Year()
	}

	ctx := context.Background()

	result, err := app.sync.SyncFestivals(ctx, year)
	if err != nil {
		return fmt.Errorf("sync festivals: %w", err)
	}

	fmt.Printf("\n축제 목록 동기화: 생성=%d, 갱신=%d, 날짜없음=%d, 실패=%d\n",
		result.Created, result.Updated, result.Skipped, result.Failed)

	if !syncSkipDetails {
		overviews, err := app.sync.SyncOverviewsForYear(ctx, year)
		if err != nil {
			return fmt.Errorf("sync overviews: %w", err)
		}
		fmt.Printf("상세 정보 적재: %d건\n", overviews)

		images, err := app.sync.SyncImagesForYear(ctx, year)
		if err != nil {
			return fmt.Errorf("sync images: %w", err)
		}
		fmt.Printf("이미지 적재: %d건\n", images)
	}

	fmt.Printf("\n✅ Sync finished for %d\n", year)
	return nil
}
