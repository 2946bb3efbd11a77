package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/festa/backend/internal/api"
	"github.com/wonny/festa/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 패턴/예측 조회 엔드포인트 제공
- 분석/생성/동기화 트리거 제공

Endpoints:
  GET  /health        - Health check
  GET  /api/patterns  - 분석된 패턴 목록
  GET  /api/predict   - 축제 이름으로 다음 개최 예측
  POST /api/analyze   - 패턴 분석 배치 실행
  POST /api/generate  - 예상 축제 생성/재생성
  POST /api/sync      - TourAPI 축제 목록 동기화

Example:
  go run ./cmd/festa api
  go run ./cmd/festa api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Festa API Server ===")

	app, err := initApp()
	if err != nil {
		return err
	}
	defer app.close()

	// Override port if flag is set
	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	// Create handler + router + server
	festivalHandler := handlers.NewFestivalHandler(app.generator, app.sync, app.series, app.log)
	router := api.NewRouter(festivalHandler, app.log)
	server := api.New(app.cfg, app.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			app.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	app.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/patterns")
	fmt.Println("  GET  /api/predict?name=...")
	fmt.Println("  POST /api/analyze")
	fmt.Println("  POST /api/generate")
	fmt.Println("  POST /api/sync")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	app.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.log.Info("Server stopped")
	return nil
}
