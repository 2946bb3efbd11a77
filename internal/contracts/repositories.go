package contracts

import (
	"context"
	"time"
)

// OccurrenceRepository 개최 기록 저장소 계약
// ⭐ SSOT: 패턴 엔진과 동기화 서비스는 이 인터페이스를 통해서만 개최 기록에 접근
type OccurrenceRepository interface {
	// FindOverlapping 기간과 겹치는 모든 개최 기록 조회 (시작일 오름차순)
	FindOverlapping(ctx context.Context, start, end time.Time) ([]Occurrence, error)

	// FindBySeries 특정 시리즈의 모든 개최 기록 조회
	FindBySeries(ctx context.Context, seriesID int64) ([]Occurrence, error)

	// FindByNameContaining 이름 부분 일치로 개최 기록 조회 (단건 예측용)
	FindByNameContaining(ctx context.Context, keyword string) ([]Occurrence, error)

	// FindLatestReal 실제(Origin=REAL) 개최 중 시작일이 가장 늦은 기록 조회
	// 없으면 (nil, nil)
	FindLatestReal(ctx context.Context) (*Occurrence, error)

	// Exists (이름, 시작일, 종료일)이 동일한 기록 존재 여부
	Exists(ctx context.Context, name string, start, end time.Time) (bool, error)

	// Save 단건 저장 (신규면 ID 채움)
	Save(ctx context.Context, occ *Occurrence) error

	// SaveAll 일괄 저장
	SaveAll(ctx context.Context, occs []Occurrence) error

	// DeleteAll 일괄 삭제
	DeleteAll(ctx context.Context, occs []Occurrence) error
}

// UnitOfWork 작업 단위 경계
// 패턴 분석 배치는 하나의 트랜잭션 안에서 실행되어 중간 크래시가
// 부분적인 패턴 쓰기를 남기지 않게 한다
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SeriesRepository 시리즈 대표 레코드 저장소 계약
type SeriesRepository interface {
	// FindAll 모든 시리즈 레코드 조회
	FindAll(ctx context.Context) ([]SeriesRecord, error)

	// FindWithPattern 패턴이 저장된 시리즈 레코드만 조회
	FindWithPattern(ctx context.Context) ([]SeriesRecord, error)

	// FindByID ID로 조회, 없으면 (nil, nil)
	FindByID(ctx context.Context, id int64) (*SeriesRecord, error)

	// FindByContentID TourAPI contentId로 조회, 없으면 (nil, nil)
	FindByContentID(ctx context.Context, contentID int64) (*SeriesRecord, error)

	// Save 저장 (신규면 ID 채움)
	Save(ctx context.Context, rec *SeriesRecord) error
}
