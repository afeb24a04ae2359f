package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Tomiris95/orderdesk/internal/entity"
	repo "github.com/Tomiris95/orderdesk/internal/repository/order"
)

const sampleCount = 50

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// New constructs a Seeder backed by the order repository.
func New(repository *repo.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repository, logger: logger}
}

// Orders bulk-inserts sample orders through the trusted seed path. The
// records cycle through the valid statuses with created_at spread one
// day apart, newest first.
func (s *Seeder) Orders(ctx context.Context) error {
	now := time.Now().UTC()
	samples := make([]entity.Order, 0, sampleCount)
	for i := 1; i <= sampleCount; i++ {
		samples = append(samples, entity.Order{
			Customer:  fmt.Sprintf("Customer %d", i),
			Amount:    float64(int((rand.Float64()*500+5)*100)) / 100,
			Status:    entity.Statuses[i%len(entity.Statuses)],
			CreatedAt: entity.Timestamp(now.AddDate(0, 0, -i)),
		})
	}

	if err := s.repo.InsertMany(ctx, samples); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", len(samples)))
	}
	return nil
}
