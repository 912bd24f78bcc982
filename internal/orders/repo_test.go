package orders

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("INGENIO_DB_DSN")
	if dsn == "" {
		t.Skip("INGENIO_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func beginTestTx(t *testing.T) *gorm.DB {
	t.Helper()
	tx := openTestDB(t).Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}

func mustCreateOrder(t *testing.T, repo Repository, weekID string, createdAt time.Time) *models.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), &models.Order{
		Cart:       types.CartLines{{Name: "Tomate", Qty: 1}},
		Subtotal:   decimal.NewFromInt(20),
		Shipping:   decimal.NewFromInt(100),
		Total:      decimal.NewFromInt(120),
		WeekID:     weekID,
		WeekNumber: 29,
		Year:       2025,
		CreatedAt:  createdAt,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestRepositoryOrderFlow(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	weekID := "2190-29"
	base := time.Now().UTC().Truncate(time.Second)

	first := mustCreateOrder(t, repo, weekID, base)
	second := mustCreateOrder(t, repo, weekID, base.Add(time.Hour))

	rows, err := repo.FindByWeekID(ctx, weekID)
	if err != nil {
		t.Fatalf("find by week: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(rows))
	}
	if rows[0].ID != first.ID {
		t.Fatal("expected creation order for unplaced rows")
	}

	if err := repo.UpdatePositions(ctx, map[uuid.UUID]int{second.ID: 0, first.ID: 1}); err != nil {
		t.Fatalf("update positions: %v", err)
	}
	rows, err = repo.FindByWeekID(ctx, weekID)
	if err != nil {
		t.Fatalf("find by week: %v", err)
	}
	if rows[0].ID != second.ID {
		t.Fatal("expected manual positions to override creation order")
	}

	if err := repo.UpdateCustomerName(ctx, first.ID, "Lucía"); err != nil {
		t.Fatalf("update customer name: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if reloaded.CustomerName != "Lucía" {
		t.Fatalf("expected Lucía, got %s", reloaded.CustomerName)
	}
	if len(reloaded.Cart) != 1 || reloaded.Cart[0].Name != "Tomate" {
		t.Fatalf("cart did not round-trip: %+v", reloaded.Cart)
	}

	weeks, err := repo.ListWeeks(ctx)
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	found := false
	for _, w := range weeks {
		if w.WeekID == weekID {
			found = true
			if w.OrderCount != 2 {
				t.Fatalf("expected 2 orders in bucket, got %d", w.OrderCount)
			}
		}
	}
	if !found {
		t.Fatalf("week %s missing from index", weekID)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); !db.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
