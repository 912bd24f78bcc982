package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db/models"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/enums"
)

func beginTestTx(t *testing.T) *gorm.DB {
	t.Helper()
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, name string, extra bool, position *int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.NewFromInt(20),
		Unit:      enums.ProductUnitKilogram,
		Extra:     extra,
		Available: true,
		Position:  position,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryProductFlow(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		Name:      "Tomate",
		Price:     decimal.NewFromInt(35),
		Unit:      enums.ProductUnitKilogram,
		Available: true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected product id to be generated")
	}

	loaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if loaded.Name != "Tomate" {
		t.Fatalf("expected Tomate, got %s", loaded.Name)
	}

	loaded.Available = false
	if _, err := repo.Update(ctx, loaded); err != nil {
		t.Fatalf("update product: %v", err)
	}

	available, err := repo.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	for _, p := range available {
		if p.ID == created.ID {
			t.Fatal("unavailable product returned by ListAvailable")
		}
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !db.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestRepositoryGroupOrdering(t *testing.T) {
	tx := beginTestTx(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	pos := func(v int) *int { return &v }

	mustCreateProduct(t, tx, "Sin lugar", false, nil)
	second := mustCreateProduct(t, tx, "Segundo", false, pos(1))
	first := mustCreateProduct(t, tx, "Primero", false, pos(0))
	mustCreateProduct(t, tx, "Extra", true, pos(0))

	group, err := repo.ListGroup(ctx, false)
	if err != nil {
		t.Fatalf("list group: %v", err)
	}
	for _, p := range group {
		if p.Extra {
			t.Fatalf("extra product %s leaked into the general group", p.Name)
		}
	}

	if err := repo.UpdatePositions(ctx, map[uuid.UUID]int{first.ID: 1, second.ID: 0}); err != nil {
		t.Fatalf("update positions: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if reloaded.Position == nil || *reloaded.Position != 1 {
		t.Fatalf("expected position 1, got %v", reloaded.Position)
	}

	batch := []models.Product{
		{Name: "Lote A", Price: decimal.NewFromInt(10), Unit: enums.ProductUnitUnit, Available: true},
		{Name: "Lote B", Price: decimal.NewFromInt(12), Unit: enums.ProductUnitUnit, Available: true},
	}
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	for _, p := range batch {
		if p.ID == uuid.Nil {
			t.Fatal("expected batch ids to be generated")
		}
	}
}
