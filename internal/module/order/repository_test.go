package order

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the order tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Order{}, &domain.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Customer", Email: email, Status: domain.UserStatusActive}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return u
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice@example.com")
	order := &domain.Order{
		UserID: customer.ID,
		Total:  159.80,
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2, Price: 49.90},
			{ProductID: 2, Quantity: 1, Price: 60.00},
		},
	}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected default status pending, got %q", order.Status)
	}

	got, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Items) != 2 {
		t.Errorf("expected 2 items preloaded, got %d", len(got.Items))
	}
	if got.User == nil || got.User.Email != "alice@example.com" {
		t.Errorf("expected customer preloaded, got %+v", got.User)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_SearchByEmailAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice := seedCustomer(t, db, "alice@example.com")
	bob := seedCustomer(t, db, "bob@example.com")

	orders := []*domain.Order{
		{UserID: alice.ID, Status: domain.OrderStatusPending, Total: 10},
		{UserID: alice.ID, Status: domain.OrderStatusShipped, Total: 20},
		{UserID: bob.ID, Status: domain.OrderStatusShipped, Total: 30},
	}
	for i, o := range orders {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	// Customer email match.
	result, err := repo.List(ctx, domain.PageRequest{Page: 1, PageSize: 10, Search: "ALICE"})
	if err != nil {
		t.Fatalf("List by email: %v", err)
	}
	if result.TotalItems != 2 {
		t.Errorf("expected 2 orders for alice, got %d", result.TotalItems)
	}

	// Status match.
	result, err = repo.List(ctx, domain.PageRequest{Page: 1, PageSize: 10, Search: "shipped"})
	if err != nil {
		t.Fatalf("List by status: %v", err)
	}
	if result.TotalItems != 2 {
		t.Errorf("expected 2 shipped orders, got %d", result.TotalItems)
	}
	for _, o := range result.Items {
		if o.User == nil {
			t.Error("expected customer preloaded on list rows")
		}
	}
}

func TestList_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice@example.com")
	for i := 0; i < 12; i++ {
		o := &domain.Order{UserID: customer.ID, Total: float64(i)}
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	result, err := repo.List(ctx, domain.PageRequest{Page: 5, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.CurrentPage != 2 {
		t.Errorf("expected page clamped to 2, got %d", result.CurrentPage)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	if result.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", result.TotalPages)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice@example.com")
	order := &domain.Order{UserID: customer.ID, Total: 10}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusShipped); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.OrderStatusShipped {
		t.Errorf("expected shipped, got %q", got.Status)
	}

	if err := repo.UpdateStatus(ctx, 999, domain.OrderStatusShipped); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRevenue_ExcludesCancelled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice@example.com")
	orders := []*domain.Order{
		{UserID: customer.ID, Status: domain.OrderStatusDelivered, Total: 100},
		{UserID: customer.ID, Status: domain.OrderStatusPending, Total: 50},
		{UserID: customer.ID, Status: domain.OrderStatusCancelled, Total: 999},
	}
	for i, o := range orders {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	revenue, err := repo.Revenue(ctx)
	if err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if revenue != 150 {
		t.Errorf("Revenue = %v; want 150 (cancelled excluded)", revenue)
	}
}

func TestRevenue_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	revenue, err := repo.Revenue(context.Background())
	if err != nil {
		t.Fatalf("Revenue: %v", err)
	}
	if revenue != 0 {
		t.Errorf("Revenue = %v; want 0", revenue)
	}
}

func TestRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice@example.com")
	for i := 0; i < 8; i++ {
		o := &domain.Order{UserID: customer.ID, Total: float64(i)}
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	recent, err := repo.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i-1].ID < recent[i].ID {
			t.Errorf("expected newest first, got %v before %v", recent[i-1].ID, recent[i].ID)
		}
	}
	if recent[0].User == nil {
		t.Error("expected customer preloaded")
	}
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "alice@example.com")
	for i := 0; i < 4; i++ {
		o := &domain.Order{UserID: customer.ID, Total: float64(i)}
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 4 {
		t.Errorf("Count = %d; want 4", total)
	}
}
