package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
	"horticulture-assistant/pkg/log"
)

// mockRepo implements repository.Repository with overridable behavior per test.
type mockRepo struct {
	createUser            func(opt repository.CreateUserOptions) (market.User, error)
	getUserByPhone        func(phone string) (market.User, error)
	listProducts          func() ([]market.Product, error)
	getProductByName      func(name string) (market.Product, error)
	searchProducts        func(query string) ([]market.Product, error)
	addInventory          func(opt repository.AddInventoryOptions) (int, error)
	getAvailableInventory func(productID int) ([]market.Inventory, error)
	getExpiringInventory  func(supplierID string, withinDays int) ([]market.StockItem, error)
	createOrder           func(opt repository.CreateOrderOptions) (string, error)
	getCustomerOrders     func(customerID, status string) ([]market.OrderSummary, error)
	avgCompetitorPrice    func(productID int, marketType string, daysBack int) (float64, bool, error)
	avgTransactionPrice   func(productID int, daysBack int) (float64, bool, error)

	updatedOrderStatus string
}

func (m *mockRepo) CreateUser(_ context.Context, opt repository.CreateUserOptions) (market.User, error) {
	if m.createUser != nil {
		return m.createUser(opt)
	}
	return market.User{UserID: "new-user", Phone: opt.Phone, Name: opt.Name, UserType: opt.UserType}, nil
}

func (m *mockRepo) GetUserByPhone(_ context.Context, phone string) (market.User, error) {
	if m.getUserByPhone != nil {
		return m.getUserByPhone(phone)
	}
	return market.User{}, market.ErrNotFound
}

func (m *mockRepo) ListProducts(_ context.Context) ([]market.Product, error) {
	if m.listProducts != nil {
		return m.listProducts()
	}
	return nil, nil
}

func (m *mockRepo) GetProductByName(_ context.Context, name string) (market.Product, error) {
	if m.getProductByName != nil {
		return m.getProductByName(name)
	}
	return market.Product{}, market.ErrNotFound
}

func (m *mockRepo) SearchProducts(_ context.Context, query string) ([]market.Product, error) {
	if m.searchProducts != nil {
		return m.searchProducts(query)
	}
	return nil, nil
}

func (m *mockRepo) AddInventory(_ context.Context, opt repository.AddInventoryOptions) (int, error) {
	if m.addInventory != nil {
		return m.addInventory(opt)
	}
	return 1, nil
}

func (m *mockRepo) GetAvailableInventory(_ context.Context, productID int) ([]market.Inventory, error) {
	if m.getAvailableInventory != nil {
		return m.getAvailableInventory(productID)
	}
	return nil, nil
}

func (m *mockRepo) GetSupplierInventory(_ context.Context, _ string) ([]market.StockItem, error) {
	return nil, nil
}

func (m *mockRepo) GetExpiringInventory(_ context.Context, supplierID string, withinDays int) ([]market.StockItem, error) {
	if m.getExpiringInventory != nil {
		return m.getExpiringInventory(supplierID, withinDays)
	}
	return nil, nil
}

func (m *mockRepo) UpdateInventoryStatus(_ context.Context, _ int, _ string) error { return nil }

func (m *mockRepo) CreateOrder(_ context.Context, opt repository.CreateOrderOptions) (string, error) {
	if m.createOrder != nil {
		return m.createOrder(opt)
	}
	return "order-1", nil
}

func (m *mockRepo) GetCustomerOrders(_ context.Context, customerID, status string) ([]market.OrderSummary, error) {
	if m.getCustomerOrders != nil {
		return m.getCustomerOrders(customerID, status)
	}
	return nil, nil
}

func (m *mockRepo) GetSupplierSchedule(_ context.Context, _ string, _, _ time.Time) ([]market.ScheduleEntry, error) {
	return nil, nil
}

func (m *mockRepo) UpdateOrderStatus(_ context.Context, _, status string) error {
	m.updatedOrderStatus = status
	return nil
}

func (m *mockRepo) AverageCompetitorPrice(_ context.Context, productID int, marketType string, daysBack int) (float64, bool, error) {
	if m.avgCompetitorPrice != nil {
		return m.avgCompetitorPrice(productID, marketType, daysBack)
	}
	return 0, false, nil
}

func (m *mockRepo) AverageTransactionPrice(_ context.Context, productID int, daysBack int) (float64, bool, error) {
	if m.avgTransactionPrice != nil {
		return m.avgTransactionPrice(productID, daysBack)
	}
	return 0, false, nil
}

var catalog = []market.Product{
	{ProductID: 1, ProductName: "Tomato", Category: "vegetables", Unit: "kg"},
	{ProductID: 2, ProductName: "Avocado", Category: "fruits", Unit: "kg"},
	{ProductID: 3, ProductName: "Fresh Milk", Category: "dairy", Unit: "liter"},
}

func newTestUseCase(repo *mockRepo) *implUseCase {
	return New(repo, log.NewNop())
}

func TestRegisterUser(t *testing.T) {
	t.Run("new user", func(t *testing.T) {
		uc := newTestUseCase(&mockRepo{})
		out, err := uc.RegisterUser(context.Background(), market.RegisterUserInput{
			Phone: "0911234567", Name: "Abebe", UserType: "supplier",
		})
		if err != nil {
			t.Fatalf("RegisterUser: %v", err)
		}
		if out.AlreadyRegistered {
			t.Error("new user reported as already registered")
		}
		if out.User.UserType != "supplier" {
			t.Errorf("user type = %q, want supplier", out.User.UserType)
		}
	})

	t.Run("existing phone logs in and keeps stored type", func(t *testing.T) {
		repo := &mockRepo{
			getUserByPhone: func(string) (market.User, error) {
				return market.User{UserID: "u-1", UserType: "customer", Name: "Sara"}, nil
			},
			createUser: func(repository.CreateUserOptions) (market.User, error) {
				t.Fatal("CreateUser called for an existing phone")
				return market.User{}, nil
			},
		}
		out, err := newTestUseCase(repo).RegisterUser(context.Background(), market.RegisterUserInput{
			Phone: "0911234567", Name: "Sara", UserType: "supplier",
		})
		if err != nil {
			t.Fatalf("RegisterUser: %v", err)
		}
		if !out.AlreadyRegistered {
			t.Error("existing user not reported as already registered")
		}
		if out.User.UserType != "customer" {
			t.Errorf("stored user type overwritten: got %q", out.User.UserType)
		}
	})
}

func TestResolveProduct(t *testing.T) {
	repo := &mockRepo{
		listProducts: func() ([]market.Product, error) { return catalog, nil },
		getProductByName: func(name string) (market.Product, error) {
			for _, p := range catalog {
				if p.ProductName == name {
					return p, nil
				}
			}
			return market.Product{}, market.ErrNotFound
		},
	}
	uc := newTestUseCase(repo)

	t.Run("exact match", func(t *testing.T) {
		match, err := uc.ResolveProduct(context.Background(), "Tomato", 0.8)
		if err != nil {
			t.Fatalf("ResolveProduct: %v", err)
		}
		if match.Corrected {
			t.Error("exact match flagged as corrected")
		}
		if match.Product.ProductID != 1 {
			t.Errorf("product id = %d, want 1", match.Product.ProductID)
		}
	})

	t.Run("fuzzy correction", func(t *testing.T) {
		match, err := uc.ResolveProduct(context.Background(), "tomatoe", 0.8)
		if err != nil {
			t.Fatalf("ResolveProduct: %v", err)
		}
		if !match.Corrected {
			t.Error("misspelling not flagged as corrected")
		}
		if match.Product.ProductName != "Tomato" {
			t.Errorf("resolved to %q, want Tomato", match.Product.ProductName)
		}
		if match.Original != "tomatoe" {
			t.Errorf("original = %q, want tomatoe", match.Original)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		_, err := uc.ResolveProduct(context.Background(), "injera", 0.8)
		if !errors.Is(err, market.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestSearchCatalog(t *testing.T) {
	repo := &mockRepo{
		searchProducts: func(query string) ([]market.Product, error) {
			if query == "vegetables" {
				return catalog[:1], nil
			}
			return nil, nil
		},
		getAvailableInventory: func(productID int) ([]market.Inventory, error) {
			if productID != 1 {
				return nil, nil
			}
			return []market.Inventory{
				{InventoryID: 1, ProductID: 1, QuantityKg: 40, PricePerUnit: 32.5},
				{InventoryID: 2, ProductID: 1, QuantityKg: 10, PricePerUnit: 28},
			}, nil
		},
	}
	uc := newTestUseCase(repo)

	listings, err := uc.SearchCatalog(context.Background(), "veggies")
	if err != nil {
		t.Fatalf("SearchCatalog: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("got %d listings, want 1 via category fallback", len(listings))
	}
	l := listings[0]
	if !l.Available {
		t.Error("product with lots not marked available")
	}
	if l.MinPricePerUnit != 28 {
		t.Errorf("min price = %v, want 28", l.MinPricePerUnit)
	}
	if l.TotalQuantityKg != 50 {
		t.Errorf("total quantity = %v, want 50", l.TotalQuantityKg)
	}
}

func TestPlaceOrder(t *testing.T) {
	baseRepo := func() *mockRepo {
		return &mockRepo{
			getProductByName: func(name string) (market.Product, error) {
				if name == "Tomato" {
					return catalog[0], nil
				}
				return market.Product{}, market.ErrNotFound
			},
			getAvailableInventory: func(productID int) ([]market.Inventory, error) {
				return []market.Inventory{
					{ProductID: productID, QuantityKg: 100, PricePerUnit: 35},
					{ProductID: productID, QuantityKg: 50, PricePerUnit: 30},
				}, nil
			},
		}
	}
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	t.Run("prices at cheapest lot", func(t *testing.T) {
		repo := baseRepo()
		var created repository.CreateOrderOptions
		repo.createOrder = func(opt repository.CreateOrderOptions) (string, error) {
			created = opt
			return "order-9", nil
		}
		receipt, err := newTestUseCase(repo).PlaceOrder(context.Background(), market.PlaceOrderInput{
			CustomerID:       "u-1",
			Items:            []market.OrderRequestLine{{ProductName: "Tomato", QuantityKg: 5}},
			DeliveryDate:     tomorrow,
			DeliveryLocation: "Bole",
		})
		if err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
		if receipt.OrderID != "order-9" {
			t.Errorf("order id = %q, want order-9", receipt.OrderID)
		}
		if receipt.TotalAmount != 150 {
			t.Errorf("total = %v, want 150 (5kg at the 30 lot)", receipt.TotalAmount)
		}
		if len(created.Items) != 1 || created.Items[0].PricePerUnit != 30 {
			t.Errorf("created items = %+v, want one line priced 30", created.Items)
		}
	})

	t.Run("past delivery date", func(t *testing.T) {
		_, err := newTestUseCase(baseRepo()).PlaceOrder(context.Background(), market.PlaceOrderInput{
			CustomerID:   "u-1",
			Items:        []market.OrderRequestLine{{ProductName: "Tomato", QuantityKg: 5}},
			DeliveryDate: time.Now().UTC().AddDate(0, 0, -2),
		})
		if !errors.Is(err, market.ErrPastDeliveryDate) {
			t.Errorf("err = %v, want ErrPastDeliveryDate", err)
		}
	})

	t.Run("out of stock", func(t *testing.T) {
		repo := baseRepo()
		repo.getAvailableInventory = func(int) ([]market.Inventory, error) { return nil, nil }
		_, err := newTestUseCase(repo).PlaceOrder(context.Background(), market.PlaceOrderInput{
			CustomerID:   "u-1",
			Items:        []market.OrderRequestLine{{ProductName: "Tomato", QuantityKg: 5}},
			DeliveryDate: tomorrow,
		})
		if !errors.Is(err, market.ErrOutOfStock) {
			t.Errorf("err = %v, want ErrOutOfStock", err)
		}
	})
}

func TestCustomerOrders_DateFilter(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Now().UTC().AddDate(0, 0, offset)
	}
	repo := &mockRepo{
		getCustomerOrders: func(string, string) ([]market.OrderSummary, error) {
			return []market.OrderSummary{
				{OrderID: "a", DeliveryDate: day(1)},
				{OrderID: "b", DeliveryDate: day(5)},
				{OrderID: "c", DeliveryDate: day(10)},
			}, nil
		},
	}
	uc := newTestUseCase(repo)

	from, to := day(2), day(7)
	orders, err := uc.CustomerOrders(context.Background(), "u-1", "", &from, &to)
	if err != nil {
		t.Fatalf("CustomerOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderID != "b" {
		t.Errorf("orders = %+v, want only b", orders)
	}

	all, err := uc.CustomerOrders(context.Background(), "u-1", "", nil, nil)
	if err != nil {
		t.Fatalf("CustomerOrders: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d orders without filter, want 3", len(all))
	}
}

func TestConfirmOrder(t *testing.T) {
	repo := &mockRepo{}
	if err := newTestUseCase(repo).ConfirmOrder(context.Background(), "order-1"); err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	if repo.updatedOrderStatus != market.OrderStatusConfirmed {
		t.Errorf("status = %q, want confirmed", repo.updatedOrderStatus)
	}
}

func TestPricingInsights(t *testing.T) {
	t.Run("window fallback per tier", func(t *testing.T) {
		repo := &mockRepo{
			avgCompetitorPrice: func(_ int, marketType string, daysBack int) (float64, bool, error) {
				switch marketType {
				case market.MarketTierFarm:
					// Only older samples exist.
					if daysBack == 90 {
						return 30, true, nil
					}
					return 0, false, nil
				case market.MarketTierSupermarket:
					if daysBack == 30 {
						return 55, true, nil
					}
					return 0, false, nil
				default:
					return 0, false, nil
				}
			},
			avgTransactionPrice: func(int, int) (float64, bool, error) { return 28, true, nil },
		}
		insight, err := newTestUseCase(repo).PricingInsights(context.Background(), catalog[0])
		if err != nil {
			t.Fatalf("PricingInsights: %v", err)
		}
		if insight.FarmAvg == nil || *insight.FarmAvg != 30 {
			t.Errorf("farm avg = %v, want 30 from the 90-day window", insight.FarmAvg)
		}
		if insight.SupermarketAvg == nil || *insight.SupermarketAvg != 55 {
			t.Errorf("supermarket avg = %v, want 55", insight.SupermarketAvg)
		}
		if insight.DistributionAvg != nil {
			t.Errorf("distribution avg = %v, want nil", *insight.DistributionAvg)
		}
		if insight.Recommended != 33 {
			t.Errorf("recommended = %v, want 33 (farm 30 + 10%%)", insight.Recommended)
		}
	})

	t.Run("historical fallback when no farm samples", func(t *testing.T) {
		repo := &mockRepo{
			avgTransactionPrice: func(int, int) (float64, bool, error) { return 24.5, true, nil },
		}
		insight, err := newTestUseCase(repo).PricingInsights(context.Background(), catalog[0])
		if err != nil {
			t.Fatalf("PricingInsights: %v", err)
		}
		if insight.Recommended != 26.95 {
			t.Errorf("recommended = %v, want 26.95 (historical 24.5 + 10%%)", insight.Recommended)
		}
	})

	t.Run("no data at all", func(t *testing.T) {
		insight, err := newTestUseCase(&mockRepo{}).PricingInsights(context.Background(), catalog[0])
		if err != nil {
			t.Fatalf("PricingInsights: %v", err)
		}
		if insight.Recommended != 0 {
			t.Errorf("recommended = %v, want 0", insight.Recommended)
		}
	})
}

func TestFlashSaleDiscount(t *testing.T) {
	tests := []struct {
		daysLeft int
		want     int
	}{
		{-1, 30},
		{0, 30},
		{1, 30},
		{2, 20},
		{10, 20},
	}
	for _, tt := range tests {
		if got := FlashSaleDiscount(tt.daysLeft); got != tt.want {
			t.Errorf("FlashSaleDiscount(%d) = %d, want %d", tt.daysLeft, got, tt.want)
		}
	}
}

func TestSuggestFlashSales(t *testing.T) {
	expiresIn := func(days int) *time.Time {
		t := time.Now().UTC().AddDate(0, 0, days)
		return &t
	}
	repo := &mockRepo{
		getExpiringInventory: func(_ string, withinDays int) ([]market.StockItem, error) {
			if withinDays != 3 {
				t.Errorf("withinDays = %d, want 3", withinDays)
			}
			return []market.StockItem{
				{InventoryID: 1, ProductName: "Tomato", QuantityKg: 20, PricePerUnit: 30, ExpiryDate: expiresIn(0)},
				{InventoryID: 2, ProductName: "Avocado", QuantityKg: 10, PricePerUnit: 45, ExpiryDate: expiresIn(2)},
				{InventoryID: 3, ProductName: "Fresh Milk", QuantityKg: 5, PricePerUnit: 60, ExpiryDate: nil},
			}, nil
		},
	}

	suggestions, err := newTestUseCase(repo).SuggestFlashSales(context.Background(), "sup-1", 3)
	if err != nil {
		t.Fatalf("SuggestFlashSales: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2 (lot without expiry skipped)", len(suggestions))
	}

	urgent := suggestions[0]
	if urgent.DiscountPercent != 30 {
		t.Errorf("expiring today discount = %d%%, want 30%%", urgent.DiscountPercent)
	}
	if urgent.SalePrice != 21 {
		t.Errorf("sale price = %v, want 21 (30 minus 30%%)", urgent.SalePrice)
	}

	soon := suggestions[1]
	if soon.DiscountPercent != 20 {
		t.Errorf("two-day discount = %d%%, want 20%%", soon.DiscountPercent)
	}
	if soon.SalePrice != 36 {
		t.Errorf("sale price = %v, want 36 (45 minus 20%%)", soon.SalePrice)
	}
}
