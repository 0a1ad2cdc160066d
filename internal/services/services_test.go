package services_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/bakeryapi"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
)

// tokenSource is a swappable credential source, so one client can act
// as different users within a test.
type tokenSource struct {
	mu    sync.Mutex
	token string
}

func (ts *tokenSource) Token() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.token
}

func (ts *tokenSource) set(token string) {
	ts.mu.Lock()
	ts.token = token
	ts.mu.Unlock()
}

type svcEnv struct {
	tokens    *tokenSource
	auth      *services.AuthService
	products  *services.ProductService
	carts     *services.CartService
	orders    *services.OrderService
	admin     *services.AdminService
	contact   *services.ContactService
	favorites *services.FavoritesService
}

func newSvcEnv(t *testing.T) *svcEnv {
	t.Helper()

	srv := bakeryapi.NewServer("test-secret", zerolog.Nop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	tokens := &tokenSource{}
	client, err := api.New(api.Config{
		BaseURL:     ts.URL + "/api",
		Credentials: tokens,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	nop := zerolog.Nop()
	return &svcEnv{
		tokens:    tokens,
		auth:      services.NewAuthService(client, nop),
		products:  services.NewProductService(client, nop),
		carts:     services.NewCartService(client, nop),
		orders:    services.NewOrderService(client, nop),
		admin:     services.NewAdminService(client, nop),
		contact:   services.NewContactService(client, nop),
		favorites: services.NewFavoritesService(client, nop),
	}
}

// register creates an account and switches the client to its token.
func (e *svcEnv) register(t *testing.T, name string, role models.Role) *models.AuthData {
	t.Helper()
	data, err := e.auth.Register(context.Background(), models.RegisterRequest{
		FullName: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "sugar-and-flour",
		Role:     role,
	})
	require.NoError(t, err)
	e.tokens.set(data.Token)
	return data
}

func (e *svcEnv) as(data *models.AuthData) {
	e.tokens.set(data.Token)
}

func TestSeededCatalogQueries(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	list, err := e.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Blueberry Muffin", list[0].Name, "catalog is sorted by name")

	got, err := e.products.Get(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list[0].Name, got.Name)

	found, err := e.products.Search(ctx, "croissant")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Butter Croissant", found[0].Name)

	pastries, err := e.products.ByCategory(ctx, "Pastries")
	require.NoError(t, err)
	assert.Len(t, pastries, 2)

	_, err = e.products.Get(ctx, "no-such-id")
	require.Error(t, err)
}

func TestProductManagementRequiresAdmin(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	e.register(t, "carol", models.RoleCustomer)
	_, err := e.products.Create(ctx, models.ProductInput{Name: "Baguette", Category: "Bread", Price: 4.50, Available: true})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	e.register(t, "astrid", models.RoleAdmin)
	created, err := e.products.Create(ctx, models.ProductInput{
		Name: "Baguette", Category: "Bread", Price: 4.50, Stock: 12, Available: true,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)

	updated, err := e.products.Update(ctx, created.ID, models.ProductInput{
		Name: "Baguette", Category: "Bread", Price: 5.00, Stock: 12, Available: true,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.00, updated.Price, 0.001)

	require.NoError(t, e.products.Delete(ctx, created.ID))
	_, err = e.products.Get(ctx, created.ID)
	require.Error(t, err)
}

func TestCartFlowAndOwnership(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	data := e.register(t, "carol", models.RoleCustomer)
	userID := data.User.UserID

	list, err := e.products.List(ctx)
	require.NoError(t, err)
	product := list[0]

	require.NoError(t, e.carts.Add(ctx, models.AddToCartRequest{
		UserID: userID, ProductID: product.ID, Quantity: 2,
	}))

	items, err := e.carts.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.Name, items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, product.Price, items[0].Price, 0.001)

	// Adding the same product again merges quantities.
	require.NoError(t, e.carts.Add(ctx, models.AddToCartRequest{
		UserID: userID, ProductID: product.ID, Quantity: 1,
	}))
	items, err = e.carts.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, items[0].Quantity)

	require.NoError(t, e.carts.Update(ctx, models.UpdateCartRequest{
		UserID: userID, ProductID: product.ID, Quantity: 5,
	}))
	items, err = e.carts.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	require.NoError(t, e.carts.Remove(ctx, models.RemoveFromCartRequest{
		UserID: userID, ProductID: product.ID,
	}))
	items, err = e.carts.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Another user's cart is off limits.
	err = e.carts.Add(ctx, models.AddToCartRequest{
		UserID: "someone-else", ProductID: product.ID, Quantity: 1,
	})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
}

func TestOrderLifecycle(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	customer := e.register(t, "carol", models.RoleCustomer)
	list, err := e.products.List(ctx)
	require.NoError(t, err)
	product := list[0]

	newOrder := func() *models.Order {
		order, err := e.orders.Create(ctx, models.CreateOrderRequest{
			UserID: customer.User.UserID,
			Items: []models.CartItem{{
				ID: product.ID, ProductID: product.ID, Name: product.Name,
				Price: product.Price, Quantity: 2,
			}},
			DeliveryAddress: models.DeliveryAddress{Street: "12 Rye Lane", City: "Portland", ZipCode: "97201"},
			TotalAmount:     product.Price * 2,
		})
		require.NoError(t, err)
		return order
	}

	first := newOrder()
	assert.Equal(t, models.OrderPending, first.Status)

	mine, err := e.orders.ForUser(ctx, customer.User.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	got, err := e.orders.Get(ctx, first.OrderID)
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, got.OrderID)

	cancelled, err := e.orders.Cancel(ctx, first.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	// A cancelled order cannot be cancelled twice.
	_, err = e.orders.Cancel(ctx, first.OrderID)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pending")

	second := newOrder()

	e.register(t, "astrid", models.RoleAdmin)
	all, err := e.orders.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shipped, err := e.orders.UpdateStatus(ctx, second.OrderID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, shipped.Status)

	stats, err := e.orders.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.CancelledOrders)
	assert.InDelta(t, product.Price*2, stats.TotalRevenue, 0.001, "cancelled orders do not count as revenue")

	// Once shipped, the customer can no longer cancel.
	e.as(customer)
	_, err = e.orders.Cancel(ctx, second.OrderID)
	require.Error(t, err)
}

func TestOrderStatsRequireAdmin(t *testing.T) {
	e := newSvcEnv(t)
	e.register(t, "carol", models.RoleCustomer)

	_, err := e.orders.Stats(context.Background())
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
}

func TestFavoritesRoundTrip(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	data := e.register(t, "carol", models.RoleCustomer)
	userID := data.User.UserID

	list, err := e.products.List(ctx)
	require.NoError(t, err)

	require.NoError(t, e.favorites.Add(ctx, userID, list[0].ID))
	require.NoError(t, e.favorites.Add(ctx, userID, list[1].ID))

	favs, err := e.favorites.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, favs, 2)

	require.NoError(t, e.favorites.Remove(ctx, userID, list[0].ID))
	favs, err = e.favorites.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, list[1].ID, favs[0].ID)

	err = e.favorites.Add(ctx, userID, "no-such-product")
	require.Error(t, err)
}

func TestContactSend(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	err := e.contact.Send(ctx, models.ContactRequest{Name: "Carol"})
	require.Error(t, err, "incomplete messages are rejected before any request")

	require.NoError(t, e.contact.Send(ctx, models.ContactRequest{
		Name:    "Carol",
		Email:   "carol@example.com",
		Subject: "Wholesale",
		Message: "Do you deliver to cafes?",
	}))
}

func TestUpdateProfile(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	data := e.register(t, "carol", models.RoleCustomer)

	updated, err := e.auth.UpdateProfile(ctx, data.User.UserID, models.UpdateProfileRequest{
		FullName:    "Carol Danvers",
		PhoneNumber: "555-0101",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol Danvers", updated.FullName)
	assert.Equal(t, "555-0101", updated.PhoneNumber)

	// Customers cannot edit other accounts.
	other := e.register(t, "dave", models.RoleCustomer)
	e.as(data)
	_, err = e.auth.UpdateProfile(ctx, other.User.UserID, models.UpdateProfileRequest{FullName: "x"})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
}

func TestAdminDashboardAndAnalytics(t *testing.T) {
	e := newSvcEnv(t)
	ctx := context.Background()

	customer := e.register(t, "carol", models.RoleCustomer)
	list, err := e.products.List(ctx)
	require.NoError(t, err)
	product := list[0]

	_, err = e.orders.Create(ctx, models.CreateOrderRequest{
		UserID: customer.User.UserID,
		Items: []models.CartItem{{
			ID: product.ID, ProductID: product.ID, Name: product.Name,
			Price: product.Price, Quantity: 3,
		}},
		DeliveryAddress: models.DeliveryAddress{Street: "12 Rye Lane", City: "Portland", ZipCode: "97201"},
		TotalAmount:     product.Price * 3,
	})
	require.NoError(t, err)

	e.register(t, "astrid", models.RoleAdmin)

	stats, err := e.admin.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalCustomers, "admins are not counted as customers")
	assert.Equal(t, 5, stats.TotalProducts)
	assert.InDelta(t, product.Price*3, stats.TotalRevenue, 0.001)

	customers, err := e.admin.Customers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, customer.User.UserID, customers[0].UserID)
	assert.Equal(t, 1, customers[0].OrderCount)

	sales, err := e.admin.SalesAnalytics(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 1, sales[0].Orders)

	top, err := e.admin.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, product.ID, top[0].ProductID)
	assert.Equal(t, 3, top[0].UnitsSold)

	require.NoError(t, e.admin.DeleteCustomer(ctx, customer.User.UserID))
	customers, err = e.admin.Customers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
