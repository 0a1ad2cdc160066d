package bakeryapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

var (
	errUserExists      = errors.New("a user with this email already exists")
	errUserNotFound    = errors.New("user not found")
	errProductNotFound = errors.New("product does not exist")
	errOrderNotFound   = errors.New("order not found")
	errNotCancellable  = errors.New("only pending orders can be cancelled")
)

type storedUser struct {
	models.User
	PasswordHash string
}

type cartLine struct {
	ProductID string
	Quantity  int
}

// store is the in-memory backing for the reference backend. It is
// seeded with a small bakery catalog so the storefront has something to
// render out of the box.
type store struct {
	mu sync.RWMutex

	users        map[string]*storedUser
	usersByEmail map[string]string
	products     map[string]models.Product
	carts        map[string][]cartLine
	orders       map[string]*models.Order
	favorites    map[string]map[string]bool
	contacts     []models.ContactRequest
}

func newStore() *store {
	s := &store{
		users:        make(map[string]*storedUser),
		usersByEmail: make(map[string]string),
		products:     make(map[string]models.Product),
		carts:        make(map[string][]cartLine),
		orders:       make(map[string]*models.Order),
		favorites:    make(map[string]map[string]bool),
	}

	seed := []models.Product{
		{Name: "Sourdough Loaf", Category: "Bread", Price: 6.50, Stock: 20, Available: true},
		{Name: "Butter Croissant", Category: "Pastries", Price: 3.25, Stock: 40, Available: true},
		{Name: "Chocolate Fudge Cake", Category: "Cakes", Price: 24.00, Stock: 8, Available: true},
		{Name: "Cinnamon Roll", Category: "Pastries", Price: 4.00, Stock: 30, Available: true},
		{Name: "Blueberry Muffin", Category: "Muffins", Price: 3.50, Stock: 25, Available: true},
	}
	for _, p := range seed {
		p.ID = uuid.NewString()
		s.products[p.ID] = p
	}

	return s
}

func (s *store) createUser(u models.User, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, exists := s.usersByEmail[email]; exists {
		return nil, errUserExists
	}

	u.UserID = uuid.NewString()
	s.users[u.UserID] = &storedUser{User: u, PasswordHash: passwordHash}
	s.usersByEmail[email] = u.UserID
	return &u, nil
}

func (s *store) userByEmail(email string) (*storedUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	u := *s.users[id]
	return &u, true
}

func (s *store) updateUser(userID string, req models.UpdateProfileRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, errUserNotFound
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		u.PhoneNumber = req.PhoneNumber
	}
	out := u.User
	return &out, nil
}

func (s *store) deleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return errUserNotFound
	}
	delete(s.usersByEmail, strings.ToLower(u.Email))
	delete(s.users, userID)
	delete(s.carts, userID)
	delete(s.favorites, userID)
	return nil
}

func (s *store) listProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *store) product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *store) searchProducts(query string) []models.Product {
	query = strings.ToLower(query)
	var out []models.Product
	for _, p := range s.listProducts() {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}

func (s *store) productsByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range s.listProducts() {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (s *store) createProduct(input models.ProductInput) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Image:       input.Image,
		Stock:       input.Stock,
		Available:   input.Available,
	}
	s.products[p.ID] = p
	return p
}

func (s *store) updateProduct(id string, input models.ProductInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return models.Product{}, errProductNotFound
	}
	p := models.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Image:       input.Image,
		Stock:       input.Stock,
		Available:   input.Available,
	}
	s.products[id] = p
	return p, nil
}

func (s *store) deleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return errProductNotFound
	}
	delete(s.products, id)
	return nil
}

// cartFor joins cart lines with current product data.
func (s *store) cartFor(userID string) []models.CartProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[userID]
	out := make([]models.CartProduct, 0, len(lines))
	for _, line := range lines {
		p, ok := s.products[line.ProductID]
		if !ok {
			continue
		}
		out = append(out, models.CartProduct{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductImage: p.Image,
			Price:        p.Price,
			Quantity:     line.Quantity,
		})
	}
	return out
}

func (s *store) addToCart(userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return errProductNotFound
	}

	lines := s.carts[userID]
	for i, line := range lines {
		if line.ProductID == productID {
			lines[i].Quantity += quantity
			s.carts[userID] = lines
			return nil
		}
	}
	s.carts[userID] = append(lines, cartLine{ProductID: productID, Quantity: quantity})
	return nil
}

func (s *store) updateCart(userID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.removeFromCart(userID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i, line := range lines {
		if line.ProductID == productID {
			lines[i].Quantity = quantity
			s.carts[userID] = lines
			return nil
		}
	}
	return errProductNotFound
}

func (s *store) removeFromCart(userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i, line := range lines {
		if line.ProductID == productID {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return errProductNotFound
}

func (s *store) clearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

func (s *store) createOrder(req models.CreateOrderRequest) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := &models.Order{
		OrderID:         uuid.NewString(),
		UserID:          req.UserID,
		Items:           req.Items,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     req.TotalAmount,
		Status:          models.OrderPending,
		CreatedAt:       time.Now(),
	}
	s.orders[order.OrderID] = order
	return order
}

func (s *store) order(id string) (*models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	out := *o
	return &out, true
}

func (s *store) ordersForUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) allOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) setOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errOrderNotFound
	}
	o.Status = status
	out := *o
	return &out, nil
}

func (s *store) cancelOrder(id, userID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, errOrderNotFound
	}
	if !o.Status.CanCancel() {
		return nil, errNotCancellable
	}
	o.Status = models.OrderCancelled
	out := *o
	return &out, nil
}

func (s *store) orderStats() models.OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.OrderStats
	for _, o := range s.orders {
		stats.TotalOrders++
		switch o.Status {
		case models.OrderPending:
			stats.PendingOrders++
		case models.OrderDelivered:
			stats.DeliveredOrders++
		case models.OrderCancelled:
			stats.CancelledOrders++
		}
		if o.Status != models.OrderCancelled {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats
}

func (s *store) dashboardStats() models.DashboardStats {
	orderStats := s.orderStats()

	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := 0
	for _, u := range s.users {
		if u.Role == models.RoleCustomer {
			customers++
		}
	}
	return models.DashboardStats{
		TotalRevenue:   orderStats.TotalRevenue,
		TotalOrders:    orderStats.TotalOrders,
		TotalCustomers: customers,
		TotalProducts:  len(s.products),
		PendingOrders:  orderStats.PendingOrders,
	}
}

func (s *store) customerSummaries() []models.CustomerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CustomerSummary
	for _, u := range s.users {
		if u.Role != models.RoleCustomer {
			continue
		}
		summary := models.CustomerSummary{
			UserID:   u.UserID,
			FullName: u.FullName,
			Email:    u.Email,
		}
		for _, o := range s.orders {
			if o.UserID == u.UserID {
				summary.OrderCount++
				if o.Status != models.OrderCancelled {
					summary.TotalSpent += o.TotalAmount
				}
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func (s *store) salesAnalytics() []models.SalesPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate := make(map[string]*models.SalesPoint)
	for _, o := range s.orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		date := o.CreatedAt.Format("2006-01-02")
		point, ok := byDate[date]
		if !ok {
			point = &models.SalesPoint{Date: date}
			byDate[date] = point
		}
		point.Revenue += o.TotalAmount
		point.Orders++
	}

	out := make([]models.SalesPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (s *store) topProducts() []models.TopProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byProduct := make(map[string]*models.TopProduct)
	for _, o := range s.orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		for _, item := range o.Items {
			top, ok := byProduct[item.ProductID]
			if !ok {
				top = &models.TopProduct{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = top
			}
			top.UnitsSold += item.Quantity
			top.Revenue += item.Price * float64(item.Quantity)
		}
	}

	out := make([]models.TopProduct, 0, len(byProduct))
	for _, p := range byProduct {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitsSold > out[j].UnitsSold })
	return out
}

func (s *store) favoritesFor(userID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for productID := range s.favorites[userID] {
		if p, ok := s.products[productID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *store) addFavorite(userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return errProductNotFound
	}
	if s.favorites[userID] == nil {
		s.favorites[userID] = make(map[string]bool)
	}
	s.favorites[userID][productID] = true
	return nil
}

func (s *store) removeFavorite(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites[userID], productID)
}

func (s *store) addContact(req models.ContactRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, req)
}
