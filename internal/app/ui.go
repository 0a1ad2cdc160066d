package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/cart"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/notify"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
)

// UI renders the storefront screens on a terminal. All state lives in
// the stores; the UI only reads commands and calls into them.
type UI struct {
	in  *bufio.Scanner
	out io.Writer

	machine   *Machine
	session   *session.Store
	cart      *cart.Store
	checkout  *Checkout
	products  *services.ProductService
	orders    *services.OrderService
	favorites *services.FavoritesService
	contact   *services.ContactService
	admin     *services.AdminService
	auth      *services.AuthService
	notifier  notify.Notifier

	splashDuration time.Duration
	logger         zerolog.Logger

	// listing and orderListing map the row numbers of the last rendered
	// list to entities, so commands can reference items by number.
	listing         []models.Product
	orderListing    []models.Order
	customerListing []models.CustomerSummary
}

type UIConfig struct {
	In             io.Reader
	Out            io.Writer
	Machine        *Machine
	Session        *session.Store
	Cart           *cart.Store
	Checkout       *Checkout
	Products       *services.ProductService
	Orders         *services.OrderService
	Favorites      *services.FavoritesService
	Contact        *services.ContactService
	Admin          *services.AdminService
	Auth           *services.AuthService
	Notifier       notify.Notifier
	SplashDuration time.Duration
	Logger         zerolog.Logger
}

func NewUI(cfg UIConfig) *UI {
	return &UI{
		in:             bufio.NewScanner(cfg.In),
		out:            cfg.Out,
		machine:        cfg.Machine,
		session:        cfg.Session,
		cart:           cfg.Cart,
		checkout:       cfg.Checkout,
		products:       cfg.Products,
		orders:         cfg.Orders,
		favorites:      cfg.Favorites,
		contact:        cfg.Contact,
		admin:          cfg.Admin,
		auth:           cfg.Auth,
		notifier:       cfg.Notifier,
		splashDuration: cfg.SplashDuration,
		logger:         cfg.Logger,
	}
}

// Run drives the top-level state machine until the context is cancelled
// or input runs out.
func (ui *UI) Run(ctx context.Context) error {
	ui.showSplash()
	if _, skipped := ui.machine.Start(); !skipped {
		select {
		case <-time.After(ui.splashDuration):
			ui.machine.SplashElapsed()
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var done bool
		switch ui.machine.State() {
		case StateRoleSelection:
			done = ui.roleSelectionScreen()
		case StateAuth:
			done = ui.authScreen(ctx)
		case StateCustomerApp:
			done = ui.customerScreen(ctx)
		case StateAdminApp:
			done = ui.adminScreen(ctx)
		default:
			done = true
		}
		if done {
			return nil
		}
	}
}

func (ui *UI) showSplash() {
	fmt.Fprintf(ui.out, "\n%s%s   BakedBliss — fresh from the oven%s\n\n", colorBold, colorYellow, colorReset)
}

// roleSelectionScreen returns true when the user quits.
func (ui *UI) roleSelectionScreen() bool {
	ui.header("Welcome")
	fmt.Fprintln(ui.out, "  1) Shop as a customer")
	fmt.Fprintln(ui.out, "  2) Sign in as admin")
	fmt.Fprintln(ui.out, "  q) Quit")

	switch ui.prompt("> ") {
	case "1":
		ui.chooseRole(models.RoleCustomer)
	case "2":
		ui.chooseRole(models.RoleAdmin)
	case "q", "":
		return true
	}
	return false
}

func (ui *UI) chooseRole(role models.Role) {
	if err := ui.machine.ChooseRole(role); err != nil {
		ui.logger.Warn().Err(err).Msg("Role selection rejected")
	}
}

func (ui *UI) authScreen(ctx context.Context) bool {
	ui.header("Sign in — " + string(ui.machine.ChosenRole()))
	fmt.Fprintln(ui.out, "  1) Sign in")
	fmt.Fprintln(ui.out, "  2) Create an account")
	fmt.Fprintln(ui.out, "  b) Back")

	switch ui.prompt("> ") {
	case "1":
		email := ui.prompt("Email: ")
		password := ui.prompt("Password: ")
		user, err := ui.session.Login(ctx, email, password)
		if err != nil {
			ui.notifier.Error(err.Error())
			return false
		}
		if err := ui.machine.AuthSucceeded(user); err != nil {
			ui.logger.Warn().Err(err).Msg("Mount after login rejected")
		}
	case "2":
		req := models.RegisterRequest{
			FullName:    ui.prompt("Full name: "),
			Email:       ui.prompt("Email: "),
			PhoneNumber: ui.prompt("Phone (optional): "),
		}
		password := ui.prompt("Password: ")
		confirm := ui.prompt("Confirm password: ")
		if password != confirm {
			ui.notifier.Error("Passwords do not match")
			return false
		}
		req.Password = password

		user, err := ui.session.Signup(ctx, req)
		if err != nil {
			ui.notifier.Error(err.Error())
			return false
		}
		if err := ui.machine.AuthSucceeded(user); err != nil {
			ui.logger.Warn().Err(err).Msg("Mount after signup rejected")
		}
	case "b", "":
		ui.machine.BackToRoleSelection()
	}
	return false
}

func (ui *UI) customerScreen(ctx context.Context) bool {
	user := ui.session.User()
	if user == nil {
		return false
	}

	ui.header(fmt.Sprintf("Menu — signed in as %s (cart: %d)", user.FullName, ui.cart.ItemCount()))
	fmt.Fprintln(ui.out, "  menu | search <q> | category <c> | show <n> | add <n> [qty]")
	fmt.Fprintln(ui.out, "  cart | qty <n> <count> | remove <n> | checkout")
	fmt.Fprintln(ui.out, "  orders | cancel <n> | favorites | fav <n> | unfav <n>")
	fmt.Fprintln(ui.out, "  profile | contact | about | logout | quit")

	line := ui.prompt("> ")
	cmd, arg := splitCommand(line)

	switch cmd {
	case "menu":
		ui.renderProducts(ui.fetchProducts(ctx, "", ""))
	case "search":
		ui.renderProducts(ui.fetchProducts(ctx, arg, ""))
	case "category":
		ui.renderProducts(ui.fetchProducts(ctx, "", arg))
	case "show":
		ui.showProduct(ctx, arg)
	case "add":
		ui.addToCart(ctx, arg)
	case "cart":
		ui.renderCart()
	case "qty":
		ui.updateQuantity(ctx, arg)
	case "remove":
		ui.removeFromCart(ctx, arg)
	case "checkout":
		ui.runCheckout(ctx)
	case "orders":
		ui.renderOrders(ctx, user.UserID)
	case "cancel":
		ui.cancelOrder(ctx, user.UserID, arg)
	case "favorites":
		ui.renderFavorites(ctx, user.UserID)
	case "fav":
		ui.toggleFavorite(ctx, user.UserID, arg, true)
	case "unfav":
		ui.toggleFavorite(ctx, user.UserID, arg, false)
	case "profile":
		ui.profileScreen(ctx, user)
	case "contact":
		ui.contactScreen(ctx, user)
	case "about":
		fmt.Fprintln(ui.out, "BakedBliss: a neighborhood bakery, baking daily since 2012.")
	case "logout":
		ui.machine.Logout()
	case "quit", "q":
		return true
	}
	return false
}

var errNoListing = fmt.Errorf("list products first (menu, search, or favorites)")

func (ui *UI) fetchProducts(ctx context.Context, query, category string) []models.Product {
	var (
		list []models.Product
		err  error
	)
	switch {
	case query != "":
		list, err = ui.products.Search(ctx, query)
	case category != "":
		list, err = ui.products.ByCategory(ctx, category)
	default:
		list, err = ui.products.List(ctx)
	}
	if err != nil {
		ui.notifier.Error("Could not load products. Please try again.")
		ui.logger.Warn().Err(err).Msg("Product fetch failed")
		return nil
	}
	ui.listing = list
	return list
}

func (ui *UI) renderProducts(list []models.Product) {
	if len(list) == 0 {
		fmt.Fprintln(ui.out, "No products found.")
		return
	}
	for i, p := range list {
		fmt.Fprintf(ui.out, "  %2d) %-28s %-10s $%.2f\n", i+1, p.Name, p.Category, p.Price)
	}
}

func (ui *UI) productAt(arg string) (*models.Product, error) {
	n, err := strconv.Atoi(strings.Fields(arg + " x")[0])
	if err != nil || n < 1 || n > len(ui.listing) {
		return nil, errNoListing
	}
	p := ui.listing[n-1]
	return &p, nil
}

func (ui *UI) showProduct(ctx context.Context, arg string) {
	ref, err := ui.productAt(arg)
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	p, err := ui.products.Get(ctx, ref.ID)
	if err != nil {
		ui.notifier.Error("Could not load product details")
		return
	}
	fmt.Fprintf(ui.out, "%s%s%s — $%.2f\n%s\nCategory: %s  In stock: %d\n",
		colorBold, p.Name, colorReset, p.Price, p.Description, p.Category, p.Stock)
}

func (ui *UI) addToCart(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ui.notifier.Error("Usage: add <n> [qty]")
		return
	}
	ref, err := ui.productAt(fields[0])
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	qty := 1
	if len(fields) > 1 {
		if parsed, err := strconv.Atoi(fields[1]); err == nil {
			qty = parsed
		}
	}
	_ = ui.cart.Add(ctx, ref.ID, qty)
}

func (ui *UI) renderCart() {
	items := ui.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(ui.out, "Your cart is empty.")
		return
	}
	for i, item := range items {
		fmt.Fprintf(ui.out, "  %2d) %-28s x%-3d $%.2f\n", i+1, item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(ui.out, "  %sSubtotal: $%.2f (%d items)%s\n", colorBold, ui.cart.Subtotal(), ui.cart.ItemCount(), colorReset)
}

func (ui *UI) cartItemAt(arg string) (*models.CartItem, bool) {
	items := ui.cart.Items()
	n, err := strconv.Atoi(strings.Fields(arg + " x")[0])
	if err != nil || n < 1 || n > len(items) {
		ui.notifier.Error("No such cart line")
		return nil, false
	}
	item := items[n-1]
	return &item, true
}

func (ui *UI) updateQuantity(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		ui.notifier.Error("Usage: qty <n> <count>")
		return
	}
	item, ok := ui.cartItemAt(fields[0])
	if !ok {
		return
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil {
		ui.notifier.Error("Count must be a number")
		return
	}
	_ = ui.cart.UpdateQuantity(ctx, item.ProductID, count)
}

func (ui *UI) removeFromCart(ctx context.Context, arg string) {
	if item, ok := ui.cartItemAt(arg); ok {
		_ = ui.cart.Remove(ctx, item.ProductID)
	}
}

func (ui *UI) runCheckout(ctx context.Context) {
	if err := ui.checkout.Begin(); err != nil {
		ui.notifier.Error(err.Error())
		return
	}

	fmt.Fprintln(ui.out, "Delivery address:")
	addr := models.DeliveryAddress{
		Street:  ui.prompt("  Street: "),
		City:    ui.prompt("  City: "),
		State:   ui.prompt("  State: "),
		ZipCode: ui.prompt("  Zip code: "),
	}
	if ui.prompt("Confirm order? (y/n) ") != "y" {
		ui.checkout.Cancel()
		return
	}

	order, err := ui.checkout.Confirm(ctx, addr)
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success(fmt.Sprintf("Order placed! Total $%.2f", order.TotalAmount))
}

func (ui *UI) renderOrders(ctx context.Context, userID string) {
	list, err := ui.orders.ForUser(ctx, userID)
	if err != nil {
		ui.notifier.Error("Could not load your orders")
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(ui.out, "No orders yet.")
		return
	}
	ui.orderListing = list
	for i, o := range list {
		fmt.Fprintf(ui.out, "  %2d) %s  $%-8.2f %s\n", i+1, o.CreatedAt.Format("Jan 02 15:04"), o.TotalAmount, o.Status)
	}
}

func (ui *UI) cancelOrder(ctx context.Context, userID, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(ui.orderListing) {
		ui.notifier.Error("List orders first, then cancel by number")
		return
	}
	order := ui.orderListing[n-1]
	if !order.Status.CanCancel() {
		ui.notifier.Error("Only pending orders can be cancelled")
		return
	}
	if _, err := ui.orders.Cancel(ctx, order.OrderID); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Order cancelled")
}

func (ui *UI) renderFavorites(ctx context.Context, userID string) {
	list, err := ui.favorites.List(ctx, userID)
	if err != nil {
		ui.notifier.Error("Could not load favorites")
		return
	}
	ui.listing = list
	ui.renderProducts(list)
}

func (ui *UI) toggleFavorite(ctx context.Context, userID, arg string, add bool) {
	ref, err := ui.productAt(arg)
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	if add {
		err = ui.favorites.Add(ctx, userID, ref.ID)
	} else {
		err = ui.favorites.Remove(ctx, userID, ref.ID)
	}
	if err != nil {
		ui.notifier.Error("Could not update favorites")
		return
	}
	ui.notifier.Success("Favorites updated")
}

func (ui *UI) profileScreen(ctx context.Context, user *models.User) {
	fmt.Fprintf(ui.out, "Name:  %s\nEmail: %s\nPhone: %s\n", user.FullName, user.Email, user.PhoneNumber)
	if ui.prompt("Edit profile? (y/n) ") != "y" {
		return
	}

	req := models.UpdateProfileRequest{
		FullName:    ui.prompt("New name (blank keeps current): "),
		PhoneNumber: ui.prompt("New phone (blank keeps current): "),
	}
	updated, err := ui.auth.UpdateProfile(ctx, user.UserID, req)
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.session.UpdateUser(updated)
	ui.notifier.Success("Profile updated")
}

func (ui *UI) contactScreen(ctx context.Context, user *models.User) {
	req := models.ContactRequest{
		Name:    user.FullName,
		Email:   user.Email,
		Subject: ui.prompt("Subject: "),
		Message: ui.prompt("Message: "),
	}
	if err := ui.contact.Send(ctx, req); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Thanks for reaching out! We'll reply soon.")
}

func (ui *UI) header(title string) {
	fmt.Fprintf(ui.out, "\n%s%s── %s ──%s\n", colorBold, colorCyan, title, colorReset)
}

func (ui *UI) prompt(label string) string {
	fmt.Fprint(ui.out, label)
	if !ui.in.Scan() {
		return ""
	}
	return strings.TrimSpace(ui.in.Text())
}

func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
