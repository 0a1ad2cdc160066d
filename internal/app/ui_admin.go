package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

// adminScreen is the back-office route tree: dashboard, product CRUD,
// order management, customers, and analytics.
func (ui *UI) adminScreen(ctx context.Context) bool {
	user := ui.session.User()
	if user == nil {
		return false
	}

	ui.header("Admin — " + user.FullName)
	fmt.Fprintln(ui.out, "  dashboard | products | newproduct | editproduct <n> | delproduct <n>")
	fmt.Fprintln(ui.out, "  orders | status <n> <status> | stats | customers | delcustomer <n>")
	fmt.Fprintln(ui.out, "  sales | top | logout | quit")

	line := ui.prompt("> ")
	cmd, arg := splitCommand(line)

	switch cmd {
	case "dashboard":
		ui.renderDashboard(ctx)
	case "products":
		ui.renderProducts(ui.fetchProducts(ctx, "", ""))
	case "newproduct":
		ui.createProduct(ctx)
	case "editproduct":
		ui.editProduct(ctx, arg)
	case "delproduct":
		ui.deleteProduct(ctx, arg)
	case "orders":
		ui.renderAllOrders(ctx)
	case "status":
		ui.changeOrderStatus(ctx, arg)
	case "stats":
		ui.renderOrderStats(ctx)
	case "customers":
		ui.renderCustomers(ctx)
	case "delcustomer":
		ui.deleteCustomer(ctx, arg)
	case "sales":
		ui.renderSales(ctx)
	case "top":
		ui.renderTopProducts(ctx)
	case "logout":
		ui.machine.Logout()
	case "quit", "q":
		return true
	}
	return false
}

func (ui *UI) renderDashboard(ctx context.Context) {
	stats, err := ui.admin.DashboardStats(ctx)
	if err != nil || stats == nil {
		ui.notifier.Error("Could not load dashboard stats")
		return
	}
	fmt.Fprintf(ui.out, "Revenue: $%.2f  Orders: %d (%d pending)  Customers: %d  Products: %d\n",
		stats.TotalRevenue, stats.TotalOrders, stats.PendingOrders, stats.TotalCustomers, stats.TotalProducts)
}

func (ui *UI) createProduct(ctx context.Context) {
	input, ok := ui.promptProductInput(models.ProductInput{Available: true})
	if !ok {
		return
	}
	if _, err := ui.products.Create(ctx, input); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Product created")
}

func (ui *UI) editProduct(ctx context.Context, arg string) {
	ref, err := ui.productAt(arg)
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	input, ok := ui.promptProductInput(models.ProductInput{
		Name:        ref.Name,
		Description: ref.Description,
		Category:    ref.Category,
		Price:       ref.Price,
		Image:       ref.Image,
		Stock:       ref.Stock,
		Available:   ref.Available,
	})
	if !ok {
		return
	}
	if _, err := ui.products.Update(ctx, ref.ID, input); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Product updated")
}

func (ui *UI) promptProductInput(defaults models.ProductInput) (models.ProductInput, bool) {
	input := defaults
	if v := ui.prompt(fmt.Sprintf("Name [%s]: ", defaults.Name)); v != "" {
		input.Name = v
	}
	if v := ui.prompt(fmt.Sprintf("Category [%s]: ", defaults.Category)); v != "" {
		input.Category = v
	}
	if v := ui.prompt(fmt.Sprintf("Price [%.2f]: ", defaults.Price)); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price <= 0 {
			ui.notifier.Error("Price must be a positive number")
			return input, false
		}
		input.Price = price
	}
	if v := ui.prompt(fmt.Sprintf("Stock [%d]: ", defaults.Stock)); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			ui.notifier.Error("Stock must be a non-negative number")
			return input, false
		}
		input.Stock = stock
	}
	if v := ui.prompt("Description: "); v != "" {
		input.Description = v
	}
	return input, true
}

func (ui *UI) deleteProduct(ctx context.Context, arg string) {
	ref, err := ui.productAt(arg)
	if err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	if ui.prompt(fmt.Sprintf("Delete %q? (y/n) ", ref.Name)) != "y" {
		return
	}
	if err := ui.products.Delete(ctx, ref.ID); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Product deleted")
}

func (ui *UI) renderAllOrders(ctx context.Context) {
	list, err := ui.orders.All(ctx)
	if err != nil {
		ui.notifier.Error("Could not load orders")
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(ui.out, "No orders.")
		return
	}
	ui.orderListing = list
	for i, o := range list {
		fmt.Fprintf(ui.out, "  %2d) %s  %-10s $%.2f\n", i+1, o.CreatedAt.Format("Jan 02 15:04"), o.Status, o.TotalAmount)
	}
}

func (ui *UI) changeOrderStatus(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		ui.notifier.Error("Usage: status <n> <Pending|Processing|Shipped|Delivered|Cancelled>")
		return
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > len(ui.orderListing) {
		ui.notifier.Error("List orders first, then set status by number")
		return
	}
	order := ui.orderListing[n-1]
	status := parseOrderStatus(fields[1])
	if status == "" {
		ui.notifier.Error("Unknown status")
		return
	}

	if _, err := ui.orders.UpdateStatus(ctx, order.OrderID, status); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Order status updated")
}

func parseOrderStatus(s string) models.OrderStatus {
	for _, status := range []models.OrderStatus{
		models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled,
	} {
		if strings.EqualFold(s, string(status)) {
			return status
		}
	}
	return ""
}

func (ui *UI) renderOrderStats(ctx context.Context) {
	stats, err := ui.orders.Stats(ctx)
	if err != nil || stats == nil {
		ui.notifier.Error("Could not load order stats")
		return
	}
	fmt.Fprintf(ui.out, "Orders: %d  Pending: %d  Delivered: %d  Cancelled: %d  Revenue: $%.2f\n",
		stats.TotalOrders, stats.PendingOrders, stats.DeliveredOrders, stats.CancelledOrders, stats.TotalRevenue)
}

func (ui *UI) renderCustomers(ctx context.Context) {
	list, err := ui.admin.Customers(ctx)
	if err != nil {
		ui.notifier.Error("Could not load customers")
		return
	}
	ui.customerListing = list
	for i, c := range list {
		fmt.Fprintf(ui.out, "  %2d) %-24s %-28s orders: %d  spent: $%.2f\n", i+1, c.FullName, c.Email, c.OrderCount, c.TotalSpent)
	}
}

func (ui *UI) deleteCustomer(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(ui.customerListing) {
		ui.notifier.Error("List customers first, then delete by number")
		return
	}
	customer := ui.customerListing[n-1]
	if ui.prompt(fmt.Sprintf("Delete customer %q? (y/n) ", customer.FullName)) != "y" {
		return
	}
	if err := ui.admin.DeleteCustomer(ctx, customer.UserID); err != nil {
		ui.notifier.Error(err.Error())
		return
	}
	ui.notifier.Success("Customer deleted")
}

func (ui *UI) renderSales(ctx context.Context) {
	points, err := ui.admin.SalesAnalytics(ctx)
	if err != nil {
		ui.notifier.Error("Could not load sales analytics")
		return
	}
	for _, p := range points {
		fmt.Fprintf(ui.out, "  %s  $%-10.2f %d orders\n", p.Date, p.Revenue, p.Orders)
	}
}

func (ui *UI) renderTopProducts(ctx context.Context) {
	list, err := ui.admin.TopProducts(ctx)
	if err != nil {
		ui.notifier.Error("Could not load top products")
		return
	}
	for i, p := range list {
		fmt.Fprintf(ui.out, "  %2d) %-28s sold: %-4d revenue: $%.2f\n", i+1, p.Name, p.UnitsSold, p.Revenue)
	}
}
