// Package render turns catalog, cart and admin data into styled terminal
// output. It is the CLI counterpart of the original storefront's DOM views.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	inStockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	outStockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func Dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func stockBadge(p model.Product) string {
	if p.InStock() {
		return inStockStyle.Render(fmt.Sprintf("In Stock (%d)", p.StockQuantity))
	}
	return outStockStyle.Render("Out of Stock")
}

// ProductGrid renders the storefront product listing.
func ProductGrid(products []model.Product) string {
	if len(products) == 0 {
		return faintStyle.Render("No products found.") + "\n"
	}

	var b strings.Builder
	for _, p := range products {
		categories := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			categories = append(categories, c.Name)
		}

		fmt.Fprintf(&b, "%s  %s  %s\n",
			titleStyle.Render(fmt.Sprintf("#%d %s", p.ID, p.Name)),
			priceStyle.Render(Dollars(p.PriceCents)),
			stockBadge(p))
		if p.Description != "" {
			fmt.Fprintf(&b, "    %s\n", p.Description)
		}
		if len(categories) > 0 {
			fmt.Fprintf(&b, "    %s\n", faintStyle.Render(strings.Join(categories, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CategoryList renders the category filter row; the active filter is marked.
func CategoryList(categories []model.Category, active int64) string {
	var b strings.Builder
	b.WriteString(renderFilterEntry("All Products", active == model.CategoryAll))
	for _, c := range categories {
		b.WriteString("  ")
		b.WriteString(renderFilterEntry(fmt.Sprintf("%s (#%d)", c.Name, c.ID), active == c.ID))
	}
	b.WriteString("\n")
	return b.String()
}

func renderFilterEntry(label string, active bool) string {
	if active {
		return titleStyle.Render("[" + label + "]")
	}
	return label
}

// CartView renders cart lines with subtotals and the grand total.
func CartView(entries []model.CartEntry, totalCents int64) string {
	if len(entries) == 0 {
		return faintStyle.Render("Your cart is empty.") + "\n"
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s x %d  %s\n",
			titleStyle.Render(fmt.Sprintf("#%d %s", e.ProductID, e.Product.Name)),
			Dollars(e.Product.PriceCents),
			e.Quantity,
			priceStyle.Render(Dollars(e.SubtotalCents())))
	}
	fmt.Fprintf(&b, "\n%s %s\n", headerStyle.Render("Total:"), priceStyle.Render(Dollars(totalCents)))
	return b.String()
}

// ProductTable renders the admin product listing.
func ProductTable(products []model.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("%-6s %-28s %-10s %-6s %s", "ID", "NAME", "PRICE", "STOCK", "CATEGORY")))
	for _, p := range products {
		categoryName := "N/A"
		if len(p.Categories) > 0 {
			categoryName = p.Categories[0].Name
		}
		fmt.Fprintf(&b, "%-6d %-28s %-10s %-6d %s\n",
			p.ID, truncate(p.Name, 28), Dollars(p.PriceCents), p.StockQuantity, categoryName)
	}
	return b.String()
}

// OrderTable renders the admin order listing, including the notification
// flag the backend maintains.
func OrderTable(orders []model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("%-12s %-20s %-14s %-10s %-10s %-10s %s", "ORDER", "CUSTOMER", "PHONE", "TOTAL", "STATUS", "DATE", "WHATSAPP")))
	for _, o := range orders {
		sent := "pending"
		if o.WhatsAppSent {
			sent = "sent"
		}
		date := ""
		if !o.CreatedAt.IsZero() {
			date = o.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%-12s %-20s %-14s %-10s %-10s %-10s %s\n",
			"#"+o.OrderNumber, truncate(o.CustomerName, 20), o.Phone,
			Dollars(o.TotalCents), o.Status, date, sent)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
