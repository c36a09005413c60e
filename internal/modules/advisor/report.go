package advisor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BUNNY1710/glassshop-backend/internal/modules/audit"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/stock"
)

const (
	bestSellerLimit = 5
	deadStockLimit  = 10
	standLimit      = 10
	reorderLimit    = stock.MaxSuggestions
	forecastDays    = 30
	forecastHistory = 30
)

const (
	EmptyQuestionText = "Please ask a question about your stock. For example: 'What should I reorder?'"
	InvalidOptionText = "❌ Invalid option selected"

	HelpText = "I can help you with:\n" +
		"• Reorder suggestions (ask: 'What should I reorder?')\n" +
		"• Best selling glass (ask: 'Which glass sells most?')\n" +
		"• Dead stock (ask: 'Which glass is dead stock?')\n" +
		"• Stand activity (ask: 'Which stand has frequent movement?')\n\n" +
		"Try rephrasing your question using these keywords."
)

func glassType(s *stock.Stock) string {
	if s.Glass == nil {
		return ""
	}
	return s.Glass.Type
}

func reorderReport(low []*stock.Stock) string {
	suggestions := stock.Suggest(low, 0)
	if len(suggestions) == 0 {
		return "✅ Great news! All your stock levels are above minimum thresholds. No reordering needed at this time."
	}
	var b strings.Builder
	b.WriteString("📋 REORDER SUGGESTIONS (Top 5 Priority Items):\n\n")
	for i, s := range suggestions {
		if i == reorderLimit {
			break
		}
		fmt.Fprintf(&b, "%d. %s (Stand #%d)\n", i+1, s.GlassType, s.StandNo)
		fmt.Fprintf(&b, "   Current: %d units | Minimum: %d units | Gap: %d units\n", s.Quantity, s.MinQuantity, s.Gap)
		fmt.Fprintf(&b, "   💡 Recommended reorder: %d units\n\n", s.RecommendedQty)
	}
	fmt.Fprintf(&b, "Total items needing reorder: %d", len(suggestions))
	return b.String()
}

type typeTotal struct {
	glassType string
	quantity  int
}

// totalsByType sums entry quantities per glass type, largest first. Ties keep
// alphabetical order so output is stable.
func totalsByType(entries []*audit.Entry) []typeTotal {
	sums := map[string]int{}
	for _, e := range entries {
		if e.GlassType != "" {
			sums[e.GlassType] += e.Quantity
		}
	}
	out := make([]typeTotal, 0, len(sums))
	for t, q := range sums {
		out = append(out, typeTotal{t, q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].quantity != out[j].quantity {
			return out[i].quantity > out[j].quantity
		}
		return out[i].glassType < out[j].glassType
	})
	return out
}

func bestSellersReport(removals []*audit.Entry) string {
	totals := totalsByType(removals)
	if len(totals) == 0 {
		return "📊 No sales data available for the last 30 days. Check back after some stock movements."
	}
	var b strings.Builder
	b.WriteString("🏆 BEST SELLING GLASS (Last 30 Days):\n\n")
	sold := 0
	for i, t := range totals {
		sold += t.quantity
		if i < bestSellerLimit {
			fmt.Fprintf(&b, "%d. %s - %d units sold\n", i+1, t.glassType, t.quantity)
		}
	}
	fmt.Fprintf(&b, "\n📈 Total units sold in last 30 days: %d", sold)
	return b.String()
}

func deadStockReport(all []*stock.Stock, removals []*audit.Entry) string {
	moving := map[string]bool{}
	for _, e := range removals {
		moving[e.GlassType] = true
	}
	var dead []*stock.Stock
	for _, s := range all {
		if s.Quantity > 0 && !moving[glassType(s)] {
			dead = append(dead, s)
		}
	}
	if len(dead) == 0 {
		return "✅ Excellent! All your stock has been moving in the last 60 days. No dead stock detected."
	}
	sort.SliceStable(dead, func(i, j int) bool { return dead[i].Quantity > dead[j].Quantity })
	if len(dead) > deadStockLimit {
		dead = dead[:deadStockLimit]
	}

	// group in order of first appearance so the largest holding leads
	var order []string
	byType := map[string][]*stock.Stock{}
	for _, s := range dead {
		t := glassType(s)
		if _, ok := byType[t]; !ok {
			order = append(order, t)
		}
		byType[t] = append(byType[t], s)
	}

	var b strings.Builder
	b.WriteString("⚠️ DEAD STOCK (No sales in last 60 days):\n\n")
	for i, t := range order {
		rows := byType[t]
		total := 0
		stands := make([]string, 0, len(rows))
		for _, s := range rows {
			total += s.Quantity
			stands = append(stands, fmt.Sprintf("#%d", s.StandNo))
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		fmt.Fprintf(&b, "   Total quantity: %d units across %d stand(s)\n", total, len(rows))
		fmt.Fprintf(&b, "   Stands: %s\n\n", strings.Join(stands, ", "))
	}
	b.WriteString("💡 Consider running promotions or reviewing pricing for these items.")
	return b.String()
}

func standActivityReport(entries []*audit.Entry) string {
	if len(entries) == 0 {
		return "📊 No activity data available. Stand activity will appear after stock operations."
	}
	counts := map[int]int{}
	for _, e := range entries {
		if e.StandNo > 0 {
			counts[e.StandNo]++
		}
	}
	if len(counts) == 0 {
		return "📊 No stand activity data found."
	}
	stands := make([]int, 0, len(counts))
	for s := range counts {
		stands = append(stands, s)
	}
	sort.Slice(stands, func(i, j int) bool {
		if counts[stands[i]] != counts[stands[j]] {
			return counts[stands[i]] > counts[stands[j]]
		}
		return stands[i] < stands[j]
	})
	if len(stands) > standLimit {
		stands = stands[:standLimit]
	}

	var b strings.Builder
	b.WriteString("📊 MOST ACTIVE STANDS (By total operations):\n\n")
	for i, s := range stands {
		fmt.Fprintf(&b, "%d. Stand #%d - %d operations\n", i+1, s, counts[s])
	}

	top := stands[0]
	actions := map[audit.Action]int{}
	for _, e := range entries {
		if e.StandNo == top {
			actions[e.Action]++
		}
	}
	fmt.Fprintf(&b, "\n📈 Stand #%d breakdown:\n", top)
	for _, a := range []audit.Action{audit.ActionAdd, audit.ActionRemove, audit.ActionTransfer, audit.ActionUndo} {
		if n := actions[a]; n > 0 {
			fmt.Fprintf(&b, "   %s: %d\n", a, n)
		}
	}
	return b.String()
}

func availableReport(glass string, rows []*stock.Stock) string {
	if len(rows) == 0 {
		return fmt.Sprintf("📦 No stock found for %s.", glass)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📦 AVAILABLE STOCK: %s\n\n", glassType(rows[0]))
	total := 0
	for _, s := range rows {
		fmt.Fprintf(&b, "• Stand #%d", s.StandNo)
		if s.Height != "" && s.Width != "" {
			fmt.Fprintf(&b, " (%s x %s)", s.Height, s.Width)
		}
		fmt.Fprintf(&b, ": %d units\n", s.Quantity)
		total += s.Quantity
	}
	fmt.Fprintf(&b, "\nTotal available: %d units", total)
	return b.String()
}

// forecastReport projects the average daily removals of the last
// forecastHistory days over the next forecastDays days.
func forecastReport(removals []*audit.Entry, all []*stock.Stock) string {
	totals := totalsByType(removals)
	if len(totals) == 0 {
		return "🔮 Not enough sales data to predict demand. Check back after some stock removals."
	}
	onHand := map[string]int{}
	for _, s := range all {
		onHand[glassType(s)] += s.Quantity
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔮 DEMAND FORECAST (Next %d Days):\n\n", forecastDays)
	for i, t := range totals {
		daily := float64(t.quantity) / forecastHistory
		expected := int(math.Ceil(daily * forecastDays))
		fmt.Fprintf(&b, "%d. %s - about %.1f units/day, expect ~%d units\n", i+1, t.glassType, daily, expected)
		fmt.Fprintf(&b, "   In stock: %d units", onHand[t.glassType])
		if onHand[t.glassType] < expected {
			fmt.Fprintf(&b, " | ⚠️ short by %d", expected-onHand[t.glassType])
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
