package stock

import (
	"fmt"
	"strings"
)

// NoLowStockText is returned by LowStockText when nothing is below its minimum.
const NoLowStockText = "✅ All stock levels are above their minimum quantity."

// LowStockText renders low rows as the plain-text alert used by
// /stock/alert/low and the scheduled digest.
func LowStockText(rows []*Stock) string {
	var b strings.Builder
	n := 0
	for _, r := range rows {
		if !r.IsLow() {
			continue
		}
		if n == 0 {
			b.WriteString("🚨 LOW STOCK ALERT\n")
		}
		n++
		glassType := "UNKNOWN"
		if r.Glass != nil {
			glassType = r.Glass.Type
		}
		fmt.Fprintf(&b, "• %s at stand %d", glassType, r.StandNo)
		if size := dimensions(r.Height, r.Width); size != "" {
			fmt.Fprintf(&b, " (%s)", size)
		}
		fmt.Fprintf(&b, ": %d left, minimum %d\n", r.Quantity, r.MinQuantity)
	}
	if n == 0 {
		return NoLowStockText
	}
	fmt.Fprintf(&b, "Total low stock items: %d", n)
	return b.String()
}

func dimensions(height, width string) string {
	switch {
	case height == "" && width == "":
		return ""
	case width == "":
		return height
	case height == "":
		return width
	}
	return height + " x " + width
}
