package exporter

import (
	"fmt"
	"strconv"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatCell renders a table cell for CSV output. Missing values are empty.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}

// nullable maps a NullFloat onto a cell value, nil when absent.
func nullable(n domain.NullFloat) interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}
