package posthog

import (
	"strconv"
	"strings"
	"time"

	"github.com/angelcm/hogdash-go/internal/models"
)

// El gateway devuelve los resultados como texto semi-estructurado; estos
// parsers replican los formatos de línea que emite cada herramienta.

// líneas tipo: `  - [3]: 2025-11-21,271,7`
func ParseTableRows(content []string) [][]string {
	var rows [][]string
	for _, item := range content {
		for _, line := range strings.Split(item, "\n") {
			if !strings.Contains(line, " - [") || !strings.Contains(line, "]: ") {
				continue
			}
			parts := strings.SplitN(line, "]: ", 2)
			if len(parts) != 2 {
				continue
			}
			raw := strings.ReplaceAll(strings.TrimSpace(parts[1]), `"`, "")
			rows = append(rows, strings.Split(raw, ","))
		}
	}
	return rows
}

// series de tendencia: `data[0]: 1,2,3` + `labels[0]: 20-Nov-2025,...`
func ParseTrendSeries(content []string) []models.MetricRow {
	for _, item := range content {
		if !strings.Contains(item, "data[") || !strings.Contains(item, "labels[") {
			continue
		}
		values := seriesInts(item, "data[")
		labels := seriesLabels(item, "labels[")
		n := len(values)
		if len(labels) < n {
			n = len(labels)
		}
		rows := make([]models.MetricRow, 0, n)
		for i := 0; i < n; i++ {
			rows = append(rows, models.MetricRow{
				Date:  normalizeDateLabel(labels[i]),
				Value: float64(values[i]),
			})
		}
		return rows
	}
	return nil
}

func seriesInts(item, marker string) []int {
	raw := seriesLine(item, marker)
	if raw == "" {
		return nil
	}
	var out []int
	for _, p := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func seriesLabels(item, marker string) []string {
	raw := seriesLine(item, marker)
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func seriesLine(item, marker string) string {
	idx := strings.Index(item, marker)
	if idx < 0 {
		return ""
	}
	rest := item[idx:]
	idx = strings.Index(rest, "]:")
	if idx < 0 {
		return ""
	}
	rest = rest[idx+2:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

// PostHog etiqueta las fechas como `20-Nov-2025`
func normalizeDateLabel(label string) string {
	if t, err := time.Parse("02-Jan-2006", label); err == nil {
		return t.Format("2006-01-02")
	}
	return label
}

const breakdownNullSentinel = "$$_posthog_breakdown_null_$$"

func ParseBreakdown(content []string) []models.BreakdownRow {
	var rows []models.BreakdownRow
	for _, item := range content {
		label := lineField(item, "label:")
		if label == "" {
			continue
		}
		count, _ := strconv.Atoi(lineField(item, "count:"))
		if label == breakdownNullSentinel || count <= 0 {
			continue
		}
		rows = append(rows, models.BreakdownRow{Label: label, Count: float64(count)})
	}
	return rows
}

func ParseErrors(content []string) []models.ErrorRecord {
	var errs []models.ErrorRecord
	for _, item := range content {
		rec := models.ErrorRecord{
			ID:          lineField(item, "id:"),
			Name:        lineField(item, "name:"),
			Description: lineField(item, "description:"),
			Source:      lineField(item, "source:"),
			Status:      lineField(item, "status:"),
			FirstSeen:   strings.ReplaceAll(lineField(item, "first_seen:"), `"`, ""),
			LastSeen:    strings.ReplaceAll(lineField(item, "last_seen:"), `"`, ""),
		}
		rec.Occurrences, _ = strconv.Atoi(lineField(item, "occurrences:"))
		rec.Users, _ = strconv.Atoi(lineField(item, "users:"))
		rec.Sessions, _ = strconv.Atoi(lineField(item, "sessions:"))
		if rec == (models.ErrorRecord{}) {
			continue
		}
		errs = append(errs, rec)
	}
	return errs
}

// valor tras `key:` hasta fin de línea, primera ocurrencia
func lineField(item, key string) string {
	idx := strings.Index(item, key)
	if idx < 0 {
		return ""
	}
	rest := item[idx+len(key):]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}
