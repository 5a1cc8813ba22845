package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/angelcm/hogdash-go/internal/models"
)

type Delta struct {
	Abs   float64
	Pct   float64
	PctOK bool // false cuando el valor previo es 0
}

func TrendDeltas(values []float64) []Delta {
	if len(values) < 2 {
		return nil
	}
	out := make([]Delta, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		d := Delta{Abs: values[i] - values[i-1]}
		if values[i-1] != 0 {
			d.Pct = d.Abs / values[i-1] * 100
			d.PctOK = true
		}
		out = append(out, d)
	}
	return out
}

// media de los últimos n valores; con menos de n, promedia lo disponible
func RollingAverage(values []float64, n int) (float64, bool) {
	if len(values) == 0 || n <= 0 {
		return 0, false
	}
	start := len(values) - n
	if start < 0 {
		start = 0
	}
	window := values[start:]
	var sum float64
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window)), true
}

// orden descendente por conteo, empates estables en orden de entrada
func TopN(rows []models.BreakdownRow, n int) []models.BreakdownRow {
	if len(rows) == 0 {
		return nil
	}
	out := make([]models.BreakdownRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// suma por hora del día (0-23); horas sin datos quedan en cero
func HourlyHistogram(rows []models.MetricRow) ([]models.HourBucket, bool) {
	any := false
	var totals [24]float64
	for _, r := range rows {
		h, ok := hourOf(r.Date)
		if !ok {
			continue
		}
		totals[h] += r.Value
		any = true
	}
	if !any {
		return nil, false
	}
	out := make([]models.HourBucket, 24)
	for h := 0; h < 24; h++ {
		out[h] = models.HourBucket{Hour: h, Total: totals[h]}
	}
	return out, true
}

// etiquetas horarias tipo `21-Nov-2025 13:00`
func hourOf(label string) (int, bool) {
	if !strings.Contains(label, ":") {
		return 0, false
	}
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, false
	}
	hh := strings.SplitN(fields[len(fields)-1], ":", 2)[0]
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func Values(rows []models.MetricRow) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Value)
	}
	return out
}

func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func Round1(f float64) float64 { return float64(int64(f*10+0.5)) / 10 }
