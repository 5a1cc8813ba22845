package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/angelcm/hogdash-go/internal/analytics"
	"github.com/angelcm/hogdash-go/internal/cache"
	"github.com/angelcm/hogdash-go/internal/models"
	"github.com/angelcm/hogdash-go/internal/posthog"
)

var ErrNotFound = errors.New("error not found")

// ventanas permitidas para la línea de tiempo de errores
var TimelineWindows = []int{7, 14, 30, 60, 90}

const DefaultTimelineDays = 30

type Gateway interface {
	ExecuteTool(ctx context.Context, tool string, params any) ([]string, error)
}

type Service struct {
	gw    Gateway
	cache *cache.Cache
	log   *slog.Logger
}

func NewService(gw Gateway, c *cache.Cache, log *slog.Logger) *Service {
	return &Service{gw: gw, cache: c, log: log}
}

func (s *Service) run(ctx context.Context, spec posthog.QuerySpec) ([]string, error) {
	return s.cache.GetOrFetch(ctx, spec.Key(), func(ctx context.Context) ([]string, error) {
		return s.gw.ExecuteTool(ctx, spec.Tool, spec.Payload())
	})
}

func (s *Service) Refresh() {
	s.cache.Clear()
	s.log.Info("cache cleared")
}

// Ready verifica conectividad con el gateway; no pasa por la caché.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.gw.ExecuteTool(ctx, posthog.ToolProjectsGet, nil)
	return err
}

func (s *Service) PageViews(ctx context.Context) (models.PageViewReport, error) {
	var rep models.PageViewReport

	trendRaw, err := s.run(ctx, posthog.PageViewsByDay(7))
	if err != nil {
		return rep, err
	}
	for _, row := range posthog.ParseTableRows(trendRaw) {
		if len(row) < 3 {
			continue
		}
		views, _ := strconv.Atoi(row[1])
		users, _ := strconv.Atoi(row[2])
		rep.Trend = append(rep.Trend, models.PageViewPoint{Date: row[0], Views: views, UniqueUsers: users})
	}
	if len(rep.Trend) == 0 {
		rep.NoData = true
		return rep, nil
	}

	var totalViews, totalUsers int
	for _, p := range rep.Trend {
		totalViews += p.Views
		totalUsers += p.UniqueUsers
	}
	rep.Summary = models.PageViewSummary{
		TotalViews:     totalViews,
		UniqueUsers:    totalUsers,
		AvgViewsPerDay: analytics.Round1(analytics.SafeDiv(float64(totalViews), float64(len(rep.Trend)))),
		ViewsPerUser:   analytics.Round1(analytics.SafeDiv(float64(totalViews), float64(totalUsers))),
	}

	if pagesRaw, err := s.run(ctx, posthog.TopPages(7, 10)); err == nil {
		rep.TopPages = rankedFromTable(posthog.ParseTableRows(pagesRaw))
	} else {
		s.log.Warn("top pages fetch failed", slog.String("err", err.Error()))
	}
	if refRaw, err := s.run(ctx, posthog.Referrers(7, 10)); err == nil {
		rep.Referrers = rankedFromTable(posthog.ParseTableRows(refRaw))
	} else {
		s.log.Warn("referrers fetch failed", slog.String("err", err.Error()))
	}
	return rep, nil
}

func (s *Service) ActiveUsers(ctx context.Context) (models.DAUReport, error) {
	var rep models.DAUReport

	trendRaw, err := s.run(ctx, posthog.DAUTrend(30))
	if err != nil {
		return rep, err
	}
	rows := posthog.ParseTrendSeries(trendRaw)
	if len(rows) == 0 {
		rep.NoData = true
		return rep, nil
	}

	values := analytics.Values(rows)
	for _, r := range rows {
		rep.Trend = append(rep.Trend, models.DAUPoint{Date: r.Date, DAU: int(r.Value)})
	}
	rep.Today = int(values[len(values)-1])
	if deltas := analytics.TrendDeltas(values); len(deltas) > 0 {
		last := deltas[len(deltas)-1]
		rep.TodayDelta = int(last.Abs)
		if last.PctOK {
			pct := last.Pct
			rep.TodayDeltaPct = &pct
		}
	}
	if avg, ok := analytics.RollingAverage(values, 7); ok {
		rep.Avg7d = analytics.Round1(avg)
	}
	if avg, ok := analytics.RollingAverage(values, 30); ok {
		rep.Avg30d = analytics.Round1(avg)
	}

	if geoRaw, err := s.run(ctx, posthog.DAUByCountry(7)); err == nil {
		for _, b := range analytics.TopN(posthog.ParseBreakdown(geoRaw), 10) {
			rep.ByCountry = append(rep.ByCountry, models.RankedItem{Label: b.Label, Count: int(b.Count)})
		}
	} else {
		s.log.Warn("country breakdown fetch failed", slog.String("err", err.Error()))
	}
	if hourRaw, err := s.run(ctx, posthog.HourlyDAU(7)); err == nil {
		if buckets, ok := analytics.HourlyHistogram(posthog.ParseTrendSeries(hourRaw)); ok {
			rep.HourlyPattern = buckets
		}
	} else {
		s.log.Warn("hourly pattern fetch failed", slog.String("err", err.Error()))
	}
	return rep, nil
}

func (s *Service) Errors(ctx context.Context, timelineDays int) (models.ErrorReport, error) {
	rep := models.ErrorReport{TimelineDays: clampTimelineDays(timelineDays)}

	listRaw, err := s.run(ctx, posthog.ListErrors())
	if err != nil {
		return rep, err
	}
	rep.Errors = posthog.ParseErrors(listRaw)
	if len(rep.Errors) == 0 {
		rep.NoData = true
		return rep, nil
	}

	for _, e := range rep.Errors {
		rep.Summary.TotalErrors++
		rep.Summary.TotalOccurrences += e.Occurrences
		rep.Summary.AffectedUsers += e.Users
		if e.Status == "active" {
			rep.Summary.ActiveErrors++
		}
	}

	byOcc := make([]models.BreakdownRow, 0, len(rep.Errors))
	for _, e := range rep.Errors {
		byOcc = append(byOcc, models.BreakdownRow{Label: e.Name, Count: float64(e.Occurrences)})
	}
	for _, b := range analytics.TopN(byOcc, 10) {
		rep.TopErrors = append(rep.TopErrors, models.RankedItem{Label: b.Label, Count: int(b.Count)})
	}

	if tlRaw, err := s.run(ctx, posthog.ErrorTimeline(rep.TimelineDays)); err == nil {
		for _, row := range posthog.ParseTableRows(tlRaw) {
			if len(row) < 3 {
				continue
			}
			count, _ := strconv.Atoi(row[1])
			users, _ := strconv.Atoi(row[2])
			rep.Timeline = append(rep.Timeline, models.ErrorTimelinePoint{Date: row[0], Count: count, AffectedUsers: users})
		}
	} else {
		s.log.Warn("error timeline fetch failed", slog.String("err", err.Error()))
	}
	if btRaw, err := s.run(ctx, posthog.ErrorTimelineByType(rep.TimelineDays)); err == nil {
		for _, row := range posthog.ParseTableRows(btRaw) {
			if len(row) < 3 {
				continue
			}
			count, _ := strconv.Atoi(row[2])
			rep.ByType = append(rep.ByType, models.ErrorTypePoint{Date: row[0], Type: row[1], Count: count})
		}
	} else {
		s.log.Warn("error timeline by type fetch failed", slog.String("err", err.Error()))
	}
	return rep, nil
}

func (s *Service) ErrorDetail(ctx context.Context, id string) (models.ErrorDetail, error) {
	var det models.ErrorDetail
	raw, err := s.run(ctx, posthog.ErrorDetails(id))
	if err != nil {
		return det, err
	}
	recs := posthog.ParseErrors(raw)
	if len(recs) == 0 {
		return det, ErrNotFound
	}
	det.Error = recs[0]
	det.Raw = raw
	return det, nil
}

func rankedFromTable(rows [][]string) []models.RankedItem {
	var out []models.RankedItem
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		count, _ := strconv.Atoi(row[1])
		out = append(out, models.RankedItem{Label: row[0], Count: count})
	}
	return out
}

func clampTimelineDays(days int) int {
	for _, w := range TimelineWindows {
		if days == w {
			return days
		}
	}
	return DefaultTimelineDays
}
