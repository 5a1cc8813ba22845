package posthog

import (
	"encoding/json"
	"fmt"
)

const (
	ToolQueryRun     = "mcp_Posthog_query_run"
	ToolListErrors   = "mcp_Posthog_list_errors"
	ToolErrorDetails = "mcp_Posthog_error_details"
	ToolProjectsGet  = "mcp_Posthog_projects_get"
)

// InternalDomain: usuarios internos excluidos de todas las métricas de tráfico
const InternalDomain = "@datagen.dev"

const emailExclusion = "(person.properties.email NOT LIKE '%" + InternalDomain + "' OR person.properties.email IS NULL)"

type QuerySpec struct {
	Tool               string `json:"tool"`
	Kind               string `json:"kind"`
	Event              string `json:"event,omitempty"`
	Math               string `json:"math,omitempty"`
	CustomName         string `json:"custom_name,omitempty"`
	DateFrom           string `json:"date_from,omitempty"`
	Interval           string `json:"interval,omitempty"`
	Breakdown          string `json:"breakdown,omitempty"`
	BreakdownType      string `json:"breakdown_type,omitempty"`
	FilterTestAccounts bool   `json:"filter_test_accounts,omitempty"`
	HogQL              string `json:"hogql,omitempty"`
	ErrorID            string `json:"error_id,omitempty"`
}

// Key: serialización canónica, identidad del spec para la caché
func (s QuerySpec) Key() string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (s QuerySpec) Payload() map[string]any {
	switch s.Kind {
	case "hogql":
		return map[string]any{
			"query": map[string]any{
				"kind": "DataVisualizationNode",
				"source": map[string]any{
					"kind":  "HogQLQuery",
					"query": s.HogQL,
				},
			},
		}
	case "trends":
		source := map[string]any{
			"kind": "TrendsQuery",
			"series": []map[string]any{{
				"kind":        "EventsNode",
				"event":       s.Event,
				"math":        s.Math,
				"custom_name": s.CustomName,
			}},
			"dateRange": map[string]any{
				"date_from": s.DateFrom,
				"date_to":   nil,
			},
			"interval":           s.Interval,
			"filterTestAccounts": s.FilterTestAccounts,
		}
		if s.Breakdown != "" {
			source["breakdownFilter"] = map[string]any{
				"breakdown":      s.Breakdown,
				"breakdown_type": s.BreakdownType,
			}
		}
		return map[string]any{
			"query": map[string]any{
				"kind":   "InsightVizNode",
				"source": source,
			},
		}
	case "error_details":
		return map[string]any{"error_id": s.ErrorID}
	default:
		return map[string]any{}
	}
}

func PageViewsByDay(days int) QuerySpec {
	q := fmt.Sprintf(`SELECT
    toDate(timestamp) as date,
    count() as page_views,
    uniq(person_id) as unique_users
FROM events
WHERE event = 'page_viewed'
    AND timestamp >= now() - INTERVAL %d DAY
    AND %s
GROUP BY date
ORDER BY date`, days, emailExclusion)
	return QuerySpec{Tool: ToolQueryRun, Kind: "hogql", Event: "page_viewed", DateFrom: fmt.Sprintf("-%dd", days), HogQL: q}
}

func TopPages(days, limit int) QuerySpec {
	q := fmt.Sprintf(`SELECT
    properties.$current_url as page,
    count() as views
FROM events
WHERE event = 'page_viewed'
    AND timestamp >= now() - INTERVAL %d DAY
    AND %s
GROUP BY page
ORDER BY views DESC
LIMIT %d`, days, emailExclusion, limit)
	return QuerySpec{Tool: ToolQueryRun, Kind: "hogql", Event: "page_viewed", DateFrom: fmt.Sprintf("-%dd", days), HogQL: q}
}

func Referrers(days, limit int) QuerySpec {
	q := fmt.Sprintf(`SELECT
    properties.$referring_domain as referrer,
    count() as visits
FROM events
WHERE event = '$pageview'
    AND timestamp >= now() - INTERVAL %d DAY
    AND properties.$referring_domain IS NOT NULL
    AND %s
GROUP BY referrer
ORDER BY visits DESC
LIMIT %d`, days, emailExclusion, limit)
	return QuerySpec{Tool: ToolQueryRun, Kind: "hogql", Event: "$pageview", DateFrom: fmt.Sprintf("-%dd", days), HogQL: q}
}

func DAUTrend(days int) QuerySpec {
	return QuerySpec{
		Tool:               ToolQueryRun,
		Kind:               "trends",
		Event:              "$pageview",
		Math:               "dau",
		CustomName:         "Daily Active Users",
		DateFrom:           fmt.Sprintf("-%dd", days),
		Interval:           "day",
		FilterTestAccounts: true,
	}
}

func DAUByCountry(days int) QuerySpec {
	return QuerySpec{
		Tool:               ToolQueryRun,
		Kind:               "trends",
		Event:              "$pageview",
		Math:               "dau",
		CustomName:         "DAU by Country",
		DateFrom:           fmt.Sprintf("-%dd", days),
		Interval:           "day",
		Breakdown:          "$geoip_country_name",
		BreakdownType:      "event",
		FilterTestAccounts: true,
	}
}

func HourlyDAU(days int) QuerySpec {
	return QuerySpec{
		Tool:               ToolQueryRun,
		Kind:               "trends",
		Event:              "$pageview",
		Math:               "dau",
		CustomName:         "DAU by Hour",
		DateFrom:           fmt.Sprintf("-%dd", days),
		Interval:           "hour",
		FilterTestAccounts: true,
	}
}

func ErrorTimeline(days int) QuerySpec {
	q := fmt.Sprintf(`SELECT
    toDate(timestamp) as date,
    count() as error_count,
    uniq(person_id) as affected_users
FROM events
WHERE event = '$exception'
    AND timestamp >= now() - INTERVAL %d DAY
GROUP BY date
ORDER BY date`, days)
	return QuerySpec{Tool: ToolQueryRun, Kind: "hogql", Event: "$exception", DateFrom: fmt.Sprintf("-%dd", days), HogQL: q}
}

func ErrorTimelineByType(days int) QuerySpec {
	q := fmt.Sprintf(`SELECT
    toDate(timestamp) as date,
    replaceAll(arrayElement(JSONExtractArrayRaw(properties, '$exception_types'), 1), '"', '') as error_type,
    count() as count
FROM events
WHERE event = '$exception'
    AND timestamp >= now() - INTERVAL %d DAY
GROUP BY date, error_type
ORDER BY date, count DESC`, days)
	return QuerySpec{Tool: ToolQueryRun, Kind: "hogql", Event: "$exception", DateFrom: fmt.Sprintf("-%dd", days), HogQL: q}
}

func ListErrors() QuerySpec {
	return QuerySpec{Tool: ToolListErrors, Kind: "list_errors"}
}

func ErrorDetails(id string) QuerySpec {
	return QuerySpec{Tool: ToolErrorDetails, Kind: "error_details", ErrorID: id}
}
