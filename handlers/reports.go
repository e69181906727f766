package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rmx-ops/concrete/config"
	"github.com/rmx-ops/concrete/models"
	"github.com/rmx-ops/concrete/utils"
)

// reportTotals is the aggregate block shared by every report. Trips and
// volume include manually entered daily summaries; the monetary figures
// cover dispatched trips only, since summaries carry no pricing.
type reportTotals struct {
	Trips        int     `json:"trips"`
	SummaryTrips int     `json:"summaryTrips"`
	TotalM3      float64 `json:"totalM3"`
	Revenue      float64 `json:"revenue"`
	Subsidy      float64 `json:"subsidy"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalCost    float64 `json:"totalCost"`
	GrossProfit  float64 `json:"grossProfit"`
}

func (t *reportTotals) addDispatch(d *models.Dispatch) {
	t.Trips++
	t.TotalM3 += d.LoadM3
	t.Revenue += d.Revenue
	t.Subsidy += d.Subsidy
	t.TotalRevenue += d.TotalRevenue
	t.TotalCost += d.TotalCost
	t.GrossProfit += d.GrossProfit
}

func (t *reportTotals) addSummary(s *models.DailySummary) {
	t.SummaryTrips += s.Trips
	t.TotalM3 += s.TotalM3
}

func (t *reportTotals) round() {
	t.TotalM3 = utils.Round2(t.TotalM3)
	t.Revenue = utils.Round2(t.Revenue)
	t.Subsidy = utils.Round2(t.Subsidy)
	t.TotalRevenue = utils.Round2(t.TotalRevenue)
	t.TotalCost = utils.Round2(t.TotalCost)
	t.GrossProfit = utils.Round2(t.GrossProfit)
}

func reportRows(from, to time.Time, projectID string) ([]models.Dispatch, []models.DailySummary, error) {
	dq := config.DB.Preload("Project").Preload("Truck").Preload("Mix").
		Where("status <> ?", models.DispatchCancelled).
		Where("date >= ? AND date <= ?", from, to).
		Order("date, dispatch_no")
	sq := config.DB.Preload("Project").
		Where("date >= ? AND date <= ?", from, to).
		Order("date")
	if projectID != "" {
		dq = dq.Where("project_id = ?", projectID)
		sq = sq.Where("project_id = ?", projectID)
	}

	var dispatches []models.Dispatch
	if err := dq.Find(&dispatches).Error; err != nil {
		return nil, nil, err
	}
	var summaries []models.DailySummary
	if err := sq.Find(&summaries).Error; err != nil {
		return nil, nil, err
	}
	return dispatches, summaries, nil
}

type projectLine struct {
	ProjectCode string `json:"projectCode"`
	ProjectName string `json:"projectName"`
	reportTotals
}

func perProject(dispatches []models.Dispatch, summaries []models.DailySummary) []projectLine {
	index := make(map[string]*projectLine)
	order := make([]string, 0)

	line := func(code, name string) *projectLine {
		if l, ok := index[code]; ok {
			return l
		}
		l := &projectLine{ProjectCode: code, ProjectName: name}
		index[code] = l
		order = append(order, code)
		return l
	}

	for i := range dispatches {
		d := &dispatches[i]
		code, name := "?", ""
		if d.Project != nil {
			code, name = d.Project.Code, d.Project.Name
		}
		line(code, name).addDispatch(d)
	}
	for i := range summaries {
		s := &summaries[i]
		code, name := "?", ""
		if s.Project != nil {
			code, name = s.Project.Code, s.Project.Name
		}
		line(code, name).addSummary(s)
	}

	lines := make([]projectLine, 0, len(order))
	for _, code := range order {
		index[code].round()
		lines = append(lines, *index[code])
	}
	return lines
}

// DailyReport aggregates one date (or a range) into totals and a
// per-project breakdown.
func DailyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDateParam(q.Get("date"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to := from
	if raw := q.Get("date_from"); raw != "" {
		if from, err = parseDateParam(raw); err != nil {
			http.Error(w, "date_from must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if to, err = parseDateParam(q.Get("date_to")); err != nil || to.IsZero() {
			http.Error(w, "date_to must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}
	if from.IsZero() {
		http.Error(w, "date or date_from/date_to is required", http.StatusBadRequest)
		return
	}

	dispatches, summaries, err := reportRows(from, to, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var totals reportTotals
	for i := range dispatches {
		totals.addDispatch(&dispatches[i])
	}
	for i := range summaries {
		totals.addSummary(&summaries[i])
	}
	totals.round()

	writeJSON(w, http.StatusOK, map[string]any{
		"dateFrom": from.Format("2006-01-02"),
		"dateTo":   to.Format("2006-01-02"),
		"totals":   totals,
		"projects": perProject(dispatches, summaries),
	})
}

type dayLine struct {
	Date string `json:"date"`
	reportTotals
}

// MonthlyReport aggregates one calendar month into totals, a per-project
// breakdown and a per-day series.
func MonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "month must be 1-12", http.StatusBadRequest)
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	dispatches, summaries, err := reportRows(from, to, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var totals reportTotals
	days := make(map[string]*reportTotals)
	day := func(t time.Time) *reportTotals {
		key := t.Format("2006-01-02")
		if d, ok := days[key]; ok {
			return d
		}
		d := &reportTotals{}
		days[key] = d
		return d
	}
	for i := range dispatches {
		totals.addDispatch(&dispatches[i])
		day(dispatches[i].Date).addDispatch(&dispatches[i])
	}
	for i := range summaries {
		totals.addSummary(&summaries[i])
		day(summaries[i].Date).addSummary(&summaries[i])
	}
	totals.round()

	dayLines := make([]dayLine, 0, len(days))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if t, ok := days[key]; ok {
			t.round()
			dayLines = append(dayLines, dayLine{Date: key, reportTotals: *t})
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"month":    month,
		"totals":   totals,
		"projects": perProject(dispatches, summaries),
		"days":     dayLines,
	})
}

// ProjectReport aggregates everything shipped to one project, identified by
// code, with the full trip list for reconciliation.
func ProjectReport(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var project models.Project
	if err := config.DB.First(&project, "code = ?", code).Error; err != nil {
		http.Error(w, fmt.Sprintf("project %s not found", code), http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	from, _ := parseDateParam(q.Get("date_from"))
	to, _ := parseDateParam(q.Get("date_to"))
	if from.IsZero() {
		from = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	dispatches, summaries, err := reportRows(from, to, project.ID.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var totals reportTotals
	for i := range dispatches {
		totals.addDispatch(&dispatches[i])
	}
	for i := range summaries {
		totals.addSummary(&summaries[i])
	}
	totals.round()

	writeJSON(w, http.StatusOK, map[string]any{
		"project":    project,
		"totals":     totals,
		"dispatches": dispatches,
		"summaries":  summaries,
	})
}
