package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avramz/luach-api/internal/config"
	"github.com/avramz/luach-api/internal/database"
	"github.com/avramz/luach-api/internal/hebcal"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
	clock  hebcal.Clock
}

// NewHandlers creates a new Handlers instance. A nil clock defaults to
// the system clock in local time.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger, clock hebcal.Clock) *Handlers {
	if clock == nil {
		clock = hebcal.SystemClock{}
	}
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
		clock:  clock,
	}
}

// =============================================================================
// Response shapes
// =============================================================================

// HebrewDateJSON is the wire form of a Hebrew date.
type HebrewDateJSON struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	Display   string `json:"display"`
	LeapYear  bool   `json:"leap_year"`
}

func hebrewJSON(d hebcal.HebrewDate) HebrewDateJSON {
	return HebrewDateJSON{
		Year:      d.Year,
		Month:     d.Month,
		Day:       d.Day,
		MonthName: hebcal.MonthName(d.Year, d.Month),
		Display:   d.String(),
		LeapYear:  hebcal.IsLeapYear(d.Year),
	}
}

// Conversion pairs a Gregorian date with its Hebrew equivalent.
type Conversion struct {
	Gregorian string         `json:"gregorian"`
	Hebrew    HebrewDateJSON `json:"hebrew"`
}

func convert(g hebcal.GregorianDate) Conversion {
	return Conversion{
		Gregorian: g.String(),
		Hebrew:    hebrewJSON(hebcal.FromGregorian(g)),
	}
}

// =============================================================================
// Handlers
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ConvertToday handles GET /api/v1/convert/today
func (h *Handlers) ConvertToday(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, convert(h.clock.Today()))
}

// ConvertDate handles GET /api/v1/convert/{date}
func (h *Handlers) ConvertDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	date, err := hebcal.ParseGregorian(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	WriteSuccess(w, convert(date))
}

// ConvertRange handles GET /api/v1/convert/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) ConvertRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := hebcal.ParseGregorian(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date: %s. Use YYYY-MM-DD", startStr))
		return
	}

	end, err := hebcal.ParseGregorian(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date: %s. Use YYYY-MM-DD", endStr))
		return
	}

	startRD := start.RataDie()
	endRD := end.RataDie()

	if startRD > endRD {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Cap the range to keep responses bounded.
	if endRD-startRD >= 366 {
		WriteBadRequest(w, "Date range cannot exceed 366 days")
		return
	}

	conversions := make([]Conversion, 0, endRD-startRD+1)
	for rd := startRD; rd <= endRD; rd++ {
		conversions = append(conversions, convert(hebcal.GregorianFromRataDie(rd)))
	}

	WriteSuccess(w, map[string]any{
		"start":       startStr,
		"end":         endStr,
		"conversions": conversions,
	})
}

// ConvertHebrew handles GET /api/v1/hebrew/{year}/{month}/{day}
func (h *Handlers) ConvertHebrew(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		WriteBadRequest(w, "Month must be an integer")
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		WriteBadRequest(w, "Day must be an integer")
		return
	}

	date, err := hebcal.NewHebrewDate(year, month, day)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, Conversion{
		Gregorian: date.Gregorian().String(),
		Hebrew:    hebrewJSON(date),
	})
}

// YearInfo is the wire form of a year summary.
type YearInfo struct {
	Year         int      `json:"year"`
	Length       int      `json:"length"`
	LeapYear     bool     `json:"leap_year"`
	RoshHashana  string   `json:"rosh_hashana"` // Gregorian date of 1 Tishrei
	MonthLengths []int    `json:"month_lengths"`
	MonthNames   []string `json:"month_names"`
	Cached       bool     `json:"cached"`
}

func yearInfo(y *database.HebrewYear, cached bool) YearInfo {
	names := make([]string, len(y.MonthLengths))
	for i := range names {
		names[i] = hebcal.MonthName(y.Year, i+1)
	}

	rosh := hebcal.HebrewDate{Year: y.Year, Month: hebcal.Tishrei, Day: 1}
	return YearInfo{
		Year:         y.Year,
		Length:       y.Length,
		LeapYear:     y.IsLeap,
		RoshHashana:  rosh.Gregorian().String(),
		MonthLengths: y.MonthLengths,
		MonthNames:   names,
		Cached:       cached,
	}
}

// GetYear handles GET /api/v1/years/{year}
//
// Serves from the SQLite cache when the year is present, computing on
// the fly otherwise. The GET path never writes; the cache is populated
// by the admin endpoint or the yeargen tool.
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	record, err := h.db.GetYear(r.Context(), year)
	if err != nil {
		if !database.IsNotFound(err) {
			h.logger.Error("year cache lookup failed", slog.Any("error", err), slog.Int("year", year))
			WriteInternalError(w, "Failed to look up year")
			return
		}
		WriteSuccess(w, yearInfo(database.ComputeYear(year), false))
		return
	}

	WriteSuccess(w, yearInfo(record, true))
}

// ListYears handles GET /api/v1/years?from=Y&to=Y
//
// Browses the cached range. Only cached rows are returned; years never
// cached are simply absent, so the response also shows how much of the
// range the cache covers.
func (h *Handlers) ListYears(w http.ResponseWriter, r *http.Request) {
	from, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		WriteBadRequest(w, "from must be an integer year")
		return
	}
	to, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		WriteBadRequest(w, "to must be an integer year")
		return
	}

	if from > to {
		WriteBadRequest(w, "from must not exceed to")
		return
	}
	if to-from >= 1000 {
		WriteBadRequest(w, "Range cannot exceed 1000 years")
		return
	}

	records, err := h.db.ListYears(r.Context(), from, to)
	if err != nil {
		h.logger.Error("year cache listing failed", slog.Any("error", err),
			slog.Int("from", from), slog.Int("to", to))
		WriteInternalError(w, "Failed to list years")
		return
	}

	years := make([]YearInfo, 0, len(records))
	for i := range records {
		years = append(years, yearInfo(&records[i], true))
	}

	WriteSuccess(w, map[string]any{
		"from":  from,
		"to":    to,
		"years": years,
	})
}

// MoladInfo is the wire form of a molad.
type MoladInfo struct {
	Year    int    `json:"year"`
	Day     int    `json:"day"` // days since epoch
	Hour    int    `json:"hour"`
	Parts   int    `json:"parts"`
	Display string `json:"display"`
}

// GetMolad handles GET /api/v1/molad/{year}
func (h *Handlers) GetMolad(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	day, hour, parts := hebcal.MoladComponents(year)
	WriteSuccess(w, MoladInfo{
		Year:    year,
		Day:     day,
		Hour:    hour,
		Parts:   parts,
		Display: hebcal.FormatMolad(year),
	})
}

// CacheYears handles POST /api/v1/admin/years/cache?from=Y&to=Y
//
// Precomputes and stores the year records for an inclusive range.
func (h *Handlers) CacheYears(w http.ResponseWriter, r *http.Request) {
	from, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		WriteBadRequest(w, "from must be an integer year")
		return
	}
	to, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		WriteBadRequest(w, "to must be an integer year")
		return
	}

	if from > to {
		WriteBadRequest(w, "from must not exceed to")
		return
	}
	if to-from >= 1000 {
		WriteBadRequest(w, "Range cannot exceed 1000 years")
		return
	}

	// One transaction for the whole range: either every year lands in
	// the cache or none does.
	ctx := r.Context()
	err = h.db.WithTx(ctx, func(tx *database.Tx) error {
		for year := from; year <= to; year++ {
			if err := tx.UpsertYear(ctx, database.ComputeYear(year)); err != nil {
				return fmt.Errorf("cache year %d: %w", year, err)
			}
		}
		return nil
	})
	if err != nil {
		h.logger.Error("failed to cache year range", slog.Any("error", err),
			slog.Int("from", from), slog.Int("to", to))
		WriteInternalError(w, "Failed to cache year range")
		return
	}

	h.logger.Info("cached year range", slog.Int("from", from), slog.Int("to", to))

	WriteSuccess(w, map[string]any{
		"from":   from,
		"to":     to,
		"cached": to - from + 1,
	})
}
