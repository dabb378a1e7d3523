package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dripsim/drip"
)

const sessionCookie = "drip_session"

// simulateRequest is the JSON body of POST /api/simulate. The same
// fields double as query parameters on the CSV route.
type simulateRequest struct {
	Ticker string `json:"ticker"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Shares int64  `json:"shares"`
}

func (req simulateRequest) simulation() (drip.Simulation, error) {
	start, err := drip.ParseDate(req.Start)
	if err != nil {
		return drip.Simulation{}, &drip.ValidationError{Field: "start", Reason: err.Error()}
	}
	end, err := drip.ParseDate(req.End)
	if err != nil {
		return drip.Simulation{}, &drip.ValidationError{Field: "end", Reason: err.Error()}
	}
	return drip.Simulation{
		Ticker:        req.Ticker,
		Range:         drip.Range{From: start, To: end},
		InitialShares: req.Shares,
	}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body", ""))
		return
	}
	sim, err := req.simulation()
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := sim.Run(s.provider)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cur := drip.ResolveCurrency(result.Ticker)
	writeJSON(w, http.StatusOK, map[string]any{
		"result": result,
		"currency": map[string]string{
			"symbol": cur.Symbol,
			"code":   cur.Code,
		},
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shares, err := strconv.ParseInt(q.Get("shares"), 10, 64)
	if err != nil {
		s.writeError(w, &drip.ValidationError{Field: "shares", Reason: "정수가 아닙니다"})
		return
	}
	req := simulateRequest{
		Ticker: q.Get("ticker"),
		Start:  q.Get("start"),
		End:    q.Get("end"),
		Shares: shares,
	}
	sim, err := req.simulation()
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := sim.Run(s.provider)
	if err != nil {
		s.writeError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_dividend_simulation_%s.csv", result.Ticker, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := drip.ExportCSV(w, result, drip.ResolveCurrency(result.Ticker)); err != nil {
		s.log.Error().Err(err).Msg("csv export failed")
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.visits.Totals(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("visit totals failed")
		writeJSON(w, http.StatusInternalServerError, errorBody("visit stats unavailable", ""))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// sessionMiddleware assigns a session cookie and counts the visit once
// per session and day.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			cookie = &http.Cookie{
				Name:     sessionCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			http.SetCookie(w, cookie)
		}
		if _, err := s.visits.IncrementIfFirstVisit(r.Context(), cookie.Value); err != nil {
			s.log.Error().Err(err).Msg("visit increment failed")
		}
		next.ServeHTTP(w, r)
	})
}

// writeError maps the error taxonomy to HTTP statuses, attaching the
// remediation hint when there is one.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *drip.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody(verr.Error(), ""))
		return
	}
	var derr *drip.DataError
	if errors.As(err, &derr) {
		status := http.StatusNotFound
		if derr.Kind == drip.NetworkFailure {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorBody(derr.Error(), derr.Hint()))
		return
	}
	s.log.Error().Err(err).Msg("simulation failed")
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error", ""))
}

func errorBody(message, hint string) map[string]string {
	body := map[string]string{"error": message}
	if hint != "" {
		body["hint"] = hint
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
