package http

import (
	"fmt"
	"net/http"

	"cashflow/internal/currency"
	applog "cashflow/internal/log"
	"cashflow/internal/report"
)

type exportFormat string

const (
	formatCSV  exportFormat = "csv"
	formatHTML exportFormat = "html"
	formatPDF  exportFormat = "pdf"
)

func (f exportFormat) contentType() string {
	switch f {
	case formatCSV:
		return "text/csv; charset=utf-8"
	case formatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/pdf"
	}
}

// Export is one rendered statement, cached until the ledger mutates.
type Export struct {
	ContentType string
	Filename    string
	Body        []byte
}

// invalidateExports drops every cached export for userID. Called after
// any mutation so downloads never serve stale statements.
func (s *Server) invalidateExports(userID string) {
	if s.exports == nil {
		return
	}
	if n := s.exports.DeletePrefix(userID + ":"); n > 0 {
		s.logger.Debug("Export cache invalidated", applog.FieldUserID, userID, "entries", n)
	}
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, userID, cacheKey string, build func() (Export, error)) {
	if s.exports != nil {
		if exp, ok := s.exports.Get(cacheKey); ok {
			writeExport(w, exp)
			return
		}
	}
	exp, err := build()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.exports != nil {
		s.exports.Set(cacheKey, exp)
	}
	s.logger.InfoContext(r.Context(), "Statement rendered",
		applog.FieldUserID, userID,
		applog.FieldOperation, applog.OpRender,
		"export", exp.Filename)
	writeExport(w, exp)
}

func writeExport(w http.ResponseWriter, exp Export) {
	w.Header().Set("Content-Type", exp.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exp.Body)
}

func (s *Server) exportMonth(format exportFormat) userHandler {
	return func(w http.ResponseWriter, r *http.Request, userID string) {
		key := r.URL.Query().Get("key")
		if key == "" {
			key = s.ledger.CurrentMonthKey()
		}
		cacheKey := fmt.Sprintf("%s:month:%s:%s", userID, key, format)

		s.serveExport(w, r, userID, cacheKey, func() (Export, error) {
			month, err := s.ledger.GetMonth(r.Context(), userID, key)
			if err != nil {
				return Export{}, err
			}
			prof, err := s.profiles.Get(r.Context(), userID)
			if err != nil {
				return Export{}, err
			}
			st := report.BuildMonthStatement(key, month)

			var body []byte
			switch format {
			case formatCSV:
				out, err := report.RenderMonthCSV(st, currency.Format, prof.Currency)
				if err != nil {
					return Export{}, err
				}
				body = []byte(out)
			case formatHTML:
				out, err := report.RenderMonthHTML(st, currency.Format, prof.Currency)
				if err != nil {
					return Export{}, err
				}
				body = []byte(out)
			case formatPDF:
				body, err = report.RenderMonthPDF(st, currency.Format, prof.Currency)
				if err != nil {
					return Export{}, err
				}
			}
			return Export{
				ContentType: format.contentType(),
				Filename:    fmt.Sprintf("statement-%s.%s", key, format),
				Body:        body,
			}, nil
		})
	}
}

func (s *Server) exportYear(format exportFormat) userHandler {
	return func(w http.ResponseWriter, r *http.Request, userID string) {
		year, ok := yearParam(w, r)
		if !ok {
			return
		}
		cacheKey := fmt.Sprintf("%s:year:%d:%s", userID, year, format)

		s.serveExport(w, r, userID, cacheKey, func() (Export, error) {
			months, err := s.ledger.GetYear(r.Context(), userID, year)
			if err != nil {
				return Export{}, err
			}
			prof, err := s.profiles.Get(r.Context(), userID)
			if err != nil {
				return Export{}, err
			}
			st := report.BuildYearStatement(year, months)

			var body []byte
			switch format {
			case formatCSV:
				out, err := report.RenderYearCSV(st, currency.Format, prof.Currency)
				if err != nil {
					return Export{}, err
				}
				body = []byte(out)
			case formatHTML:
				out, err := report.RenderYearHTML(st, currency.Format, prof.Currency)
				if err != nil {
					return Export{}, err
				}
				body = []byte(out)
			case formatPDF:
				body, err = report.RenderYearPDF(st, currency.Format, prof.Currency)
				if err != nil {
					return Export{}, err
				}
			}
			return Export{
				ContentType: format.contentType(),
				Filename:    fmt.Sprintf("statement-%d.%s", year, format),
				Body:        body,
			}, nil
		})
	}
}
