package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"finanspanel/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUploadSummary reports the shape of an uploaded ledger and its resolved columns
func (s *Server) handleUploadSummary(w http.ResponseWriter, r *http.Request) {
	table, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	summary, err := s.svc.Summarize(r.Context(), table)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	s.withUpload(w, r, s.listCycles)
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	s.withUpload(w, r, s.brief)
}

func (s *Server) handleProfitStream(w http.ResponseWriter, r *http.Request) {
	s.withUpload(w, r, s.profitStream)
}

func (s *Server) handleStoredCycles(w http.ResponseWriter, r *http.Request) {
	s.withStoredLedger(w, r, s.listCycles)
}

func (s *Server) handleStoredBrief(w http.ResponseWriter, r *http.Request) {
	s.withStoredLedger(w, r, s.brief)
}

func (s *Server) handleStoredProfitStream(w http.ResponseWriter, r *http.Request) {
	s.withStoredLedger(w, r, s.profitStream)
}

// analysisFunc runs one cycle operation against a loaded table
type analysisFunc func(w http.ResponseWriter, r *http.Request, table *models.LedgerTable, accountID string)

func (s *Server) withUpload(w http.ResponseWriter, r *http.Request, fn analysisFunc) {
	table, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	fn(w, r, table, "")
}

func (s *Server) withStoredLedger(w http.ResponseWriter, r *http.Request, fn analysisFunc) {
	if s.ledgers == nil {
		respondError(w, r, errLedgerSourceDisabled)
		return
	}

	accountID := chi.URLParam(r, "accountID")
	table, err := s.ledgers.LoadLedger(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.WithFields(log.Fields{
		"account_id": accountID,
		"rows":       table.RowCount(),
	}).Debug("Loaded stored ledger")

	fn(w, r, table, accountID)
}

func (s *Server) listCycles(w http.ResponseWriter, r *http.Request, table *models.LedgerTable, accountID string) {
	if accountID == "" {
		accountID = r.FormValue("member_id")
	}

	list, err := s.svc.ListCycles(r.Context(), table, accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

func (s *Server) brief(w http.ResponseWriter, r *http.Request, table *models.LedgerTable, accountID string) {
	req, err := analysisRequest(r, accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	report, err := s.svc.ComputeReport(r.Context(), table, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) profitStream(w http.ResponseWriter, r *http.Request, table *models.LedgerTable, accountID string) {
	req, err := analysisRequest(r, accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	stream, err := s.svc.ProfitStream(r.Context(), table, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, stream)
}
