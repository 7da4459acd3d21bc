package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/observability"
)

// ListResumesResponse represents the response for listing stored resumes
type ListResumesResponse struct {
	Resumes []db.ResumeSummary `json:"resumes"`
	Count   int                `json:"count"`
	Limit   int                `json:"limit"`
}

// handleListResumes lists stored resumes with optional filters
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}

	filters := db.ResumeFilters{
		Format: r.URL.Query().Get("format"),
		Name:   r.URL.Query().Get("name"),
		Limit:  parseQueryInt(r, "limit", db.DefaultListLimit, db.MaxListLimit),
	}
	if v := r.URL.Query().Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < 0 || score > 100 {
			s.handleError(w, r, &ErrValidation{Field: "min_score", Message: "must be a number between 0 and 100"})
			return
		}
		filters.MinScore = score
	}

	resumes, err := s.store.ListParsedResumes(r.Context(), filters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ListResumesResponse{
		Resumes: resumes,
		Count:   len(resumes),
		Limit:   filters.Limit,
	})
}

// loadResume fetches a stored resume named by the {id} path parameter
func (s *Server) loadResume(r *http.Request) (*db.StoredResume, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		return nil, err
	}
	stored, err := s.store.GetParsedResume(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, &ErrResumeNotFound{ResumeID: id}
	}
	return stored, nil
}

// handleGetResume retrieves a stored resume by its ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	stored, err := s.loadResume(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleResumeReport builds a parsing report for a stored resume
func (s *Server) handleResumeReport(w http.ResponseWriter, r *http.Request) {
	stored, err := s.loadResume(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, observability.BuildReport(&stored.Record))
}

// handleDeleteResume deletes a stored resume
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.store.DeleteParsedResume(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
