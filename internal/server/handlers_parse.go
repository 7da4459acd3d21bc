package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/db"
	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/types"
)

// ParseRequest represents the request body for POST /parse
type ParseRequest struct {
	Text       string `json:"text"`
	Format     string `json:"format,omitempty"`      // txt, md, html, pdf, docx; defaults to txt
	SourceName string `json:"source_name,omitempty"` // file name or label kept with a stored record
	Store      bool   `json:"store,omitempty"`       // persist the record
	Report     bool   `json:"report,omitempty"`      // include a parsing report
}

// ParseResponse represents the response for POST /parse
type ParseResponse struct {
	Resume    types.ParsedResume    `json:"resume"`
	Report    *observability.Report `json:"report,omitempty"`
	ID        *uuid.UUID            `json:"id,omitempty"`
	Duplicate bool                  `json:"duplicate,omitempty"` // an identical document was already stored
}

// handleParse runs the extraction pipeline over submitted text
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if req.Store && s.store == nil {
		s.handleError(w, r, ErrStoreUnavailable)
		return
	}

	source := req.SourceName
	if source == "" {
		source = "request"
	}
	doc, err := ingestion.FromText(source, req.Text, req.Format)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	raw, err := doc.RawDocument()
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	rec, err := s.parser.Parse(raw)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := schemas.ValidateResume(&rec); err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := ParseResponse{Resume: rec}
	status := http.StatusOK
	if req.Store {
		stored, duplicate, err := s.storeParsed(r, req.SourceName, doc, rec)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		resp.ID = &stored.ID
		resp.Duplicate = duplicate
		if duplicate {
			resp.Resume = stored.Record
		} else {
			status = http.StatusCreated
		}
	}
	if req.Report {
		resp.Report = observability.BuildReport(&resp.Resume)
	}

	s.jsonResponse(w, status, resp)
}

// storeParsed saves rec unless a record parsed from the same text exists
func (s *Server) storeParsed(r *http.Request, sourceName string, doc *ingestion.Document, rec types.ParsedResume) (*db.StoredResume, bool, error) {
	existing, err := s.store.FindByContentHash(r.Context(), db.HashSource(doc.Text))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	stored, err := s.store.SaveParsedResume(r.Context(), &db.SaveResumeInput{
		SourceName: sourceName,
		SourceText: doc.Text,
		Record:     rec,
	})
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}
