package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-extractor/internal/correction"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/types"
)

// CreateSessionRequest represents the request body for POST /sessions.
// Exactly one of Resume and ResumeID must be set.
type CreateSessionRequest struct {
	Resume   json.RawMessage `json:"resume,omitempty"`
	ResumeID string          `json:"resume_id,omitempty"`
}

// SessionResponse describes an open session and its working record
type SessionResponse struct {
	SessionID uuid.UUID          `json:"session_id"`
	State     string             `json:"state"`
	ResumeID  *uuid.UUID         `json:"resume_id,omitempty"`
	Resume    types.ParsedResume `json:"resume"`
}

// FieldRequest represents the request body for PUT /sessions/{id}/fields.
// Value sets a scalar field and Values a list field.
type FieldRequest struct {
	Path   string   `json:"path"`
	Value  *string  `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// FieldResponse reports a field's value and confidence after a read or edit
type FieldResponse struct {
	Path       string           `json:"path"`
	Value      *string          `json:"value,omitempty"`
	Values     []string         `json:"values,omitempty"`
	Confidence types.Confidence `json:"confidence"`
	Warnings   []types.Warning  `json:"warnings"`
}

// CommitResponse represents the response for POST /sessions/{id}/commit
type CommitResponse struct {
	Resume   types.ParsedResume `json:"resume"`
	Warnings []types.Warning    `json:"warnings"`
	ResumeID *uuid.UUID         `json:"resume_id,omitempty"` // set when the stored record was updated
}

// handleCreateSession opens a correction session over a submitted or stored record
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	hasResume := len(req.Resume) > 0 && string(req.Resume) != "null"
	if hasResume == (req.ResumeID != "") {
		s.handleError(w, r, &ErrValidation{Field: "resume", Message: "exactly one of resume and resume_id is required"})
		return
	}

	var (
		rec      types.ParsedResume
		resumeID *uuid.UUID
	)
	if hasResume {
		if err := schemas.ValidateResumeJSON(req.Resume); err != nil {
			s.handleError(w, r, &ErrValidation{Field: "resume", Message: err.Error()})
			return
		}
		decoded, err := types.UnmarshalResume(req.Resume)
		if err != nil {
			s.handleError(w, r, &ErrValidation{Field: "resume", Message: err.Error()})
			return
		}
		rec = *decoded
	} else {
		if s.store == nil {
			s.handleError(w, r, ErrStoreUnavailable)
			return
		}
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			s.handleError(w, r, &ErrValidation{Field: "resume_id", Message: "must be a UUID"})
			return
		}
		stored, err := s.store.GetParsedResume(r.Context(), id)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if stored == nil {
			s.handleError(w, r, &ErrResumeNotFound{ResumeID: id})
			return
		}
		rec = stored.Record
		resumeID = &stored.ID
	}

	session := correction.NewSession(rec, s.parser.Normalizer().Validator())
	snapshot, err := session.Snapshot()
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	id := s.sessions.create(session, resumeID)

	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: id,
		State:     session.State().String(),
		ResumeID:  resumeID,
		Resume:    snapshot,
	})
}

// lockSession finds the session named by the {id} path parameter and locks
// it. The caller must call the returned unlock function.
func (s *Server) lockSession(r *http.Request) (*sessionEntry, uuid.UUID, func(), error) {
	id, err := pathUUID(r, "id")
	if err != nil {
		return nil, uuid.Nil, nil, err
	}
	entry, err := s.sessions.get(id)
	if err != nil {
		return nil, id, nil, err
	}
	entry.mu.Lock()
	return entry, id, entry.mu.Unlock, nil
}

// handleGetSession returns the working record, or one field when ?path= is given
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	entry, id, unlock, err := s.lockSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	defer unlock()

	if raw := r.URL.Query().Get("path"); raw != "" {
		path, err := types.ParseFieldPath(raw)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		resp, err := fieldResponse(entry.session, path)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	snapshot, err := entry.session.Snapshot()
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID: id,
		State:     entry.session.State().String(),
		ResumeID:  entry.resumeID,
		Resume:    snapshot,
	})
}

// handleSetField applies one edit to a session
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	path, err := types.ParseFieldPath(req.Path)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if (req.Value == nil) == (req.Values == nil) {
		s.handleError(w, r, &ErrValidation{Field: "value", Message: "exactly one of value and values is required"})
		return
	}

	entry, _, unlock, err := s.lockSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	defer unlock()

	if req.Values != nil {
		err = entry.session.SetList(path, req.Values)
	} else {
		err = entry.session.Set(path, *req.Value)
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp, err := fieldResponse(entry.session, path)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCommitSession ends a session and returns the corrected record. A
// session opened from a stored resume writes the record back.
func (s *Server) handleCommitSession(w http.ResponseWriter, r *http.Request) {
	entry, _, unlock, err := s.lockSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	defer unlock()

	rec, warnings, err := entry.session.Commit()
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := CommitResponse{Resume: rec, Warnings: warnings}
	if entry.resumeID != nil {
		if s.store == nil {
			s.handleError(w, r, ErrStoreUnavailable)
			return
		}
		stored, err := s.store.UpdateParsedResume(r.Context(), *entry.resumeID, &rec)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		resp.ResumeID = &stored.ID
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteSession discards a session without committing it
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !s.sessions.remove(id) {
		s.handleError(w, r, &ErrSessionNotFound{SessionID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fieldResponse reads a field's current value and confidence
func fieldResponse(session *correction.Session, path types.FieldPath) (FieldResponse, error) {
	resp := FieldResponse{
		Path:       path.String(),
		Confidence: session.Confidence(path),
		Warnings:   session.Warnings(),
	}
	if path.IsList() {
		values, err := session.GetList(path)
		if err != nil {
			return FieldResponse{}, err
		}
		resp.Values = values
		return resp, nil
	}
	value, err := session.Get(path)
	if err != nil {
		return FieldResponse{}, err
	}
	resp.Value = &value
	return resp, nil
}
