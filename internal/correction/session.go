// Package correction lets a reviewer edit a parsed resume field by field
// and commit the result as a new record.
package correction

import (
	"github.com/jonathan/resume-extractor/internal/normalize"
	"github.com/jonathan/resume-extractor/internal/types"
)

// State is the lifecycle stage of a Session
type State int

const (
	// StateBuilt is a fresh session over an unedited record
	StateBuilt State = iota
	// StateEditing is a session with at least one applied edit
	StateEditing
	// StateCommitted is terminal; every further operation fails
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateEditing:
		return "editing"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Session holds a working copy of a ParsedResume while it is corrected.
// Each edit re-validates only the edited field; record-level warnings are
// recomputed after every edit.
//
// A Session is not safe for concurrent use. Callers sharing one across
// goroutines must serialize every call, including Commit.
type Session struct {
	working   types.ParsedResume
	validator *normalize.Validator
	state     State
}

// NewSession starts a session over a copy of rec. A nil validator uses the
// default phone region.
func NewSession(rec types.ParsedResume, validator *normalize.Validator) *Session {
	if validator == nil {
		validator = normalize.NewValidator("")
	}
	working := rec.Clone()
	working.EnsureCollections()
	return &Session{working: working, validator: validator, state: StateBuilt}
}

// State returns the session's lifecycle stage
func (s *Session) State() State {
	return s.state
}

// Get returns the current value of a scalar field
func (s *Session) Get(path types.FieldPath) (string, error) {
	if s.state == StateCommitted {
		return "", ErrSessionCommitted
	}
	f, err := s.scalar(path)
	if err != nil {
		return "", err
	}
	return f.load(), nil
}

// GetList returns a copy of the current value of a list field
func (s *Session) GetList(path types.FieldPath) ([]string, error) {
	if s.state == StateCommitted {
		return nil, ErrSessionCommitted
	}
	f, err := s.list(path)
	if err != nil {
		return nil, err
	}
	return append([]string{}, f.load()...), nil
}

// Set replaces a scalar field. Whitespace is collapsed before the value is
// stored. Values that fail validation are kept at LOW confidence with a
// MalformedField warning.
func (s *Session) Set(path types.FieldPath, value string) error {
	if s.state == StateCommitted {
		return ErrSessionCommitted
	}
	f, err := s.scalar(path)
	if err != nil {
		return err
	}
	conf, problem, err := f.store(normalize.Text(value))
	if err != nil {
		return &FieldError{Path: path.String(), Cause: err}
	}
	s.settle(path, conf, problem)
	return nil
}

// SetList replaces a list field. Items are trimmed and empty items dropped;
// duplicates are removed under the same rules as parsing.
func (s *Session) SetList(path types.FieldPath, values []string) error {
	if s.state == StateCommitted {
		return ErrSessionCommitted
	}
	f, err := s.list(path)
	if err != nil {
		return err
	}
	items := normalize.List(values)
	key := f.store(items)
	s.settle(key, presence(len(f.load()) > 0), "")
	return nil
}

// Warnings returns the current warning list
func (s *Session) Warnings() []types.Warning {
	return append([]types.Warning{}, s.working.Warnings...)
}

// Confidence returns the current confidence of a field
func (s *Session) Confidence(path types.FieldPath) types.Confidence {
	return s.working.Confidence.Get(path)
}

// Snapshot returns a copy of the record as currently edited. Its score is
// the one computed at parse time until Commit.
func (s *Session) Snapshot() (types.ParsedResume, error) {
	if s.state == StateCommitted {
		return types.ParsedResume{}, ErrSessionCommitted
	}
	return s.working.Clone(), nil
}

// Commit freezes the working values into a new record and ends the session
func (s *Session) Commit() (types.ParsedResume, []types.Warning, error) {
	if s.state == StateCommitted {
		return types.ParsedResume{}, nil, ErrSessionCommitted
	}
	rec := s.working.Clone()
	rec.Metadata.Score = normalize.Score(&rec)
	s.state = StateCommitted
	return rec, append([]types.Warning{}, rec.Warnings...), nil
}

// settle records an edit's confidence, replaces the field's MalformedField
// warning and recomputes the record-level warnings
func (s *Session) settle(path types.FieldPath, conf types.Confidence, problem string) {
	s.working.Confidence.Set(path, conf)

	key := path.String()
	ws := make([]types.Warning, 0, len(s.working.Warnings)+1)
	for _, w := range s.working.Warnings {
		if normalize.IsRecordLevel(w) || (w.Code == types.WarningMalformedField && w.Field == key) {
			continue
		}
		ws = append(ws, w)
	}
	if problem != "" {
		ws = append(ws, types.MalformedField(path, problem))
	}
	ws = append(ws, normalize.RecordWarnings(&s.working)...)
	s.working.Warnings = normalize.Canonical(ws)
	s.state = StateEditing
}
