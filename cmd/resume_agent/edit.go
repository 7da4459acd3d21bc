package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/correction"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/types"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Correct fields of a parsed resume",
	Long: `Open a correction session on a ParsedResume JSON file, apply field edits by path
and commit the result. Paths use the canonical form, for example contact.email,
experience[0].dates or skills[Languages].

  resume_agent edit --in jane.json --set contact.email=jane@roe.dev \
    --set-list "skills[Languages]=Go,Rust" --out jane.fixed.json`,
	RunE: runEdit,
}

var (
	editInput    string
	editOutput   string
	editSets     []string
	editSetLists []string
	editGets     []string
)

func init() {
	editCmd.Flags().StringVarP(&editInput, "in", "i", "", "Path to ParsedResume JSON file (required)")
	editCmd.Flags().StringVarP(&editOutput, "out", "o", "", "Path for the committed record (default stdout)")
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Scalar edit as path=value (repeatable)")
	editCmd.Flags().StringArrayVar(&editSetLists, "set-list", nil, "List edit as path=a,b,c (repeatable)")
	editCmd.Flags().StringArrayVar(&editGets, "get", nil, "Print the current value of a path before editing (repeatable)")

	if err := editCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(editCmd)
}

// fieldEdit is one parsed --set or --set-list argument
type fieldEdit struct {
	Path   types.FieldPath
	Value  string
	Values []string
	List   bool
}

func runEdit(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	rec, err := readRecord(editInput)
	if err != nil {
		return err
	}

	edits, err := parseEdits(editSets, editSetLists)
	if err != nil {
		return err
	}

	session := correction.NewSession(*rec, newParser(cfg).Normalizer().Validator())
	if err := printFields(os.Stdout, session, editGets); err != nil {
		return err
	}

	committed, warnings, err := applyEdits(session, edits)
	if err != nil {
		return err
	}

	if editOutput != "" {
		data, err := types.MarshalResume(&committed)
		if err != nil {
			return fmt.Errorf("failed to marshal resume: %w", err)
		}
		if err := os.WriteFile(editOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Wrote %s (%d edits, %d warnings)\n", editOutput, len(edits), len(warnings))
	} else if err := writeRecord(os.Stdout, &committed); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintWarnings(warnings)
	}
	return nil
}

// readRecord loads a ParsedResume JSON file and checks it against the schema
func readRecord(path string) (*types.ParsedResume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("resume file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := schemas.ValidateResumeJSON(data); err != nil {
		return nil, fmt.Errorf("%s is not a valid ParsedResume: %w", path, err)
	}
	rec, err := types.UnmarshalResume(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	return rec, nil
}

// parseEdits turns path=value arguments into field edits. List values are
// comma-separated; an empty right-hand side clears the field.
func parseEdits(sets, setLists []string) ([]fieldEdit, error) {
	edits := make([]fieldEdit, 0, len(sets)+len(setLists))
	for _, arg := range sets {
		path, value, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}
		edits = append(edits, fieldEdit{Path: path, Value: value})
	}
	for _, arg := range setLists {
		path, value, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}
		values := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				values = append(values, item)
			}
		}
		edits = append(edits, fieldEdit{Path: path, Values: values, List: true})
	}
	return edits, nil
}

// splitAssignment splits at the first '=' that follows the path. Paths may
// contain '=' inside a skill category, so the split skips brackets.
func splitAssignment(arg string) (types.FieldPath, string, error) {
	depth := 0
	for i, r := range arg {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '=':
			if depth > 0 {
				continue
			}
			path, err := types.ParseFieldPath(strings.TrimSpace(arg[:i]))
			if err != nil {
				return nil, "", err
			}
			return path, arg[i+1:], nil
		}
	}
	return nil, "", fmt.Errorf("edit %q must have the form path=value", arg)
}

// applyEdits applies every edit in order and commits the session
func applyEdits(session *correction.Session, edits []fieldEdit) (types.ParsedResume, []types.Warning, error) {
	for _, e := range edits {
		var err error
		if e.List {
			err = session.SetList(e.Path, e.Values)
		} else {
			err = session.Set(e.Path, e.Value)
		}
		if err != nil {
			return types.ParsedResume{}, nil, fmt.Errorf("failed to edit %s: %w", e.Path, err)
		}
	}
	return session.Commit()
}

func printFields(w io.Writer, session *correction.Session, paths []string) error {
	for _, raw := range paths {
		path, err := types.ParseFieldPath(raw)
		if err != nil {
			return err
		}
		var value string
		if path.IsList() {
			values, err := session.GetList(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			value = strings.Join(values, ", ")
		} else if value, err = session.Get(path); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(w, "%s = %q (%s)\n", path, value, session.Confidence(path))
	}
	return nil
}
