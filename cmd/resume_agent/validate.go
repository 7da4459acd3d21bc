package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a JSON Schema",
	Long: `Validate a JSON file against a JSON Schema. Without --schema the file is checked
against the built-in ParsedResume schema.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (default: ParsedResume schema)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	return validateFile(os.Stdout, validateSchema, validateJSON)
}

// validateFile checks jsonPath against schemaPath, or the ParsedResume
// schema when schemaPath is empty, and reports the outcome on w
func validateFile(w io.Writer, schemaPath, jsonPath string) error {
	var err error
	if schemaPath == "" {
		var data []byte
		data, err = os.ReadFile(jsonPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("JSON file not found: %s", jsonPath)
			}
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		err = schemas.ValidateResumeJSON(data)
	} else {
		err = schemas.ValidateJSON(schemaPath, jsonPath)
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(w, "❌ Validation failed for %s\n", jsonPath)
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s: %d schema errors", jsonPath, len(validationErr.Errors))
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "✅ Validation passed: %s\n", jsonPath)
	return nil
}
