package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Schema names one of the embedded JSON Schemas.
type Schema string

const (
	SchemaPackage    Schema = "package.schema.json"
	SchemaWorker     Schema = "worker.schema.json"
	SchemaDescriptor Schema = "descriptor.schema.json"
)

var schemas = []Schema{SchemaPackage, SchemaWorker, SchemaDescriptor}

//go:embed schema/*.json
var schemaFS embed.FS

var (
	compiled    map[Schema]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name", "/scripts/dev")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// SchemaFor returns the schema that governs the named file, if any.
func SchemaFor(fileName string) (Schema, bool) {
	switch filepath.Base(fileName) {
	case PackageFile:
		return SchemaPackage, true
	case WorkerFile:
		return SchemaWorker, true
	case DescriptorFile:
		return SchemaDescriptor, true
	}
	return "", false
}

// getSchema compiles the embedded schemas once and returns the named one.
func getSchema(name Schema) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, s := range schemas {
			data, err := schemaFS.ReadFile("schema/" + string(s))
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", s, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", s, err)
				return
			}
			if err := c.AddResource(string(s), doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", s, err)
				return
			}
		}

		compiled = make(map[Schema]*jsonschema.Schema, len(schemas))
		for _, s := range schemas {
			sch, err := c.Compile(string(s))
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", s, err)
				return
			}
			compiled[s] = sch
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	sch, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return sch, nil
}

// Validate validates file content against the named schema. JSON schemas
// take JSON; SchemaWorker takes TOML, which is converted before validation.
// The error return is for parse or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(name Schema, data []byte) (*ValidationResult, error) {
	schema, err := getSchema(name)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	if name == SchemaWorker {
		data, err = tomlToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// ValidateFile reads a file and validates it against the schema its name
// implies.
func ValidateFile(path string) (*ValidationResult, error) {
	name, ok := SchemaFor(path)
	if !ok {
		return nil, fmt.Errorf("no schema for %s", filepath.Base(path))
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(name, data)
}

// tomlToJSON re-encodes a TOML document as JSON for the schema validator.
func tomlToJSON(data []byte) ([]byte, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return out, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectValidationIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	// Container keywords only repeat what their causes say.
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, ValidationIssue{
		Path:    path,
		Message: msg,
		Keyword: keyword,
	})
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
