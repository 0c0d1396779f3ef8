package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// BankMajorVersion is the bank format major version this build understands.
const BankMajorVersion = "v1"

//go:embed bank.json
var defaultBankJSON []byte

// Bank is a versioned collection of questions.
type Bank struct {
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
}

// Categories returns the distinct categories, in first-seen order.
func (b *Bank) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, q := range b.Questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			cats = append(cats, q.Category)
		}
	}
	return cats
}

var bankSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"version", "questions"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string", "pattern": "^v[0-9]+\\.[0-9]+\\.[0-9]+$"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "category", "prompt", "answers", "correct_answer_index"},
				"properties": map[string]any{
					"id":                   map[string]any{"type": "string", "minLength": 1},
					"category":             map[string]any{"type": "string", "minLength": 1},
					"prompt":               map[string]any{"type": "string", "minLength": 1},
					"answers":              map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string"}},
					"correct_answer_index": map[string]any{"type": "integer", "minimum": 0},
					"explanation":          map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		// Round-trip through JSON so numbers take the form the compiler expects.
		defBytes, err := json.Marshal(bankSchemaDef)
		if err != nil {
			bankSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, def); err != nil {
			bankSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(url)
	})
	return bankSchema, bankSchemaErr
}

// LoadBank parses and validates a question bank: JSON schema first, then the
// format version, then each question's invariants and ID uniqueness.
func LoadBank(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	schema, err := compiledBankSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("bank schema validation failed: %w", err)
	}

	var bank Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if !semver.IsValid(bank.Version) {
		return nil, fmt.Errorf("bank version %q is not a valid semantic version", bank.Version)
	}
	if major := semver.Major(bank.Version); major != BankMajorVersion {
		return nil, fmt.Errorf("bank version %s unsupported: want major %s", bank.Version, BankMajorVersion)
	}

	ids := make(map[string]bool, len(bank.Questions))
	for _, q := range bank.Questions {
		if ids[q.ID] {
			return nil, fmt.Errorf("duplicate question ID %q", q.ID)
		}
		ids[q.ID] = true
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return &bank, nil
}

// LoadBankFile loads a bank from path.
func LoadBankFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()
	return LoadBank(f)
}

// DefaultBank returns the question bank embedded in the binary.
func DefaultBank() (*Bank, error) {
	return LoadBank(bytes.NewReader(defaultBankJSON))
}
