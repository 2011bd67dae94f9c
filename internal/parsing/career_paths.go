// Package parsing turns the reasoning service's reply text into validated CareerPath entries.
package parsing

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/schemas"
	"github.com/jonathan/career-compass/internal/types"
)

// ParseCareerPaths reads text as a JSON array of entries. When the text is not
// a bare array, the first ```json fenced block is tried, then any single
// wrapping fence. An empty reply is an empty batch.
//
// Entries that fail normalisation or schema validation are dropped and their
// reasons returned as *ValidationError values; the remaining entries keep the
// service's order. IDs and source URLs are left for the caller to assign.
func ParseCareerPaths(text string) ([]types.CareerPath, []error, error) {
	raw, err := decodeEntries(text)
	if err != nil {
		return nil, nil, err
	}

	paths := make([]types.CareerPath, 0, len(raw))
	var rejected []error
	for i, msg := range raw {
		path, err := toCareerPath(i, msg)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, rejected, nil
}

func decodeEntries(text string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	var entries []json.RawMessage
	directErr := json.Unmarshal([]byte(trimmed), &entries)
	if directErr == nil {
		return entries, nil
	}

	var candidates []string
	if block, ok := llm.ExtractFencedJSON(trimmed); ok {
		candidates = append(candidates, block)
	}
	if cleaned := llm.CleanJSONBlock(trimmed); cleaned != trimmed {
		candidates = append(candidates, cleaned)
	}

	for _, candidate := range candidates {
		if err := json.Unmarshal([]byte(candidate), &entries); err == nil {
			return entries, nil
		}
	}

	msg := "reply is not a JSON array"
	if len(candidates) > 0 {
		msg = "reply is not a JSON array and its fenced block could not be parsed"
	}
	return nil, &ParseError{Message: msg, Cause: directErr}
}

func toCareerPath(index int, msg json.RawMessage) (types.CareerPath, error) {
	var entry map[string]any
	if err := json.Unmarshal(msg, &entry); err != nil || entry == nil {
		return types.CareerPath{}, &ValidationError{
			Index:   index,
			Message: "entry is not an object",
			Cause:   err,
		}
	}

	normalizeEntry(entry)

	if err := schemas.ValidateCareerPath(entry); err != nil {
		verr := &ValidationError{Index: index, Message: err.Error(), Cause: err}
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			verr.Field = schemaErr.Errors[0].Field
			verr.Message = schemaErr.Summary()
		}
		return types.CareerPath{}, verr
	}

	normalized, err := json.Marshal(entry)
	if err != nil {
		return types.CareerPath{}, &ValidationError{Index: index, Message: "entry could not be re-encoded", Cause: err}
	}
	var path types.CareerPath
	if err := json.Unmarshal(normalized, &path); err != nil {
		return types.CareerPath{}, &ValidationError{Index: index, Message: "entry does not match the record shape", Cause: err}
	}

	path.ID = ""
	path.SourceURLs = nil
	path.HiddenGem = path.Category == types.CategoryHidden
	return path, nil
}
