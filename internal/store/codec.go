package store

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-pulse/internal/schemas"
	"github.com/jonathan/career-pulse/internal/types"
)

// Encode serializes resumes, in order, as the persisted JSON array.
func Encode(resumes []types.Resume) ([]byte, error) {
	if resumes == nil {
		resumes = []types.Resume{}
	}
	data, err := json.Marshal(resumes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resumes: %w", err)
	}
	return data, nil
}

// Decode parses a persisted JSON array after checking its shape against the
// resumes schema. Identifiers must be unique.
func Decode(data []byte) ([]types.Resume, error) {
	if err := schemas.ValidateResumes(data); err != nil {
		return nil, err
	}

	var resumes []types.Resume
	if err := json.Unmarshal(data, &resumes); err != nil {
		return nil, fmt.Errorf("failed to parse resumes: %w", err)
	}

	seen := make(map[string]bool, len(resumes))
	for i := range resumes {
		if seen[resumes[i].ID] {
			return nil, fmt.Errorf("duplicate resume id %q", resumes[i].ID)
		}
		seen[resumes[i].ID] = true
		resumes[i].Normalize()
	}
	return resumes, nil
}
