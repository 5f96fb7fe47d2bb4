package artifact

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONFetcher decodes stored files as JSON objects.
type JSONFetcher struct {
	Store Store
}

// Fetch reads file and decodes it into a mapping.
func (f JSONFetcher) Fetch(ctx context.Context, file string) (map[string]any, error) {
	data, err := f.Store.Get(ctx, file)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", file, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}
