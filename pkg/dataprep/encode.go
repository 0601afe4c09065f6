package dataprep

import "fmt"

// OrdinalEncode maps categories through a fixed ordering. An unknown
// category is an error.
func OrdinalEncode(data []string, order map[string]int) ([]int, error) {
	out := make([]int, len(data))
	for i, v := range data {
		code, ok := order[v]
		if !ok {
			return nil, fmt.Errorf("row %d: unknown category %q", i, v)
		}
		out[i] = code
	}
	return out, nil
}
