package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
)

func decodeAll[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeOne[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode row: %w", err)
	}
	return v, nil
}

// DecodeOne exposes row decoding to the write-side services.
func DecodeOne[T any](raw json.RawMessage) (T, error) {
	return decodeOne[T](raw)
}

// IsNoRows reports whether err is the single-row "nothing matched" signal.
func IsNoRows(err error) bool {
	return errors.Is(err, ErrNoRows)
}

// selectOne runs a single-row fetch and maps "no row" to (nil, nil).
func selectOne[R any, E any](q *Query, raw json.RawMessage, err error, toDomain func(R) E) (*E, error) {
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	rec, err := decodeOne[R](raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", q.Table, err)
	}
	e := toDomain(rec)
	return &e, nil
}
