package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadJSON reads path into v. A missing file returns os.ErrNotExist; a
// corrupt file returns a wrapped *json.SyntaxError so callers can downgrade
// it to a warning and continue with empty data.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes v to path as indented JSON. The write goes through a
// temp file and rename so a crash mid-write never corrupts the target.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// IsNotExist reports whether err means the file was simply absent.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// IsCorrupt reports whether err came from undecodable JSON.
func IsCorrupt(err error) bool {
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syn) || errors.As(err, &typ)
}
