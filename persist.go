package reflux

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveSnapshot writes the store's current state to path using the codec.
// The write is atomic: data goes to a temp file in the same directory and
// is renamed into place, so readers never observe a partial snapshot.
func SaveSnapshot[S any](s *Store[S], path string, codec Codec) error {
	data, err := codec.Marshal(s.State())
	if err != nil {
		return fmt.Errorf("snapshot marshal failed: %w", err)
	}
	return writeSnapshot(path, data)
}

// LoadSnapshot reads a snapshot file and decodes it into a state value.
func LoadSnapshot[S any](path string, codec Codec) (S, error) {
	var state S
	data, err := os.ReadFile(path)
	if err != nil {
		return state, fmt.Errorf("snapshot read failed: %w", err)
	}
	if err := codec.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("snapshot decode failed: %w", err)
	}
	return state, nil
}

// writeSnapshot writes data to path atomically via a temp file and rename.
func writeSnapshot(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reflux-*")
	if err != nil {
		return fmt.Errorf("snapshot temp file failed: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("snapshot write failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("snapshot close failed: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("snapshot rename failed: %w", err)
	}
	return nil
}
