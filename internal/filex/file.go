package filex

import (
	"encoding/pem"
	"fmt"
	"os"
)

// ReadPEMFile reads a key file and checks that it contains at least one
// PEM block. The raw file contents are returned so the caller can hand
// them to a key parser.
func ReadPEMFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if block, _ := pem.Decode(data); block == nil {
		return nil, fmt.Errorf("%s: no PEM data found", path)
	}

	return data, nil
}
