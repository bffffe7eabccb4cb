package report

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// EncodeTOML renders the report as a TOML document. It does not fail for
// any well-formed report; a failure here means the reporting pipeline
// itself is broken.
func (r Report) EncodeTOML() ([]byte, error) {
	data, err := toml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding crash report: %w", err)
	}
	return data, nil
}

// DecodeTOML parses a previously persisted report.
func DecodeTOML(data []byte) (Report, error) {
	var r Report
	if err := toml.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("parsing crash report: %w", err)
	}
	return r, nil
}
