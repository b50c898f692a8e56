package output

import (
	"fmt"
	"os"

	"github.com/agencysim/growth-simulator/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure: deterministic bytes out for the same
// comparison in.
type Formatter interface {
	Format(comparison *domain.ScenarioComparison) ([]byte, error)
	// Name returns a short identifier for selection and logging.
	Name() string
}

// builtInFormatters stores the available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
}

// ByName returns the registered formatter with the given name.
func ByName(name string) (Formatter, error) {
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

// WriteFormatted runs a formatter and writes its output to path.
func WriteFormatted(f Formatter, comparison *domain.ScenarioComparison, path string) error {
	data, err := f.Format(comparison)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
