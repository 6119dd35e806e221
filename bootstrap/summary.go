package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/restkit/component"
)

// Summary prints the startup report: infrastructure, header chain and live
// health.
type Summary struct {
	service  string
	version  string
	baseURI  string
	mappers  int
	duration time.Duration
}

// Write renders the summary to w.
func (s *Summary) Write(ctx context.Context, w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n%s v%s started in %.2fs\n\n", s.service, s.version, s.duration.Seconds())

	descs := registry.Describe()
	if len(descs) > 0 {
		fmt.Fprintf(w, "Infrastructure\n")
		for i, d := range descs {
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", branch(i, len(descs)), d.Name, d.Type, d.Details)
		}
		fmt.Fprintln(w)
	}

	base := s.baseURI
	if base == "" {
		base = "(none)"
	}
	fmt.Fprintf(w, "Dispatch\n")
	fmt.Fprintf(w, "   ├── base uri: %s\n", base)
	fmt.Fprintf(w, "   └── header mappers: %d\n\n", s.mappers)

	results := registry.HealthAll(ctx)
	if len(results) > 0 {
		healthy := 0
		fmt.Fprintf(w, "Health\n")
		for i, h := range results {
			msg := ""
			if h.Message != "" {
				msg = " (" + h.Message + ")"
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(results)), healthIcon(h.Status), h.Name, h.Status, msg)
			if h.Healthy() {
				healthy++
			}
		}
		fmt.Fprintf(w, "\n%d/%d components healthy\n", healthy, len(results))
	}
	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
