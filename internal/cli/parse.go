package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/config"
	"github.com/example/fieldkit/internal/models"
)

// parseCoords reads a GPS fix written as "lat,lng" or "lat,lng,acc".
// An empty string means no fix.
func parseCoords(s string) (*models.Coords, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("invalid coordinates %q: expected lat,lng[,accuracy]", s)
	}

	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinates %q: %w", s, err)
		}
		values[i] = v
	}

	c := &models.Coords{Lat: values[0], Lng: values[1]}
	if len(values) == 3 {
		c.Acc = values[2]
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return nil, fmt.Errorf("coordinates %q out of range", s)
	}
	return c, nil
}

// parseYesNo reads an optional yes/no answer. An empty string is unanswered.
func parseYesNo(s string) (*bool, error) {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "y", "yes", "true":
		v = true
	case "n", "no", "false":
		v = false
	default:
		return nil, fmt.Errorf("invalid answer %q: expected yes or no", s)
	}
	return &v, nil
}

// optionalString returns the flag value only when the flag was given.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// flagOrAll reads a checklist flag, treating --all as every box ticked.
func flagOrAll(cmd *cobra.Command, name string) bool {
	if all, _ := cmd.Flags().GetBool("all"); all {
		return true
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// parseClusters reads cluster specs written as id=count, e.g. C1=7.
func parseClusters(specs []string) ([]config.Cluster, error) {
	clusters := make([]config.Cluster, 0, len(specs))
	for _, spec := range specs {
		id, count, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid cluster %q: expected id=count", spec)
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("invalid cluster %q: %w", spec, err)
		}
		clusters = append(clusters, config.Cluster{ID: strings.TrimSpace(id), Sites: n})
	}
	return clusters, nil
}
