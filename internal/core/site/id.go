// Package site contains the pure business logic for a deployment site's lifecycle.
// This is part of the Functional Core - no I/O, only pure functions.
package site

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidSiteID is returned when an id does not follow the {cluster}-{site} format.
var ErrInvalidSiteID = errors.New("invalid site id")

var siteIDPattern = regexp.MustCompile(`^C(\d+)-S(\d+)$`)

// GenerateSiteID builds the id for site number n in cluster c.
// The format is C{cluster}-S{site}, e.g. C1-S3.
func GenerateSiteID(cluster, site int) string {
	return fmt.Sprintf("C%d-S%d", cluster, site)
}

// ParseSiteID extracts the cluster and site numbers from an id.
func ParseSiteID(id string) (cluster, site int, err error) {
	m := siteIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, fmt.Errorf("%w '%s'. Expected format: C<cluster>-S<site>", ErrInvalidSiteID, id)
	}
	cluster, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w '%s': cluster: %w", ErrInvalidSiteID, id, err)
	}
	site, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w '%s': site: %w", ErrInvalidSiteID, id, err)
	}
	return cluster, site, nil
}

// ClusterSiteIDs expands a cluster name and site count into ordered ids.
// The cluster name is used verbatim as the prefix (e.g. "C1").
func ClusterSiteIDs(cluster string, count int) []string {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		ids = append(ids, fmt.Sprintf("%s-S%d", cluster, i))
	}
	return ids
}
