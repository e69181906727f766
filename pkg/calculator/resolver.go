package calculator

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/rmx-ops/concrete/models"
)

// Fuzzy-match cutoffs. Truck lookups run looser because driver names are
// short and frequently mistyped.
const (
	defaultCutoff = 0.6
	truckCutoff   = 0.5
)

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// bestMatch finds the label matching query: exact normalized equality
// first, then the single best fuzzy candidate at or above cutoff. Ties
// keep the earlier label, so insertion order of the candidate list is the
// tie-break. Returns the label index.
func bestMatch(query string, labels []string, cutoff float64) (int, bool) {
	q := normalize(query)
	if q == "" || len(labels) == 0 {
		return 0, false
	}

	for i, label := range labels {
		if normalize(label) == q {
			return i, true
		}
	}

	best, bestRatio := -1, 0.0
	for i, label := range labels {
		if r := similarity(q, normalize(label)); r >= cutoff && r > bestRatio {
			best, bestRatio = i, r
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// FindProject resolves free text to an active project by code or name.
func (c *Calculator) FindProject(query string) (*models.Project, error) {
	projects, err := c.store.ActiveProjects()
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, &EmptyCorpusError{Kind: "project"}
	}

	var labels []string
	var owners []*models.Project
	for i := range projects {
		p := &projects[i]
		labels = append(labels, p.Code, p.Name)
		owners = append(owners, p, p)
	}

	idx, ok := bestMatch(query, labels, defaultCutoff)
	if !ok {
		return nil, &NotFoundError{Kind: "project", Query: query}
	}
	return owners[idx], nil
}

// FindTruck resolves free text to an active truck by code, plate or driver
// name.
func (c *Calculator) FindTruck(query string) (*models.Truck, error) {
	trucks, err := c.store.ActiveTrucks()
	if err != nil {
		return nil, err
	}
	if len(trucks) == 0 {
		return nil, &EmptyCorpusError{Kind: "truck"}
	}

	var labels []string
	var owners []*models.Truck
	for i := range trucks {
		t := &trucks[i]
		labels = append(labels, t.Code, t.PlateNo)
		owners = append(owners, t, t)
		if t.DriverName != "" {
			labels = append(labels, t.DriverName)
			owners = append(owners, t)
		}
	}

	idx, ok := bestMatch(query, labels, truckCutoff)
	if !ok {
		return nil, &NotFoundError{Kind: "truck", Query: query}
	}
	return owners[idx], nil
}

// FindMix resolves free text to an active mix design. A query that parses
// as a strength code matches on PSI equality before any fuzzy comparison
// against mix codes.
func (c *Calculator) FindMix(query string) (*models.Mix, error) {
	mixes, err := c.store.ActiveMixes()
	if err != nil {
		return nil, err
	}
	if len(mixes) == 0 {
		return nil, &EmptyCorpusError{Kind: "mix"}
	}

	if psi, ok := ParsePSI(query); ok {
		for i := range mixes {
			if mixes[i].PSI == psi {
				return &mixes[i], nil
			}
		}
	}

	var labels []string
	for i := range mixes {
		labels = append(labels, mixes[i].Code)
	}

	idx, ok := bestMatch(query, labels, defaultCutoff)
	if !ok {
		return nil, &NotFoundError{Kind: "mix", Query: query}
	}
	return &mixes[idx], nil
}
