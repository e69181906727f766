package calculator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmx-ops/concrete/models"
)

type numberKey struct {
	projectID uuid.UUID
	date      string
}

// nextDispatchNo allocates the next free number for a (project, date)
// pair: MMDD + project code + 2-digit sequence starting at 01. Numbers
// already persisted under the prefix are loaded once per key; numbers
// handed out earlier in this Calculator's lifetime are remembered so a
// batch cannot allocate the same number twice before its inserts land.
func (c *Calculator) nextDispatchNo(project *models.Project, date time.Time) (string, error) {
	prefix := fmt.Sprintf("%02d%02d%s", int(date.Month()), date.Day(), project.Code)
	key := numberKey{projectID: project.ID, date: date.Format("20060102")}

	used, ok := c.usedNos[key]
	if !ok {
		existing, err := c.store.DispatchNosByPrefix(prefix)
		if err != nil {
			return "", err
		}
		used = make(map[string]bool, len(existing))
		for _, no := range existing {
			used[no] = true
		}
		c.usedNos[key] = used
	}

	for seq := 1; ; seq++ {
		candidate := fmt.Sprintf("%s%02d", prefix, seq)
		if !used[candidate] {
			used[candidate] = true
			return candidate, nil
		}
	}
}
