package store

import (
	"cmp"
	"strconv"
	"strings"
)

// SmallestUnused returns prefix+n for the smallest n >= 0 for which taken
// reports false. Ids freed by deletion are handed out again.
func SmallestUnused(taken func(id string) bool, prefix string) string {
	for n := 0; ; n++ {
		id := prefix + strconv.Itoa(n)
		if !taken(id) {
			return id
		}
	}
}

// ProjectPaperID joins a project id and a project-local id.
func ProjectPaperID(projectID, localID string) string {
	return projectID + "-" + localID
}

// CompareIDs orders ids segment by segment around '-', numerically where
// both segments are integers.
func CompareIDs(a, b string) int {
	as, bs := strings.Split(a, "-"), strings.Split(b, "-")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		var c int
		if aerr == nil && berr == nil {
			c = cmp.Compare(an, bn)
		} else {
			c = strings.Compare(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}
