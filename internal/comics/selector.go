package comics

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequence returns 1..n, with n capped at MaxID.
func Sequence(n int) []int {
	if n < 1 {
		return nil
	}
	n = min(n, MaxID)

	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}

	return out
}

// ParseRange accepts "a-b" with 1 <= a <= b.
func ParseRange(rng string) ([]int, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("range %q: want <start>-<end>", rng)
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("range %q: bounds must be integers", rng)
	}
	if start <= 0 || start > end {
		return nil, fmt.Errorf("range %q: need 1 <= start <= end", rng)
	}
	if end > MaxID {
		return nil, fmt.Errorf("range %q: comic ids stop at %d", rng, MaxID)
	}

	ids := make([]int, 0, end-start+1)
	for id := start; id <= end; id++ {
		ids = append(ids, id)
	}

	return ids, nil
}

// ParseList accepts "1,3,5". Duplicates are dropped, first occurrence wins.
func ParseList(list string) ([]int, error) {
	var ids []int
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		id, err := atoi(p)
		if err != nil {
			return nil, fmt.Errorf("list entry %q is not an integer", p)
		}
		if id <= 0 {
			return nil, fmt.Errorf("list entry %d: comic ids start at 1", id)
		}
		if id > MaxID {
			return nil, fmt.Errorf("list entry %d: comic ids stop at %d", id, MaxID)
		}

		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("list %q selects nothing", list)
	}

	return Unique(ids), nil
}

func Unique(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
