// Package catalog derives the catalog view from the fetched discount collection.
// Every function is pure: inputs are never mutated and results are recomputed per request.
package catalog

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortDiscount SortKey = "discount"
	SortExpiring SortKey = "expiring"
)

// ExpiringSoonDays is the threshold for the "days left" warning.
const ExpiringSoonDays = 7

// ParseSortKey maps a query value to a SortKey; anything unknown is SortNewest.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortDiscount:
		return SortDiscount
	case SortExpiring:
		return SortExpiring
	default:
		return SortNewest
	}
}

// Query is the catalog's derived-state input.
type Query struct {
	Category string
	Term     string
	Sort     SortKey
}

// Derive filters by category, then by search term, then sorts. The order is fixed.
func Derive(list []entity.Discount, q Query) []entity.Discount {
	out := FilterByCategory(list, q.Category)
	out = Search(out, q.Term)
	return Sort(out, q.Sort)
}

// FilterByCategory keeps discounts whose category equals c. Empty c keeps all.
func FilterByCategory(list []entity.Discount, c string) []entity.Discount {
	out := make([]entity.Discount, 0, len(list))
	for _, d := range list {
		if c == "" || d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Search keeps discounts whose title, description or code contains term, case-insensitively.
func Search(list []entity.Discount, term string) []entity.Discount {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]entity.Discount, 0, len(list))
	for _, d := range list {
		if term == "" ||
			strings.Contains(strings.ToLower(d.Title), term) ||
			strings.Contains(strings.ToLower(d.Description), term) ||
			strings.Contains(strings.ToLower(d.Code), term) {
			out = append(out, d)
		}
	}
	return out
}

// Sort returns a stably sorted copy of list.
func Sort(list []entity.Discount, by SortKey) []entity.Discount {
	out := make([]entity.Discount, len(list))
	copy(out, list)

	switch by {
	case SortDiscount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PercentOff > out[j].PercentOff })
	case SortExpiring:
		keys := make([]timeKey, len(out))
		for i := range out {
			keys[i] = validUntilKey(out[i])
		}
		sortByKeys(out, keys, func(a, b time.Time) bool { return a.Before(b) })
	default:
		keys := make([]timeKey, len(out))
		for i := range out {
			keys[i] = createdKey(out[i])
		}
		sortByKeys(out, keys, func(a, b time.Time) bool { return a.After(b) })
	}
	return out
}

type timeKey struct {
	t  time.Time
	ok bool
}

// sortByKeys stably orders items by keys; items without a key keep their relative order after the rest.
func sortByKeys(items []entity.Discount, keys []timeKey, less func(a, b time.Time) bool) {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if !ka.ok {
			return false
		}
		return less(ka.t, kb.t)
	})
	sorted := make([]entity.Discount, len(items))
	for i, k := range idx {
		sorted[i] = items[k]
	}
	copy(items, sorted)
}

func validUntilKey(d entity.Discount) timeKey {
	t, ok := helpers.ParseTime(d.ValidUntil)
	return timeKey{t: t, ok: ok}
}

func createdKey(d entity.Discount) timeKey {
	if t, ok := helpers.ParseTime(d.CreatedAt); ok {
		return timeKey{t: t, ok: true}
	}
	if t, ok := ObjectIDTime(d.ID); ok {
		return timeKey{t: t, ok: true}
	}
	return timeKey{}
}

// ObjectIDTime extracts the creation second embedded in a 24-hex-char object id.
func ObjectIDTime(id string) (time.Time, bool) {
	if len(id) != 24 {
		return time.Time{}, false
	}
	b, err := hex.DecodeString(id[:8])
	if err != nil {
		return time.Time{}, false
	}
	if _, err := hex.DecodeString(id[8:]); err != nil {
		return time.Time{}, false
	}
	return time.Unix(int64(binary.BigEndian.Uint32(b)), 0).UTC(), true
}

// Categories lists the distinct non-empty categories in first-seen order.
func Categories(list []entity.Discount) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0)
	for _, d := range list {
		if d.Category == "" {
			continue
		}
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		out = append(out, d.Category)
	}
	return out
}

// DaysRemaining is the ceiling of the day difference between validUntil and now.
// ok is false when validUntil does not parse.
func DaysRemaining(validUntil string, now time.Time) (days int, ok bool) {
	t, ok := helpers.ParseTime(validUntil)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), true
}

// Expiry classifies a discount for the details screen.
type Expiry struct {
	DaysRemaining int
	ExpiringSoon  bool
	Expired       bool
}

// ExpiryAt computes the expiry badge state for validUntil at now.
func ExpiryAt(validUntil string, now time.Time) Expiry {
	days, ok := DaysRemaining(validUntil, now)
	if !ok {
		return Expiry{}
	}
	return Expiry{
		DaysRemaining: days,
		Expired:       days <= 0,
		ExpiringSoon:  days > 0 && days <= ExpiringSoonDays,
	}
}

// FilterUsers keeps users whose name or email contains term, case-insensitively.
func FilterUsers(users []entity.User, term string) []entity.User {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		if term == "" ||
			strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}
