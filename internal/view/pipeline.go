package view

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

type SortKey string

const (
	SortByCode SortKey = "code"
	SortByName SortKey = "name"
	SortByType SortKey = "type"
)

// ParseSortKey maps a query-string value to a sort key, defaulting to code.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.TrimSpace(value)) {
	case SortByName:
		return SortByName
	case SortByType:
		return SortByType
	default:
		return SortByCode
	}
}

// Options is the immutable per-recomputation snapshot of UI state. A zero
// OnlyMineName disables the ownership filter; a PageSize of zero or less
// disables pagination (everything on one page).
type Options struct {
	Search       string
	OnlyMineName string
	SortKey      SortKey
	Page         int
	PageSize     int
	Expanded     map[int]struct{}
}

type Result struct {
	Rows         []domain.DisplayRow `json:"rows"`
	TotalCourses int                 `json:"total_courses"`
}

// Process runs filter, sort, paginate, flatten, and colorize over the
// aggregated courses. It never mutates its input and never fails: an
// out-of-range page yields empty rows, an empty input an empty result.
// Child rows of expanded courses ride along with their parent and do not
// count toward the page size.
func Process(courses []domain.Course, opts Options) Result {
	filtered := filterCourses(courses, opts)
	sortCourses(filtered, opts.SortKey)

	total := len(filtered)
	start, end := 0, total
	if opts.PageSize > 0 {
		start = (opts.Page - 1) * opts.PageSize
		if start < 0 || start >= total {
			return Result{Rows: []domain.DisplayRow{}, TotalCourses: total}
		}
		end = start + opts.PageSize
		if end > total {
			end = total
		}
	}

	rows := flatten(filtered[start:end], opts.Expanded, start)
	for i := range rows {
		rows[i].ColorIndex = ColorFor(rows[i].Course.OfferedCourseID)
		if rows[i].Section != nil {
			rows[i].DarkVariant = DarkVariant(rows[i].Section.SectionNumber)
		}
	}
	return Result{Rows: rows, TotalCourses: total}
}

func filterCourses(courses []domain.Course, opts Options) []domain.Course {
	needle := strings.ToLower(strings.TrimSpace(opts.Search))
	owner := NormalizeName(opts.OnlyMineName)

	out := make([]domain.Course, 0, len(courses))
	for _, course := range courses {
		if needle != "" && !matchesSearch(course, needle) {
			continue
		}
		if owner != "" && !taughtBy(course, owner) {
			continue
		}
		out = append(out, course)
	}
	return out
}

func matchesSearch(course domain.Course, needle string) bool {
	for _, field := range []string{course.Code, course.NameTH, course.NameEN, course.TypeName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, name := range course.InstructorNames {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

// NormalizeName strips whitespace and dots and lower-cases, so honorific
// spellings like "อ.ดร.สมชาย ใจดี" and "อ. ดร. สมชาย  ใจดี" compare equal.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsSpace(r) || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func taughtBy(course domain.Course, owner string) bool {
	for _, name := range course.InstructorNames {
		if NormalizeName(name) == owner {
			return true
		}
	}
	return false
}

func sortCourses(courses []domain.Course, key SortKey) {
	collator := collate.New(language.Thai)
	keyOf := func(course domain.Course) string {
		switch key {
		case SortByName:
			return course.NameTH
		case SortByType:
			return course.TypeName
		default:
			return course.Code
		}
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return collator.CompareString(keyOf(courses[i]), keyOf(courses[j])) < 0
	})
}
