package view

import (
	"strconv"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

// flatten emits one parent row per course on the page, each immediately
// followed by child rows for the non-first sections of expanded
// multi-section courses. offset is the parent count of earlier pages, so
// ordinals stay global across pagination.
func flatten(pageParents []domain.Course, expanded map[int]struct{}, offset int) []domain.DisplayRow {
	rows := make([]domain.DisplayRow, 0, len(pageParents))
	for i, course := range pageParents {
		parent := domain.DisplayRow{
			Key:     strconv.Itoa(course.OfferedCourseID),
			Course:  course,
			Ordinal: offset + i + 1,
		}
		if len(course.Sections) > 0 {
			first := course.Sections[0]
			parent.Section = &first
		}
		rows = append(rows, parent)

		if _, ok := expanded[course.OfferedCourseID]; !ok || len(course.Sections) <= 1 {
			continue
		}
		for j := 1; j < len(course.Sections); j++ {
			section := course.Sections[j]
			rows = append(rows, domain.DisplayRow{
				Key:     strconv.Itoa(course.OfferedCourseID) + "-" + strconv.Itoa(section.SectionNumber),
				IsChild: true,
				Course:  course,
				Section: &section,
			})
		}
	}
	return rows
}
