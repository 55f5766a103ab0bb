package view

import (
	"sort"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

// BuildCourses ingests raw slots and groups them into courses with
// canonically ordered sections. Courses come out sorted by offered-course
// id, sections ascending by number, meetings in day order, so the result
// depends only on the input multiset, not on input order.
//
// Course metadata is taken from the first slot seen for an id; the backend
// repeats identical metadata per slot of the same course, so divergent
// values are not reconciled.
func BuildCourses(slots []domain.ScheduleSlot) []domain.Course {
	groups := make(map[int]*courseGroup, len(slots))
	for _, slot := range slots {
		group, ok := groups[slot.OfferedCoursesID]
		if !ok {
			group = &courseGroup{
				meta:     slot,
				meetings: make(map[int][]domain.Meeting),
			}
			groups[slot.OfferedCoursesID] = group
		}
		group.meetings[slot.SectionNumber] = append(group.meetings[slot.SectionNumber], IngestSlot(slot))
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	courses := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		courses = append(courses, groups[id].build(id))
	}
	return courses
}

type courseGroup struct {
	meta     domain.ScheduleSlot
	meetings map[int][]domain.Meeting
}

func (g *courseGroup) build(id int) domain.Course {
	numbers := make([]int, 0, len(g.meetings))
	for number := range g.meetings {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	sections := make([]domain.Section, 0, len(numbers))
	for _, number := range numbers {
		meetings := g.meetings[number]
		sort.SliceStable(meetings, func(i, j int) bool {
			return domain.DayOrder(meetings[i].Day) < domain.DayOrder(meetings[j].Day)
		})
		sections = append(sections, domain.Section{
			SectionNumber: number,
			Meetings:      meetings,
		})
	}

	return domain.Course{
		OfferedCourseID:    id,
		Code:               g.meta.Code,
		NameTH:             g.meta.ThaiName,
		NameEN:             g.meta.EnglishName,
		Credit:             g.meta.Credit,
		TypeName:           g.meta.TypeOfCourses.TypeName,
		CapacityPerSection: g.meta.Capacity,
		InstructorNames:    NormalizeInstructors(g.meta.InstructorNames),
		Sections:           sections,
	}
}
