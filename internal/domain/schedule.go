package domain

import (
	"time"

	"github.com/google/uuid"
)

// Selection identifies one fetched timetable: a major in a specific
// academic year and term.
type Selection struct {
	MajorID      int
	AcademicYear int
	Term         int
}

// ScheduleSlot is one per-meeting record exactly as the scheduler backend
// delivers it. Laboratory and TimeFixedCourses may be absent.
type ScheduleSlot struct {
	OfferedCoursesID int         `json:"OfferedCoursesID"`
	Code             string      `json:"Code"`
	ThaiName         string      `json:"ThaiName"`
	EnglishName      string      `json:"EnglishName"`
	Credit           Credit      `json:"Credit"`
	TypeOfCourses    CourseType  `json:"TypeOfCourses"`
	SectionNumber    int         `json:"SectionNumber"`
	DayOfWeek        string      `json:"DayOfWeek"`
	StartTime        string      `json:"StartTime"`
	EndTime          string      `json:"EndTime"`
	Capacity         int         `json:"Capacity"`
	InstructorNames  []string    `json:"InstructorNames"`
	Laboratory       *Laboratory `json:"Laboratory,omitempty"`
	TimeFixedCourses []FixedRoom `json:"TimeFixedCourses,omitempty"`
}

type Credit struct {
	Unit    int `json:"Unit"`
	Lecture int `json:"Lecture"`
	Lab     int `json:"Lab"`
	Self    int `json:"Self"`
}

type CourseType struct {
	TypeName string `json:"TypeName"`
}

type Laboratory struct {
	Room string `json:"Room"`
}

type FixedRoom struct {
	DayOfWeek string `json:"DayOfWeek"`
	Section   int    `json:"Section"`
	RoomFix   string `json:"RoomFix"`
}

// Meeting is one normalized day/time/room occurrence of a section.
// Room is never empty-by-accident: it has been resolved through the
// fallback chain and "" means the room assignment is still pending.
type Meeting struct {
	SectionNumber int    `json:"section_number"`
	Day           string `json:"day"`
	TimeSpan      string `json:"time_span"`
	StartLabel    string `json:"start_label"`
	Room          string `json:"room"`
}

// Section is one teaching group of an offered course. Meetings are kept in
// canonical day order, so the first meeting is the representative one.
type Section struct {
	SectionNumber int       `json:"section_number"`
	Meetings      []Meeting `json:"meetings"`
}

// Representative returns the meeting shown on compact single-line displays.
func (s Section) Representative() Meeting {
	if len(s.Meetings) == 0 {
		return Meeting{SectionNumber: s.SectionNumber}
	}
	return s.Meetings[0]
}

// Course is one offered course with its sections sorted ascending by
// section number. Sections is never empty for a built course.
type Course struct {
	OfferedCourseID    int       `json:"offered_course_id"`
	Code               string    `json:"code"`
	NameTH             string    `json:"name_th"`
	NameEN             string    `json:"name_en"`
	Credit             Credit    `json:"credit"`
	TypeName           string    `json:"type_name"`
	CapacityPerSection int       `json:"capacity_per_section"`
	InstructorNames    []string  `json:"instructor_names"`
	Sections           []Section `json:"sections"`
}

// ScheduleSnapshot is the latest raw payload fetched for a selection,
// persisted so the viewer can serve stale data while the backend is down.
type ScheduleSnapshot struct {
	ID        uuid.UUID
	Selection Selection
	Payload   []byte
	FetchedAt time.Time
}
