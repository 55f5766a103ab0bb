package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

const samplePayload = `[
	{
		"OfferedCoursesID": 5,
		"Code": "ENG23 2003",
		"ThaiName": "วิศวกรรมซอฟต์แวร์",
		"EnglishName": "Software Engineering",
		"Credit": {"Unit": 3, "Lecture": 2, "Lab": 3, "Self": 5},
		"TypeOfCourses": {"TypeName": "บังคับ"},
		"SectionNumber": 1,
		"DayOfWeek": "จันทร์",
		"StartTime": "2025-06-16T09:00:00+07:00",
		"EndTime": "2025-06-16T12:00:00+07:00",
		"Capacity": 40,
		"InstructorNames": ["อ.ดร.สมชาย ใจดี"],
		"TimeFixedCourses": [{"DayOfWeek": "จันทร์", "Section": 1, "RoomFix": "A101"}]
	}
]`

func TestFetchSlotsDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/offered-courses/schedule" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("major_id") != "1" || r.URL.Query().Get("year") != "2568" || r.URL.Query().Get("term") != "1" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := NewSchedulerHTTPClient(server.URL, server.Client())
	slots, err := client.FetchSlots(context.Background(), domain.Selection{MajorID: 1, AcademicYear: 2568, Term: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected one slot, got %d", len(slots))
	}
	slot := slots[0]
	if slot.OfferedCoursesID != 5 || slot.Code != "ENG23 2003" {
		t.Fatalf("unexpected slot: %#v", slot)
	}
	if slot.Credit.Lab != 3 || slot.TypeOfCourses.TypeName != "บังคับ" {
		t.Fatalf("nested metadata not decoded: %#v", slot)
	}
	if len(slot.TimeFixedCourses) != 1 || slot.TimeFixedCourses[0].RoomFix != "A101" {
		t.Fatalf("fixed rooms not decoded: %#v", slot.TimeFixedCourses)
	}
	if slot.Laboratory != nil {
		t.Fatalf("absent laboratory must stay nil")
	}
}

func TestFetchSlotsStatusMapping(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:  ErrNotFound,
		http.StatusForbidden: ErrUnauthorized,
	}
	for status, want := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewSchedulerHTTPClient(server.URL, server.Client())
		_, err := client.FetchSlots(context.Background(), domain.Selection{MajorID: 1, AcademicYear: 2568, Term: 1})
		if !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v, got %v", status, want, err)
		}
		server.Close()
	}
}

func TestFetchSlotsUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSchedulerHTTPClient(server.URL, server.Client())
	_, err := client.FetchSlots(context.Background(), domain.Selection{MajorID: 1, AcademicYear: 2568, Term: 1})
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected a generic error, got %v", err)
	}
}

func TestFetchSlotsRequiresBaseURL(t *testing.T) {
	client := NewSchedulerHTTPClient("", http.DefaultClient)
	_, err := client.FetchSlots(context.Background(), domain.Selection{MajorID: 1, AcademicYear: 2568, Term: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
