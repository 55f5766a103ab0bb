package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
	transport "github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/http"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/http/handlers"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/repository"
	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/service"
)

type stubScheduler struct {
	slots []domain.ScheduleSlot
	err   error
}

func (s *stubScheduler) FetchSlots(_ context.Context, _ domain.Selection) ([]domain.ScheduleSlot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.slots, nil
}

type stubIdentity struct {
	user service.IdentityUser
	err  error
}

func (s *stubIdentity) GetMe(_ context.Context, _ uuid.UUID) (service.IdentityUser, error) {
	if s.err != nil {
		return service.IdentityUser{}, s.err
	}
	return s.user, nil
}

type stubSnapshots struct{}

func (stubSnapshots) Upsert(context.Context, domain.ScheduleSnapshot) error {
	return nil
}

func (stubSnapshots) GetBySelection(context.Context, domain.Selection) (domain.ScheduleSnapshot, error) {
	return domain.ScheduleSnapshot{}, errors.New("no snapshot")
}

func (stubSnapshots) ListStale(context.Context, time.Time) ([]domain.Selection, error) {
	return nil, nil
}

type stubTxManager struct{}

func (stubTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	return fn(ctx, repository.TxRepositories{Snapshots: stubSnapshots{}})
}

func handlerFixtureSlots() []domain.ScheduleSlot {
	return []domain.ScheduleSlot{
		{
			OfferedCoursesID: 5,
			Code:             "ENG23 2003",
			ThaiName:         "วิศวกรรมซอฟต์แวร์",
			TypeOfCourses:    domain.CourseType{TypeName: "บังคับ"},
			SectionNumber:    1,
			DayOfWeek:        "จันทร์",
			StartTime:        "2025-06-16T09:00:00+07:00",
			EndTime:          "2025-06-16T12:00:00+07:00",
			InstructorNames:  []string{"อ.ดร.สมชาย ใจดี"},
		},
		{
			OfferedCoursesID: 5,
			Code:             "ENG23 2003",
			ThaiName:         "วิศวกรรมซอฟต์แวร์",
			TypeOfCourses:    domain.CourseType{TypeName: "บังคับ"},
			SectionNumber:    2,
			DayOfWeek:        "พุธ",
			StartTime:        "2025-06-16T13:00:00+07:00",
			EndTime:          "2025-06-16T16:00:00+07:00",
			InstructorNames:  []string{"อ.ดร.สมชาย ใจดี"},
		},
	}
}

func newTestHandler(scheduler service.SchedulerClient, identity service.IdentityClient) http.Handler {
	logger := log.New(io.Discard, "", 0)
	svc := service.NewViewService(stubTxManager{}, scheduler, identity, nil, 0, logger)
	return transport.NewRouter(handlers.NewViewHandler(svc)).Handler()
}

func TestViewRequiresSelection(t *testing.T) {
	handler := newTestHandler(&stubScheduler{}, &stubIdentity{})

	for _, target := range []string{
		"/timetable/view",
		"/timetable/view?major_id=1&year=2568",
		"/timetable/view?major_id=0&year=2568&term=1",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestViewOnlyMineRequiresUserHeader(t *testing.T) {
	handler := newTestHandler(&stubScheduler{}, &stubIdentity{})

	req := httptest.NewRequest(http.MethodGet, "/timetable/view?major_id=1&year=2568&term=1&only_mine=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without X-User-ID, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/timetable/view?major_id=1&year=2568&term=1&only_mine=1", nil)
	req.Header.Set("X-User-ID", "not-a-uuid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed X-User-ID, got %d", rec.Code)
	}
}

func TestViewHappyPathWithExpansion(t *testing.T) {
	handler := newTestHandler(&stubScheduler{slots: handlerFixtureSlots()}, &stubIdentity{})

	req := httptest.NewRequest(http.MethodGet, "/timetable/view?major_id=1&year=2568&term=1&expanded=5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Rows         []domain.DisplayRow `json:"rows"`
		TotalCourses int                 `json:"total_courses"`
		Page         int                 `json:"page"`
		PageSize     int                 `json:"page_size"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalCourses != 1 || body.Page != 1 || body.PageSize != 10 {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if len(body.Rows) != 2 {
		t.Fatalf("expected parent plus child for expanded course, got %d rows", len(body.Rows))
	}
	if body.Rows[0].IsChild || !body.Rows[1].IsChild {
		t.Fatalf("row order wrong: %#v", body.Rows)
	}
}

func TestViewBackendDownMapsToBadGateway(t *testing.T) {
	handler := newTestHandler(&stubScheduler{err: errors.New("connection refused")}, &stubIdentity{})

	req := httptest.NewRequest(http.MethodGet, "/timetable/view?major_id=1&year=2568&term=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestPaletteEndpoint(t *testing.T) {
	handler := newTestHandler(&stubScheduler{}, &stubIdentity{})

	req := httptest.NewRequest(http.MethodGet, "/timetable/palette", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body handlers.PaletteResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode palette: %v", err)
	}
	if len(body.Light) == 0 || len(body.Light) != len(body.Dark) {
		t.Fatalf("palette variants must pair up: %d light, %d dark", len(body.Light), len(body.Dark))
	}
}

func TestExportReturnsWorkbook(t *testing.T) {
	handler := newTestHandler(&stubScheduler{slots: handlerFixtureSlots()}, &stubIdentity{})

	req := httptest.NewRequest(http.MethodGet, "/timetable/view/export?major_id=1&year=2568&term=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %s", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("expected a non-empty workbook body")
	}
}
