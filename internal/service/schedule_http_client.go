package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

// SchedulerHTTPClient fetches the raw per-meeting schedule records produced
// by the schedule-generation backend. The backend's algorithm is opaque to
// this service; only the flat record list crosses the boundary.
type SchedulerHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewSchedulerHTTPClient(baseURL string, httpClient *http.Client) *SchedulerHTTPClient {
	return &SchedulerHTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *SchedulerHTTPClient) FetchSlots(ctx context.Context, sel domain.Selection) ([]domain.ScheduleSlot, error) {
	if c.baseURL == "" {
		return nil, ErrInvalidInput
	}

	query := url.Values{}
	query.Set("major_id", strconv.Itoa(sel.MajorID))
	query.Set("year", strconv.Itoa(sel.AcademicYear))
	query.Set("term", strconv.Itoa(sel.Term))

	endpoint := c.baseURL + "/offered-courses/schedule?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("scheduler backend unexpected status: %d", resp.StatusCode)
	}

	var slots []domain.ScheduleSlot
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&slots); err != nil {
		return nil, fmt.Errorf("decode schedule payload: %w", err)
	}

	return slots, nil
}

func DefaultSchedulerHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
