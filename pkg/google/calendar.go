package google

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/morningtasks/pkg/meetings"
)

// CalendarClient is a Google Calendar API client.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
}

// NewCalendarClient creates a new Google Calendar client.
func NewCalendarClient(srv *calendar.Service, calendarID string) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID}
}

// ListEvents fetches single events starting within [timeMin, timeMax).
func (c *CalendarClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	var events []*calendar.Event
	err := c.srv.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *calendar.Events) error {
			events = append(events, page.Items...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}
	return events, nil
}

// Meetings returns the timed events of the day containing day.
func (c *CalendarClient) Meetings(ctx context.Context, day time.Time) ([]meetings.Meeting, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	events, err := c.ListEvents(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return MeetingsFromEvents(events), nil
}

// MeetingsFromEvents keeps the timed events the user has not declined.
// All-day events carry only a date and are skipped.
func MeetingsFromEvents(events []*calendar.Event) []meetings.Meeting {
	var out []meetings.Meeting
	for _, e := range events {
		if e.Status == "cancelled" || e.Start == nil || e.End == nil || e.Start.DateTime == "" {
			continue
		}
		if declined(e) {
			continue
		}
		start, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			log.Printf("Warning: skipping event %s with bad start %q: %v", e.Id, e.Start.DateTime, err)
			continue
		}
		end, err := time.Parse(time.RFC3339, e.End.DateTime)
		if err != nil {
			log.Printf("Warning: skipping event %s with bad end %q: %v", e.Id, e.End.DateTime, err)
			continue
		}
		out = append(out, meetings.Meeting{
			EventID: e.Id,
			Subject: e.Summary,
			Start:   start,
			End:     end,
		})
	}
	return out
}

func declined(e *calendar.Event) bool {
	for _, a := range e.Attendees {
		if a.Self && a.ResponseStatus == "declined" {
			return true
		}
	}
	return false
}
