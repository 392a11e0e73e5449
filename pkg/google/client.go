package google

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"github.com/harrisonrobin/morningtasks/pkg/auth"
)

// NewServices authenticates once and returns the Tasks and Calendar services.
func NewServices(ctx context.Context) (*tasks.Service, *calendar.Service, error) {
	client, err := auth.GetClient(ctx, auth.Scopes)
	if err != nil {
		return nil, nil, err
	}

	tasksSrv, err := tasks.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to retrieve Tasks client: %w", err)
	}
	calendarSrv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}
	return tasksSrv, calendarSrv, nil
}

// ResolveCalendarID maps a calendar name to its id. "primary" and ids
// already in the calendar list are returned as they are.
func ResolveCalendarID(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	if name == "" || name == "primary" {
		return "primary", nil
	}

	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	for _, item := range calendarList.Items {
		if item.Summary == name || item.Id == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", name)
}
