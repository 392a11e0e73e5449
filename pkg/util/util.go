package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// DurationGranularity is the number of minutes durations are rounded up to.
const DurationGranularity = 15

// FormatDuration rounds seconds up to the next DurationGranularity minutes and
// formats the result as 45m, 1h, 1.5h and so on. A started minute counts as a
// whole one, so 901 seconds is 30m.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	// Round up, not down: a 901 s meeting is reported as 30m.
	return FormatMinutes(seconds/60 + min(seconds%60, 1))
}

// FormatMinutes formats a minute count like FormatDuration. Counts too close
// to math.MaxInt64 to round up stay as they are.
func FormatMinutes(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	if rem := minutes % DurationGranularity; rem != 0 && minutes <= math.MaxInt64-DurationGranularity {
		minutes += DurationGranularity - rem
	}

	if minutes < 60 {
		return strconv.FormatInt(minutes, 10) + "m"
	}
	if minutes%60 == 0 {
		return strconv.FormatInt(minutes/60, 10) + "h"
	}
	return strconv.FormatFloat(float64(minutes)/60, 'f', -1, 64) + "h"
}

// meetingSubjectRegex strips forwarding markers and [tag] groups from the front
// of a meeting subject; the last group is the subject proper.
var meetingSubjectRegex = regexp.MustCompile(`^(FW:)? *( *\[.*\] *)* *(FW:)? *([^ ].*)$`)

// MeetingSubject extracts the meaningful part of a calendar event subject.
func MeetingSubject(subject string) (string, error) {
	matches := meetingSubjectRegex.FindStringSubmatch(subject)
	if matches == nil {
		return "", fmt.Errorf("could not extract meeting info from subject %q", subject)
	}
	return matches[len(matches)-1], nil
}

// MeetingTitle builds a task title for a meeting so the annotation parser
// reads its length as the task's cost estimate.
func MeetingTitle(subject string, start, end time.Time) (string, error) {
	info, err := MeetingSubject(subject)
	if err != nil {
		return "", err
	}
	duration := FormatDuration(int64(end.Sub(start) / time.Second))
	return fmt.Sprintf("%s - Meeting: %s", duration, info), nil
}
