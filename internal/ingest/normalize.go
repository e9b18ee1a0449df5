// internal/ingest/normalize.go
package ingest

import (
	"encoding/json"
	"strings"
	"time"

	"github-events-pipeline/internal/model"
)

const unknownEventType = "Unknown"

const dateLayout = "2006-01-02"

// localLayout accepts feed timestamps that carry no UTC offset.
const localLayout = "2006-01-02T15:04:05.999999999"

type rawActor struct {
	ID    *int64  `json:"id"`
	Login *string `json:"login"`
}

type rawRepo struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

// rawRecord is the subset of a feed event the pipeline reads.
type rawRecord struct {
	ID        json.RawMessage `json:"id"`
	Type      *string         `json:"type"`
	Actor     *rawActor       `json:"actor"`
	Repo      *rawRepo        `json:"repo"`
	CreatedAt *string         `json:"created_at"`
}

// Normalize maps one feed document to its raw and clean rows. A non-nil Skip
// means the record must not be persisted; Normalize never fails otherwise.
func Normalize(raw json.RawMessage) (model.NormalizedEvent, *model.Skip) {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.NormalizedEvent{}, &model.Skip{Reason: model.SkipMalformed}
	}

	id := eventID(rec.ID)
	if id == "" {
		return model.NormalizedEvent{}, &model.Skip{Reason: model.SkipMissingID}
	}
	if rec.CreatedAt == nil || strings.TrimSpace(*rec.CreatedAt) == "" {
		return model.NormalizedEvent{}, &model.Skip{EventID: id, Reason: model.SkipMissingCreatedAt}
	}
	created, err := ParseTimestamp(*rec.CreatedAt)
	if err != nil {
		return model.NormalizedEvent{}, &model.Skip{EventID: id, Reason: model.SkipInvalidCreatedAt}
	}

	eventType := unknownEventType
	if rec.Type != nil && *rec.Type != "" {
		eventType = *rec.Type
	}

	clean := model.CleanEvent{
		EventID:    id,
		EventType:  eventType,
		CreatedAt:  created,
		HourBucket: HourBucket(created),
		DayBucket:  DayBucket(created),
	}
	if rec.Actor != nil {
		clean.ActorID = rec.Actor.ID
		clean.ActorLogin = rec.Actor.Login
	}
	if rec.Repo != nil {
		clean.RepoID = rec.Repo.ID
		clean.RepoName = rec.Repo.Name
	}

	return model.NormalizedEvent{
		Raw: model.RawEvent{
			EventID:    id,
			RawPayload: raw,
			CreatedAt:  created,
		},
		Clean: clean,
	}, nil
}

// eventID accepts a JSON string or number. Numbers keep their literal text.
func eventID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// ParseTimestamp parses a feed timestamp such as "2026-02-17T14:12:45Z".
// A trailing Z is rewritten to an explicit +00:00 offset first and a space
// between date and time is accepted in place of T; timestamps without an
// offset are read as UTC. The result is always in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "Z", "+00:00")
	if len(s) > len(dateLayout) && s[len(dateLayout)] == ' ' {
		s = s[:len(dateLayout)] + "T" + s[len(dateLayout)+1:]
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		var localErr error
		t, localErr = time.ParseInLocation(localLayout, s, time.UTC)
		if localErr != nil {
			return time.Time{}, err
		}
	}
	return t.UTC(), nil
}

// HourBucket truncates t to the start of its UTC hour.
func HourBucket(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// DayBucket returns midnight UTC of t's calendar date.
func DayBucket(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
