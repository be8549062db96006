// Package extract turns a project vault into an ordered list of atomic facts.
package extract

import (
	"fmt"
	"time"

	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/vault"
)

// meetingDateLayouts are the accepted formats for a meeting's date field.
var meetingDateLayouts = []string{
	"Jan 02, 2006",
	"Jan 2, 2006",
	time.RFC3339,
	"2006-01-02",
}

// Extractor converts a vault into facts. The clock is injectable so
// extraction stays deterministic under test.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an extractor using the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorAt creates an extractor with a fixed clock.
func NewExtractorAt(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Extract emits one fact per qualifying vault entry, in the fixed source
// order whatsapp, slack, gmail, meetings, proposal. WhatsApp threads and
// Slack channels contribute only when flagged relevant, and then all of
// their messages in order. Gmail contributes one fact per relevant email.
// Meetings are unconditionally relevant and keep the meeting's own date.
// A proposal yields one synthesized fact, plus a second verbatim fact when
// a compliance note is present. IDs are sequential across the whole run
// (fact_1, fact_2, ...).
func (e *Extractor) Extract(v *vault.Vault) []model.Fact {
	if v == nil {
		return nil
	}

	var facts []model.Fact
	nextID := 1
	emit := func(f model.Fact) {
		f.ID = fmt.Sprintf("fact_%d", nextID)
		nextID++
		facts = append(facts, f)
	}

	now := e.now()

	for _, thread := range v.WhatsApp {
		if !thread.IsRelevant {
			continue
		}
		label := thread.Name
		if label == "" {
			label = "WhatsApp"
		}
		for _, msg := range thread.Messages {
			emit(model.Fact{
				Content:     msg.Text,
				Source:      model.SourceWhatsApp,
				SourceLabel: label,
				Date:        now,
				Speaker:     msg.Sender,
			})
		}
	}

	for _, channel := range v.Slack {
		if !channel.IsRelevant {
			continue
		}
		label := channel.Name
		if label == "" {
			label = "Slack"
		}
		for _, msg := range channel.Messages {
			emit(model.Fact{
				Content:     msg.Text,
				Source:      model.SourceSlack,
				SourceLabel: label,
				Date:        now,
				Speaker:     msg.Sender,
			})
		}
	}

	for _, email := range v.Gmail {
		if !email.IsRelevant {
			continue
		}
		label := email.Subject
		if label == "" {
			label = "Email"
		}
		emit(model.Fact{
			Content:     email.Content,
			Source:      model.SourceGmail,
			SourceLabel: label,
			Date:        now,
			Speaker:     email.From,
		})
	}

	for _, meeting := range v.Meetings {
		label := meeting.Title
		if label == "" {
			label = "Meeting"
		}
		date := e.parseMeetingDate(meeting.Date)
		for _, minute := range meeting.Minutes {
			emit(model.Fact{
				Content:     minute.Text,
				Source:      model.SourceMeeting,
				SourceLabel: label,
				Date:        date,
				Speaker:     minute.Speaker,
			})
		}
	}

	if p := v.Proposal; p != nil {
		emit(model.Fact{
			Content: fmt.Sprintf("%s proposal for %s: %s, timeline: %s",
				p.Vendor, p.Project, p.Cost, p.Timeline),
			Source:      model.SourceProposal,
			SourceLabel: "Proposal Document",
			Date:        now,
			Speaker:     p.AuthorizedBy,
		})
		if p.MandatoryCompliance != "" {
			emit(model.Fact{
				Content:     p.MandatoryCompliance,
				Source:      model.SourceProposal,
				SourceLabel: "Compliance Note",
				Date:        now,
				Speaker:     p.AuthorizedBy,
			})
		}
	}

	return facts
}

// parseMeetingDate parses the meeting date, falling back to the extraction
// clock when the value is absent or unparseable.
func (e *Extractor) parseMeetingDate(raw string) time.Time {
	if raw == "" {
		return e.now()
	}
	for _, layout := range meetingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return e.now()
}
