package model

import "time"

// Source identifies the platform a fact was extracted from
type Source string

const (
	SourceWhatsApp Source = "whatsapp"
	SourceSlack    Source = "slack"
	SourceGmail    Source = "gmail"
	SourceMeeting  Source = "meeting"
	SourceProposal Source = "proposal"
)

// Fact is one atomic, attributable statement extracted from a project vault.
// Facts are immutable once created. IDs form a dense sequence
// (fact_1, fact_2, ...) scoped to a single extraction run; uniqueness holds
// only within that run.
type Fact struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Source      Source    `json:"source"`
	SourceLabel string    `json:"source_label"`
	Date        time.Time `json:"date"`
	Speaker     string    `json:"speaker"`
}
