// Package vault defines the structured bundle of conversational and document
// sources for one project, and loads it from JSON or YAML files.
package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Message is a single chat message
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Thread is a WhatsApp conversation thread
type Thread struct {
	ThreadID   string    `json:"thread_id"`
	Name       string    `json:"name"`
	IsRelevant bool      `json:"is_relevant"`
	Messages   []Message `json:"messages"`
}

// Channel is a Slack channel
type Channel struct {
	ChannelID  string    `json:"channel_id"`
	Name       string    `json:"name"`
	IsRelevant bool      `json:"is_relevant"`
	Messages   []Message `json:"messages"`
}

// Email is one Gmail thread entry
type Email struct {
	ThreadID   string `json:"thread_id"`
	Subject    string `json:"subject"`
	From       string `json:"from"`
	Content    string `json:"content"`
	IsRelevant bool   `json:"is_relevant"`
}

// Minute is one meeting minute entry
type Minute struct {
	Timestamp string `json:"timestamp,omitempty"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// Meeting is one meeting with its minutes. Meetings carry an authoritative
// date of their own, unlike chat sources.
type Meeting struct {
	MeetingID string   `json:"meeting_id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Minutes   []Minute `json:"minutes"`
}

// Proposal is the optional vendor proposal document
type Proposal struct {
	Vendor              string   `json:"vendor"`
	Project             string   `json:"project"`
	Scope               []string `json:"scope,omitempty"`
	Cost                string   `json:"cost"`
	Timeline            string   `json:"timeline"`
	AuthorizedBy        string   `json:"authorized_by"`
	MandatoryCompliance string   `json:"mandatory_compliance,omitempty"`
}

// Vault is the full source bundle for one project. Absent sections are
// empty, never an error.
type Vault struct {
	WhatsApp []Thread  `json:"whatsapp,omitempty"`
	Slack    []Channel `json:"slack,omitempty"`
	Gmail    []Email   `json:"gmail,omitempty"`
	Meetings []Meeting `json:"meetings,omitempty"`
	Proposal *Proposal `json:"proposal,omitempty"`
}

// rawVault defers each section so that a malformed section degrades to
// empty instead of failing the whole load.
type rawVault struct {
	WhatsApp json.RawMessage `json:"whatsapp"`
	Slack    json.RawMessage `json:"slack"`
	Gmail    json.RawMessage `json:"gmail"`
	Meetings json.RawMessage `json:"meetings"`
	Proposal json.RawMessage `json:"proposal"`
}

// Parse decodes a vault from JSON. Sections that are missing or not of the
// expected shape are treated as empty lists; only an unreadable top-level
// document is an error.
func Parse(data []byte) (*Vault, error) {
	var raw rawVault
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse vault: %w", err)
	}

	v := &Vault{}
	decodeSection(raw.WhatsApp, &v.WhatsApp)
	decodeSection(raw.Slack, &v.Slack)
	decodeSection(raw.Gmail, &v.Gmail)
	decodeSection(raw.Meetings, &v.Meetings)

	if len(raw.Proposal) > 0 {
		var p Proposal
		if err := json.Unmarshal(raw.Proposal, &p); err == nil && !proposalEmpty(p) {
			v.Proposal = &p
		}
	}

	return v, nil
}

func proposalEmpty(p Proposal) bool {
	return p.Vendor == "" && p.Project == "" && p.Cost == "" && p.Timeline == "" &&
		p.AuthorizedBy == "" && p.MandatoryCompliance == "" && len(p.Scope) == 0
}

// decodeSection unmarshals one section, leaving the target empty on any
// shape mismatch.
func decodeSection[T any](raw json.RawMessage, out *[]T) {
	if len(raw) == 0 {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return
	}
	*out = items
}

// Load reads a vault file, decoding YAML or JSON by extension.
func Load(path string) (*Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return Parse(data)
	}
}

// parseYAML converts YAML to JSON and reuses the tolerant JSON path.
func parseYAML(data []byte) (*Vault, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse vault yaml: %w", err)
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert vault yaml: %w", err)
	}

	return Parse(jsonData)
}
