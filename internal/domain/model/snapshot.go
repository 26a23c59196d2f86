// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is an immutable copy of a submission's content, taken at the moment
// an approval request is filed. Later approval or rejection always judges this
// fixed version, even if the submission is edited afterwards. A submission has
// one snapshot per approval request ever filed for it.
type Snapshot struct {
	UID            string      `json:"uid"`
	SubmissionUID  string      `json:"submission_uid"`
	Instrument     string      `json:"instrument"`
	Subject        string      `json:"subject"`
	Date           string      `json:"date"`
	Considerations string      `json:"considerations"`
	Requests       string      `json:"requests"`
	Submitters     []Submitter `json:"submitters"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewSnapshot copies the submission content into a new snapshot.
func NewSnapshot(uid string, content *SubmissionContent, now time.Time) *Snapshot {
	submitters := make([]Submitter, len(content.Submitters))
	copy(submitters, content.Submitters)

	return &Snapshot{
		UID:            uid,
		SubmissionUID:  content.SubmissionUID,
		Instrument:     content.Instrument,
		Subject:        content.Subject,
		Date:           content.Date,
		Considerations: content.Considerations,
		Requests:       content.Requests,
		Submitters:     submitters,
		CreatedAt:      now,
	}
}

// ContentLines renders the snapshot's comparable fields as lines, in the
// order reviewers read them. This is the input to the snapshot line diff.
func (s *Snapshot) ContentLines() []string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Instrument: %s", s.Instrument))
	lines = append(lines, fmt.Sprintf("Onderwerp: %s", s.Subject))
	lines = append(lines, fmt.Sprintf("Datum: %s", s.Date))
	for _, sub := range s.Submitters {
		lines = append(lines, fmt.Sprintf("Indiener: %s %s (%s)", sub.Initials, sub.Lastname, sub.Party))
	}
	lines = append(lines, "")
	lines = append(lines, splitFieldLines(s.Considerations)...)
	lines = append(lines, "")
	lines = append(lines, splitFieldLines(s.Requests)...)

	return lines
}

func splitFieldLines(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(field, "\r\n", "\n"), "\n")
}
