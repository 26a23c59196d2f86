// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the instrument approval service.
package model

// Submitter is one council member listed on an instrument submission.
// The order of submitters is meaningful and preserved everywhere.
type Submitter struct {
	Initials string `json:"initials"`
	Lastname string `json:"lastname"`
	Party    string `json:"party"`
}

// SubmissionContent is the current content of an instrument submission as
// reported by the instruments service. It is copied verbatim into a Snapshot
// at request-creation time and never consulted again afterwards.
type SubmissionContent struct {
	SubmissionUID  string      `json:"submission_uid"`
	Instrument     string      `json:"instrument"`
	Subject        string      `json:"subject"`
	Date           string      `json:"date"`
	Considerations string      `json:"considerations"`
	Requests       string      `json:"requests"`
	Submitters     []Submitter `json:"submitters"`
}
