// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the instrument approval service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "approval-api"

	// ApprovalAPIQueue is the NATS queue group for load-balanced request handling
	ApprovalAPIQueue = "approval-api-queue"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvConfigFile is the environment variable for the YAML configuration file path
	EnvConfigFile = "APPROVAL_CONFIG_FILE"
	// EnvApprovalsEnabled is the environment variable toggling the approval workflow
	EnvApprovalsEnabled = "ENABLE_APPROVALS"
)
