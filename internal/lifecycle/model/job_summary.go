/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import "time"

// Job names reported in summaries.
const (
	JobAnonymization = "anonymization"
	JobDeletion      = "deletion"
)

// Skip reasons counted per run. Every entity a job examines and leaves
// untouched lands in exactly one of these buckets.
const (
	SkipNotYetDue            = "not_yet_due"
	SkipConsentNotGranted    = "consent_not_granted"
	SkipMissingDateOfBirth   = "missing_date_of_birth"
	SkipUnsupportedAgeBand   = "unsupported_age_band"
	SkipAlreadyAnonymized    = "already_anonymized"
	SkipAlreadyDeleted       = "already_deleted"
	SkipDeletionNeverGranted = "deletion_clause_never_granted"
)

// JobSummary is the outcome report of one retention job run.
type JobSummary struct {
	Job        string         `json:"job"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Processed  int            `json:"processed"`
	Skipped    map[string]int `json:"skipped"`
	Errors     []string       `json:"errors"`
	// Note explains a no-op run: lock held elsewhere, missing or inactive
	// policy. Empty when the job actually swept.
	Note string `json:"note,omitempty"`
}

// NewJobSummary creates an empty summary for a job starting now.
func NewJobSummary(job string, startedAt time.Time) *JobSummary {
	return &JobSummary{
		Job:       job,
		StartedAt: startedAt,
		Skipped:   map[string]int{},
		Errors:    []string{},
	}
}

// Skip counts one skipped entity under the given reason.
func (s *JobSummary) Skip(reason string) {
	s.Skipped[reason]++
}

// Fail records one per-entity failure. The run continues past it.
func (s *JobSummary) Fail(description string) {
	s.Errors = append(s.Errors, description)
}
