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

import (
	"time"

	participantModel "github.com/hero-research/data-lifecycle-service/internal/participant/model"
)

// Session is one recorded test session. The Link carries its owner: an
// identified participant before anonymization, a cohort stub after. The raw
// sensor readings, processed metrics and game results of the session live in
// child tables keyed by SessionID.
type Session struct {
	SessionID    string                           `json:"session_id"`
	Link         participantModel.ParticipantLink `json:"-"`
	AnonymizedAt *time.Time                       `json:"anonymized_at,omitempty"`
	StartedAt    time.Time                        `json:"started_at"`
	EndedAt      *time.Time                       `json:"ended_at,omitempty"`
	Notes        string                           `json:"notes,omitempty"`
}

// Anonymized reports whether the session has been relinked to a cohort.
func (s *Session) Anonymized() bool {
	return s.Link.State == participantModel.LinkAnonymized
}
