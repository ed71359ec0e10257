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

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
)

func TestPerformerFor(t *testing.T) {
	tests := []struct {
		name          string
		subject       string
		participantID string
		expected      string
	}{
		{"participant revokes their own consent", "alice", "alice", constants.PerformedBySelf},
		{"staff revokes on behalf of a participant", "coordinator-1", "alice", constants.PerformedByAdmin},
		{"missing subject is never self-service", "", "alice", constants.PerformedByAdmin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, performerFor(tc.subject, tc.participantID))
		})
	}
}

func TestConsentPathParticipant(t *testing.T) {
	assert.Equal(t, "alice", consentPathParticipant("/consents/alice/revoke"))
	assert.Equal(t, "alice", consentPathParticipant("/consents/alice"))
	assert.Equal(t, "", consentPathParticipant("/consents"))
}
