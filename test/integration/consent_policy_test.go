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

package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditService "github.com/hero-research/data-lifecycle-service/internal/audit/service"
	consentModel "github.com/hero-research/data-lifecycle-service/internal/consent/model"
	consentService "github.com/hero-research/data-lifecycle-service/internal/consent/service"
	policyModel "github.com/hero-research/data-lifecycle-service/internal/policy/model"
	policyService "github.com/hero-research/data-lifecycle-service/internal/policy/service"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
)

func TestConsentLedgerRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	seedParticipant(t, "dave", time.Date(1992, 9, 9, 0, 0, 0, 0, time.UTC), now)

	svc := consentService.GetConsentService()

	// Initial grant.
	first, err := svc.GrantConsent(&consentModel.ConsentRecord{
		ParticipantID:                "dave",
		ConsentVersion:               "v1.0",
		ConsentMethod:                "digital_signature",
		DataCollectionConsent:        true,
		SevenDayAnonymizationConsent: true,
	})
	require.NoError(t, err)

	// Re-consent supersedes, never edits.
	second, err := svc.GrantConsent(&consentModel.ConsentRecord{
		ParticipantID:                "dave",
		ConsentVersion:               "v2.0",
		ConsentMethod:                "written",
		DataCollectionConsent:        true,
		SevenDayAnonymizationConsent: true,
		TwoYearDeletionConsent:       true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ConsentID, second.ConsentID)

	active, err := svc.GetActiveConsent("dave")
	require.NoError(t, err)
	assert.Equal(t, "v2.0", active.ConsentVersion)

	history, err := svc.GetConsentHistory("dave")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// Revocation flips the active record and leaves a durable trail entry.
	require.NoError(t, svc.RevokeConsent("dave", "changed my mind", constants.PerformedBySelf))

	granted, err := svc.HasActiveClause("dave", consentModel.ClauseAnonymization)
	require.NoError(t, err)
	assert.False(t, granted)

	// Deletion obligations survive the revocation.
	ever, err := svc.HasClauseEverGranted("dave", consentModel.ClauseDeletion)
	require.NoError(t, err)
	assert.True(t, ever)

	entries, err := auditService.GetLifecycleLogService().GetHistory("dave")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, constants.ActionConsentRevoked, entries[0].ActionType)
	assert.Equal(t, constants.PerformedBySelf, entries[0].PerformedBy)
	assert.Equal(t, "changed my mind", entries[0].Details["reason"])
}

func TestRetentionPolicyRoundTrip(t *testing.T) {
	svc := policyService.GetRetentionPolicyService()

	// The schema seeds the two protocol policies.
	identity, err := svc.GetPolicy(constants.CategoryParticipantIdentity)
	require.NoError(t, err)
	require.NotNil(t, identity.AnonymizationAfterDays)
	assert.Equal(t, 7, *identity.AnonymizationAfterDays)
	assert.Equal(t, 730, identity.DeletionAfterDays)

	anonDays := 30
	created, err := svc.AddPolicy(&policyModel.RetentionPolicy{
		DataType:               "interim_reports",
		AnonymizationAfterDays: &anonDays,
		DeletionAfterDays:      365,
		PolicyActive:           true,
		Notes:                  "Derived reports for the steering committee.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.PolicyID)

	created.DeletionAfterDays = 400
	require.NoError(t, svc.UpdatePolicy(created))

	fetched, err := svc.GetPolicy("interim_reports")
	require.NoError(t, err)
	assert.Equal(t, 400, fetched.DeletionAfterDays)

	require.NoError(t, svc.DeactivatePolicy("interim_reports"))
	fetched, err = svc.GetPolicy("interim_reports")
	require.NoError(t, err)
	assert.False(t, fetched.PolicyActive)
}
