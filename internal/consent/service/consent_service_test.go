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

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditModel "github.com/hero-research/data-lifecycle-service/internal/audit/model"
	"github.com/hero-research/data-lifecycle-service/internal/consent/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

type MockConsentStore struct {
	mock.Mock
}

func (m *MockConsentStore) InsertConsent(record *model.ConsentRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockConsentStore) RevokeActiveConsent(participantID, reason string, revokedAt time.Time) (bool, error) {
	args := m.Called(participantID, reason, revokedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsentStore) GetActiveConsent(participantID string) (*model.ConsentRecord, error) {
	args := m.Called(participantID)
	record, _ := args.Get(0).(*model.ConsentRecord)
	return record, args.Error(1)
}

func (m *MockConsentStore) GetConsentsByParticipant(participantID string) ([]*model.ConsentRecord, error) {
	args := m.Called(participantID)
	records, _ := args.Get(0).([]*model.ConsentRecord)
	return records, args.Error(1)
}

type MockLifecycleLogStore struct {
	mock.Mock
}

func (m *MockLifecycleLogStore) AppendEntry(entry *auditModel.LifecycleLogEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockLifecycleLogStore) GetByTarget(targetID string) ([]*auditModel.LifecycleLogEntry, error) {
	args := m.Called(targetID)
	entries, _ := args.Get(0).([]*auditModel.LifecycleLogEntry)
	return entries, args.Error(1)
}

func (m *MockLifecycleLogStore) GetByActionAndRange(action string, from, to time.Time) ([]*auditModel.LifecycleLogEntry, error) {
	args := m.Called(action, from, to)
	entries, _ := args.Get(0).([]*auditModel.LifecycleLogEntry)
	return entries, args.Error(1)
}

func validRecord() *model.ConsentRecord {
	return &model.ConsentRecord{
		ParticipantID:                "user-1",
		ConsentVersion:               "v2.1",
		ConsentMethod:                "digital_signature",
		DataCollectionConsent:        true,
		SevenDayAnonymizationConsent: true,
		TwoYearDeletionConsent:       true,
	}
}

func TestGrantConsent(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockConsentStore)
	svc := ConsentService{consentStore: mockStore, auditStore: new(MockLifecycleLogStore)}

	mockStore.
		On("InsertConsent", mock.MatchedBy(func(r *model.ConsentRecord) bool {
			return r.ParticipantID == "user-1" && r.ConsentID != "" && r.IsActive
		})).
		Return(nil)

	created, err := svc.GrantConsent(validRecord())

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ConsentID)
	assert.False(t, created.ConsentDate.IsZero())
	mockStore.AssertExpectations(t)
}

func TestGrantConsentValidation(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockConsentStore)
	svc := ConsentService{consentStore: mockStore, auditStore: new(MockLifecycleLogStore)}

	tests := []struct {
		name   string
		mutate func(r *model.ConsentRecord)
	}{
		{"missing participant", func(r *model.ConsentRecord) { r.ParticipantID = "" }},
		{"missing version", func(r *model.ConsentRecord) { r.ConsentVersion = "" }},
		{"missing method", func(r *model.ConsentRecord) { r.ConsentMethod = "" }},
		{"unknown method", func(r *model.ConsentRecord) { r.ConsentMethod = "telepathy" }},
		{"no data collection", func(r *model.ConsentRecord) { r.DataCollectionConsent = false }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord()
			tc.mutate(record)
			_, err := svc.GrantConsent(record)
			var clientErr *errors2.ClientError
			assert.ErrorAs(t, err, &clientErr)
			assert.Equal(t, errors2.CONSENT_VALIDATION.Code, clientErr.Code)
		})
	}
	mockStore.AssertNotCalled(t, "InsertConsent", mock.Anything)
}

func TestRevokeConsentWritesDurableEntry(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockConsentStore)
	mockAudit := new(MockLifecycleLogStore)
	svc := ConsentService{consentStore: mockStore, auditStore: mockAudit}

	mockStore.On("RevokeActiveConsent", "user-1", "withdrawing from study", mock.Anything).Return(true, nil)
	mockAudit.
		On("AppendEntry", mock.MatchedBy(func(e *auditModel.LifecycleLogEntry) bool {
			return e.ActionType == constants.ActionConsentRevoked &&
				e.TargetID == "user-1" &&
				e.PerformedBy == constants.PerformedBySelf &&
				e.Details["reason"] == "withdrawing from study"
		})).
		Return(nil)

	err := svc.RevokeConsent("user-1", "withdrawing from study", constants.PerformedBySelf)

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestRevokeConsentNoActiveRecord(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockConsentStore)
	mockAudit := new(MockLifecycleLogStore)
	svc := ConsentService{consentStore: mockStore, auditStore: mockAudit}

	mockStore.On("RevokeActiveConsent", "user-1", "", mock.Anything).Return(false, nil)

	err := svc.RevokeConsent("user-1", "", constants.PerformedByAdmin)

	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.CONSENT_NOT_FOUND.Code, clientErr.Code)
	mockAudit.AssertNotCalled(t, "AppendEntry", mock.Anything)
}

func TestHasClauseEverGrantedConsultsHistory(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockConsentStore)
	svc := ConsentService{consentStore: mockStore, auditStore: new(MockLifecycleLogStore)}

	revoked := time.Now().UTC()
	history := []*model.ConsentRecord{
		{ParticipantID: "user-1", TwoYearDeletionConsent: false, IsActive: true},
		{ParticipantID: "user-1", TwoYearDeletionConsent: true, IsActive: false, RevokedAt: &revoked},
	}
	mockStore.On("GetConsentsByParticipant", "user-1").Return(history, nil)

	ever, err := svc.HasClauseEverGranted("user-1", model.ClauseDeletion)

	assert.NoError(t, err)
	assert.True(t, ever)
}

func TestHasActiveClauseMissingConsent(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockConsentStore)
	svc := ConsentService{consentStore: mockStore, auditStore: new(MockLifecycleLogStore)}

	mockStore.On("GetActiveConsent", "user-1").Return(nil, nil)

	granted, err := svc.HasActiveClause("user-1", model.ClauseAnonymization)

	assert.NoError(t, err)
	assert.False(t, granted)
}
