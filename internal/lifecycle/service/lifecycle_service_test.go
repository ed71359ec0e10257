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
	cohortModel "github.com/hero-research/data-lifecycle-service/internal/cohort/model"
	consentModel "github.com/hero-research/data-lifecycle-service/internal/consent/model"
	"github.com/hero-research/data-lifecycle-service/internal/lifecycle/model"
	participantModel "github.com/hero-research/data-lifecycle-service/internal/participant/model"
	policyModel "github.com/hero-research/data-lifecycle-service/internal/policy/model"
	sessionModel "github.com/hero-research/data-lifecycle-service/internal/session/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

// now is fixed so horizon arithmetic in the tests is exact.
var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type MockPolicyStore struct{ mock.Mock }

func (m *MockPolicyStore) GetPolicyByCategory(category string) (*policyModel.RetentionPolicy, error) {
	args := m.Called(category)
	policy, _ := args.Get(0).(*policyModel.RetentionPolicy)
	return policy, args.Error(1)
}

func (m *MockPolicyStore) GetAllPolicies() ([]*policyModel.RetentionPolicy, error) {
	args := m.Called()
	policies, _ := args.Get(0).([]*policyModel.RetentionPolicy)
	return policies, args.Error(1)
}

func (m *MockPolicyStore) InsertPolicy(policy *policyModel.RetentionPolicy) error {
	return m.Called(policy).Error(0)
}

func (m *MockPolicyStore) UpdatePolicy(policy *policyModel.RetentionPolicy) error {
	return m.Called(policy).Error(0)
}

type MockConsentService struct{ mock.Mock }

func (m *MockConsentService) GrantConsent(record *consentModel.ConsentRecord) (*consentModel.ConsentRecord, error) {
	args := m.Called(record)
	rec, _ := args.Get(0).(*consentModel.ConsentRecord)
	return rec, args.Error(1)
}

func (m *MockConsentService) RevokeConsent(participantID, reason, performedBy string) error {
	return m.Called(participantID, reason, performedBy).Error(0)
}

func (m *MockConsentService) GetActiveConsent(participantID string) (*consentModel.ConsentRecord, error) {
	args := m.Called(participantID)
	rec, _ := args.Get(0).(*consentModel.ConsentRecord)
	return rec, args.Error(1)
}

func (m *MockConsentService) GetConsentHistory(participantID string) ([]*consentModel.ConsentRecord, error) {
	args := m.Called(participantID)
	recs, _ := args.Get(0).([]*consentModel.ConsentRecord)
	return recs, args.Error(1)
}

func (m *MockConsentService) HasActiveClause(participantID string, clause consentModel.ConsentClause) (bool, error) {
	args := m.Called(participantID, clause)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsentService) HasClauseEverGranted(participantID string, clause consentModel.ConsentClause) (bool, error) {
	args := m.Called(participantID, clause)
	return args.Bool(0), args.Error(1)
}

type MockParticipantStore struct{ mock.Mock }

func (m *MockParticipantStore) GetParticipantById(userID string) (*participantModel.Participant, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(*participantModel.Participant)
	return p, args.Error(1)
}

func (m *MockParticipantStore) GetParticipantsPastHorizon(cutoff time.Time) ([]*participantModel.Participant, error) {
	args := m.Called(cutoff)
	ps, _ := args.Get(0).([]*participantModel.Participant)
	return ps, args.Error(1)
}

func (m *MockParticipantStore) GetEarliestSessionStart(userID string) (*time.Time, error) {
	args := m.Called(userID)
	t, _ := args.Get(0).(*time.Time)
	return t, args.Error(1)
}

func (m *MockParticipantStore) AnonymizeParticipant(userID, anonID, ageRange string, elapsedDays, horizonDays int,
	now time.Time) (bool, error) {
	args := m.Called(userID, anonID, ageRange, elapsedDays, horizonDays, now)
	return args.Bool(0), args.Error(1)
}

type MockCohortStore struct{ mock.Mock }

func (m *MockCohortStore) GetCohortById(anonID string) (*cohortModel.Cohort, error) {
	args := m.Called(anonID)
	c, _ := args.Get(0).(*cohortModel.Cohort)
	return c, args.Error(1)
}

func (m *MockCohortStore) EnsureCohort(anonID, ageRange string, now time.Time) error {
	return m.Called(anonID, ageRange, now).Error(0)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) GetSessionById(sessionID string) (*sessionModel.Session, error) {
	args := m.Called(sessionID)
	s, _ := args.Get(0).(*sessionModel.Session)
	return s, args.Error(1)
}

func (m *MockSessionStore) GetSessionsByParticipant(userID string) ([]*sessionModel.Session, error) {
	args := m.Called(userID)
	ss, _ := args.Get(0).([]*sessionModel.Session)
	return ss, args.Error(1)
}

func (m *MockSessionStore) GetSessionsPastHorizon(cutoff time.Time) ([]*sessionModel.Session, error) {
	args := m.Called(cutoff)
	ss, _ := args.Get(0).([]*sessionModel.Session)
	return ss, args.Error(1)
}

func (m *MockSessionStore) DeleteSessionCascade(sessionID string) (bool, error) {
	args := m.Called(sessionID)
	return args.Bool(0), args.Error(1)
}

type MockAuditStore struct{ mock.Mock }

func (m *MockAuditStore) AppendEntry(entry *auditModel.LifecycleLogEntry) error {
	return m.Called(entry).Error(0)
}

func (m *MockAuditStore) GetByTarget(targetID string) ([]*auditModel.LifecycleLogEntry, error) {
	args := m.Called(targetID)
	es, _ := args.Get(0).([]*auditModel.LifecycleLogEntry)
	return es, args.Error(1)
}

func (m *MockAuditStore) GetByActionAndRange(action string, from, to time.Time) ([]*auditModel.LifecycleLogEntry, error) {
	args := m.Called(action, from, to)
	es, _ := args.Get(0).([]*auditModel.LifecycleLogEntry)
	return es, args.Error(1)
}

type MockLock struct{ mock.Mock }

func (m *MockLock) Acquire(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockLock) Release(key string) error {
	return m.Called(key).Error(0)
}

func intPtr(n int) *int { return &n }

func identityPolicy() *policyModel.RetentionPolicy {
	return &policyModel.RetentionPolicy{
		DataType:               constants.CategoryParticipantIdentity,
		AnonymizationAfterDays: intPtr(7),
		DeletionAfterDays:      730,
		PolicyActive:           true,
	}
}

func sensorPolicy() *policyModel.RetentionPolicy {
	return &policyModel.RetentionPolicy{
		DataType:          constants.CategoryRawSensorData,
		DeletionAfterDays: 730,
		PolicyActive:      true,
	}
}

func newTestService() (*LifecycleService, *MockPolicyStore, *MockConsentService, *MockParticipantStore,
	*MockCohortStore, *MockSessionStore, *MockAuditStore, *MockLock) {

	_ = log.Init("DEBUG")
	policies := new(MockPolicyStore)
	consents := new(MockConsentService)
	participants := new(MockParticipantStore)
	cohorts := new(MockCohortStore)
	sessions := new(MockSessionStore)
	audits := new(MockAuditStore)
	lock := new(MockLock)

	svc := &LifecycleService{
		policyStore:      policies,
		consentService:   consents,
		participantStore: participants,
		cohortStore:      cohorts,
		sessionStore:     sessions,
		auditStore:       audits,
		lock:             lock,
		strategy:         &StaticLabelStrategy{Label: "testing_stage_1"},
	}
	return svc, policies, consents, participants, cohorts, sessions, audits, lock
}

func grantLock(lock *MockLock) {
	lock.On("Acquire", constants.RetentionLockKey).Return(true, nil)
	lock.On("Release", constants.RetentionLockKey).Return(nil)
}

func TestAnonymizationNoOpWithoutPolicy(t *testing.T) {
	svc, policies, _, participants, _, _, _, lock := newTestService()
	grantLock(lock)

	tests := []struct {
		name   string
		policy *policyModel.RetentionPolicy
	}{
		{"no policy", nil},
		{"inactive policy", &policyModel.RetentionPolicy{
			DataType: constants.CategoryParticipantIdentity, AnonymizationAfterDays: intPtr(7),
			DeletionAfterDays: 730, PolicyActive: false}},
		{"anonymization disabled", &policyModel.RetentionPolicy{
			DataType: constants.CategoryParticipantIdentity, DeletionAfterDays: 730, PolicyActive: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			policies.ExpectedCalls = nil
			policies.On("GetPolicyByCategory", constants.CategoryParticipantIdentity).Return(tc.policy, nil)

			summary, err := svc.RunAnonymization(testNow)

			assert.NoError(t, err)
			assert.NotEmpty(t, summary.Note)
			assert.Zero(t, summary.Processed)
		})
	}
	participants.AssertNotCalled(t, "GetParticipantsPastHorizon", mock.Anything)
}

func TestAnonymizationSkippedWhenLockHeld(t *testing.T) {
	svc, policies, _, _, _, _, _, lock := newTestService()
	lock.On("Acquire", constants.RetentionLockKey).Return(false, nil)

	summary, err := svc.RunAnonymization(testNow)

	assert.NoError(t, err)
	assert.NotEmpty(t, summary.Note)
	policies.AssertNotCalled(t, "GetPolicyByCategory", mock.Anything)
	lock.AssertNotCalled(t, "Release", mock.Anything)
}

func TestAnonymizationSweep(t *testing.T) {
	svc, policies, consents, participants, cohorts, _, _, lock := newTestService()
	grantLock(lock)
	policies.On("GetPolicyByCategory", constants.CategoryParticipantIdentity).Return(identityPolicy(), nil)

	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) // 26 at testNow
	enrolled := testNow.AddDate(0, 0, -30)
	recentSession := testNow.AddDate(0, 0, -3)
	oldSession := testNow.AddDate(0, 0, -20)

	eligible := &participantModel.Participant{UserID: "eligible", DateOfBirth: &dob, CreatedAt: enrolled}
	noConsent := &participantModel.Participant{UserID: "no-consent", DateOfBirth: &dob, CreatedAt: enrolled}
	noDob := &participantModel.Participant{UserID: "no-dob", CreatedAt: enrolled}
	tooOld := func() *participantModel.Participant {
		old := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
		return &participantModel.Participant{UserID: "too-old", DateOfBirth: &old, CreatedAt: enrolled}
	}()
	notDue := &participantModel.Participant{UserID: "not-due", DateOfBirth: &dob, CreatedAt: enrolled}
	raced := &participantModel.Participant{UserID: "raced", DateOfBirth: &dob, CreatedAt: enrolled}

	participants.On("GetParticipantsPastHorizon", testNow.AddDate(0, 0, -7)).
		Return([]*participantModel.Participant{eligible, noConsent, noDob, tooOld, notDue, raced}, nil)

	participants.On("GetEarliestSessionStart", "not-due").Return(&recentSession, nil)
	participants.On("GetEarliestSessionStart", mock.Anything).Return(&oldSession, nil)

	consents.On("HasActiveClause", "no-consent", consentModel.ClauseAnonymization).Return(false, nil)
	consents.On("HasActiveClause", mock.Anything, consentModel.ClauseAnonymization).Return(true, nil)

	cohorts.On("EnsureCohort", "testing_stage_1_25-30", "25-30", testNow).Return(nil)

	// Both anchor on the session twenty days back against the seven-day
	// horizon; the elapsed days and horizon flow through to the store for
	// the audit entry.
	participants.On("AnonymizeParticipant", "eligible", "testing_stage_1_25-30", "25-30", 20, 7, testNow).
		Return(true, nil)
	participants.On("AnonymizeParticipant", "raced", "testing_stage_1_25-30", "25-30", 20, 7, testNow).
		Return(false, nil)

	summary, err := svc.RunAnonymization(testNow)

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped[model.SkipConsentNotGranted])
	assert.Equal(t, 1, summary.Skipped[model.SkipMissingDateOfBirth])
	assert.Equal(t, 1, summary.Skipped[model.SkipUnsupportedAgeBand])
	assert.Equal(t, 1, summary.Skipped[model.SkipNotYetDue])
	assert.Equal(t, 1, summary.Skipped[model.SkipAlreadyAnonymized])
	assert.Empty(t, summary.Errors)
	participants.AssertExpectations(t)
	cohorts.AssertExpectations(t)
}

func TestDeletionGateAndOrdering(t *testing.T) {
	svc, policies, consents, _, _, sessions, audits, lock := newTestService()
	grantLock(lock)
	policies.On("GetPolicyByCategory", constants.CategoryRawSensorData).Return(sensorPolicy(), nil)

	started := testNow.AddDate(-3, 0, 0)
	anonymized := &sessionModel.Session{
		SessionID: "s-anon",
		Link:      participantModel.NewAnonymizedLink("testing_stage_1_25-30"),
		StartedAt: started,
	}
	consented := &sessionModel.Session{
		SessionID: "s-consented",
		Link:      participantModel.NewIdentifiedLink("user-yes"),
		StartedAt: started,
	}
	unconsented := &sessionModel.Session{
		SessionID: "s-unconsented",
		Link:      participantModel.NewIdentifiedLink("user-no"),
		StartedAt: started,
	}

	sessions.On("GetSessionsPastHorizon", testNow.AddDate(0, 0, -730)).
		Return([]*sessionModel.Session{anonymized, consented, unconsented}, nil)

	consents.On("HasClauseEverGranted", "user-yes", consentModel.ClauseDeletion).Return(true, nil)
	consents.On("HasClauseEverGranted", "user-no", consentModel.ClauseDeletion).Return(false, nil)

	// Track that every deletion is preceded by its committed audit entry,
	// and that each entry records how old the session was when it went.
	expectedAge := int(testNow.Sub(started).Hours() / 24)
	var calls []string
	audits.
		On("AppendEntry", mock.MatchedBy(func(e *auditModel.LifecycleLogEntry) bool {
			return e.ActionType == constants.ActionDeleted && e.PerformedBy == constants.PerformedBySystem &&
				e.Details["elapsed_days"] == expectedAge
		})).
		Run(func(args mock.Arguments) {
			entry := args.Get(0).(*auditModel.LifecycleLogEntry)
			calls = append(calls, "log:"+entry.TargetID)
		}).
		Return(nil)
	sessions.On("DeleteSessionCascade", mock.Anything).
		Run(func(args mock.Arguments) {
			calls = append(calls, "delete:"+args.String(0))
		}).
		Return(true, nil)

	summary, err := svc.RunDeletion(testNow)

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Skipped[model.SkipDeletionNeverGranted])
	assert.Equal(t, []string{"log:s-anon", "delete:s-anon", "log:s-consented", "delete:s-consented"}, calls)
	sessions.AssertNotCalled(t, "DeleteSessionCascade", "s-unconsented")
}

func TestDeletionAuditWriteFailureBlocksDelete(t *testing.T) {
	svc, policies, _, _, _, sessions, audits, lock := newTestService()
	grantLock(lock)
	policies.On("GetPolicyByCategory", constants.CategoryRawSensorData).Return(sensorPolicy(), nil)

	session := &sessionModel.Session{
		SessionID: "s-1",
		Link:      participantModel.NewAnonymizedLink("testing_stage_1_25-30"),
		StartedAt: testNow.AddDate(-3, 0, 0),
	}
	sessions.On("GetSessionsPastHorizon", mock.Anything).Return([]*sessionModel.Session{session}, nil)
	audits.On("AppendEntry", mock.Anything).
		Return(errors2.NewServerError(errors2.AUDIT_WRITE, assert.AnError))

	summary, err := svc.RunDeletion(testNow)

	assert.NoError(t, err)
	assert.Zero(t, summary.Processed)
	assert.Len(t, summary.Errors, 1)
	sessions.AssertNotCalled(t, "DeleteSessionCascade", mock.Anything)
}

func TestDeletionCascadeIncompleteHaltsRun(t *testing.T) {
	svc, policies, _, _, _, sessions, audits, lock := newTestService()
	grantLock(lock)
	policies.On("GetPolicyByCategory", constants.CategoryRawSensorData).Return(sensorPolicy(), nil)

	first := &sessionModel.Session{
		SessionID: "s-first",
		Link:      participantModel.NewAnonymizedLink("testing_stage_1_25-30"),
		StartedAt: testNow.AddDate(-3, 0, 0),
	}
	second := &sessionModel.Session{
		SessionID: "s-second",
		Link:      participantModel.NewAnonymizedLink("testing_stage_1_25-30"),
		StartedAt: testNow.AddDate(-3, 0, 0),
	}
	sessions.On("GetSessionsPastHorizon", mock.Anything).Return([]*sessionModel.Session{first, second}, nil)
	audits.On("AppendEntry", mock.Anything).Return(nil)
	sessions.On("DeleteSessionCascade", "s-first").
		Return(false, errors2.NewServerError(errors2.CASCADE_INCOMPLETE, nil))

	summary, err := svc.RunDeletion(testNow)

	assert.Error(t, err)
	assert.Len(t, summary.Errors, 1)
	sessions.AssertNotCalled(t, "DeleteSessionCascade", "s-second")
	lock.AssertCalled(t, "Release", constants.RetentionLockKey)
}

func TestDeletionAlreadyDeletedSkip(t *testing.T) {
	svc, policies, _, _, _, sessions, audits, lock := newTestService()
	grantLock(lock)
	policies.On("GetPolicyByCategory", constants.CategoryRawSensorData).Return(sensorPolicy(), nil)

	session := &sessionModel.Session{
		SessionID: "s-gone",
		Link:      participantModel.NewAnonymizedLink("testing_stage_1_25-30"),
		StartedAt: testNow.AddDate(-3, 0, 0),
	}
	sessions.On("GetSessionsPastHorizon", mock.Anything).Return([]*sessionModel.Session{session}, nil)
	audits.On("AppendEntry", mock.Anything).Return(nil)
	sessions.On("DeleteSessionCascade", "s-gone").Return(false, nil)

	summary, err := svc.RunDeletion(testNow)

	assert.NoError(t, err)
	assert.Zero(t, summary.Processed)
	assert.Equal(t, 1, summary.Skipped[model.SkipAlreadyDeleted])
}
