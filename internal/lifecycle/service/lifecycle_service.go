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
	goerrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	auditModel "github.com/hero-research/data-lifecycle-service/internal/audit/model"
	auditStore "github.com/hero-research/data-lifecycle-service/internal/audit/store"
	cohortStore "github.com/hero-research/data-lifecycle-service/internal/cohort/store"
	consentModel "github.com/hero-research/data-lifecycle-service/internal/consent/model"
	consentService "github.com/hero-research/data-lifecycle-service/internal/consent/service"
	"github.com/hero-research/data-lifecycle-service/internal/lifecycle/model"
	participantModel "github.com/hero-research/data-lifecycle-service/internal/participant/model"
	participantStore "github.com/hero-research/data-lifecycle-service/internal/participant/store"
	policyModel "github.com/hero-research/data-lifecycle-service/internal/policy/model"
	policyStore "github.com/hero-research/data-lifecycle-service/internal/policy/store"
	sessionModel "github.com/hero-research/data-lifecycle-service/internal/session/model"
	sessionStore "github.com/hero-research/data-lifecycle-service/internal/session/store"
	"github.com/hero-research/data-lifecycle-service/internal/system/config"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/lock"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

// LifecycleServiceInterface defines the two retention jobs. Both take the
// evaluation time explicitly so runs are reproducible and testable.
type LifecycleServiceInterface interface {
	RunAnonymization(now time.Time) (*model.JobSummary, error)
	RunDeletion(now time.Time) (*model.JobSummary, error)
}

// LifecycleService implements the retention jobs over the domain stores.
// Every dependency is an interface so the sweep logic is testable without a
// database.
type LifecycleService struct {
	policyStore      policyStore.RetentionPolicyStoreInterface
	consentService   consentService.ConsentServiceInterface
	participantStore participantStore.ParticipantStoreInterface
	cohortStore      cohortStore.CohortStoreInterface
	sessionStore     sessionStore.SessionStoreInterface
	auditStore       auditStore.LifecycleLogStoreInterface
	lock             lock.DistributedLock
	strategy         CohortStrategy
}

// GetLifecycleService creates a lifecycle service wired to the postgres
// stores and the configured cohort strategy.
func GetLifecycleService() LifecycleServiceInterface {
	return &LifecycleService{
		policyStore:      &policyStore.RetentionPolicyStore{},
		consentService:   consentService.GetConsentService(),
		participantStore: &participantStore.ParticipantStore{},
		cohortStore:      &cohortStore.CohortStore{},
		sessionStore:     &sessionStore.SessionStore{},
		auditStore:       &auditStore.LifecycleLogStore{},
		lock:             lock.NewPostgresLock(),
		strategy:         &StaticLabelStrategy{Label: config.GetDLSRuntime().Config.Lifecycle.CohortLabel},
	}
}

// RunAnonymization sweeps identified participants past the anonymization
// horizon of the participant_identity policy. Each eligible participant is
// scrubbed, their sessions relinked to a cohort stub and the transition
// logged, all in one transaction per participant. Failures on one
// participant never block the rest of the sweep.
func (ls *LifecycleService) RunAnonymization(now time.Time) (*model.JobSummary, error) {

	logger := log.GetLogger()
	summary := model.NewJobSummary(model.JobAnonymization, now)

	acquired, err := ls.lock.Acquire(constants.RetentionLockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		summary.Note = "another retention job holds the lock; run skipped"
		summary.FinishedAt = now
		logger.Warn("Anonymization run skipped, retention lock unavailable")
		return summary, nil
	}
	defer func() {
		if err := ls.lock.Release(constants.RetentionLockKey); err != nil {
			logger.Error("Failed to release retention lock after anonymization run", log.Error(err))
		}
	}()

	// The policy is snapshotted once; a concurrent policy change applies
	// from the next run.
	policy, err := ls.policyStore.GetPolicyByCategory(constants.CategoryParticipantIdentity)
	if err != nil {
		return nil, err
	}
	horizon, enabled := anonymizationHorizon(policy)
	if !enabled {
		summary.Note = noOpReason(policy, "anonymization")
		summary.FinishedAt = now
		logger.Info("Anonymization run is a no-op", log.String("reason", summary.Note))
		return summary, nil
	}

	participants, err := ls.participantStore.GetParticipantsPastHorizon(now.Add(-horizon))
	if err != nil {
		return nil, err
	}

	for _, participant := range participants {
		ls.anonymizeOne(participant, horizon, now, summary)
	}

	summary.FinishedAt = time.Now().UTC()
	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeSystem,
		InitiatorID:   constants.PerformedBySystem,
		TargetType:    log.TargetTypeParticipant,
		ActionID:      log.ActionRunAnonymizationJob,
		Data:          summary,
	})
	logger.Info("Anonymization run complete",
		log.Int("processed", summary.Processed),
		log.Int("skipped", totalSkipped(summary)),
		log.Int("errors", len(summary.Errors)))
	return summary, nil
}

func (ls *LifecycleService) anonymizeOne(participant *participantModel.Participant, horizon time.Duration,
	now time.Time, summary *model.JobSummary) {

	logger := log.GetLogger()
	userID := participant.UserID

	// The horizon anchors on the first session when one exists, falling
	// back to enrollment for participants who never ran a session.
	anchor := participant.CreatedAt
	earliest, err := ls.participantStore.GetEarliestSessionStart(userID)
	if err != nil {
		summary.Fail(fmt.Sprintf("participant %s: %v", userID, err))
		return
	}
	if earliest != nil {
		anchor = *earliest
	}
	if anchor.Add(horizon).After(now) {
		summary.Skip(model.SkipNotYetDue)
		return
	}

	granted, err := ls.consentService.HasActiveClause(userID, consentModel.ClauseAnonymization)
	if err != nil {
		summary.Fail(fmt.Sprintf("participant %s: %v", userID, err))
		return
	}
	if !granted {
		summary.Skip(model.SkipConsentNotGranted)
		return
	}

	if participant.DateOfBirth == nil {
		summary.Skip(model.SkipMissingDateOfBirth)
		logger.Warn("Participant has no date of birth, cannot assign cohort", log.String("user_id", userID))
		return
	}
	ageRange, ok := participantModel.AgeRangeFor(*participant.DateOfBirth, anchor)
	if !ok {
		summary.Skip(model.SkipUnsupportedAgeBand)
		logger.Warn("Participant age outside supported bands",
			log.String("user_id", userID),
			log.String("code", errors2.UNSUPPORTED_AGE_BAND.Code))
		return
	}

	anonID := ls.strategy.CohortFor(ageRange)
	if err := ls.cohortStore.EnsureCohort(anonID, ageRange, now); err != nil {
		summary.Fail(fmt.Sprintf("participant %s: %v", userID, err))
		return
	}

	elapsedDays := int(now.Sub(anchor).Hours() / 24)
	horizonDays := int(horizon.Hours() / 24)
	done, err := ls.participantStore.AnonymizeParticipant(userID, anonID, ageRange, elapsedDays, horizonDays, now)
	if err != nil {
		summary.Fail(fmt.Sprintf("participant %s: %v", userID, err))
		return
	}
	if !done {
		summary.Skip(model.SkipAlreadyAnonymized)
		return
	}
	summary.Processed++
	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeSystem,
		InitiatorID:   constants.PerformedBySystem,
		TargetType:    log.TargetTypeParticipant,
		TargetID:      userID,
		ActionID:      log.ActionAnonymizeParticipant,
	})
}

// RunDeletion sweeps sessions past the deletion horizon of the
// raw_sensor_data policy. For each eligible session the audit entry is
// committed first, then the session and all its dependent rows are removed.
// A crash between the two leaves an entry without a deletion; the next run
// deletes the session and the trail stays honest about intent.
func (ls *LifecycleService) RunDeletion(now time.Time) (*model.JobSummary, error) {

	logger := log.GetLogger()
	summary := model.NewJobSummary(model.JobDeletion, now)

	acquired, err := ls.lock.Acquire(constants.RetentionLockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		summary.Note = "another retention job holds the lock; run skipped"
		summary.FinishedAt = now
		logger.Warn("Deletion run skipped, retention lock unavailable")
		return summary, nil
	}
	defer func() {
		if err := ls.lock.Release(constants.RetentionLockKey); err != nil {
			logger.Error("Failed to release retention lock after deletion run", log.Error(err))
		}
	}()

	policy, err := ls.policyStore.GetPolicyByCategory(constants.CategoryRawSensorData)
	if err != nil {
		return nil, err
	}
	if policy == nil || !policy.PolicyActive {
		summary.Note = noOpReason(policy, "deletion")
		summary.FinishedAt = now
		logger.Info("Deletion run is a no-op", log.String("reason", summary.Note))
		return summary, nil
	}

	sessions, err := ls.sessionStore.GetSessionsPastHorizon(now.Add(-policy.DeleteAfter()))
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if halt := ls.deleteOne(session, now, summary); halt != nil {
			summary.FinishedAt = time.Now().UTC()
			return summary, halt
		}
	}

	summary.FinishedAt = time.Now().UTC()
	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeSystem,
		InitiatorID:   constants.PerformedBySystem,
		TargetType:    log.TargetTypeSession,
		ActionID:      log.ActionRunDeletionJob,
		Data:          summary,
	})
	logger.Info("Deletion run complete",
		log.Int("processed", summary.Processed),
		log.Int("skipped", totalSkipped(summary)),
		log.Int("errors", len(summary.Errors)))
	return summary, nil
}

// deleteOne handles a single session. A non-nil return halts the whole run;
// only an incomplete cascade does that, since it signals schema drift that
// every further deletion would hit too.
func (ls *LifecycleService) deleteOne(session *sessionModel.Session, now time.Time,
	summary *model.JobSummary) error {

	sessionID := session.SessionID

	// An identified session is only deletable if its participant at some
	// point granted the deletion clause. Revocation stops future collection
	// but does not extend retention, so the history is consulted, not the
	// active record.
	if !session.Anonymized() {
		ever, err := ls.consentService.HasClauseEverGranted(session.Link.UserID, consentModel.ClauseDeletion)
		if err != nil {
			summary.Fail(fmt.Sprintf("session %s: %v", sessionID, err))
			return nil
		}
		if !ever {
			summary.Skip(model.SkipDeletionNeverGranted)
			return nil
		}
	}

	// Log before delete. If this entry cannot be committed the session
	// stays; data outliving its horizon is recoverable, a deletion without
	// a trace is not.
	entry := &auditModel.LifecycleLogEntry{
		LogID:       uuid.New().String(),
		Timestamp:   now,
		ActionType:  constants.ActionDeleted,
		TargetType:  constants.TargetSession,
		TargetID:    sessionID,
		PerformedBy: constants.PerformedBySystem,
		Details:     deletionDetails(session, now),
	}
	if err := ls.auditStore.AppendEntry(entry); err != nil {
		summary.Fail(fmt.Sprintf("session %s: %v", sessionID, err))
		return nil
	}

	done, err := ls.sessionStore.DeleteSessionCascade(sessionID)
	if err != nil {
		summary.Fail(fmt.Sprintf("session %s: %v", sessionID, err))
		if isCascadeIncomplete(err) {
			return err
		}
		return nil
	}
	if !done {
		summary.Skip(model.SkipAlreadyDeleted)
		return nil
	}
	summary.Processed++
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeSystem,
		InitiatorID:   constants.PerformedBySystem,
		TargetType:    log.TargetTypeSession,
		TargetID:      sessionID,
		ActionID:      log.ActionDeleteSession,
	})
	return nil
}

func deletionDetails(session *sessionModel.Session, now time.Time) map[string]interface{} {
	details := map[string]interface{}{
		"link_state":   string(session.Link.State),
		"started_at":   session.StartedAt,
		"elapsed_days": int(now.Sub(session.StartedAt).Hours() / 24),
	}
	if session.Anonymized() {
		details["anon_id"] = session.Link.AnonID
	} else {
		details["user_id"] = session.Link.UserID
	}
	return details
}

func anonymizationHorizon(policy *policyModel.RetentionPolicy) (time.Duration, bool) {
	if policy == nil || !policy.PolicyActive {
		return 0, false
	}
	return policy.AnonymizeAfter()
}

func noOpReason(policy *policyModel.RetentionPolicy, job string) string {
	switch {
	case policy == nil:
		return "no retention policy defined for this category"
	case !policy.PolicyActive:
		return "retention policy is inactive"
	default:
		return job + " is disabled by the retention policy"
	}
}

func isCascadeIncomplete(err error) bool {
	var serverErr *errors2.ServerError
	if goerrors.As(err, &serverErr) {
		return serverErr.Code == errors2.CASCADE_INCOMPLETE.Code
	}
	return false
}

func totalSkipped(summary *model.JobSummary) int {
	total := 0
	for _, n := range summary.Skipped {
		total += n
	}
	return total
}
