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

package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	auditModel "github.com/hero-research/data-lifecycle-service/internal/audit/model"
	auditStore "github.com/hero-research/data-lifecycle-service/internal/audit/store"
	"github.com/hero-research/data-lifecycle-service/internal/participant/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/scripts"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// ParticipantStoreInterface defines the persistence operations the
// anonymization job needs over the users table.
type ParticipantStoreInterface interface {
	GetParticipantById(userID string) (*model.Participant, error)
	GetParticipantsPastHorizon(cutoff time.Time) ([]*model.Participant, error)
	GetEarliestSessionStart(userID string) (*time.Time, error)
	AnonymizeParticipant(userID, anonID, ageRange string, elapsedDays, horizonDays int, now time.Time) (bool, error)
}

// ParticipantStore is the postgres implementation.
type ParticipantStore struct{}

func (s *ParticipantStore) GetParticipantById(userID string) (*model.Participant, error) {
	return GetParticipantById(userID)
}

func (s *ParticipantStore) GetParticipantsPastHorizon(cutoff time.Time) ([]*model.Participant, error) {
	return GetParticipantsPastHorizon(cutoff)
}

func (s *ParticipantStore) GetEarliestSessionStart(userID string) (*time.Time, error) {
	return GetEarliestSessionStart(userID)
}

func (s *ParticipantStore) AnonymizeParticipant(userID, anonID, ageRange string, elapsedDays, horizonDays int,
	now time.Time) (bool, error) {
	return AnonymizeParticipant(userID, anonID, ageRange, elapsedDays, horizonDays, now)
}

// GetParticipantById fetches one participant, nil when absent.
func GetParticipantById(userID string) (*model.Participant, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PARTICIPANT.Code,
			Message:     errors2.FETCH_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetParticipantById[constants.DBDriver], userID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PARTICIPANT.Code,
			Message:     errors2.FETCH_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return mapRowToParticipant(results[0]), nil
}

// GetParticipantsPastHorizon fetches identified participants whose account
// creation is at or before the cutoff. Consent and age-band checks are the
// caller's concern.
func GetParticipantsPastHorizon(cutoff time.Time) ([]*model.Participant, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching participants past the anonymization horizon"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PARTICIPANT.Code,
			Message:     errors2.FETCH_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetParticipantsPastHorizon[constants.DBDriver], cutoff)
	if err != nil {
		errorMsg := "Failed to execute query for fetching participants past the anonymization horizon"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PARTICIPANT.Code,
			Message:     errors2.FETCH_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}

	participants := make([]*model.Participant, 0, len(results))
	for _, row := range results {
		participants = append(participants, mapRowToParticipant(row))
	}
	return participants, nil
}

// GetEarliestSessionStart returns the start time of the participant's first
// session, nil when the participant has no sessions. The anonymization
// horizon is measured from this point when it exists.
func GetEarliestSessionStart(userID string) (*time.Time, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching earliest session of participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PARTICIPANT.Code,
			Message:     errors2.FETCH_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetEarliestSessionStart[constants.DBDriver], userID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching earliest session of participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_PARTICIPANT.Code,
			Message:     errors2.FETCH_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return utils.RowNullableTime(results[0], "earliest"), nil
}

// AnonymizeParticipant performs the full anonymization of one participant in
// a single transaction: scrub the identifying columns, relink all sessions
// to the cohort stub, and append the audit entry. Partial anonymization is
// never visible. The audit entry carries a fingerprint of the pre-scrub
// username, the elapsed days past the anchor and the policy horizon applied,
// never the raw identifying value. Returns false when the participant was
// already anonymized, which makes re-runs after a crash safe.
func AnonymizeParticipant(userID, anonID, ageRange string, elapsedDays, horizonDays int, now time.Time) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for anonymizing participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ANONYMIZE_PARTICIPANT.Code,
			Message:     errors2.ANONYMIZE_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for anonymizing participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ANONYMIZE_PARTICIPANT.Code,
			Message:     errors2.ANONYMIZE_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}

	rollback := func() {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback anonymizing participant", log.Error(errRollback))
		}
	}

	// The username is read before it is overwritten; only its hash reaches
	// the audit trail.
	var username string
	if err := tx.QueryRow(scripts.GetUsernameForScrub[constants.DBDriver], userID).Scan(&username); err != nil {
		if err == sql.ErrNoRows {
			rollback()
			return false, nil
		}
		rollback()
		errorMsg := fmt.Sprintf("Failed to read username of participant for scrubbing: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ANONYMIZE_PARTICIPANT.Code,
			Message:     errors2.ANONYMIZE_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	fingerprint := sha256.Sum256([]byte(username))

	// Scrub sentinels are derived from the user id so re-runs produce the
	// same values. The password is replaced with a random value that is
	// never stored elsewhere, locking the account out for good.
	shortID := userID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	result, err := tx.Exec(scripts.ScrubParticipant[constants.DBDriver],
		"anon_"+shortID,
		"anon_"+shortID+"@redacted.invalid",
		"Anonymized Participant",
		uuid.New().String(),
		now,
		userID)
	if err != nil {
		rollback()
		errorMsg := fmt.Sprintf("Failed to scrub identifying fields of participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ANONYMIZE_PARTICIPANT.Code,
			Message:     errors2.ANONYMIZE_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		rollback()
		return false, nil
	}

	if _, err := tx.Exec(scripts.RelinkSessionsToCohort[constants.DBDriver], anonID, now, userID); err != nil {
		rollback()
		errorMsg := fmt.Sprintf("Failed to relink sessions of participant %s to cohort %s", userID, anonID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ANONYMIZE_PARTICIPANT.Code,
			Message:     errors2.ANONYMIZE_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}

	entry := &auditModel.LifecycleLogEntry{
		LogID:       uuid.New().String(),
		Timestamp:   now,
		ActionType:  constants.ActionAnonymized,
		TargetType:  constants.TargetUser,
		TargetID:    userID,
		PerformedBy: constants.PerformedBySystem,
		Details: map[string]interface{}{
			"anon_id":                  anonID,
			"age_range":                ageRange,
			"username_fingerprint":     hex.EncodeToString(fingerprint[:]),
			"elapsed_days":             elapsedDays,
			"anonymization_after_days": horizonDays,
		},
	}
	if err := auditStore.AppendEntryTx(tx, entry); err != nil {
		rollback()
		return false, err
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit anonymization of participant: %s", userID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ANONYMIZE_PARTICIPANT.Code,
			Message:     errors2.ANONYMIZE_PARTICIPANT.Message,
			Description: errorMsg,
		}, err)
	}
	return true, nil
}

func mapRowToParticipant(row map[string]interface{}) *model.Participant {
	return &model.Participant{
		UserID:       utils.RowString(row, "user_id"),
		Username:     utils.RowString(row, "username"),
		Email:        utils.RowString(row, "email"),
		FullName:     utils.RowString(row, "full_name"),
		DateOfBirth:  utils.RowNullableTime(row, "date_of_birth"),
		IsAnonymized: utils.RowBool(row, "is_anonymized"),
		AnonymizedAt: utils.RowNullableTime(row, "anonymized_at"),
		CreatedAt:    utils.RowTime(row, "created_at"),
	}
}
