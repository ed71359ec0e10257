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
	"fmt"
	"time"

	"github.com/hero-research/data-lifecycle-service/internal/consent/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/scripts"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// ConsentStoreInterface defines the persistence operations for the consent
// ledger.
type ConsentStoreInterface interface {
	InsertConsent(record *model.ConsentRecord) error
	RevokeActiveConsent(participantID, reason string, revokedAt time.Time) (bool, error)
	GetActiveConsent(participantID string) (*model.ConsentRecord, error)
	GetConsentsByParticipant(participantID string) ([]*model.ConsentRecord, error)
}

// ConsentStore is the postgres implementation.
type ConsentStore struct{}

func (s *ConsentStore) InsertConsent(record *model.ConsentRecord) error {
	return InsertConsent(record)
}

func (s *ConsentStore) RevokeActiveConsent(participantID, reason string, revokedAt time.Time) (bool, error) {
	return RevokeActiveConsent(participantID, reason, revokedAt)
}

func (s *ConsentStore) GetActiveConsent(participantID string) (*model.ConsentRecord, error) {
	return GetActiveConsent(participantID)
}

func (s *ConsentStore) GetConsentsByParticipant(participantID string) ([]*model.ConsentRecord, error) {
	return GetConsentsByParticipant(participantID)
}

// InsertConsent records a new consent version. Any previously active record
// for the participant is marked inactive in the same transaction so exactly
// one record is active at a time.
func InsertConsent(record *model.ConsentRecord) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for recording consent of participant: %s", record.ParticipantID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT.Code,
			Message:     errors2.ADD_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for recording consent of participant: %s", record.ParticipantID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT.Code,
			Message:     errors2.ADD_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}

	if _, err = tx.Exec(scripts.DeactivateConsentsForParticipant[constants.DBDriver], record.ParticipantID); err == nil {
		_, err = tx.Exec(scripts.InsertConsent[constants.DBDriver],
			record.ConsentID, record.ParticipantID, record.ConsentVersion, record.ConsentDate,
			record.DataCollectionConsent, record.SevenDayAnonymizationConsent, record.TwoYearDeletionConsent,
			record.EEGConsent, record.EyeTrackingConsent, record.MotionSensorConsent, record.BiometricConsent,
			record.Signature, record.ConsentMethod)
	}
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback recording consent", log.Error(errRollback))
		}
		errorMsg := fmt.Sprintf("Failed to execute query for recording consent of participant: %s", record.ParticipantID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT.Code,
			Message:     errors2.ADD_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Successfully recorded consent version %s for participant: %s",
		record.ConsentVersion, record.ParticipantID))
	return tx.Commit()
}

// RevokeActiveConsent flips the active consent record of a participant to
// revoked. Returns false when the participant has no active consent.
func RevokeActiveConsent(participantID, reason string, revokedAt time.Time) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for revoking consent of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REVOKE_CONSENT.Code,
			Message:     errors2.REVOKE_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for revoking consent of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REVOKE_CONSENT.Code,
			Message:     errors2.REVOKE_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}

	result, err := tx.Exec(scripts.RevokeActiveConsent[constants.DBDriver], revokedAt, reason, participantID)
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback revoking consent", log.Error(errRollback))
		}
		errorMsg := fmt.Sprintf("Failed to execute query for revoking consent of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REVOKE_CONSENT.Code,
			Message:     errors2.REVOKE_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	affected, _ := result.RowsAffected()
	if err := tx.Commit(); err != nil {
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REVOKE_CONSENT.Code,
			Message:     errors2.REVOKE_CONSENT.Message,
			Description: fmt.Sprintf("Failed to commit consent revocation for participant: %s", participantID),
		}, err)
	}
	return affected > 0, nil
}

// GetActiveConsent fetches the currently active consent record, nil when the
// participant has none.
func GetActiveConsent(participantID string) (*model.ConsentRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching consent of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT.Code,
			Message:     errors2.FETCH_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetActiveConsentByParticipant[constants.DBDriver], participantID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching consent of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT.Code,
			Message:     errors2.FETCH_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return mapRowToConsent(results[0]), nil
}

// GetConsentsByParticipant fetches the full consent history of a
// participant, newest first.
func GetConsentsByParticipant(participantID string) ([]*model.ConsentRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching consent history of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT.Code,
			Message:     errors2.FETCH_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetConsentsByParticipant[constants.DBDriver], participantID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching consent history of participant: %s", participantID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT.Code,
			Message:     errors2.FETCH_CONSENT.Message,
			Description: errorMsg,
		}, err)
	}

	records := make([]*model.ConsentRecord, 0, len(results))
	for _, row := range results {
		records = append(records, mapRowToConsent(row))
	}
	return records, nil
}

func mapRowToConsent(row map[string]interface{}) *model.ConsentRecord {
	return &model.ConsentRecord{
		ConsentID:                    utils.RowString(row, "consent_id"),
		ParticipantID:                utils.RowString(row, "user_id"),
		ConsentVersion:               utils.RowString(row, "consent_version"),
		ConsentDate:                  utils.RowTime(row, "consent_date"),
		DataCollectionConsent:        utils.RowBool(row, "data_collection_consent"),
		SevenDayAnonymizationConsent: utils.RowBool(row, "seven_day_anonymization_consent"),
		TwoYearDeletionConsent:       utils.RowBool(row, "two_year_deletion_consent"),
		EEGConsent:                   utils.RowBool(row, "eeg_consent"),
		EyeTrackingConsent:           utils.RowBool(row, "eye_tracking_consent"),
		MotionSensorConsent:          utils.RowBool(row, "motion_sensor_consent"),
		BiometricConsent:             utils.RowBool(row, "biometric_consent"),
		IsActive:                     utils.RowBool(row, "is_active"),
		RevokedAt:                    utils.RowNullableTime(row, "revoked_at"),
		RevocationReason:             utils.RowString(row, "revocation_reason"),
		Signature:                    utils.RowString(row, "signature"),
		ConsentMethod:                utils.RowString(row, "consent_method"),
	}
}
