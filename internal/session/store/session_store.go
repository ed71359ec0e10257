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

	participantModel "github.com/hero-research/data-lifecycle-service/internal/participant/model"
	"github.com/hero-research/data-lifecycle-service/internal/session/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/scripts"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// SessionStoreInterface defines the persistence operations the deletion job
// needs over test_sessions and its child tables.
type SessionStoreInterface interface {
	GetSessionById(sessionID string) (*model.Session, error)
	GetSessionsByParticipant(userID string) ([]*model.Session, error)
	GetSessionsPastHorizon(cutoff time.Time) ([]*model.Session, error)
	DeleteSessionCascade(sessionID string) (bool, error)
}

// SessionStore is the postgres implementation.
type SessionStore struct{}

func (s *SessionStore) GetSessionById(sessionID string) (*model.Session, error) {
	return GetSessionById(sessionID)
}

func (s *SessionStore) GetSessionsByParticipant(userID string) ([]*model.Session, error) {
	return GetSessionsByParticipant(userID)
}

func (s *SessionStore) GetSessionsPastHorizon(cutoff time.Time) ([]*model.Session, error) {
	return GetSessionsPastHorizon(cutoff)
}

func (s *SessionStore) DeleteSessionCascade(sessionID string) (bool, error) {
	return DeleteSessionCascade(sessionID)
}

// GetSessionById fetches one session, nil when absent.
func GetSessionById(sessionID string) (*model.Session, error) {

	results, err := querySessions(scripts.GetSessionById[constants.DBDriver],
		fmt.Sprintf("fetching session: %s", sessionID), sessionID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// GetSessionsByParticipant fetches all sessions still linked to an
// identified participant.
func GetSessionsByParticipant(userID string) ([]*model.Session, error) {

	return querySessions(scripts.GetSessionsByParticipant[constants.DBDriver],
		fmt.Sprintf("fetching sessions of participant: %s", userID), userID)
}

// GetSessionsPastHorizon fetches sessions whose start time is at or before
// the cutoff, identified and anonymized alike. The deletion gate is applied
// by the caller per session.
func GetSessionsPastHorizon(cutoff time.Time) ([]*model.Session, error) {

	return querySessions(scripts.GetSessionsPastHorizon[constants.DBDriver],
		"fetching sessions past the deletion horizon", cutoff)
}

// DeleteSessionCascade removes one session and every row that hangs off it,
// children before parent, in a single transaction. The walk is verified
// afterwards: any surviving child row rolls the whole deletion back. Returns
// false when the session no longer exists, which makes re-runs safe.
func DeleteSessionCascade(sessionID string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting session: %s", sessionID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_SESSION.Code,
			Message:     errors2.DELETE_SESSION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for deleting session: %s", sessionID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_SESSION.Code,
			Message:     errors2.DELETE_SESSION.Message,
			Description: errorMsg,
		}, err)
	}

	rollback := func() {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback deleting session", log.Error(errRollback))
		}
	}

	for _, table := range scripts.SessionChildTables {
		stmt := fmt.Sprintf(scripts.DeleteSessionChildRows[constants.DBDriver], table)
		if _, err := tx.Exec(stmt, sessionID); err != nil {
			rollback()
			errorMsg := fmt.Sprintf("Failed to delete %s rows of session: %s", table, sessionID)
			logger.Debug(errorMsg, log.Error(err))
			return false, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.DELETE_SESSION.Code,
				Message:     errors2.DELETE_SESSION.Message,
				Description: errorMsg,
			}, err)
		}
	}

	result, err := tx.Exec(scripts.DeleteSessionById[constants.DBDriver], sessionID)
	if err != nil {
		rollback()
		errorMsg := fmt.Sprintf("Failed to delete session row: %s", sessionID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_SESSION.Code,
			Message:     errors2.DELETE_SESSION.Message,
			Description: errorMsg,
		}, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		rollback()
		return false, nil
	}

	// Verify the walk left nothing behind before committing.
	for _, table := range scripts.SessionChildTables {
		stmt := fmt.Sprintf(scripts.CountSessionChildRows[constants.DBDriver], table)
		var remaining int64
		if err := tx.QueryRow(stmt, sessionID).Scan(&remaining); err != nil {
			rollback()
			errorMsg := fmt.Sprintf("Failed to verify %s rows of session: %s", table, sessionID)
			logger.Debug(errorMsg, log.Error(err))
			return false, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.DELETE_SESSION.Code,
				Message:     errors2.DELETE_SESSION.Message,
				Description: errorMsg,
			}, err)
		}
		if remaining > 0 {
			rollback()
			errorMsg := fmt.Sprintf("%d %s rows of session %s survived the deletion walk", remaining, table, sessionID)
			logger.Error(errorMsg)
			return false, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.CASCADE_INCOMPLETE.Code,
				Message:     errors2.CASCADE_INCOMPLETE.Message,
				Description: errorMsg,
			}, nil)
		}
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit deletion of session: %s", sessionID)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_SESSION.Code,
			Message:     errors2.DELETE_SESSION.Message,
			Description: errorMsg,
		}, err)
	}
	return true, nil
}

func querySessions(query, what string, args ...interface{}) ([]*model.Session, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for " + what
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SESSION.Code,
			Message:     errors2.FETCH_SESSION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed to execute query for " + what
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SESSION.Code,
			Message:     errors2.FETCH_SESSION.Message,
			Description: errorMsg,
		}, err)
	}

	sessions := make([]*model.Session, 0, len(results))
	for _, row := range results {
		session, err := mapRowToSession(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func mapRowToSession(row map[string]interface{}) (*model.Session, error) {

	sessionID := utils.RowString(row, "session_id")
	link, err := participantModel.LinkFromColumns(utils.RowString(row, "user_id"), utils.RowString(row, "anon_id"))
	if err != nil {
		errorMsg := fmt.Sprintf("Session %s has an invalid participant link", sessionID)
		log.GetLogger().Error(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.INVALID_LINK_STATE.Code,
			Message:     errors2.INVALID_LINK_STATE.Message,
			Description: errorMsg,
		}, err)
	}

	return &model.Session{
		SessionID:    sessionID,
		Link:         link,
		AnonymizedAt: utils.RowNullableTime(row, "anonymized_at"),
		StartedAt:    utils.RowTime(row, "started_at"),
		EndedAt:      utils.RowNullableTime(row, "ended_at"),
		Notes:        utils.RowString(row, "notes"),
	}, nil
}
