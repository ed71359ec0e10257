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
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hero-research/data-lifecycle-service/internal/audit/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/scripts"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// LifecycleLogStoreInterface defines the persistence operations for the
// audit trail. There is deliberately no update or delete.
type LifecycleLogStoreInterface interface {
	AppendEntry(entry *model.LifecycleLogEntry) error
	GetByTarget(targetID string) ([]*model.LifecycleLogEntry, error)
	GetByActionAndRange(action string, from, to time.Time) ([]*model.LifecycleLogEntry, error)
}

// LifecycleLogStore is the postgres implementation.
type LifecycleLogStore struct{}

func (s *LifecycleLogStore) AppendEntry(entry *model.LifecycleLogEntry) error {
	return AppendEntry(entry)
}

func (s *LifecycleLogStore) GetByTarget(targetID string) ([]*model.LifecycleLogEntry, error) {
	return GetByTarget(targetID)
}

func (s *LifecycleLogStore) GetByActionAndRange(action string, from, to time.Time) ([]*model.LifecycleLogEntry, error) {
	return GetByActionAndRange(action, from, to)
}

// AppendEntry writes one audit row in its own transaction. A failure here
// must abort the caller's unit of work: no lifecycle transition without a
// durable log entry.
func AppendEntry(entry *model.LifecycleLogEntry) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for appending audit entry for target: %s", entry.TargetID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUDIT_WRITE.Code,
			Message:     errors2.AUDIT_WRITE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for appending audit entry for target: %s", entry.TargetID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUDIT_WRITE.Code,
			Message:     errors2.AUDIT_WRITE.Message,
			Description: errorMsg,
		}, err)
	}

	if err := AppendEntryTx(tx, entry); err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback appending audit entry", log.Error(errRollback))
		}
		return err
	}
	return tx.Commit()
}

// AppendEntryTx writes one audit row inside the caller's transaction, so an
// anonymization and its audit entry commit or roll back as one unit.
func AppendEntryTx(tx *sql.Tx, entry *model.LifecycleLogEntry) error {

	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}

	_, err = tx.Exec(scripts.InsertLifecycleLogEntry[constants.DBDriver],
		entry.LogID, entry.Timestamp, entry.ActionType, entry.TargetType, entry.TargetID,
		entry.PerformedBy, details)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for appending audit entry for target: %s", entry.TargetID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUDIT_WRITE.Code,
			Message:     errors2.AUDIT_WRITE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetByTarget fetches the full lifecycle history of one entity, newest first.
func GetByTarget(targetID string) ([]*model.LifecycleLogEntry, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching audit entries for target: %s", targetID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_AUDIT.Code,
			Message:     errors2.FETCH_AUDIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetLifecycleLogByTarget[constants.DBDriver], targetID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching audit entries for target: %s", targetID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_AUDIT.Code,
			Message:     errors2.FETCH_AUDIT.Message,
			Description: errorMsg,
		}, err)
	}

	entries := make([]*model.LifecycleLogEntry, 0, len(results))
	for _, row := range results {
		entries = append(entries, mapRowToEntry(row))
	}
	return entries, nil
}

// GetByActionAndRange fetches entries of one action type inside a time
// window, newest first. Compliance reporting path.
func GetByActionAndRange(action string, from, to time.Time) ([]*model.LifecycleLogEntry, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching audit entries for action: %s", action)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_AUDIT.Code,
			Message:     errors2.FETCH_AUDIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetLifecycleLogByActionAndRange[constants.DBDriver], action, from, to)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching audit entries for action: %s", action)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_AUDIT.Code,
			Message:     errors2.FETCH_AUDIT.Message,
			Description: errorMsg,
		}, err)
	}

	entries := make([]*model.LifecycleLogEntry, 0, len(results))
	for _, row := range results {
		entries = append(entries, mapRowToEntry(row))
	}
	return entries, nil
}

func marshalDetails(details map[string]interface{}) ([]byte, error) {
	if details == nil {
		return nil, nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: "Failed to marshal audit entry details.",
		}, err)
	}
	return data, nil
}

func mapRowToEntry(row map[string]interface{}) *model.LifecycleLogEntry {
	entry := &model.LifecycleLogEntry{
		LogID:       utils.RowString(row, "log_id"),
		Timestamp:   utils.RowTime(row, "timestamp"),
		ActionType:  utils.RowString(row, "action_type"),
		TargetType:  utils.RowString(row, "target_type"),
		TargetID:    utils.RowString(row, "target_id"),
		PerformedBy: utils.RowString(row, "performed_by"),
	}
	if raw := utils.RowString(row, "details"); raw != "" {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &details); err == nil {
			entry.Details = details
		}
	}
	return entry
}
