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

	"github.com/hero-research/data-lifecycle-service/internal/policy/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/scripts"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// RetentionPolicyStoreInterface defines the persistence operations for
// retention policies.
type RetentionPolicyStoreInterface interface {
	GetPolicyByCategory(category string) (*model.RetentionPolicy, error)
	GetAllPolicies() ([]*model.RetentionPolicy, error)
	InsertPolicy(policy *model.RetentionPolicy) error
	UpdatePolicy(policy *model.RetentionPolicy) error
}

// RetentionPolicyStore is the postgres implementation.
type RetentionPolicyStore struct{}

func (s *RetentionPolicyStore) GetPolicyByCategory(category string) (*model.RetentionPolicy, error) {
	return GetPolicyByCategory(category)
}

func (s *RetentionPolicyStore) GetAllPolicies() ([]*model.RetentionPolicy, error) {
	return GetAllPolicies()
}

func (s *RetentionPolicyStore) InsertPolicy(policy *model.RetentionPolicy) error {
	return InsertPolicy(policy)
}

func (s *RetentionPolicyStore) UpdatePolicy(policy *model.RetentionPolicy) error {
	return UpdatePolicy(policy)
}

// GetPolicyByCategory fetches the policy row for a data category. Returns
// nil without error when no policy is defined.
func GetPolicyByCategory(category string) (*model.RetentionPolicy, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching retention policy: %s", category)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RETENTION_POLICY.Code,
			Message:     errors2.FETCH_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetRetentionPolicyByCategory[constants.DBDriver], category)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching retention policy: %s", category)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RETENTION_POLICY.Code,
			Message:     errors2.FETCH_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No retention policy found for category: %s", category))
		return nil, nil
	}
	return mapRowToPolicy(results[0]), nil
}

// GetAllPolicies fetches every retention policy row.
func GetAllPolicies() ([]*model.RetentionPolicy, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching retention policies."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RETENTION_POLICY.Code,
			Message:     errors2.FETCH_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetAllRetentionPolicies[constants.DBDriver])
	if err != nil {
		errorMsg := "Failed to execute query for fetching retention policies."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_RETENTION_POLICY.Code,
			Message:     errors2.FETCH_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}

	policies := make([]*model.RetentionPolicy, 0, len(results))
	for _, row := range results {
		policies = append(policies, mapRowToPolicy(row))
	}
	return policies, nil
}

// InsertPolicy adds a new retention policy row.
func InsertPolicy(policy *model.RetentionPolicy) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for inserting retention policy: %s", policy.DataType)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RETENTION_POLICY.Code,
			Message:     errors2.ADD_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for inserting retention policy: %s", policy.DataType)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RETENTION_POLICY.Code,
			Message:     errors2.ADD_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}

	_, err = tx.Exec(scripts.InsertRetentionPolicy[constants.DBDriver], policy.PolicyID, policy.DataType,
		nullableInt(policy.AnonymizationAfterDays), policy.DeletionAfterDays, policy.PolicyActive,
		policy.Notes, time.Now().UTC())
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback inserting retention policy", log.Error(errRollback))
		}
		errorMsg := fmt.Sprintf("Failed to execute query for inserting retention policy: %s", policy.DataType)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RETENTION_POLICY.Code,
			Message:     errors2.ADD_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Successfully inserted retention policy: %s", policy.DataType))
	return tx.Commit()
}

// UpdatePolicy updates the horizons, active flag and notes of an existing
// policy row. Policies are never deleted.
func UpdatePolicy(policy *model.RetentionPolicy) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating retention policy: %s", policy.DataType)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RETENTION_POLICY.Code,
			Message:     errors2.UPDATE_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for updating retention policy: %s", policy.DataType)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RETENTION_POLICY.Code,
			Message:     errors2.UPDATE_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}

	_, err = tx.Exec(scripts.UpdateRetentionPolicy[constants.DBDriver],
		nullableInt(policy.AnonymizationAfterDays), policy.DeletionAfterDays, policy.PolicyActive,
		policy.Notes, time.Now().UTC(), policy.DataType)
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			logger.Debug("Failed to rollback updating retention policy", log.Error(errRollback))
		}
		errorMsg := fmt.Sprintf("Failed to execute query for updating retention policy: %s", policy.DataType)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RETENTION_POLICY.Code,
			Message:     errors2.UPDATE_RETENTION_POLICY.Message,
			Description: errorMsg,
		}, err)
	}
	return tx.Commit()
}

func mapRowToPolicy(row map[string]interface{}) *model.RetentionPolicy {
	return &model.RetentionPolicy{
		PolicyID:               utils.RowString(row, "policy_id"),
		DataType:               utils.RowString(row, "data_type"),
		AnonymizationAfterDays: utils.RowNullableInt(row, "anonymization_after_days"),
		DeletionAfterDays:      utils.RowInt(row, "deletion_after_days"),
		PolicyActive:           utils.RowBool(row, "policy_active"),
		Notes:                  utils.RowString(row, "notes"),
		CreatedAt:              utils.RowTime(row, "created_at"),
		UpdatedAt:              utils.RowTime(row, "updated_at"),
	}
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
