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

	"github.com/hero-research/data-lifecycle-service/internal/cohort/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/scripts"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// CohortStoreInterface defines the persistence operations over the
// anon_demographics table.
type CohortStoreInterface interface {
	GetCohortById(anonID string) (*model.Cohort, error)
	EnsureCohort(anonID, ageRange string, now time.Time) error
}

// CohortStore is the postgres implementation.
type CohortStore struct{}

func (s *CohortStore) GetCohortById(anonID string) (*model.Cohort, error) {
	return GetCohortById(anonID)
}

func (s *CohortStore) EnsureCohort(anonID, ageRange string, now time.Time) error {
	return EnsureCohort(anonID, ageRange, now)
}

// GetCohortById fetches one cohort stub, nil when absent.
func GetCohortById(anonID string) (*model.Cohort, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching cohort: %s", anonID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_COHORT.Code,
			Message:     errors2.FETCH_COHORT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetCohortById[constants.DBDriver], anonID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching cohort: %s", anonID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_COHORT.Code,
			Message:     errors2.FETCH_COHORT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &model.Cohort{
		AnonID:    utils.RowString(results[0], "anon_id"),
		AgeRange:  utils.RowString(results[0], "age_range"),
		CreatedAt: utils.RowTime(results[0], "created_at"),
	}, nil
}

// EnsureCohort creates the cohort stub if it does not exist yet. Concurrent
// callers racing on the same stub are resolved by the conflict clause, so
// the operation is safe to repeat.
func EnsureCohort(anonID, ageRange string, now time.Time) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for ensuring cohort: %s", anonID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_COHORT.Code,
			Message:     errors2.ADD_COHORT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery(scripts.InsertCohort[constants.DBDriver], anonID, ageRange, now); err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for ensuring cohort: %s", anonID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_COHORT.Code,
			Message:     errors2.ADD_COHORT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}
