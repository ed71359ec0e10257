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
	"fmt"
	"net/http"
	"time"

	"github.com/hero-research/data-lifecycle-service/internal/audit/model"
	"github.com/hero-research/data-lifecycle-service/internal/audit/store"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/errors"
)

// LifecycleLogServiceInterface defines the read surface over the audit
// trail. Writes go through the stores of the operations being audited.
type LifecycleLogServiceInterface interface {
	GetHistory(targetID string) ([]*model.LifecycleLogEntry, error)
	GetReport(action string, from, to time.Time) ([]*model.LifecycleLogEntry, error)
}

// LifecycleLogService implements the audit read surface.
type LifecycleLogService struct {
	store store.LifecycleLogStoreInterface
}

// GetLifecycleLogService creates an audit service with the default store.
func GetLifecycleLogService() LifecycleLogServiceInterface {
	return &LifecycleLogService{store: &store.LifecycleLogStore{}}
}

// GetHistory returns the lifecycle history of one entity, newest first.
func (ls *LifecycleLogService) GetHistory(targetID string) ([]*model.LifecycleLogEntry, error) {

	if targetID == "" {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_QUERY_VALIDATION.Code,
			Message:     errors.AUDIT_QUERY_VALIDATION.Message,
			Description: "Target id is required to fetch lifecycle history.",
		}, http.StatusBadRequest)
	}
	return ls.store.GetByTarget(targetID)
}

// GetReport returns entries of one action type inside a time window, for
// compliance reporting.
func (ls *LifecycleLogService) GetReport(action string, from, to time.Time) ([]*model.LifecycleLogEntry, error) {

	if !constants.AllowedAuditActions[action] {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_QUERY_VALIDATION.Code,
			Message:     errors.AUDIT_QUERY_VALIDATION.Message,
			Description: fmt.Sprintf("Unknown lifecycle action type: %s", action),
		}, http.StatusBadRequest)
	}
	if !from.Before(to) {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_QUERY_VALIDATION.Code,
			Message:     errors.AUDIT_QUERY_VALIDATION.Message,
			Description: "The report window start must precede its end.",
		}, http.StatusBadRequest)
	}
	return ls.store.GetByActionAndRange(action, from, to)
}
