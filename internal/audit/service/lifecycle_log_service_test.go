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

	"github.com/hero-research/data-lifecycle-service/internal/audit/model"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

type MockLifecycleLogStore struct {
	mock.Mock
}

func (m *MockLifecycleLogStore) AppendEntry(entry *model.LifecycleLogEntry) error {
	return m.Called(entry).Error(0)
}

func (m *MockLifecycleLogStore) GetByTarget(targetID string) ([]*model.LifecycleLogEntry, error) {
	args := m.Called(targetID)
	entries, _ := args.Get(0).([]*model.LifecycleLogEntry)
	return entries, args.Error(1)
}

func (m *MockLifecycleLogStore) GetByActionAndRange(action string, from, to time.Time) ([]*model.LifecycleLogEntry, error) {
	args := m.Called(action, from, to)
	entries, _ := args.Get(0).([]*model.LifecycleLogEntry)
	return entries, args.Error(1)
}

func TestGetHistoryRequiresTarget(t *testing.T) {
	_ = log.Init("DEBUG")

	svc := LifecycleLogService{store: new(MockLifecycleLogStore)}

	_, err := svc.GetHistory("")

	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.AUDIT_QUERY_VALIDATION.Code, clientErr.Code)
}

func TestGetReportValidation(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockLifecycleLogStore)
	svc := LifecycleLogService{store: mockStore}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	_, err := svc.GetReport("shredded", from, to)
	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)

	_, err = svc.GetReport(constants.ActionDeleted, to, from)
	assert.ErrorAs(t, err, &clientErr)

	mockStore.AssertNotCalled(t, "GetByActionAndRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReport(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockLifecycleLogStore)
	svc := LifecycleLogService{store: mockStore}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	entries := []*model.LifecycleLogEntry{{LogID: "l1", ActionType: constants.ActionAnonymized}}
	mockStore.On("GetByActionAndRange", constants.ActionAnonymized, from, to).Return(entries, nil)

	result, err := svc.GetReport(constants.ActionAnonymized, from, to)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	mockStore.AssertExpectations(t)
}
