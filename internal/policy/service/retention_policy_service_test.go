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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hero-research/data-lifecycle-service/internal/policy/model"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

type MockRetentionPolicyStore struct {
	mock.Mock
}

func (m *MockRetentionPolicyStore) GetPolicyByCategory(category string) (*model.RetentionPolicy, error) {
	args := m.Called(category)
	policy, _ := args.Get(0).(*model.RetentionPolicy)
	return policy, args.Error(1)
}

func (m *MockRetentionPolicyStore) GetAllPolicies() ([]*model.RetentionPolicy, error) {
	args := m.Called()
	policies, _ := args.Get(0).([]*model.RetentionPolicy)
	return policies, args.Error(1)
}

func (m *MockRetentionPolicyStore) InsertPolicy(policy *model.RetentionPolicy) error {
	args := m.Called(policy)
	return args.Error(0)
}

func (m *MockRetentionPolicyStore) UpdatePolicy(policy *model.RetentionPolicy) error {
	args := m.Called(policy)
	return args.Error(0)
}

func intPtr(n int) *int { return &n }

func TestAddPolicy(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockRetentionPolicyStore)
	svc := RetentionPolicyService{store: mockStore}

	mockStore.On("GetPolicyByCategory", "participant_identity").Return(nil, nil)
	mockStore.
		On("InsertPolicy", mock.MatchedBy(func(p *model.RetentionPolicy) bool {
			return p.DataType == "participant_identity" && p.PolicyID != ""
		})).
		Return(nil)

	created, err := svc.AddPolicy(&model.RetentionPolicy{
		DataType:               "participant_identity",
		AnonymizationAfterDays: intPtr(7),
		DeletionAfterDays:      730,
		PolicyActive:           true,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.PolicyID)
	mockStore.AssertExpectations(t)
}

func TestAddPolicyRejectsConflict(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockRetentionPolicyStore)
	svc := RetentionPolicyService{store: mockStore}

	existing := &model.RetentionPolicy{DataType: "raw_sensor_data", DeletionAfterDays: 730}
	mockStore.On("GetPolicyByCategory", "raw_sensor_data").Return(existing, nil)

	_, err := svc.AddPolicy(&model.RetentionPolicy{
		DataType:          "raw_sensor_data",
		DeletionAfterDays: 365,
	})

	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
	mockStore.AssertNotCalled(t, "InsertPolicy", mock.Anything)
}

func TestPolicyValidationBounds(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockRetentionPolicyStore)
	svc := RetentionPolicyService{store: mockStore}

	tests := []struct {
		name   string
		policy *model.RetentionPolicy
	}{
		{"missing data type", &model.RetentionPolicy{DeletionAfterDays: 30}},
		{"zero deletion horizon", &model.RetentionPolicy{DataType: "x", DeletionAfterDays: 0}},
		{"negative deletion horizon", &model.RetentionPolicy{DataType: "x", DeletionAfterDays: -1}},
		{"zero anonymization horizon", &model.RetentionPolicy{
			DataType: "x", AnonymizationAfterDays: intPtr(0), DeletionAfterDays: 30}},
		{"deletion equals anonymization", &model.RetentionPolicy{
			DataType: "x", AnonymizationAfterDays: intPtr(30), DeletionAfterDays: 30}},
		{"deletion before anonymization", &model.RetentionPolicy{
			DataType: "x", AnonymizationAfterDays: intPtr(60), DeletionAfterDays: 30}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddPolicy(tc.policy)
			var clientErr *errors2.ClientError
			assert.ErrorAs(t, err, &clientErr)
			assert.Equal(t, errors2.POLICY_VALIDATION.Code, clientErr.Code)
		})
	}
	mockStore.AssertNotCalled(t, "InsertPolicy", mock.Anything)
}

func TestGetPolicyNotFound(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockRetentionPolicyStore)
	svc := RetentionPolicyService{store: mockStore}

	mockStore.On("GetPolicyByCategory", "unknown").Return(nil, nil)

	_, err := svc.GetPolicy("unknown")

	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.POLICY_NOT_FOUND.Code, clientErr.Code)
}

func TestDeactivatePolicyAlreadyInactive(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockRetentionPolicyStore)
	svc := RetentionPolicyService{store: mockStore}

	inactive := &model.RetentionPolicy{DataType: "raw_sensor_data", DeletionAfterDays: 730, PolicyActive: false}
	mockStore.On("GetPolicyByCategory", "raw_sensor_data").Return(inactive, nil)

	err := svc.DeactivatePolicy("raw_sensor_data")

	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "UpdatePolicy", mock.Anything)
}
