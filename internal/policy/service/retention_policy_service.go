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

	"github.com/google/uuid"

	"github.com/hero-research/data-lifecycle-service/internal/policy/model"
	"github.com/hero-research/data-lifecycle-service/internal/policy/store"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

// RetentionPolicyServiceInterface defines the service interface for
// retention policy administration.
type RetentionPolicyServiceInterface interface {
	GetAllPolicies() ([]*model.RetentionPolicy, error)
	GetPolicy(category string) (*model.RetentionPolicy, error)
	AddPolicy(policy *model.RetentionPolicy) (*model.RetentionPolicy, error)
	UpdatePolicy(policy *model.RetentionPolicy) error
	DeactivatePolicy(category string) error
}

// RetentionPolicyService is the default implementation.
type RetentionPolicyService struct {
	store store.RetentionPolicyStoreInterface
}

// GetRetentionPolicyService returns a service with the postgres store injected.
func GetRetentionPolicyService() RetentionPolicyServiceInterface {
	return &RetentionPolicyService{
		store: &store.RetentionPolicyStore{},
	}
}

// GetAllPolicies retrieves every retention policy.
func (ps *RetentionPolicyService) GetAllPolicies() ([]*model.RetentionPolicy, error) {

	policies, err := ps.store.GetAllPolicies()
	if err != nil {
		return nil, err
	}
	if policies == nil {
		return []*model.RetentionPolicy{}, nil
	}
	return policies, nil
}

// GetPolicy retrieves the policy for a data category.
func (ps *RetentionPolicyService) GetPolicy(category string) (*model.RetentionPolicy, error) {

	policy, err := ps.store.GetPolicyByCategory(category)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.POLICY_NOT_FOUND.Code,
			Message:     errors2.POLICY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No retention policy defined for category: %s", category),
		}, http.StatusNotFound)
	}
	return policy, nil
}

// AddPolicy validates and stores a new retention policy.
func (ps *RetentionPolicyService) AddPolicy(policy *model.RetentionPolicy) (*model.RetentionPolicy, error) {

	if err := validatePolicy(policy); err != nil {
		return nil, err
	}

	existing, err := ps.store.GetPolicyByCategory(policy.DataType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.POLICY_VALIDATION.Code,
			Message:     errors2.POLICY_VALIDATION.Message,
			Description: fmt.Sprintf("A retention policy for category %s already exists.", policy.DataType),
		}, http.StatusConflict)
	}

	if policy.PolicyID == "" {
		policy.PolicyID = uuid.New().String()
	}

	if err := ps.store.InsertPolicy(policy); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      policy.DataType,
		TargetType:    log.TargetTypePolicy,
		ActionID:      log.ActionAddRetentionPolicy,
	})
	return policy, nil
}

// UpdatePolicy validates and applies changes to an existing policy.
func (ps *RetentionPolicyService) UpdatePolicy(policy *model.RetentionPolicy) error {

	if err := validatePolicy(policy); err != nil {
		return err
	}

	if _, err := ps.GetPolicy(policy.DataType); err != nil {
		return err
	}

	if err := ps.store.UpdatePolicy(policy); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      policy.DataType,
		TargetType:    log.TargetTypePolicy,
		ActionID:      log.ActionUpdateRetentionPolicy,
	})
	return nil
}

// DeactivatePolicy marks a policy inactive. Inactive policies turn the
// governed retention job into a no-op; the row itself is kept.
func (ps *RetentionPolicyService) DeactivatePolicy(category string) error {

	policy, err := ps.GetPolicy(category)
	if err != nil {
		return err
	}
	if !policy.PolicyActive {
		return nil
	}
	policy.PolicyActive = false

	if err := ps.store.UpdatePolicy(policy); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      category,
		TargetType:    log.TargetTypePolicy,
		ActionID:      log.ActionDeactivateRetentionPolicy,
	})
	return nil
}

// validatePolicy enforces the policy bounds: a deletion horizon is always
// required, and when an anonymization horizon is set the deletion horizon
// must lie strictly beyond it.
func validatePolicy(policy *model.RetentionPolicy) error {

	if policy.DataType == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.POLICY_VALIDATION.Code,
			Message:     errors2.POLICY_VALIDATION.Message,
			Description: "data_type is required.",
		}, http.StatusBadRequest)
	}

	if policy.DeletionAfterDays <= 0 {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.POLICY_VALIDATION.Code,
			Message:     errors2.POLICY_VALIDATION.Message,
			Description: "deletion_after_days must be a positive number of days.",
		}, http.StatusBadRequest)
	}

	if policy.AnonymizationAfterDays != nil {
		if *policy.AnonymizationAfterDays <= 0 {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.POLICY_VALIDATION.Code,
				Message:     errors2.POLICY_VALIDATION.Message,
				Description: "anonymization_after_days must be a positive number of days when set.",
			}, http.StatusBadRequest)
		}
		if policy.DeletionAfterDays <= *policy.AnonymizationAfterDays {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.POLICY_VALIDATION.Code,
				Message:     errors2.POLICY_VALIDATION.Message,
				Description: "deletion_after_days must be greater than anonymization_after_days.",
			}, http.StatusBadRequest)
		}
	}
	return nil
}
