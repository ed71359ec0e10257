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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	policyModel "github.com/hero-research/data-lifecycle-service/internal/policy/model"
	"github.com/hero-research/data-lifecycle-service/internal/policy/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

type RetentionPolicyHandler struct{}

func NewRetentionPolicyHandler() *RetentionPolicyHandler {
	return &RetentionPolicyHandler{}
}

// GetAllPolicies handles GET /policies
func (h *RetentionPolicyHandler) GetAllPolicies(w http.ResponseWriter, r *http.Request) {

	service := provider.NewRetentionPolicyProvider().GetRetentionPolicyService()
	policies, err := service.GetAllPolicies()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, policies)
}

// GetPolicy handles GET /policies/{category}
func (h *RetentionPolicyHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {

	category := extractLastPathSegment(r.URL.Path)
	if category == "" {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Data category is required to fetch the retention policy.",
		}, http.StatusBadRequest))
		return
	}

	service := provider.NewRetentionPolicyProvider().GetRetentionPolicyService()
	policy, err := service.GetPolicy(category)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, policy)
}

// AddPolicy handles POST /policies
func (h *RetentionPolicyHandler) AddPolicy(w http.ResponseWriter, r *http.Request) {

	var policy policyModel.RetentionPolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "retention policy"),
		}, http.StatusBadRequest))
		return
	}

	service := provider.NewRetentionPolicyProvider().GetRetentionPolicyService()
	created, err := service.AddPolicy(&policy)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// UpdatePolicy handles PUT /policies/{category}
func (h *RetentionPolicyHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {

	category := extractLastPathSegment(r.URL.Path)
	var policy policyModel.RetentionPolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "retention policy"),
		}, http.StatusBadRequest))
		return
	}
	policy.DataType = category

	service := provider.NewRetentionPolicyProvider().GetRetentionPolicyService()
	if err := service.UpdatePolicy(&policy); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, policy)
}

// DeactivatePolicy handles DELETE /policies/{category}. The policy row is
// retained and marked inactive.
func (h *RetentionPolicyHandler) DeactivatePolicy(w http.ResponseWriter, r *http.Request) {

	category := extractLastPathSegment(r.URL.Path)
	service := provider.NewRetentionPolicyProvider().GetRetentionPolicyService()
	if err := service.DeactivatePolicy(category); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusNoContent, nil)
}

func extractLastPathSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return path[idx+1:]
}
