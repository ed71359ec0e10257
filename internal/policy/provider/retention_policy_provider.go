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

package provider

import (
	"github.com/hero-research/data-lifecycle-service/internal/policy/service"
)

// RetentionPolicyProviderInterface defines the interface for the retention policy provider.
type RetentionPolicyProviderInterface interface {
	GetRetentionPolicyService() service.RetentionPolicyServiceInterface
}

// RetentionPolicyProvider is the default implementation of the RetentionPolicyProviderInterface.
type RetentionPolicyProvider struct{}

// NewRetentionPolicyProvider creates a new instance of RetentionPolicyProvider.
func NewRetentionPolicyProvider() RetentionPolicyProviderInterface {
	return &RetentionPolicyProvider{}
}

// GetRetentionPolicyService returns the retention policy service instance.
func (pp *RetentionPolicyProvider) GetRetentionPolicyService() service.RetentionPolicyServiceInterface {
	return service.GetRetentionPolicyService()
}
