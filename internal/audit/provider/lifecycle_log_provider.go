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

import "github.com/hero-research/data-lifecycle-service/internal/audit/service"

// LifecycleLogProviderInterface provides access to the audit service.
type LifecycleLogProviderInterface interface {
	GetLifecycleLogService() service.LifecycleLogServiceInterface
}

// LifecycleLogProvider is the default implementation.
type LifecycleLogProvider struct{}

// NewLifecycleLogProvider creates a new audit provider.
func NewLifecycleLogProvider() LifecycleLogProviderInterface {
	return &LifecycleLogProvider{}
}

// GetLifecycleLogService returns the audit service.
func (p *LifecycleLogProvider) GetLifecycleLogService() service.LifecycleLogServiceInterface {
	return service.GetLifecycleLogService()
}
