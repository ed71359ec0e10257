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

package managers

import (
	"net/http"

	auditHandler "github.com/hero-research/data-lifecycle-service/internal/audit/handler"
	consentHandler "github.com/hero-research/data-lifecycle-service/internal/consent/handler"
	lifecycleHandler "github.com/hero-research/data-lifecycle-service/internal/lifecycle/handler"
	policyHandler "github.com/hero-research/data-lifecycle-service/internal/policy/handler"
	"github.com/hero-research/data-lifecycle-service/internal/system/authn"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices mounts every HTTP surface under the API base path. All
// routes except the health probe sit behind bearer authentication.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	policies := policyHandler.NewRetentionPolicyHandler()
	consents := consentHandler.NewConsentHandler()
	audit := auditHandler.NewLifecycleLogHandler()
	lifecycle := lifecycleHandler.NewLifecycleHandler()

	// Retention policy administration.
	sm.mux.HandleFunc("GET "+apiBasePath+"/policies", authn.Middleware(policies.GetAllPolicies))
	sm.mux.HandleFunc("POST "+apiBasePath+"/policies", authn.Middleware(policies.AddPolicy))
	sm.mux.HandleFunc("GET "+apiBasePath+"/policies/{category}", authn.Middleware(policies.GetPolicy))
	sm.mux.HandleFunc("PUT "+apiBasePath+"/policies/{category}", authn.Middleware(policies.UpdatePolicy))
	sm.mux.HandleFunc("DELETE "+apiBasePath+"/policies/{category}", authn.Middleware(policies.DeactivatePolicy))

	// Consent ledger.
	sm.mux.HandleFunc("POST "+apiBasePath+"/consents", authn.Middleware(consents.GrantConsent))
	sm.mux.HandleFunc("GET "+apiBasePath+"/consents/{participantId}", authn.Middleware(consents.GetActiveConsent))
	sm.mux.HandleFunc("GET "+apiBasePath+"/consents/{participantId}/history", authn.Middleware(consents.GetConsentHistory))
	sm.mux.HandleFunc("POST "+apiBasePath+"/consents/{participantId}/revoke", authn.Middleware(consents.RevokeConsent))

	// Lifecycle audit trail, read only.
	sm.mux.HandleFunc("GET "+apiBasePath+"/audit", authn.Middleware(audit.GetReport))
	sm.mux.HandleFunc("GET "+apiBasePath+"/audit/{targetId}", authn.Middleware(audit.GetHistory))

	// Manual retention job triggers.
	sm.mux.HandleFunc("POST "+apiBasePath+"/lifecycle/anonymize", authn.Middleware(lifecycle.RunAnonymization))
	sm.mux.HandleFunc("POST "+apiBasePath+"/lifecycle/delete", authn.Middleware(lifecycle.RunDeletion))

	sm.mux.HandleFunc("GET "+apiBasePath+"/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return nil
}
