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
	"net/http"
	"strings"
	"time"

	"github.com/hero-research/data-lifecycle-service/internal/audit/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

type LifecycleLogHandler struct{}

func NewLifecycleLogHandler() *LifecycleLogHandler {
	return &LifecycleLogHandler{}
}

// GetHistory handles GET /audit/{targetId}
func (h *LifecycleLogHandler) GetHistory(w http.ResponseWriter, r *http.Request) {

	targetID := auditPathTarget(r.URL.Path)
	service := provider.NewLifecycleLogProvider().GetLifecycleLogService()
	entries, err := service.GetHistory(targetID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, entries)
}

// GetReport handles GET /audit?action=...&from=...&to=...
// from and to are RFC 3339 timestamps; to defaults to now.
func (h *LifecycleLogHandler) GetReport(w http.ResponseWriter, r *http.Request) {

	query := r.URL.Query()
	action := query.Get("action")

	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.AUDIT_QUERY_VALIDATION.Code,
			Message:     errors.AUDIT_QUERY_VALIDATION.Message,
			Description: "Query parameter from must be an RFC 3339 timestamp.",
		}, http.StatusBadRequest))
		return
	}

	to := time.Now().UTC()
	if raw := query.Get("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
				Code:        errors.AUDIT_QUERY_VALIDATION.Code,
				Message:     errors.AUDIT_QUERY_VALIDATION.Message,
				Description: "Query parameter to must be an RFC 3339 timestamp.",
			}, http.StatusBadRequest))
			return
		}
	}

	service := provider.NewLifecycleLogProvider().GetLifecycleLogService()
	entries, err := service.GetReport(action, from, to)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, entries)
}

// auditPathTarget extracts the target id segment that follows "/audit" in
// the request path, empty for the bare collection path.
func auditPathTarget(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if part == "audit" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
