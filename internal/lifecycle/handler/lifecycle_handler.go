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
	"time"

	"github.com/hero-research/data-lifecycle-service/internal/lifecycle/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// LifecycleHandler exposes manual job triggers. The scheduler runs the same
// service; this surface exists for operators and compliance drills.
type LifecycleHandler struct{}

func NewLifecycleHandler() *LifecycleHandler {
	return &LifecycleHandler{}
}

// RunAnonymization handles POST /lifecycle/anonymize
func (h *LifecycleHandler) RunAnonymization(w http.ResponseWriter, r *http.Request) {

	service := provider.NewLifecycleProvider().GetLifecycleService()
	summary, err := service.RunAnonymization(time.Now().UTC())
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, summary)
}

// RunDeletion handles POST /lifecycle/delete
func (h *LifecycleHandler) RunDeletion(w http.ResponseWriter, r *http.Request) {

	service := provider.NewLifecycleProvider().GetLifecycleService()
	summary, err := service.RunDeletion(time.Now().UTC())
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, summary)
}
