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

	consentModel "github.com/hero-research/data-lifecycle-service/internal/consent/model"
	"github.com/hero-research/data-lifecycle-service/internal/consent/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/authn"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

type revokeConsentRequest struct {
	Reason string `json:"reason"`
}

// GrantConsent handles POST /consents
func (h *ConsentHandler) GrantConsent(w http.ResponseWriter, r *http.Request) {

	var record consentModel.ConsentRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "consent record"),
		}, http.StatusBadRequest))
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	created, err := service.GrantConsent(&record)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// RevokeConsent handles POST /consents/{participantId}/revoke
func (h *ConsentHandler) RevokeConsent(w http.ResponseWriter, r *http.Request) {

	participantID := consentPathParticipant(r.URL.Path)
	if participantID == "" {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Participant id is required to revoke consent.",
		}, http.StatusBadRequest))
		return
	}

	var req revokeConsentRequest
	if r.Body != nil {
		// The body is optional; an empty revocation reason is allowed.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	// The performer is attributed from the authenticated token, never from
	// the request body.
	performedBy := performerFor(authn.Subject(r.Context()), participantID)

	service := provider.NewConsentProvider().GetConsentService()
	if err := service.RevokeConsent(participantID, req.Reason, performedBy); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusNoContent, nil)
}

// GetActiveConsent handles GET /consents/{participantId}
func (h *ConsentHandler) GetActiveConsent(w http.ResponseWriter, r *http.Request) {

	participantID := consentPathParticipant(r.URL.Path)
	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.GetActiveConsent(participantID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, record)
}

// GetConsentHistory handles GET /consents/{participantId}/history
func (h *ConsentHandler) GetConsentHistory(w http.ResponseWriter, r *http.Request) {

	participantID := consentPathParticipant(r.URL.Path)
	service := provider.NewConsentProvider().GetConsentService()
	records, err := service.GetConsentHistory(participantID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, records)
}

// performerFor classifies the revocation performer: a token whose subject is
// the participant themselves is self-service, everything else is staff.
func performerFor(subject, participantID string) string {
	if subject != "" && subject == participantID {
		return constants.PerformedBySelf
	}
	return constants.PerformedByAdmin
}

// consentPathParticipant extracts the participant id segment that follows
// "/consents" in the request path.
func consentPathParticipant(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if part == "consents" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
