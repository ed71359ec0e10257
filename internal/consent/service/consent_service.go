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
	"time"

	"github.com/google/uuid"

	auditModel "github.com/hero-research/data-lifecycle-service/internal/audit/model"
	auditStore "github.com/hero-research/data-lifecycle-service/internal/audit/store"
	"github.com/hero-research/data-lifecycle-service/internal/consent/model"
	"github.com/hero-research/data-lifecycle-service/internal/consent/store"
	"github.com/hero-research/data-lifecycle-service/internal/system/constants"
	"github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

// ConsentServiceInterface defines the consent ledger operations.
type ConsentServiceInterface interface {
	GrantConsent(record *model.ConsentRecord) (*model.ConsentRecord, error)
	RevokeConsent(participantID, reason, performedBy string) error
	GetActiveConsent(participantID string) (*model.ConsentRecord, error)
	GetConsentHistory(participantID string) ([]*model.ConsentRecord, error)
	HasActiveClause(participantID string, clause model.ConsentClause) (bool, error)
	HasClauseEverGranted(participantID string, clause model.ConsentClause) (bool, error)
}

// ConsentService implements the consent ledger on top of the consent and
// audit stores.
type ConsentService struct {
	consentStore store.ConsentStoreInterface
	auditStore   auditStore.LifecycleLogStoreInterface
}

// GetConsentService creates a consent service with the default stores.
func GetConsentService() ConsentServiceInterface {
	return &ConsentService{
		consentStore: &store.ConsentStore{},
		auditStore:   &auditStore.LifecycleLogStore{},
	}
}

// GrantConsent records a new consent version for a participant. Any prior
// active record is superseded, never edited.
func (cs *ConsentService) GrantConsent(record *model.ConsentRecord) (*model.ConsentRecord, error) {

	if err := validateConsent(record); err != nil {
		return nil, err
	}

	record.ConsentID = uuid.New().String()
	if record.ConsentDate.IsZero() {
		record.ConsentDate = time.Now().UTC()
	}
	record.IsActive = true
	record.RevokedAt = nil
	record.RevocationReason = ""

	if err := cs.consentStore.InsertConsent(record); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		InitiatorID:   record.ParticipantID,
		TargetType:    log.TargetTypeConsent,
		TargetID:      record.ConsentID,
		ActionID:      log.ActionGrantConsent,
	})
	return record, nil
}

// RevokeConsent revokes the active consent of a participant and appends a
// durable audit entry. Per platform ethics rules a revocation keeps the
// historical record; only the active flag changes.
func (cs *ConsentService) RevokeConsent(participantID, reason, performedBy string) error {

	if participantID == "" {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.CONSENT_VALIDATION.Code,
			Message:     errors.CONSENT_VALIDATION.Message,
			Description: "Participant id is required to revoke consent.",
		}, http.StatusBadRequest)
	}
	if performedBy == "" {
		performedBy = constants.PerformedBySelf
	}

	revokedAt := time.Now().UTC()
	revoked, err := cs.consentStore.RevokeActiveConsent(participantID, reason, revokedAt)
	if err != nil {
		return err
	}
	if !revoked {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.CONSENT_NOT_FOUND.Code,
			Message:     errors.CONSENT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No active consent found for participant: %s", participantID),
		}, http.StatusNotFound)
	}

	// The durable trail entry is the proof of revocation that survives later
	// anonymization or deletion of the participant.
	entry := &auditModel.LifecycleLogEntry{
		LogID:       uuid.New().String(),
		Timestamp:   revokedAt,
		ActionType:  constants.ActionConsentRevoked,
		TargetType:  constants.TargetUser,
		TargetID:    participantID,
		PerformedBy: performedBy,
		Details:     map[string]interface{}{"reason": reason},
	}
	if err := cs.auditStore.AppendEntry(entry); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: initiatorTypeFor(performedBy),
		InitiatorID:   participantID,
		TargetType:    log.TargetTypeConsent,
		TargetID:      participantID,
		ActionID:      log.ActionRevokeConsent,
	})
	return nil
}

// GetActiveConsent returns the participant's currently active consent.
func (cs *ConsentService) GetActiveConsent(participantID string) (*model.ConsentRecord, error) {

	record, err := cs.consentStore.GetActiveConsent(participantID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.CONSENT_NOT_FOUND.Code,
			Message:     errors.CONSENT_NOT_FOUND.Message,
			Description: fmt.Sprintf("No active consent found for participant: %s", participantID),
		}, http.StatusNotFound)
	}
	return record, nil
}

// GetConsentHistory returns every consent version recorded for the
// participant, newest first.
func (cs *ConsentService) GetConsentHistory(participantID string) ([]*model.ConsentRecord, error) {
	return cs.consentStore.GetConsentsByParticipant(participantID)
}

// HasActiveClause reports whether the participant's active consent grants the
// clause. Missing or revoked consent counts as not granted.
func (cs *ConsentService) HasActiveClause(participantID string, clause model.ConsentClause) (bool, error) {

	record, err := cs.consentStore.GetActiveConsent(participantID)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}
	return record.Granted(clause), nil
}

// HasClauseEverGranted reports whether any consent version in the
// participant's history granted the clause. Deletion obligations survive
// revocation, so the deletion job asks this rather than HasActiveClause.
func (cs *ConsentService) HasClauseEverGranted(participantID string, clause model.ConsentClause) (bool, error) {

	records, err := cs.consentStore.GetConsentsByParticipant(participantID)
	if err != nil {
		return false, err
	}
	for _, record := range records {
		if record.Granted(clause) {
			return true, nil
		}
	}
	return false, nil
}

func validateConsent(record *model.ConsentRecord) error {
	if record.ParticipantID == "" {
		return consentValidationError("Participant id is required.")
	}
	if record.ConsentVersion == "" {
		return consentValidationError("Consent version is required.")
	}
	if record.ConsentMethod == "" {
		return consentValidationError("Consent method is required.")
	}
	if _, ok := constants.AllowedConsentMethods[record.ConsentMethod]; !ok {
		return consentValidationError(fmt.Sprintf("Unsupported consent method: %s", record.ConsentMethod))
	}
	if !record.DataCollectionConsent {
		return consentValidationError("Data collection consent is mandatory for participation.")
	}
	return nil
}

func consentValidationError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.CONSENT_VALIDATION.Code,
		Message:     errors.CONSENT_VALIDATION.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func initiatorTypeFor(performedBy string) string {
	if performedBy == constants.PerformedByAdmin {
		return log.InitiatorTypeAdmin
	}
	return log.InitiatorTypeUser
}
