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

package model

import "time"

// ConsentClause is one independently revocable permission within a consent
// record.
type ConsentClause string

const (
	ClauseDataCollection ConsentClause = "data_collection"
	ClauseAnonymization  ConsentClause = "seven_day_anonymization"
	ClauseDeletion       ConsentClause = "two_year_deletion"
	ClauseEEG            ConsentClause = "eeg"
	ClauseEyeTracking    ConsentClause = "eye_tracking"
	ClauseMotionSensor   ConsentClause = "motion_sensor"
	ClauseBiometric      ConsentClause = "biometric"
)

// ConsentRecord is one version of a participant's informed consent. Records
// are never mutated in place once active: re-consent inserts a new row and
// marks the old one inactive, revocation flips is_active and stamps
// revoked_at. Invariant: IsActive exactly when RevokedAt is nil.
type ConsentRecord struct {
	ConsentID      string    `json:"consent_id"`
	ParticipantID  string    `json:"participant_id"`
	ConsentVersion string    `json:"consent_version"`
	ConsentDate    time.Time `json:"consent_date"`

	DataCollectionConsent        bool `json:"data_collection_consent"`
	SevenDayAnonymizationConsent bool `json:"seven_day_anonymization_consent"`
	TwoYearDeletionConsent       bool `json:"two_year_deletion_consent"`

	// Per-sensor granular consent.
	EEGConsent          bool `json:"eeg_consent"`
	EyeTrackingConsent  bool `json:"eye_tracking_consent"`
	MotionSensorConsent bool `json:"motion_sensor_consent"`
	BiometricConsent    bool `json:"biometric_consent"`

	IsActive         bool       `json:"is_active"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
	RevocationReason string     `json:"revocation_reason,omitempty"`

	Signature     string `json:"signature,omitempty"`
	ConsentMethod string `json:"consent_method"`
}

// Granted reports whether this record grants the given clause.
func (c *ConsentRecord) Granted(clause ConsentClause) bool {
	switch clause {
	case ClauseDataCollection:
		return c.DataCollectionConsent
	case ClauseAnonymization:
		return c.SevenDayAnonymizationConsent
	case ClauseDeletion:
		return c.TwoYearDeletionConsent
	case ClauseEEG:
		return c.EEGConsent
	case ClauseEyeTracking:
		return c.EyeTrackingConsent
	case ClauseMotionSensor:
		return c.MotionSensorConsent
	case ClauseBiometric:
		return c.BiometricConsent
	default:
		return false
	}
}
