/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens on the admin surface.
	JWTSecret string `yaml:"jwt_secret"`
	Audience  string `yaml:"audience"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// LifecycleConfig configures the retention job scheduler. Retention horizons
// are deliberately NOT configured here; they live in the retention_policies
// table and are snapshotted at the start of each job invocation.
type LifecycleConfig struct {
	// SchedulerIntervalMinutes is the period between retention sweeps.
	// Zero disables the in-process scheduler.
	SchedulerIntervalMinutes int `yaml:"scheduler_interval_minutes"`
	// CohortLabel is the label the default cohort-assignment strategy
	// places anonymized sessions into, e.g. "testing_stage_1".
	CohortLabel string `yaml:"cohort_label"`
	RunOnStart  bool   `yaml:"run_on_start"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
}
