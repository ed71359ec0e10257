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

// lifecyclectl runs retention jobs and inspects policies from the command
// line, against the same database the service uses. Operators reach for it
// during compliance drills and when a scheduled run needs a supervised
// re-run after a failure.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	lifecycleProvider "github.com/hero-research/data-lifecycle-service/internal/lifecycle/provider"
	policyProvider "github.com/hero-research/data-lifecycle-service/internal/policy/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/config"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

var (
	dlsHome    string
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifecyclectl",
		Short: "Operate the HERO data lifecycle service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRuntime()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dlsHome, "home", ".", "Service home directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/deployment.yaml", "Configuration file relative to home")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a retention job once",
	}
	runCmd.AddCommand(
		&cobra.Command{
			Use:   "anonymize",
			Short: "Sweep participants past the anonymization horizon",
			RunE: func(cmd *cobra.Command, args []string) error {
				service := lifecycleProvider.NewLifecycleProvider().GetLifecycleService()
				summary, err := service.RunAnonymization(time.Now().UTC())
				if err != nil {
					return err
				}
				return printJSON(summary)
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Sweep sessions past the deletion horizon",
			RunE: func(cmd *cobra.Command, args []string) error {
				service := lifecycleProvider.NewLifecycleProvider().GetLifecycleService()
				summary, err := service.RunDeletion(time.Now().UTC())
				if err != nil {
					return err
				}
				return printJSON(summary)
			},
		},
	)

	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect retention policies",
	}
	policyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := policyProvider.NewRetentionPolicyProvider().GetRetentionPolicyService()
			policies, err := service.GetAllPolicies()
			if err != nil {
				return err
			}
			return printJSON(policies)
		},
	})

	rootCmd.AddCommand(runCmd, policyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initRuntime() error {
	envFiles, _ := filepath.Glob(filepath.Join(dlsHome, "config/*.env"))
	_ = godotenv.Load(envFiles...)

	dlsConfig, err := config.LoadConfig(dlsHome, configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.InitializeDLSRuntime(dlsHome, dlsConfig); err != nil {
		return fmt.Errorf("failed to initialize runtime: %w", err)
	}
	return log.Init(dlsConfig.Log.LogLevel)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
