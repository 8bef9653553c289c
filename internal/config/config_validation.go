// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; the client-specific rules live on
// [ClientConfig.validate], which runs on the projected view.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || !strings.Contains(cfg.Adapter.BaseURL, "://") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Stream.BackoffCap < cfg.Stream.BackoffBase {
		return ErrInvalidStreamConfigs
	}

	return nil
}
